package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
	"github.com/talentbase/candidate-import/internal/infrastructure/db/models"
)

type CandidateQueryRepository struct {
	db *gorm.DB
}

func NewCandidateQueryRepository(db *gorm.DB) *CandidateQueryRepository {
	return &CandidateQueryRepository{db: db}
}

func (r *CandidateQueryRepository) GetByID(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	var row models.Candidate

	err := r.db.WithContext(ctx).First(&row, "id = ?", candidateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("get candidate by id: %w", err)
	}

	aggregate := &domain.Candidate{
		ID:                             row.ID,
		Email:                          row.Email,
		FullName:                       row.FullName,
		CPF:                            row.CPF,
		LinkedIn:                       row.LinkedIn,
		ZipCode:                        row.ZipCode,
		City:                           row.City,
		AcceptsPJ:                      row.AcceptsPJ,
		ContractSigned:                 row.ContractSigned,
		IsPCD:                          row.IsPCD,
		HasDriversLicense:              row.HasDriversLicense,
		HasVehicle:                     row.HasVehicle,
		MinimumSalary:                  row.MinimumSalary,
		Languages:                      row.Languages,
		PositionsOfInterest:            row.PositionsOfInterest,
		ToolsSoftware:                  row.ToolsSoftware,
		SolutionsSold:                  row.SolutionsSold,
		DepartmentsSoldTo:              row.DepartmentsSoldTo,
		RelocationAvailability:         row.RelocationAvailability,
		TravelAvailability:             row.TravelAvailability,
		AcademicDegree:                 row.AcademicDegree,
		WorkModel:                      row.WorkModel,
		SalaryNotes:                    row.SalaryNotes,
		ActiveProspectingExperience:    row.ActiveProspectingExperience,
		InboundQualificationExperience: row.InboundQualificationExperience,
		PortfolioRetentionExperience:   row.PortfolioRetentionExperience,
		PortfolioExpansionExperience:   row.PortfolioExpansionExperience,
		PortfolioSize:                  row.PortfolioSize,
		InboundSalesExperience:         row.InboundSalesExperience,
		OutboundSalesExperience:        row.OutboundSalesExperience,
		FieldSalesExperience:           row.FieldSalesExperience,
		InsideSalesExperience:          row.InsideSalesExperience,
		SalesCycle:                     row.SalesCycle,
		AvgTicket:                      row.AvgTicket,
		Status:                         row.Status,
	}
	if row.InterviewDate != nil {
		aggregate.InterviewDate = row.InterviewDate.Format("2006-01-02")
	}

	return aggregate, nil
}
