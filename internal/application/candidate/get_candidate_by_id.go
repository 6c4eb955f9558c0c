package candidate

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

type GetCandidateByIDInput struct {
	ID string
}

type GetCandidateByIDOutput struct {
	ID                  string   `json:"id"`
	Email               string   `json:"email"`
	FullName            string   `json:"full_name"`
	CPF                 string   `json:"cpf"`
	LinkedIn            string   `json:"linkedin"`
	ZipCode             string   `json:"zip_code"`
	City                string   `json:"city"`
	AcceptsPJ           bool     `json:"accepts_pj"`
	ContractSigned      bool     `json:"contract_signed"`
	IsPCD               bool     `json:"is_pcd"`
	HasDriversLicense   bool     `json:"has_drivers_license"`
	HasVehicle          bool     `json:"has_vehicle"`
	MinimumSalary       *string  `json:"minimum_salary"`
	InterviewDate       string   `json:"interview_date,omitempty"`
	Languages           []string `json:"languages"`
	PositionsOfInterest []string `json:"positions_of_interest"`
	ToolsSoftware       []string `json:"tools_software"`
	SolutionsSold       []string `json:"solutions_sold"`
	DepartmentsSoldTo   []string `json:"departments_sold_to"`
	WorkModel           string   `json:"work_model"`
	AcademicDegree      string   `json:"academic_degree"`
	SalesCycle          string   `json:"sales_cycle"`
	AvgTicket           string   `json:"avg_ticket"`
	Status              string   `json:"status"`
}

type GetCandidateByID interface {
	Execute(ctx context.Context, in GetCandidateByIDInput) (GetCandidateByIDOutput, error)
}

type getCandidateByID struct {
	repo domain.CandidateQueryRepository
}

func NewGetCandidateByID(repo domain.CandidateQueryRepository) GetCandidateByID {
	return &getCandidateByID{repo: repo}
}

func (uc *getCandidateByID) Execute(ctx context.Context, in GetCandidateByIDInput) (GetCandidateByIDOutput, error) {
	if !uuidPattern.MatchString(in.ID) {
		return GetCandidateByIDOutput{}, ErrInvalidCandidateID
	}

	aggregate, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			return GetCandidateByIDOutput{}, ErrCandidateNotFound
		}
		return GetCandidateByIDOutput{}, fmt.Errorf("%w: %v", ErrGetCandidateByID, err)
	}

	out := GetCandidateByIDOutput{
		ID:                  aggregate.ID,
		Email:               aggregate.Email,
		FullName:            aggregate.FullName,
		CPF:                 aggregate.CPF,
		LinkedIn:            aggregate.LinkedIn,
		ZipCode:             aggregate.ZipCode,
		City:                aggregate.City,
		AcceptsPJ:           aggregate.AcceptsPJ,
		ContractSigned:      aggregate.ContractSigned,
		IsPCD:               aggregate.IsPCD,
		HasDriversLicense:   aggregate.HasDriversLicense,
		HasVehicle:          aggregate.HasVehicle,
		InterviewDate:       aggregate.InterviewDate,
		Languages:           emptyIfNil(aggregate.Languages),
		PositionsOfInterest: emptyIfNil(aggregate.PositionsOfInterest),
		ToolsSoftware:       emptyIfNil(aggregate.ToolsSoftware),
		SolutionsSold:       emptyIfNil(aggregate.SolutionsSold),
		DepartmentsSoldTo:   emptyIfNil(aggregate.DepartmentsSoldTo),
		WorkModel:           aggregate.WorkModel,
		AcademicDegree:      aggregate.AcademicDegree,
		SalesCycle:          aggregate.SalesCycle,
		AvgTicket:           aggregate.AvgTicket,
		Status:              aggregate.Status,
	}
	if aggregate.MinimumSalary != nil {
		salary := aggregate.MinimumSalary.StringFixed(2)
		out.MinimumSalary = &salary
	}

	return out, nil
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
