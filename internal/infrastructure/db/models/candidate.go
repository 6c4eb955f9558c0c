package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Candidate struct {
	ID    string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email string `gorm:"size:320;not null;uniqueIndex"`

	FullName string `gorm:"size:200;not null;default:''"`
	CPF      string `gorm:"column:cpf;size:14;not null;default:''"`
	LinkedIn string `gorm:"column:linkedin;size:500;not null;default:''"`
	ZipCode  string `gorm:"size:20;not null;default:''"`
	City     string `gorm:"size:100;not null;default:''"`

	AcceptsPJ         bool `gorm:"column:accepts_pj;not null;default:false"`
	ContractSigned    bool `gorm:"not null;default:false"`
	IsPCD             bool `gorm:"column:is_pcd;not null;default:false"`
	HasDriversLicense bool `gorm:"not null;default:false"`
	HasVehicle        bool `gorm:"not null;default:false"`

	MinimumSalary *decimal.Decimal `gorm:"type:numeric(12,2)"`
	InterviewDate *time.Time       `gorm:"type:date"`

	Languages           StringList `gorm:"type:jsonb;not null;default:'[]'"`
	PositionsOfInterest StringList `gorm:"type:jsonb;not null;default:'[]'"`
	ToolsSoftware       StringList `gorm:"type:jsonb;not null;default:'[]'"`
	SolutionsSold       StringList `gorm:"type:jsonb;not null;default:'[]'"`
	DepartmentsSoldTo   StringList `gorm:"type:jsonb;not null;default:'[]'"`

	RelocationAvailability         string `gorm:"size:100;not null;default:''"`
	TravelAvailability             string `gorm:"size:100;not null;default:''"`
	AcademicDegree                 string `gorm:"size:200;not null;default:''"`
	WorkModel                      string `gorm:"size:100;not null;default:''"`
	SalaryNotes                    string `gorm:"type:text;not null;default:''"`
	ActiveProspectingExperience    string `gorm:"type:text;not null;default:''"`
	InboundQualificationExperience string `gorm:"type:text;not null;default:''"`
	PortfolioRetentionExperience   string `gorm:"type:text;not null;default:''"`
	PortfolioExpansionExperience   string `gorm:"type:text;not null;default:''"`
	PortfolioSize                  string `gorm:"size:200;not null;default:''"`
	InboundSalesExperience         string `gorm:"type:text;not null;default:''"`
	OutboundSalesExperience        string `gorm:"type:text;not null;default:''"`
	FieldSalesExperience           string `gorm:"type:text;not null;default:''"`
	InsideSalesExperience          string `gorm:"type:text;not null;default:''"`
	SalesCycle                     string `gorm:"size:100;not null;default:''"`
	AvgTicket                      string `gorm:"size:100;not null;default:''"`
	Status                         string `gorm:"size:100;not null;default:''"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Candidate) TableName() string {
	return "candidates"
}
