package candidate

import "github.com/shopspring/decimal"

// Candidate is the identity plus profile aggregate. The email is the sole
// identity key; every other field comes from onboarding or CSV import and
// may be empty.
type Candidate struct {
	ID    string
	Email string

	FullName string
	CPF      string
	LinkedIn string
	ZipCode  string
	City     string

	AcceptsPJ         bool
	ContractSigned    bool
	IsPCD             bool
	HasDriversLicense bool
	HasVehicle        bool

	MinimumSalary *decimal.Decimal
	InterviewDate string

	Languages           []string
	PositionsOfInterest []string
	ToolsSoftware       []string
	SolutionsSold       []string
	DepartmentsSoldTo   []string

	RelocationAvailability         string
	TravelAvailability             string
	AcademicDegree                 string
	WorkModel                      string
	SalaryNotes                    string
	ActiveProspectingExperience    string
	InboundQualificationExperience string
	PortfolioRetentionExperience   string
	PortfolioExpansionExperience   string
	PortfolioSize                  string
	InboundSalesExperience         string
	OutboundSalesExperience        string
	FieldSalesExperience           string
	InsideSalesExperience          string
	SalesCycle                     string
	AvgTicket                      string
	Status                         string
}
