package candidate

import (
	"strings"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

// defaultColumnMapping translates the column headers of a Notion candidate
// export (Brazilian Portuguese) to profile field identifiers. Email is not
// part of the export and is usually added to the file by hand, so both
// common spellings are accepted.
var defaultColumnMapping = map[string]string{
	"Nome":                                    "full_name",
	"CPF":                                     "cpf",
	"LinkedIn":                                "linkedin",
	"Aceita ser PJ?":                          "accepts_pj",
	"CEP":                                     "zip_code",
	"Cidade":                                  "city",
	"Contrato Assinado?":                      "contract_signed",
	"Data da Entrevista":                      "interview_date",
	"Disp. p/ Mudança?":                       "relocation_availability",
	"Disponibilidade para viagem?":            "travel_availability",
	"Formação Acadêmica":                      "academic_degree",
	"Idiomas":                                 "languages",
	"Modelo de Trabalho":                      "work_model",
	"Mín Mensal Remuneração Total":            "minimum_salary",
	"Obs. Remuneração":                        "salary_notes",
	"PCD?":                                    "is_pcd",
	"Posições de Interesse":                   "positions_of_interest",
	"Possui CNH?":                             "has_drivers_license",
	"Possui veículo próprio?":                 "has_vehicle",
	"Prospecção Ativa":                        "active_prospecting_experience",
	"Qualificação de Leads Inbound":           "inbound_qualification_experience",
	"Retenção de Carteira de Clientes":        "portfolio_retention_experience",
	"Expansão/Venda pra carteira de clientes": "portfolio_expansion_experience",
	"Tamanho da carteira gerida":              "portfolio_size",
	"Venda p/ Leads Inbound":                  "inbound_sales_experience",
	"Venda p/ Leads Outbound":                 "outbound_sales_experience",
	"Vendas em Field Sales":                   "field_sales_experience",
	"Vendas em Inside Sales":                  "inside_sales_experience",
	"Softwares de Vendas":                     "tools_software",
	"Soluções que já vendeu":                  "solutions_sold",
	"Departamentos que já vendeu":             "departments_sold_to",
	"[Vendas/Closer] Ciclo de vendas":         "sales_cycle",
	"[Vendas/Closer] Ticket Médio":            "avg_ticket",
	"Status/Contrato":                         "status",
	"Email":                                   "email",
	"E-mail":                                  "email",
}

// AutoDetectColumns proposes a column mapping for the given header list.
// Exact matches against the known-header dictionary win over
// case-insensitive ones; headers that match neither way are omitted. No
// edit-distance matching is attempted. Never fails: an empty result is a
// valid answer.
func AutoDetectColumns(columns []string) map[string]string {
	detected := make(map[string]string)

	for _, col := range columns {
		normalized := strings.TrimSpace(col)
		if normalized == "" {
			continue
		}

		if field, ok := defaultColumnMapping[normalized]; ok {
			detected[normalized] = field
			continue
		}

		lower := strings.ToLower(normalized)
		for header, field := range defaultColumnMapping {
			if lower == strings.ToLower(header) {
				detected[normalized] = field
				break
			}
		}
	}

	return detected
}

// ValidateRequiredFields returns the required targets the mapping does not
// cover, in declaration order. Empty means the mapping is usable.
func ValidateRequiredFields(mapping map[string]string) []string {
	mapped := make(map[string]struct{}, len(mapping))
	for _, field := range mapping {
		mapped[field] = struct{}{}
	}

	missing := []string{}
	for _, required := range domain.RequiredTargets {
		if _, ok := mapped[required]; !ok {
			missing = append(missing, required)
		}
	}
	return missing
}
