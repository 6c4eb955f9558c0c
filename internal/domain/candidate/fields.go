package candidate

// FieldKind is the type class a raw CSV cell is coerced into for a given
// target field.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldBool
	FieldCurrency
	FieldDate
	FieldList
)

const (
	FieldFullName = "full_name"
	FieldEmail    = "email"
)

// ProfileFields is the vocabulary of recognized profile field identifiers
// and their type class. Email is not listed here: it is the identity key,
// never written as a profile field.
var ProfileFields = map[string]FieldKind{
	FieldFullName:                      FieldText,
	"cpf":                              FieldText,
	"linkedin":                         FieldText,
	"zip_code":                         FieldText,
	"city":                             FieldText,
	"accepts_pj":                       FieldBool,
	"contract_signed":                  FieldBool,
	"is_pcd":                           FieldBool,
	"has_drivers_license":              FieldBool,
	"has_vehicle":                      FieldBool,
	"minimum_salary":                   FieldCurrency,
	"interview_date":                   FieldDate,
	"languages":                        FieldList,
	"positions_of_interest":            FieldList,
	"tools_software":                   FieldList,
	"solutions_sold":                   FieldList,
	"departments_sold_to":              FieldList,
	"relocation_availability":          FieldText,
	"travel_availability":              FieldText,
	"academic_degree":                  FieldText,
	"work_model":                       FieldText,
	"salary_notes":                     FieldText,
	"active_prospecting_experience":    FieldText,
	"inbound_qualification_experience": FieldText,
	"portfolio_retention_experience":   FieldText,
	"portfolio_expansion_experience":   FieldText,
	"portfolio_size":                   FieldText,
	"inbound_sales_experience":         FieldText,
	"outbound_sales_experience":        FieldText,
	"field_sales_experience":           FieldText,
	"inside_sales_experience":          FieldText,
	"sales_cycle":                      FieldText,
	"avg_ticket":                       FieldText,
	"status":                           FieldText,
}

// RequiredTargets are the fields a confirmed column mapping must cover
// before an import may start.
var RequiredTargets = []string{FieldFullName, FieldEmail}

// IsTarget reports whether name is a recognized mapping target.
func IsTarget(name string) bool {
	if name == FieldEmail {
		return true
	}
	_, ok := ProfileFields[name]
	return ok
}

// KindOf returns the type class for a profile field. Unknown names fall
// back to plain text, matching the coercion default path.
func KindOf(name string) FieldKind {
	if kind, ok := ProfileFields[name]; ok {
		return kind
	}
	return FieldText
}
