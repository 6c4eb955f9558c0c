package candidate

import (
	"strings"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
)

// Coercion turns raw CSV cells into typed field values. Every function here
// is total: malformed or missing input degrades to a type-appropriate
// empty/absent value instead of failing the row.

var trueTokens = map[string]struct{}{
	"sim":  {},
	"yes":  {},
	"true": {},
	"s":    {},
	"y":    {},
	"1":    {},
}

// CoerceBool maps affirmative tokens (Sim/Não style exports included) to
// true; everything else, including empty input, is false.
func CoerceBool(raw string) bool {
	_, ok := trueTokens[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

var currencyReplacer = strings.NewReplacer("R$", "", ".", "", ",", ".")

// CoerceCurrency parses amounts like "R$ 7.500,00" into a decimal, removing
// the currency symbol and thousands separators and converting the decimal
// comma. The second return is false when the cell is empty or malformed.
func CoerceCurrency(raw string) (decimal.Decimal, bool) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Decimal{}, false
	}

	cleaned := strings.TrimSpace(currencyReplacer.Replace(raw))
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}

// CoerceDate parses the cell with a general-purpose date parser and
// normalizes to an ISO-8601 calendar date, discarding time-of-day and
// timezone. The second return is false when the cell is empty or does not
// parse.
func CoerceDate(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	parsed, err := dateparse.ParseAny(trimmed)
	if err != nil {
		return "", false
	}
	return parsed.Format("2006-01-02"), true
}

// CoerceList splits the cell on commas, trims each item and drops empties.
// Always returns a non-nil slice.
func CoerceList(raw string) []string {
	items := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func CoerceText(raw string) string {
	return strings.TrimSpace(raw)
}

// CoerceField coerces one cell according to the target field's type class.
func CoerceField(field, raw string) domain.Value {
	switch domain.KindOf(field) {
	case domain.FieldBool:
		return domain.BoolValue(CoerceBool(raw))
	case domain.FieldCurrency:
		amount, ok := CoerceCurrency(raw)
		if !ok {
			return domain.NoCurrency()
		}
		return domain.CurrencyValue(amount)
	case domain.FieldDate:
		iso, ok := CoerceDate(raw)
		if !ok {
			return domain.NoDate()
		}
		return domain.DateValue(iso)
	case domain.FieldList:
		return domain.ListValue(CoerceList(raw))
	default:
		return domain.TextValue(CoerceText(raw))
	}
}
