package candidate

import "github.com/shopspring/decimal"

// Value is the coerced form of one raw CSV cell. Kind decides which member
// carries the value. Present distinguishes "no value" from zero for the
// currency and date kinds; the other kinds always hold a value.
type Value struct {
	Kind    FieldKind
	Present bool

	Bool   bool
	Amount decimal.Decimal
	Date   string
	List   []string
	Text   string
}

func TextValue(text string) Value {
	return Value{Kind: FieldText, Present: true, Text: text}
}

func BoolValue(b bool) Value {
	return Value{Kind: FieldBool, Present: true, Bool: b}
}

func CurrencyValue(amount decimal.Decimal) Value {
	return Value{Kind: FieldCurrency, Present: true, Amount: amount}
}

func NoCurrency() Value {
	return Value{Kind: FieldCurrency}
}

// DateValue holds an ISO-8601 calendar date (YYYY-MM-DD).
func DateValue(iso string) Value {
	return Value{Kind: FieldDate, Present: true, Date: iso}
}

func NoDate() Value {
	return Value{Kind: FieldDate}
}

func ListValue(items []string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Kind: FieldList, Present: true, List: items}
}
