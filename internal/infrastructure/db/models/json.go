package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores a []string as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value any) error {
	return scanJSON(value, l)
}

// StringMap stores a map[string]string as a jsonb column.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		m = StringMap{}
	}
	return json.Marshal(m)
}

func (m *StringMap) Scan(value any) error {
	return scanJSON(value, m)
}

// RowErrorRecord is one entry of an import job's persisted error list.
type RowErrorRecord struct {
	Row     int64  `json:"row"`
	Name    string `json:"nome"`
	Email   string `json:"email"`
	Message string `json:"error"`
}

// RowErrorList stores the ordered error list as a jsonb column.
type RowErrorList []RowErrorRecord

func (l RowErrorList) Value() (driver.Value, error) {
	if l == nil {
		l = RowErrorList{}
	}
	return json.Marshal(l)
}

func (l *RowErrorList) Scan(value any) error {
	return scanJSON(value, l)
}

func scanJSON(value, dest any) error {
	switch data := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
