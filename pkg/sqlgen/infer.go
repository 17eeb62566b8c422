// Package sqlgen builds the SQL text for the dynamic dataset table: type
// inference over parsed CSV values, CREATE TABLE generation and multi-row
// INSERT generation. Identifiers are sanitized here; the fixed table name
// itself comes from a trusted constant at the call site.
package sqlgen

import (
	"strconv"
	"strings"

	"github.com/transformellica/crm-api/pkg/tabular"
)

// ColumnType is the SQL type assigned to one dataset column.
type ColumnType string

const (
	TypeNumeric   ColumnType = "NUMERIC"
	TypeBoolean   ColumnType = "BOOLEAN"
	TypeTimestamp ColumnType = "TIMESTAMP WITH TIME ZONE"
	TypeVarchar   ColumnType = "VARCHAR(255)"
)

// InferColumnType scans every row's value for column and picks a single SQL
// type. Null and empty-string cells carry no evidence. A textual value always
// counts as string evidence, even when it also parses as a number, boolean or
// datetime, so mixed columns resolve to VARCHAR.
//
// Deterministic for a fixed multiset of values regardless of row order.
func InferColumnType(column string, dataset *tabular.Dataset) ColumnType {
	var hasString, hasNumber, hasBoolean, hasDate bool

	for _, row := range dataset.Rows {
		value, ok := row[column]
		if !ok || value.Empty() {
			continue
		}

		switch value.Kind() {
		case tabular.KindString:
			hasString = true
			s := strings.TrimSpace(value.Str())
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				hasNumber = true
			} else if strings.EqualFold(s, "true") || strings.EqualFold(s, "false") {
				hasBoolean = true
			} else if tabular.IsDatetime(s) {
				hasDate = true
			}
		case tabular.KindNumber:
			hasNumber = true
		case tabular.KindBool:
			hasBoolean = true
		case tabular.KindTime:
			hasDate = true
		}
	}

	// Exclusive evidence wins first, then string, then single-kind fallbacks.
	switch {
	case hasNumber && !hasString && !hasDate && !hasBoolean:
		return TypeNumeric
	case hasDate && !hasString && !hasNumber && !hasBoolean:
		return TypeTimestamp
	case hasBoolean && !hasString && !hasNumber && !hasDate:
		return TypeBoolean
	case hasString:
		return TypeVarchar
	case hasNumber:
		return TypeNumeric
	case hasBoolean:
		return TypeBoolean
	case hasDate:
		return TypeTimestamp
	}

	return TypeVarchar
}
