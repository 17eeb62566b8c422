package sqlgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/transformellica/crm-api/pkg/tabular"
)

// InsertSQL emits a single multi-row INSERT for the whole dataset, one value
// tuple per row in original order. An empty dataset yields an empty string,
// not an error. The column list is the dataset's header order, sanitized the
// same way as in CreateTableSQL, with the audit columns appended; every
// tuple ends with CURRENT_TIMESTAMP for both.
func InsertSQL(tableName string, dataset *tabular.Dataset) (string, error) {
	if tableName == "" {
		return "", ErrMissingTableName
	}
	if dataset.Empty() {
		return "", nil
	}

	columnNames := make([]string, 0, len(dataset.Columns)+2)
	for _, column := range dataset.Columns {
		columnNames = append(columnNames, fmt.Sprintf("%q", SanitizeIdentifier(column)))
	}
	columnNames = append(columnNames, fmt.Sprintf("%q", CreatedAtColumn), fmt.Sprintf("%q", UpdatedAtColumn))

	tuples := make([]string, 0, len(dataset.Rows))
	for _, row := range dataset.Rows {
		values := make([]string, 0, len(dataset.Columns)+2)
		for _, column := range dataset.Columns {
			values = append(values, Literal(row[column]))
		}
		values = append(values, "CURRENT_TIMESTAMP", "CURRENT_TIMESTAMP")
		tuples = append(tuples, "("+strings.Join(values, ", ")+")")
	}

	return fmt.Sprintf("INSERT INTO %q (%s)\nVALUES\n%s;",
		tableName, strings.Join(columnNames, ", "), strings.Join(tuples, ",\n")), nil
}

// Literal renders one cell as a SQL literal. Null and empty strings become
// NULL; strings are single-quoted with embedded quotes doubled; numbers and
// booleans stay bare; timestamps become quoted ISO-8601 text.
func Literal(v tabular.Value) string {
	if v.Empty() {
		return "NULL"
	}

	switch v.Kind() {
	case tabular.KindString:
		return quoteString(v.Str())
	case tabular.KindNumber:
		return tabular.FormatNumber(v.Num())
	case tabular.KindBool:
		if v.Boolean() {
			return "true"
		}
		return "false"
	case tabular.KindTime:
		return "'" + v.Timestamp().UTC().Format(time.RFC3339Nano) + "'"
	}

	return "NULL"
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
