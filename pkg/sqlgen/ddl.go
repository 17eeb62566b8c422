package sqlgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/transformellica/crm-api/pkg/tabular"
)

// Audit column identifiers appended to every generated table and excluded
// from paginated reads.
const (
	CreatedAtColumn = "createdAt"
	UpdatedAtColumn = "updatedAt"
)

var (
	ErrMissingTableName = errors.New("table name must be provided")
	ErrEmptyDataset     = errors.New("dataset is empty, cannot infer schema for dynamic table creation")
)

// SanitizeIdentifier makes a column name safe to embed as a quoted SQL
// identifier by replacing every rune outside [A-Za-z0-9_] with an
// underscore.
func SanitizeIdentifier(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// CreateTableSQL emits a CREATE TABLE IF NOT EXISTS statement for the
// dataset. Column identity comes from the dataset's header order (the first
// record's keys); each column's type is inferred over the whole dataset. A
// synthetic serial primary key is prepended and the two audit timestamp
// columns are appended.
func CreateTableSQL(tableName string, dataset *tabular.Dataset) (string, error) {
	if tableName == "" {
		return "", ErrMissingTableName
	}
	if dataset.Empty() {
		return "", ErrEmptyDataset
	}

	columns := []string{`"id" SERIAL PRIMARY KEY`}

	for _, column := range dataset.Columns {
		sqlType := InferColumnType(column, dataset)
		columns = append(columns, fmt.Sprintf("%q %s", SanitizeIdentifier(column), sqlType))
	}

	columns = append(columns,
		fmt.Sprintf("%q TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP", CreatedAtColumn),
		fmt.Sprintf("%q TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP", UpdatedAtColumn),
	)

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (\n    %s\n);", tableName, strings.Join(columns, ",\n    ")), nil
}
