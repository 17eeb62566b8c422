package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/transformellica/crm-api/pkg/sqlgen"
)

// ErrNoSelectableColumns signals that the dynamic table has degenerated to
// only audit columns (or none at all).
type ErrNoSelectableColumns struct {
	Table string
}

func (e *ErrNoSelectableColumns) Error() string {
	return fmt.Sprintf("no selectable columns found for table %q after exclusion", e.Table)
}

// Page is one window of the dynamic table plus the total row count, from
// which the caller derives pagination metadata without another query.
type Page struct {
	Rows       []map[string]any
	TotalCount int
}

// Paginate reads one window of tableName: discover the live column list from
// the catalog (audit columns excluded), count all rows, then select the
// window ordered by the synthetic serial key so paging is stable.
func (db *DB) Paginate(ctx context.Context, tableName string, offset, limit int) (*Page, error) {
	if tableName == "" {
		return nil, sqlgen.ErrMissingTableName
	}

	columns, err := db.selectableColumns(ctx, tableName)
	if err != nil {
		return nil, err
	}

	var count int
	if err := db.conn.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %q", tableName)).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	query := buildPageQuery(tableName, columns, offset, limit)
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query data: %w", err)
	}
	defer rows.Close()

	page := &Page{TotalCount: count, Rows: []map[string]any{}}

	resultColumns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	for rows.Next() {
		values := make([]any, len(resultColumns))
		scanArgs := make([]any, len(resultColumns))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		objRow := make(map[string]any, len(resultColumns))
		for i, col := range resultColumns {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			objRow[col] = val
		}
		page.Rows = append(page.Rows, objRow)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return page, nil
}

// selectableColumns lists tableName's columns in physical order, minus the
// audit columns.
func (db *DB) selectableColumns(ctx context.Context, tableName string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = 'public'
		AND table_name = $1
		ORDER BY ordinal_position
	`, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch column names: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", err)
	}

	columns = excludeAuditColumns(columns)
	if len(columns) == 0 {
		return nil, &ErrNoSelectableColumns{Table: tableName}
	}
	return columns, nil
}

func excludeAuditColumns(columns []string) []string {
	filtered := columns[:0:0]
	for _, col := range columns {
		if col == sqlgen.CreatedAtColumn || col == sqlgen.UpdatedAtColumn {
			continue
		}
		filtered = append(filtered, col)
	}
	return filtered
}

func buildPageQuery(tableName string, columns []string, offset, limit int) string {
	selectClause := make([]string, len(columns))
	for i, col := range columns {
		selectClause[i] = fmt.Sprintf("%q", sqlgen.SanitizeIdentifier(col))
	}

	return fmt.Sprintf("SELECT %s FROM %q ORDER BY \"id\" ASC OFFSET %d LIMIT %d",
		strings.Join(selectClause, ", "), tableName, offset, limit)
}

// LastPage is the 1-based number of the final page for count rows at the
// given page size.
func LastPage(count, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}
