package sqlgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transformellica/crm-api/pkg/tabular"
)

func TestSanitizeIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"age", "age"},
		{"User Name", "User_Name"},
		{"order-id", "order_id"},
		{"total$", "total_"},
		{"a.b.c", "a_b_c"},
		{"snake_case_9", "snake_case_9"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeIdentifier(tt.in))
	}
}

func TestCreateTableSQL(t *testing.T) {
	t.Parallel()

	ds := &tabular.Dataset{
		Columns: []string{"User Name", "age"},
		Rows: []tabular.Row{
			{"User Name": tabular.String("a"), "age": tabular.Number(1)},
		},
	}

	ddl, err := CreateTableSQL("t", ds)
	require.NoError(t, err)

	assert.Contains(t, ddl, `CREATE TABLE IF NOT EXISTS "t"`)
	assert.Contains(t, ddl, `"id" SERIAL PRIMARY KEY`)
	assert.Contains(t, ddl, `"User_Name" VARCHAR(255)`)
	assert.Contains(t, ddl, `"age" NUMERIC`)
	assert.Contains(t, ddl, `"createdAt" TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP`)
	assert.Contains(t, ddl, `"updatedAt" TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP`)
	assert.NotContains(t, ddl, `"User Name"`)
}

func TestCreateTableSQLColumnOrder(t *testing.T) {
	t.Parallel()

	ds := &tabular.Dataset{
		Columns: []string{"b", "a", "c"},
		Rows: []tabular.Row{
			{"b": tabular.Number(1), "a": tabular.Number(2), "c": tabular.Number(3)},
		},
	}

	ddl, err := CreateTableSQL("t", ds)
	require.NoError(t, err)

	// Header order is authoritative, not lexicographic order.
	assert.Regexp(t, `(?s)"id".*"b".*"a".*"c".*"createdAt".*"updatedAt"`, ddl)
}

func TestCreateTableSQLFromParsedCSV(t *testing.T) {
	t.Parallel()

	csvInput := strings.Join([]string{
		"name,age,joined",
		"Ada,36,2024-01-15",
		"Linus,54,2024-02-01",
		"Grace,47,2024-03-09",
	}, "\n")

	ds, err := tabular.ParseCSV(strings.NewReader(csvInput))
	require.NoError(t, err)

	ddl, err := CreateTableSQL("data", ds)
	require.NoError(t, err)

	assert.Contains(t, ddl, `"name" VARCHAR(255)`)
	assert.Contains(t, ddl, `"age" NUMERIC`)
	assert.Contains(t, ddl, `"joined" TIMESTAMP WITH TIME ZONE`)
}

func TestCreateTableSQLErrors(t *testing.T) {
	t.Parallel()

	ds := &tabular.Dataset{Columns: []string{"a"}, Rows: []tabular.Row{{"a": tabular.Number(1)}}}

	_, err := CreateTableSQL("", ds)
	assert.ErrorIs(t, err, ErrMissingTableName)

	_, err = CreateTableSQL("t", &tabular.Dataset{Columns: []string{"a"}})
	assert.ErrorIs(t, err, ErrEmptyDataset)
}
