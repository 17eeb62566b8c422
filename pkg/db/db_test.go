package db

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transformellica/crm-api/pkg/tabular"
)

// Runs against a real PostgreSQL instance when TEST_DATABASE_URL is set,
// e.g. postgres://localhost:5432/crm_test?sslmode=disable. The test owns the
// active dataset for its duration.
func openTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	database, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestIngestAndPaginate(t *testing.T) {
	database := openTestDB(t)
	ctx := t.Context()

	require.NoError(t, database.RemoveActiveDataset(ctx))
	t.Cleanup(func() { database.RemoveActiveDataset(context.Background()) })

	ds, err := tabular.ParseCSV(strings.NewReader(
		"name,score\nAda,3\nLinus,1\nGrace,2\n"))
	require.NoError(t, err)
	require.NoError(t, database.IngestDataset(ctx, ds))

	exists, err := database.TableExists(ctx, DataTableName)
	require.NoError(t, err)
	assert.True(t, exists)

	page, err := database.Paginate(ctx, DataTableName, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Rows, 2)

	// Windows follow insert order through the serial key.
	assert.Equal(t, "Ada", page.Rows[0]["name"])
	assert.Equal(t, "Linus", page.Rows[1]["name"])
	assert.Contains(t, page.Rows[0], "id")
	assert.NotContains(t, page.Rows[0], "createdAt")
	assert.NotContains(t, page.Rows[0], "updatedAt")

	page, err = database.Paginate(ctx, DataTableName, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Grace", page.Rows[0]["name"])
	assert.Equal(t, 2, LastPage(page.TotalCount, 2))
}

func TestUploadedFileLifecycle(t *testing.T) {
	database := openTestDB(t)
	ctx := t.Context()

	require.NoError(t, database.RemoveActiveDataset(ctx))
	t.Cleanup(func() { database.RemoveActiveDataset(context.Background()) })

	record, err := database.GetUploadedFile(ctx)
	require.NoError(t, err)
	assert.Nil(t, record)

	require.NoError(t, database.SaveUploadedFile(ctx, FilePublicID, "https://blobs.test/data.csv", "sales.csv"))

	record, err = database.GetUploadedFile(ctx)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "sales.csv", record.OriginalFilename)

	require.NoError(t, database.RemoveActiveDataset(ctx))

	record, err = database.GetUploadedFile(ctx)
	require.NoError(t, err)
	assert.Nil(t, record)
}
