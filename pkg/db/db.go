package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/transformellica/crm-api/pkg/models"
	"github.com/transformellica/crm-api/pkg/sqlgen"
	"github.com/transformellica/crm-api/pkg/tabular"
)

// One active dataset system-wide. The dynamic table and the uploaded-file
// record are both keyed by these fixed identifiers; multi-tenancy would need
// namespaced names instead.
const (
	DataTableName = "data"
	FilePublicID  = "data.csv"
)

type DB struct {
	conn *sql.DB
}

// New opens the PostgreSQL connection and bootstraps the fixed-shape tables.
func New(databaseURL string) (*DB, error) {
	conn, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS "UploadedFile" (
			"publicId" TEXT PRIMARY KEY,
			"secureUrl" TEXT NOT NULL,
			"originalFilename" TEXT NOT NULL,
			"createdAt" TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			"updatedAt" TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create UploadedFile table: %w", err)
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS user_reports (
			id UUID PRIMARY KEY,
			category TEXT NOT NULL,
			data JSONB NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create user_reports table: %w", err)
	}

	return &DB{conn: conn}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// TableExists checks the catalog for a table in the public schema.
func (db *DB) TableExists(ctx context.Context, tableName string) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`, tableName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return exists, nil
}

// GetUploadedFile returns the active uploaded-file record, or nil when no
// dataset has been uploaded.
func (db *DB) GetUploadedFile(ctx context.Context) (*models.UploadedFile, error) {
	var f models.UploadedFile
	err := db.conn.QueryRowContext(ctx, `
		SELECT "publicId", "secureUrl", "originalFilename", "createdAt", "updatedAt"
		FROM "UploadedFile"
		WHERE "publicId" = $1
	`, FilePublicID).Scan(&f.PublicID, &f.SecureURL, &f.OriginalFilename, &f.CreatedAt, &f.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get uploaded file: %w", err)
	}
	return &f, nil
}

// SaveUploadedFile records the new active CSV blob.
func (db *DB) SaveUploadedFile(ctx context.Context, publicID, secureURL, originalFilename string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO "UploadedFile" ("publicId", "secureUrl", "originalFilename", "createdAt", "updatedAt")
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`, publicID, secureURL, originalFilename)
	if err != nil {
		return fmt.Errorf("failed to store uploaded file record: %w", err)
	}
	return nil
}

// RemoveActiveDataset drops the dynamic table and deletes the uploaded-file
// record in one transaction, so a failure leaves both or neither.
func (db *DB) RemoveActiveDataset(ctx context.Context) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %q", DataTableName)); err != nil {
		return fmt.Errorf("failed to drop data table: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM "UploadedFile" WHERE "publicId" = $1`, FilePublicID); err != nil {
		return fmt.Errorf("failed to delete uploaded file record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// IngestDataset materializes the parsed CSV into the dynamic table: the
// generated CREATE TABLE followed by one multi-row INSERT, both inside a
// single transaction so a failed insert never leaves an empty half-created
// table behind.
func (db *DB) IngestDataset(ctx context.Context, dataset *tabular.Dataset) error {
	createSQL, err := sqlgen.CreateTableSQL(DataTableName, dataset)
	if err != nil {
		return err
	}

	insertSQL, err := sqlgen.InsertSQL(DataTableName, dataset)
	if err != nil {
		return err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create data table: %w", err)
	}

	if insertSQL != "" {
		if _, err := tx.ExecContext(ctx, insertSQL); err != nil {
			return fmt.Errorf("failed to insert dataset rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
