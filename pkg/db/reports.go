package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/transformellica/crm-api/pkg/models"
)

// ErrReportNotFound is returned when a report id has no record.
var ErrReportNotFound = errors.New("report not found")

// CreateReport stores one analysis result under a category and returns the
// persisted record.
func (db *DB) CreateReport(ctx context.Context, category string, data json.RawMessage) (*models.Report, error) {
	id := uuid.New().String()

	var report models.Report
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO user_reports (id, category, data)
		VALUES ($1, $2, $3)
		RETURNING id, category, data, created_at
	`, id, category, data).Scan(&report.ID, &report.Category, &report.Data, &report.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// GetReport fetches one report by id.
func (db *DB) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, category, data, created_at
		FROM user_reports
		WHERE id = $1
	`, id).Scan(&report.ID, &report.Category, &report.Data, &report.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

// DeleteReport removes one report by id.
func (db *DB) DeleteReport(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM user_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrReportNotFound
	}
	return nil
}

// ListReports returns all reports in a category, newest first.
func (db *DB) ListReports(ctx context.Context, category string) ([]models.Report, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, category, data, created_at
		FROM user_reports
		WHERE category = $1
		ORDER BY created_at DESC
	`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		var report models.Report
		if err := rows.Scan(&report.ID, &report.Category, &report.Data, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return reports, nil
}
