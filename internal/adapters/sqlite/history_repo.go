// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/hexmaker/internal/ports/secondary"
)

// HistoryRepository implements secondary.HistoryRepository with SQLite.
type HistoryRepository struct {
	db *sql.DB
}

var _ secondary.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new SQLite history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// CreateRun persists a new run.
func (r *HistoryRepository) CreateRun(ctx context.Context, run *secondary.RunRecord) error {
	status := "running"
	if run.Status != "" {
		status = run.Status
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO runs (id, kind, path, name, properties, status) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Kind, run.Path, run.Name, run.Properties, status,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// FinishRun records the final status of a run.
func (r *HistoryRepository) FinishRun(ctx context.Context, id, status, errMsg string) error {
	var errText sql.NullString
	if errMsg != "" {
		errText = sql.NullString{String: errMsg, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE runs SET status = ?, error = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, errText, id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run %s not found", id)
	}

	return nil
}

// AddArtifact records a file written, skipped or previewed by a run.
func (r *HistoryRepository) AddArtifact(ctx context.Context, artifact *secondary.ArtifactRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO artifacts (run_id, template_id, path, status) VALUES (?, ?, ?, ?)",
		artifact.RunID, artifact.TemplateID, artifact.Path, artifact.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to add artifact: %w", err)
	}
	return nil
}

// AddConfigPatch records a configuration change evaluated by a run.
func (r *HistoryRepository) AddConfigPatch(ctx context.Context, patch *secondary.ConfigPatchRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO config_patches (run_id, file, section_key, applied) VALUES (?, ?, ?, ?)",
		patch.RunID, patch.File, patch.SectionKey, patch.Applied,
	)
	if err != nil {
		return fmt.Errorf("failed to add config patch: %w", err)
	}
	return nil
}

const runColumns = "id, kind, path, name, properties, status, error, created_at, finished_at"

// GetRun retrieves a run by its ID.
func (r *HistoryRepository) GetRun(ctx context.Context, id string) (*secondary.RunRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)

	record, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return record, nil
}

// ListRuns retrieves runs matching the given filters, newest first.
func (r *HistoryRepository) ListRuns(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	query := "SELECT " + runColumns + " FROM runs WHERE 1=1"
	args := []any{}

	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filters.Kind)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, record)
	}

	return runs, rows.Err()
}

// ListArtifacts retrieves the artifacts of a run in recording order.
func (r *HistoryRepository) ListArtifacts(ctx context.Context, runID string) ([]*secondary.ArtifactRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT run_id, template_id, path, status FROM artifacts WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []*secondary.ArtifactRecord
	for rows.Next() {
		a := &secondary.ArtifactRecord{}
		if err := rows.Scan(&a.RunID, &a.TemplateID, &a.Path, &a.Status); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}

	return artifacts, rows.Err()
}

// ListConfigPatches retrieves the configuration changes of a run in recording order.
func (r *HistoryRepository) ListConfigPatches(ctx context.Context, runID string) ([]*secondary.ConfigPatchRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT run_id, file, section_key, applied FROM config_patches WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list config patches: %w", err)
	}
	defer rows.Close()

	var patches []*secondary.ConfigPatchRecord
	for rows.Next() {
		p := &secondary.ConfigPatchRecord{}
		if err := rows.Scan(&p.RunID, &p.File, &p.SectionKey, &p.Applied); err != nil {
			return nil, fmt.Errorf("failed to scan config patch: %w", err)
		}
		patches = append(patches, p)
	}

	return patches, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*secondary.RunRecord, error) {
	var (
		errText    sql.NullString
		createdAt  time.Time
		finishedAt sql.NullTime
	)

	record := &secondary.RunRecord{}
	err := s.Scan(&record.ID, &record.Kind, &record.Path, &record.Name, &record.Properties, &record.Status, &errText, &createdAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	record.Error = errText.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	if finishedAt.Valid {
		record.FinishedAt = finishedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}
