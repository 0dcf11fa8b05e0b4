package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/skill-gap-advisor/internal/types"
)

// ListJobTemplates returns every template ordered by key
func (db *DB) ListJobTemplates(ctx context.Context) ([]types.JobTemplate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT key, title, required_skills, created_at, updated_at
		 FROM job_templates ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job templates: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[JobTemplateRecord])
	if err != nil {
		return nil, fmt.Errorf("failed to scan job templates: %w", err)
	}

	out := make([]types.JobTemplate, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToJobTemplate())
	}
	return out, nil
}

// GetJobTemplate returns a template by key, or nil when absent
func (db *DB) GetJobTemplate(ctx context.Context, key string) (*JobTemplateRecord, error) {
	var r JobTemplateRecord
	err := db.pool.QueryRow(ctx,
		`SELECT key, title, required_skills, created_at, updated_at
		 FROM job_templates WHERE key = $1`,
		key,
	).Scan(&r.Key, &r.Title, &r.RequiredSkills, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job template %s: %w", key, err)
	}
	return &r, nil
}

const upsertJobTemplateSQL = `INSERT INTO job_templates (key, title, required_skills)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET title = $2, required_skills = $3, updated_at = NOW()`

// upsertArgs normalizes a template into query arguments
func upsertArgs(t types.JobTemplate) ([]any, error) {
	key := strings.TrimSpace(t.Key)
	if key == "" {
		return nil, fmt.Errorf("job template key is required")
	}
	skills := t.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return []any{key, t.Title, skills}, nil
}

// UpsertJobTemplate inserts or replaces a template
func (db *DB) UpsertJobTemplate(ctx context.Context, t types.JobTemplate) error {
	args, err := upsertArgs(t)
	if err != nil {
		return err
	}
	if _, err := db.pool.Exec(ctx, upsertJobTemplateSQL, args...); err != nil {
		return fmt.Errorf("failed to save job template %s: %w", t.Key, err)
	}
	return nil
}

// DeleteJobTemplate removes a template. Deleting a missing key is not an error.
func (db *DB) DeleteJobTemplate(ctx context.Context, key string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM job_templates WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete job template %s: %w", key, err)
	}
	return nil
}

// SeedJobTemplates upserts every template in one transaction
func (db *DB) SeedJobTemplates(ctx context.Context, list []types.JobTemplate) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, t := range list {
		args, err := upsertArgs(t)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, upsertJobTemplateSQL, args...); err != nil {
			return fmt.Errorf("failed to seed job template %s: %w", t.Key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit job templates: %w", err)
	}
	return nil
}
