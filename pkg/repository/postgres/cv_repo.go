package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvstudio/pkg/cv"
)

const maxListLimit = 200

// CVRepository хранит сохранённые CV. Схема создаётся миграциями goose.
type CVRepository struct {
	pool *pgxpool.Pool
}

func NewCVRepository(pool *pgxpool.Pool) *CVRepository {
	return &CVRepository{pool: pool}
}

func (r *CVRepository) Create(ctx context.Context, s cv.Saved) error {
	body, err := json.Marshal(s.CV)
	if err != nil {
		return fmt.Errorf("marshal cv: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO cvs (id, title, source, language, raw_text, cv, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, s.ID, s.Title, s.Source, s.Language, s.RawText, body, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert cv: %w", err)
	}
	return nil
}

func (r *CVRepository) List(ctx context.Context, limit, offset int) ([]cv.Summary, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, title, source, language, created_at, updated_at
FROM cvs
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cvs: %w", err)
	}
	defer rows.Close()

	out := make([]cv.Summary, 0)
	for rows.Next() {
		var s cv.Summary
		if err := rows.Scan(&s.ID, &s.Title, &s.Source, &s.Language, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cv: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *CVRepository) Get(ctx context.Context, id uuid.UUID) (cv.Saved, error) {
	var (
		s    cv.Saved
		body []byte
	)
	err := r.pool.QueryRow(ctx, `
SELECT id, title, source, language, raw_text, cv, created_at, updated_at
FROM cvs WHERE id = $1
`, id).Scan(&s.ID, &s.Title, &s.Source, &s.Language, &s.RawText, &body, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return cv.Saved{}, cv.ErrNotFound
	}
	if err != nil {
		return cv.Saved{}, fmt.Errorf("get cv: %w", err)
	}
	var stored any
	if err := json.Unmarshal(body, &stored); err != nil {
		return cv.Saved{}, fmt.Errorf("decode cv %s: %w", id, err)
	}
	// rows written by older versions may predate a field
	s.CV = cv.Normalize(stored)
	return s, nil
}
