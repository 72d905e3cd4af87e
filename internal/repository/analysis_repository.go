package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-coach/internal/database"
	"resume-coach/internal/domain/resume"

	"github.com/google/uuid"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 50
)

var ErrInvalidRecord = errors.New("invalid analysis record")

// AnalysisRepository stores resume analyses for later listing.
type AnalysisRepository interface {
	Save(ctx context.Context, rec resume.Record) error
	ListByUser(ctx context.Context, userID string, limit int) ([]resume.Record, error)
}

type PostgresAnalysisRepository struct {
	db database.DB
}

func NewPostgresAnalysisRepository(db database.DB) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

func (r *PostgresAnalysisRepository) Save(ctx context.Context, rec resume.Record) error {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("%w: id %q", ErrInvalidRecord, rec.ID)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(rec.Analysis)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO resume_analyses (id, user_id, file_name, storage_key, score, analysis, fallback, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		id,
		rec.UserID,
		rec.FileName,
		rec.StorageKey,
		rec.Score,
		payload,
		rec.Fallback,
		rec.CreatedAt,
	)
	return err
}

func (r *PostgresAnalysisRepository) ListByUser(ctx context.Context, userID string, limit int) ([]resume.Record, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, file_name, storage_key, score, analysis, fallback, created_at
		 FROM resume_analyses
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Record, 0)
	for rows.Next() {
		var (
			rec     resume.Record
			id      uuid.UUID
			payload []byte
		)
		if err := rows.Scan(&id, &rec.UserID, &rec.FileName, &rec.StorageKey, &rec.Score, &payload, &rec.Fallback, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &rec.Analysis); err != nil {
			return nil, fmt.Errorf("decode analysis %s: %w", id, err)
		}
		rec.ID = id.String()
		rec.Analysis = rec.Analysis.Normalize()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// NoopAnalysisRepository is used when no database is configured.
type NoopAnalysisRepository struct{}

func (NoopAnalysisRepository) Save(context.Context, resume.Record) error { return nil }

func (NoopAnalysisRepository) ListByUser(context.Context, string, int) ([]resume.Record, error) {
	return []resume.Record{}, nil
}

var (
	_ AnalysisRepository = (*PostgresAnalysisRepository)(nil)
	_ AnalysisRepository = NoopAnalysisRepository{}
)
