package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billex/internal/domain"
	"billex/internal/port"
)

type extractionRunRepo struct {
	db *sqlx.DB
}

// NewExtractionRunRepo creates a new PostgreSQL-backed ExtractionRepository.
func NewExtractionRunRepo(db *sqlx.DB) port.ExtractionRepository {
	return &extractionRunRepo{db: db}
}

func (r *extractionRunRepo) Create(ctx context.Context, run *domain.ExtractionRun) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extraction_runs
		   (id, document_ref, is_success, page_count, item_count,
		    total_tokens, input_tokens, output_tokens, error, duration_ms, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		run.ID, run.DocumentRef, run.IsSuccess, run.PageCount, run.ItemCount,
		run.TotalTokens, run.InputTokens, run.OutputTokens, run.Error, run.DurationMS,
		run.Result, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("extractionRunRepo.Create: %w", err)
	}
	return nil
}

func (r *extractionRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error) {
	var run domain.ExtractionRun
	err := r.db.GetContext(ctx, &run,
		`SELECT * FROM extraction_runs WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("extractionRunRepo.GetByID: %w", err)
	}
	return &run, nil
}

func (r *extractionRunRepo) List(ctx context.Context, offset, limit int) ([]domain.ExtractionRun, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM extraction_runs`)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRunRepo.List count: %w", err)
	}

	var runs []domain.ExtractionRun
	err = r.db.SelectContext(ctx, &runs,
		`SELECT * FROM extraction_runs
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRunRepo.List: %w", err)
	}
	return runs, total, nil
}
