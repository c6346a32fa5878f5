package port

import (
	"context"

	"github.com/google/uuid"

	"billex/internal/domain"
)

// ExtractionRepository persists extraction run records for later inspection
// and export. Implementations must be safe for concurrent use.
type ExtractionRepository interface {
	Create(ctx context.Context, run *domain.ExtractionRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error)
	List(ctx context.Context, offset, limit int) ([]domain.ExtractionRun, int, error)
}
