// File: internal/repository/record/interface.go
package record

import (
    "context"

    "github.com/wellpath/health-advisor/internal/domain"
)

// RecordRepository handles clinical record persistence.
type RecordRepository interface {
    Create(ctx context.Context, record *domain.Record) (*domain.Record, error)
    FindByID(ctx context.Context, id uint) (*domain.Record, error)
    FindByUserID(ctx context.Context, userID uint) ([]domain.Record, error)
    Delete(ctx context.Context, id uint) error
    CountByUserID(ctx context.Context, userID uint) (int64, error)
}
