// File: internal/repository/record/record_repository.go
package record

import (
    "context"
    "errors"
    "fmt"
    "log"

    "github.com/wellpath/health-advisor/internal/domain"
    "gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("record not found")

type gormRecordRepository struct {
    db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
    return &gormRecordRepository{db: db}
}

// Create persists a new record. Records are immutable after creation, so
// there is deliberately no Update counterpart.
func (r *gormRecordRepository) Create(ctx context.Context, record *domain.Record) (*domain.Record, error) {
    if err := r.validateRecordInput(record); err != nil {
        log.Printf("[RecordRepository] Validation failed: %v", err)
        return nil, fmt.Errorf("validation failed: %w", err)
    }

    err := r.db.WithContext(ctx).Create(record).Error
    if err != nil {
        // Secure logging - no medical content exposed
        log.Printf("[RecordRepository] Database error during record creation for user ID %d: %v", record.UserID, err)
        return nil, errors.New("database error creating record")
    }

    log.Printf("[RecordRepository] Record created successfully with ID: %d for user: %d", record.ID, record.UserID)
    return record, nil
}

func (r *gormRecordRepository) FindByID(ctx context.Context, id uint) (*domain.Record, error) {
    if id == 0 {
        return nil, errors.New("invalid record ID")
    }

    var record domain.Record
    err := r.db.WithContext(ctx).First(&record, id).Error
    return r.handleFindError(err, &record, "FindByID")
}

// FindByUserID returns every record owned by the user, newest first.
// Context assembly depends on this being exhaustive: all records feed the
// AI grounding block, no pagination.
func (r *gormRecordRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Record, error) {
    if userID == 0 {
        return nil, errors.New("invalid user ID")
    }

    var records []domain.Record
    err := r.db.WithContext(ctx).
        Where("user_id = ?", userID).
        Order("upload_date DESC, id DESC").
        Find(&records).Error

    if err != nil {
        log.Printf("[RecordRepository] Database error finding records for user ID %d: %v", userID, err)
        return nil, errors.New("database error fetching records")
    }

    return records, nil
}

func (r *gormRecordRepository) Delete(ctx context.Context, id uint) error {
    if id == 0 {
        return errors.New("invalid record ID")
    }

    result := r.db.WithContext(ctx).Delete(&domain.Record{}, id)
    if result.Error != nil {
        log.Printf("[RecordRepository] Database error deleting record ID %d: %v", id, result.Error)
        return errors.New("database error deleting record")
    }

    if result.RowsAffected == 0 {
        return ErrRecordNotFound
    }

    log.Printf("[RecordRepository] Record deleted successfully: ID %d", id)
    return nil
}

func (r *gormRecordRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
    if userID == 0 {
        return 0, errors.New("invalid user ID")
    }

    var count int64
    err := r.db.WithContext(ctx).Model(&domain.Record{}).Where("user_id = ?", userID).Count(&count).Error
    if err != nil {
        log.Printf("[RecordRepository] Database error counting records for user ID %d: %v", userID, err)
        return 0, errors.New("database error counting records")
    }

    return count, nil
}

// ===== VALIDATION HELPERS =====

func (r *gormRecordRepository) validateRecordInput(record *domain.Record) error {
    if record == nil {
        return errors.New("record cannot be nil")
    }

    if record.UserID == 0 {
        return errors.New("user ID is required")
    }

    if !domain.IsValidRecordType(record.RecordType) {
        return errors.New("invalid record type")
    }

    // TextContent must never be empty: extraction degrades to a
    // placeholder before the record reaches this layer.
    if record.TextContent == "" {
        return errors.New("text content is required")
    }

    return nil
}

// ===== ERROR HANDLING HELPERS =====

// handleFindError - secure error handling without data leakage
func (r *gormRecordRepository) handleFindError(err error, record *domain.Record, operation string) (*domain.Record, error) {
    if err == nil {
        return record, nil
    }

    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, ErrRecordNotFound
    }

    log.Printf("[RecordRepository] %s database error: %v", operation, err)
    return nil, errors.New("database query failed")
}
