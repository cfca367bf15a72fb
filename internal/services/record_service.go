// File: internal/services/record_service.go
package services

import (
    "context"
    "errors"
    "io"
    "log"
    "os"
    "strings"
    "time"

    "github.com/wellpath/health-advisor/internal/domain"
    "github.com/wellpath/health-advisor/internal/repository/record"
    chatservice "github.com/wellpath/health-advisor/internal/services/chat"
    "github.com/wellpath/health-advisor/internal/services/extract"
    "github.com/wellpath/health-advisor/internal/services/storage"
)

// RecordService owns the document ingestion pipeline: upload acceptance,
// file storage, text extraction and record lifecycle.
type RecordService struct {
    records   record.RecordRepository
    store     *storage.Store
    extractor *extract.Extractor
}

func NewRecordService(records record.RecordRepository, store *storage.Store, extractor *extract.Extractor) (*RecordService, error) {
    if records == nil {
        return nil, chatservice.NewValidationError("constructor", "record repository is required")
    }
    if store == nil {
        return nil, chatservice.NewValidationError("constructor", "file store is required")
    }
    if extractor == nil {
        return nil, chatservice.NewValidationError("constructor", "text extractor is required")
    }
    return &RecordService{records: records, store: store, extractor: extractor}, nil
}

// UploadInput carries one ingestion request. Either File or TextContent
// must be present. OriginalName is the display name to preserve; when the
// client supplies none the transport layer passes the multipart filename.
type UploadInput struct {
    UserID       uint
    RecordType   string
    Description  string
    OriginalName string
    MimeType     string
    SizeBytes    int64
    File         io.Reader
    TextContent  string
    Tags         []string
}

// Upload validates, stores, extracts and persists one record. Extraction
// failures never abort the upload: they degrade to placeholder text per
// the Record invariant that TextContent is never empty.
func (s *RecordService) Upload(ctx context.Context, in UploadInput) (*domain.Record, error) {
    if in.UserID == 0 {
        return nil, chatservice.NewValidationError("upload", "缺少用户ID")
    }

    recordType := in.RecordType
    if recordType == "" {
        recordType = domain.RecordTypeOther
    }
    if !domain.IsValidRecordType(recordType) {
        return nil, chatservice.NewValidationError("upload", "invalid record type: "+recordType)
    }

    var file *domain.RecordFile
    var textContent string

    switch {
    case in.File != nil:
        if err := s.store.Validate(in.OriginalName, in.MimeType, in.SizeBytes); err != nil {
            var policyErr *storage.PolicyError
            if errors.As(err, &policyErr) {
                return nil, chatservice.NewValidationError("upload", policyErr.Reason)
            }
            return nil, chatservice.NewStorageError("upload", "could not validate upload", err)
        }

        saved, err := s.store.Save(in.OriginalName, in.File)
        if err != nil {
            return nil, chatservice.NewStorageError("upload", "could not store file", err)
        }

        file = &domain.RecordFile{
            StoredName:   saved.StoredName,
            OriginalName: in.OriginalName,
            StoragePath:  saved.Path,
            MimeType:     in.MimeType,
            SizeBytes:    saved.SizeBytes,
        }

        var degraded bool
        textContent, degraded = s.extractor.ExtractFile(saved.Path)
        if degraded {
            log.Printf("[RecordService] Extraction degraded for %s (user %d)", saved.StoredName, in.UserID)
        }

    case strings.TrimSpace(in.TextContent) != "":
        textContent = in.TextContent

    default:
        return nil, chatservice.NewValidationError("upload", "请提供文件或文本内容")
    }

    // Last line of defense for the non-empty invariant: an empty .txt
    // upload extracts to an empty string.
    if strings.TrimSpace(textContent) == "" {
        textContent = extract.FailurePlaceholder("empty extraction result")
    }

    rec := &domain.Record{
        UserID:      in.UserID,
        RecordType:  recordType,
        Description: in.Description,
        File:        file,
        TextContent: textContent,
        UploadDate:  time.Now(),
        Tags:        in.Tags,
    }

    created, err := s.records.Create(ctx, rec)
    if err != nil {
        // The stored binary is orphaned if persistence fails; clean up.
        if file != nil {
            if rmErr := s.store.Remove(file.StoragePath); rmErr != nil {
                log.Printf("[RecordService] Could not remove orphaned file %s: %v", file.StoredName, rmErr)
            }
        }
        return nil, chatservice.NewStorageError("upload", "could not persist record", err)
    }

    return created, nil
}

// ListUserRecords returns every record owned by the user, newest first.
func (s *RecordService) ListUserRecords(ctx context.Context, userID uint) ([]domain.Record, error) {
    if userID == 0 {
        return nil, chatservice.NewValidationError("list_records", "缺少用户ID")
    }

    records, err := s.records.FindByUserID(ctx, userID)
    if err != nil {
        return nil, chatservice.NewStorageError("list_records", "could not fetch records", err)
    }
    return records, nil
}

// GetRecord fetches one record after verifying ownership.
func (s *RecordService) GetRecord(ctx context.Context, recordID, userID uint) (*domain.Record, error) {
    if userID == 0 {
        return nil, chatservice.NewValidationError("get_record", "缺少用户ID")
    }

    rec, err := s.records.FindByID(ctx, recordID)
    if err != nil {
        if errors.Is(err, record.ErrRecordNotFound) {
            return nil, chatservice.NewNotFoundError("get_record", "病历记录不存在")
        }
        return nil, chatservice.NewStorageError("get_record", "could not fetch record", err)
    }

    if rec.UserID != userID {
        return nil, chatservice.NewUnauthorizedError("get_record", "无权访问该病历记录")
    }

    return rec, nil
}

// DeleteRecord removes the record and its stored binary.
func (s *RecordService) DeleteRecord(ctx context.Context, recordID uint) error {
    rec, err := s.records.FindByID(ctx, recordID)
    if err != nil {
        if errors.Is(err, record.ErrRecordNotFound) {
            return chatservice.NewNotFoundError("delete_record", "病历记录不存在")
        }
        return chatservice.NewStorageError("delete_record", "could not fetch record", err)
    }

    if rec.HasFile() {
        if err := s.store.Remove(rec.File.StoragePath); err != nil {
            // Keep going: the record row must not outlive a failed unlink.
            log.Printf("[RecordService] Could not remove stored file %s: %v", rec.File.StoredName, err)
        }
    }

    if err := s.records.Delete(ctx, recordID); err != nil {
        return chatservice.NewStorageError("delete_record", "could not delete record", err)
    }

    return nil
}

// GetRecordFile returns the record and an open handle to its stored
// binary for download, after verifying ownership. The caller closes the
// file.
func (s *RecordService) GetRecordFile(ctx context.Context, recordID, userID uint) (*domain.Record, *os.File, error) {
    rec, err := s.GetRecord(ctx, recordID, userID)
    if err != nil {
        return nil, nil, err
    }

    if !rec.HasFile() {
        return nil, nil, chatservice.NewNotFoundError("get_record_file", "文件不存在")
    }

    f, err := s.store.Open(rec.File.StoragePath)
    if err != nil {
        if os.IsNotExist(err) {
            return nil, nil, chatservice.NewNotFoundError("get_record_file", "文件不存在")
        }
        return nil, nil, chatservice.NewStorageError("get_record_file", "could not open stored file", err)
    }

    return rec, f, nil
}
