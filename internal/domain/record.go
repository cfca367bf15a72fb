// File: internal/domain/record.go
package domain

import "time"

// Record type enumeration. Values match what the ingestion boundary accepts.
const (
    RecordTypeLabReport  = "lab_report"
    RecordTypeExamReport = "exam_report"
    RecordTypeImaging    = "imaging"
    RecordTypeOutpatient = "outpatient"
    RecordTypeInpatient  = "inpatient"
    RecordTypeSurgery    = "surgery"
    RecordTypeMedication = "medication"
    RecordTypeOther      = "other"
    RecordTypeDiagnosis  = "diagnosis"
    RecordTypeText       = "text"
    RecordTypeChatUpload = "chat_upload"
)

var recordTypes = map[string]bool{
    RecordTypeLabReport:  true,
    RecordTypeExamReport: true,
    RecordTypeImaging:    true,
    RecordTypeOutpatient: true,
    RecordTypeInpatient:  true,
    RecordTypeSurgery:    true,
    RecordTypeMedication: true,
    RecordTypeOther:      true,
    RecordTypeDiagnosis:  true,
    RecordTypeText:       true,
    RecordTypeChatUpload: true,
}

// IsValidRecordType reports whether t is one of the closed record type enum values.
func IsValidRecordType(t string) bool {
    return recordTypes[t]
}

// RecordFile describes the stored binary behind an uploaded record.
// StoragePath is never serialized to clients.
type RecordFile struct {
    StoredName   string `json:"stored_name"`
    OriginalName string `json:"original_name"`
    StoragePath  string `json:"-"`
    MimeType     string `json:"mime_type"`
    SizeBytes    int64  `json:"size_bytes"`
}

// Record is one unit of clinical evidence owned by a user.
// TextContent is always populated: either typed by the user or extracted
// from the uploaded file (degrading to a placeholder when extraction fails).
// Records are never mutated after creation.
type Record struct {
    ID          uint        `json:"id" gorm:"primarykey"`
    UserID      uint        `json:"user_id" gorm:"not null;index"`
    RecordType  string      `json:"record_type" gorm:"not null;default:other"`
    Description string      `json:"description"`
    File        *RecordFile `json:"file,omitempty" gorm:"embedded;embeddedPrefix:file_"`
    TextContent string      `json:"text_content" gorm:"not null"`
    UploadDate  time.Time   `json:"upload_date"`
    Tags        []string    `json:"tags,omitempty" gorm:"serializer:json"`
}

// HasFile reports whether the record carries a stored binary.
func (r *Record) HasFile() bool {
    return r.File != nil && r.File.StoragePath != ""
}
