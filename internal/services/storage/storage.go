// File: internal/services/storage/storage.go

// Package storage owns the upload acceptance policy and the on-disk file
// store behind clinical records.
package storage

import (
    "fmt"
    "io"
    "os"
    "path/filepath"
    "sort"
    "strings"
    "time"

    "github.com/google/uuid"
)

// MaxFileSize is the upload size cap: 10 MiB.
const MaxFileSize = 10 << 20

// A file is accepted only when BOTH its extension and its declared MIME
// type are allow-listed.
var allowedExtensions = map[string]bool{
    ".jpg":  true,
    ".jpeg": true,
    ".png":  true,
    ".pdf":  true,
    ".txt":  true,
    ".doc":  true,
    ".docx": true,
    ".xls":  true,
    ".xlsx": true,
}

var allowedMimeTypes = map[string]bool{
    "image/jpeg":      true,
    "image/png":       true,
    "application/pdf": true,
    "text/plain":      true,
    "application/msword": true,
    "application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
    "application/vnd.ms-excel": true,
    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
}

// PolicyError reports an upload rejected by the acceptance policy before
// any storage or extraction takes place.
type PolicyError struct {
    Reason string
}

func (e *PolicyError) Error() string {
    return e.Reason
}

// SavedFile describes a file persisted by the store.
type SavedFile struct {
    StoredName string
    Path       string
    SizeBytes  int64
}

// Store writes accepted uploads under a single directory.
type Store struct {
    dir string
}

func New(dir string) (*Store, error) {
    if strings.TrimSpace(dir) == "" {
        return nil, fmt.Errorf("upload directory is required")
    }
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return nil, fmt.Errorf("could not create upload directory: %w", err)
    }
    return &Store{dir: dir}, nil
}

// Validate applies the acceptance policy to a declared upload. It never
// touches the disk.
func (s *Store) Validate(originalName, mimeType string, size int64) error {
    ext := strings.ToLower(filepath.Ext(originalName))
    if !allowedExtensions[ext] || !allowedMimeTypes[mimeType] {
        return &PolicyError{Reason: fmt.Sprintf(
            "不支持的文件类型 %s (%s)，允许的类型：%s",
            ext, mimeType, strings.Join(ExtensionList(), ", "),
        )}
    }
    if size > MaxFileSize {
        return &PolicyError{Reason: fmt.Sprintf("文件过大 (%d bytes)，最大允许 %d bytes", size, MaxFileSize)}
    }
    return nil
}

// Save persists the upload under a generated collision-resistant name:
// timestamp + random suffix + original extension. The user-supplied name
// is only ever used for its extension.
func (s *Store) Save(originalName string, r io.Reader) (*SavedFile, error) {
    ext := strings.ToLower(filepath.Ext(originalName))
    storedName := fmt.Sprintf("file-%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
    path := filepath.Join(s.dir, storedName)

    f, err := os.Create(path)
    if err != nil {
        return nil, fmt.Errorf("could not create stored file: %w", err)
    }
    defer f.Close()

    written, err := io.Copy(f, r)
    if err != nil {
        os.Remove(path)
        return nil, fmt.Errorf("could not write stored file: %w", err)
    }

    return &SavedFile{StoredName: storedName, Path: path, SizeBytes: written}, nil
}

// Open returns the stored binary for download.
func (s *Store) Open(path string) (*os.File, error) {
    return os.Open(path)
}

// Remove deletes a stored file. A missing file is not an error: record
// deletion must succeed even if the binary is already gone.
func (s *Store) Remove(path string) error {
    if path == "" {
        return nil
    }
    if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
        return err
    }
    return nil
}

// ExtensionList returns the accepted extensions in stable order, for
// error messages.
func ExtensionList() []string {
    exts := make([]string, 0, len(allowedExtensions))
    for ext := range allowedExtensions {
        exts = append(exts, ext)
    }
    sort.Strings(exts)
    return exts
}
