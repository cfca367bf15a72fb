// File: internal/handlers/record_handler.go
package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/wellpath/health-advisor/internal/domain"
	"github.com/wellpath/health-advisor/internal/services"
	"github.com/wellpath/health-advisor/internal/services/storage"
)

type RecordHandler struct {
	RecordService *services.RecordService
}

func NewRecordHandler(rs *services.RecordService) *RecordHandler {
	return &RecordHandler{RecordService: rs}
}

// recordSummary is the list/creation view of a record: no storage path,
// no full text content.
type recordSummary struct {
	ID          uint         `json:"id"`
	RecordType  string       `json:"record_type"`
	Description string       `json:"description"`
	UploadDate  time.Time    `json:"upload_date"`
	File        *fileSummary `json:"file,omitempty"`
}

type fileSummary struct {
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	SizeBytes    int64  `json:"size_bytes"`
}

func summarize(rec *domain.Record) recordSummary {
	s := recordSummary{
		ID:          rec.ID,
		RecordType:  rec.RecordType,
		Description: rec.Description,
		UploadDate:  rec.UploadDate,
	}
	if rec.File != nil {
		s.File = &fileSummary{
			OriginalName: rec.File.OriginalName,
			MimeType:     rec.File.MimeType,
			SizeBytes:    rec.File.SizeBytes,
		}
	}
	return s
}

// Upload handles multipart record ingestion: a binary file or a raw
// textContent field, plus metadata.
func (h *RecordHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Cap the whole request body before parsing the form.
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxFileSize+1<<20)
	if err := r.ParseMultipartForm(storage.MaxFileSize); err != nil {
		writeError(w, "could not parse upload form", http.StatusBadRequest)
		return
	}

	userID, _ := strconv.ParseUint(r.FormValue("userId"), 10, 32)

	in := services.UploadInput{
		UserID:      uint(userID),
		RecordType:  r.FormValue("recordType"),
		Description: r.FormValue("description"),
		TextContent: r.FormValue("textContent"),
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		in.File = file
		in.SizeBytes = header.Size
		in.MimeType = header.Header.Get("Content-Type")
		// Prefer the client-declared display name over the multipart one.
		in.OriginalName = r.FormValue("originalFileName")
		if in.OriginalName == "" {
			in.OriginalName = header.Filename
		}
	} else if err != http.ErrMissingFile {
		writeError(w, "could not read uploaded file", http.StatusBadRequest)
		return
	}

	rec, err := h.RecordService.Upload(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "病历记录上传成功",
		"record":  summarize(rec),
	})
}

// ListUserRecords returns record summaries for a user, without file paths
// or full text content.
func (h *RecordHandler) ListUserRecords(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(mux.Vars(r)["userId"], 10, 32)
	if err != nil {
		writeError(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	records, err := h.RecordService.ListUserRecords(r.Context(), uint(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	summaries := make([]recordSummary, 0, len(records))
	for i := range records {
		summaries = append(summaries, summarize(&records[i]))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"records": summaries})
}

// GetRecord returns the full record detail after an ownership check.
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, "invalid record ID", http.StatusBadRequest)
		return
	}
	userID, _ := strconv.ParseUint(r.URL.Query().Get("userId"), 10, 32)

	rec, err := h.RecordService.GetRecord(r.Context(), uint(recordID), uint(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"record": rec})
}

// DeleteRecord removes the record and its stored file.
func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	recordID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, "invalid record ID", http.StatusBadRequest)
		return
	}

	if err := h.RecordService.DeleteRecord(r.Context(), uint(recordID)); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "病历记录删除成功"})
}

// DownloadRecordFile streams the stored binary with the original filename
// and MIME type restored.
func (h *RecordHandler) DownloadRecordFile(w http.ResponseWriter, r *http.Request) {
	recordID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, "invalid record ID", http.StatusBadRequest)
		return
	}
	userID, _ := strconv.ParseUint(r.URL.Query().Get("userId"), 10, 32)

	rec, f, err := h.RecordService.GetRecordFile(r.Context(), uint(recordID), uint(userID))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", rec.File.MimeType)
	// RFC 5987 encoding so non-ASCII original names survive transfer.
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(rec.File.OriginalName))
	w.Header().Set("Cache-Control", "no-cache")

	io.Copy(w, f)
}
