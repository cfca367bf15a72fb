// File: internal/services/extract/extractor.go

// Package extract converts uploaded clinical artifacts into plain text for
// use as AI grounding context. Extraction never fails from the caller's
// point of view: every internal error degrades to a deterministic
// placeholder string so ingestion can always complete.
package extract

import (
    "bytes"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    "github.com/ledongthuc/pdf"
)

// Recognition mode for clinical scans: mixed simplified Chinese + English.
const ocrLanguages = "chi_sim+eng"

// FailurePlaceholder is the text substituted when extraction fails.
func FailurePlaceholder(reason string) string {
    return fmt.Sprintf("提取文本失败: %s", reason)
}

// UnsupportedPlaceholder is the text substituted for accepted file types
// that have no extraction path (the binary is still stored).
func UnsupportedPlaceholder(ext string) string {
    return fmt.Sprintf("无法提取文本内容，文件类型: %s", ext)
}

// Extractor dispatches by file extension to a format-specific extraction
// routine. It is a pure policy object: single attempt, no retries.
type Extractor struct {
    ocr OCR
}

// New builds an Extractor. A nil ocr falls back to the local tesseract
// engine; tests inject a stub.
func New(ocr OCR) *Extractor {
    if ocr == nil {
        ocr = TesseractOCR{}
    }
    return &Extractor{ocr: ocr}
}

// Extract converts file bytes into text. The second return value reports
// whether the result is a degraded placeholder rather than real content.
func (e *Extractor) Extract(data []byte, ext string) (string, bool) {
    switch strings.ToLower(ext) {
    case ".pdf":
        return e.extractPDF(data)
    case ".jpg", ".jpeg", ".png":
        return e.extractImage(data)
    case ".txt":
        return string(data), false
    default:
        return UnsupportedPlaceholder(strings.ToLower(ext)), true
    }
}

// ExtractFile reads path and extracts by its extension.
func (e *Extractor) ExtractFile(path string) (string, bool) {
    data, err := os.ReadFile(path)
    if err != nil {
        return FailurePlaceholder(err.Error()), true
    }
    return e.Extract(data, filepath.Ext(path))
}

func (e *Extractor) extractImage(data []byte) (string, bool) {
    text, err := e.ocr.Recognize(data, ocrLanguages)
    if err != nil {
        return FailurePlaceholder(err.Error()), true
    }
    if strings.TrimSpace(text) == "" {
        return FailurePlaceholder("no text recognized in image"), true
    }
    return text, false
}

func (e *Extractor) extractPDF(data []byte) (text string, degraded bool) {
    // The parser panics on some malformed files.
    defer func() {
        if r := recover(); r != nil {
            text = FailurePlaceholder(fmt.Sprintf("%v", r))
            degraded = true
        }
    }()

    reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
    if err != nil {
        return FailurePlaceholder(err.Error()), true
    }

    var b strings.Builder
    for i := 1; i <= reader.NumPage(); i++ {
        page := reader.Page(i)
        if page.V.IsNull() {
            continue
        }
        pageText, err := page.GetPlainText(nil)
        if err != nil {
            // Concatenate whatever the remaining pages recover.
            continue
        }
        b.WriteString(pageText)
    }

    if strings.TrimSpace(b.String()) == "" {
        return FailurePlaceholder("no text recovered from PDF"), true
    }
    return b.String(), false
}
