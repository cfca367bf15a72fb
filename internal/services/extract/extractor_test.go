// File: internal/services/extract/extractor_test.go
package extract

import (
    "errors"
    "os"
    "path/filepath"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

type stubOCR struct {
    text string
    err  error

    gotLanguages string
}

func (s *stubOCR) Recognize(image []byte, languages string) (string, error) {
    s.gotLanguages = languages
    return s.text, s.err
}

func TestExtract_PlainTextVerbatim(t *testing.T) {
    e := New(&stubOCR{})

    text, degraded := e.Extract([]byte("BP 120/80\n血压正常"), ".txt")
    assert.False(t, degraded)
    assert.Equal(t, "BP 120/80\n血压正常", text)
}

func TestExtract_ImageUsesChineseAndEnglishOCR(t *testing.T) {
    ocr := &stubOCR{text: "空腹血糖 5.2 mmol/L"}
    e := New(ocr)

    text, degraded := e.Extract([]byte("fake-png"), ".PNG")
    assert.False(t, degraded)
    assert.Equal(t, "空腹血糖 5.2 mmol/L", text)
    assert.Equal(t, "chi_sim+eng", ocr.gotLanguages)
}

func TestExtract_OCRFailureDegrades(t *testing.T) {
    e := New(&stubOCR{err: errors.New("tesseract not installed")})

    text, degraded := e.Extract([]byte("fake-jpg"), ".jpg")
    assert.True(t, degraded)
    assert.Equal(t, "提取文本失败: tesseract not installed", text)
}

func TestExtract_BlankOCRResultDegrades(t *testing.T) {
    e := New(&stubOCR{text: "  \n "})

    text, degraded := e.Extract([]byte("fake-jpg"), ".jpeg")
    assert.True(t, degraded)
    assert.True(t, strings.HasPrefix(text, "提取文本失败: "))
}

func TestExtract_MalformedPDFDegrades(t *testing.T) {
    e := New(&stubOCR{})

    text, degraded := e.Extract([]byte("this is not a pdf"), ".pdf")
    assert.True(t, degraded)
    assert.True(t, strings.HasPrefix(text, "提取文本失败: "), "got %q", text)
}

func TestExtract_UnsupportedTypeGetsPlaceholder(t *testing.T) {
    e := New(&stubOCR{})

    text, degraded := e.Extract([]byte("binary"), ".DOCX")
    assert.True(t, degraded)
    assert.Equal(t, "无法提取文本内容，文件类型: .docx", text)
}

func TestExtractFile(t *testing.T) {
    e := New(&stubOCR{})

    path := filepath.Join(t.TempDir(), "note.txt")
    require.NoError(t, os.WriteFile(path, []byte("复查时间：三个月后"), 0o644))

    text, degraded := e.ExtractFile(path)
    assert.False(t, degraded)
    assert.Equal(t, "复查时间：三个月后", text)
}

func TestExtractFile_MissingFileDegrades(t *testing.T) {
    e := New(&stubOCR{})

    text, degraded := e.ExtractFile(filepath.Join(t.TempDir(), "gone.txt"))
    assert.True(t, degraded)
    assert.True(t, strings.HasPrefix(text, "提取文本失败: "))
}
