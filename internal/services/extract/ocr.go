// File: internal/services/extract/ocr.go
package extract

import (
    "strings"

    "github.com/otiai10/gosseract/v2"
)

// OCR recognizes text in an image. languages uses tesseract's "+" joined
// form, e.g. "chi_sim+eng".
type OCR interface {
    Recognize(image []byte, languages string) (string, error)
}

// TesseractOCR runs recognition through the local tesseract engine.
type TesseractOCR struct{}

func (TesseractOCR) Recognize(image []byte, languages string) (string, error) {
    client := gosseract.NewClient()
    defer client.Close()

    if err := client.SetLanguage(strings.Split(languages, "+")...); err != nil {
        return "", err
    }
    if err := client.SetImageFromBytes(image); err != nil {
        return "", err
    }
    return client.Text()
}
