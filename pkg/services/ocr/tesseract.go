package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractService runs OCR locally through libtesseract
type TesseractService struct {
	Languages []string
	Enhance   bool
}

// NewTesseractService returns a local OCR engine. lang uses tesseract's
// plus-separated form, e.g. "eng+deu".
func NewTesseractService(lang string) *TesseractService {
	var langs []string
	for _, l := range strings.Split(lang, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		langs = []string{"eng"}
	}
	return &TesseractService{Languages: langs, Enhance: true}
}

// ExtractText runs tesseract on the image. The client is not safe for
// concurrent use, so one is created per call.
func (s *TesseractService) ExtractText(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data := image
	if s.Enhance {
		processed, err := EnhanceForOCR(image)
		if err != nil {
			return "", err
		}
		data = processed
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(s.Languages...); err != nil {
		return "", fmt.Errorf("tesseract language: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("tesseract image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	return text, nil
}
