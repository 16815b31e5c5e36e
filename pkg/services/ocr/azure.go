package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"billscan/pkg/models"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
)

// AzureService handles OCR through Azure Computer Vision
type AzureService struct {
	client   *computervision.BaseClient
	language computervision.OcrLanguages
	enhance  bool
}

// NewAzureService creates a new Azure OCR engine
func NewAzureService(endpoint, apiKey string) *AzureService {
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)

	return &AzureService{
		client:   &client,
		language: computervision.OcrLanguages(computervision.En),
		enhance:  true,
	}
}

// ExtractText performs OCR on an image and returns its lines joined by newlines
func (s *AzureService) ExtractText(ctx context.Context, image []byte) (string, error) {
	lines, err := s.ExtractLines(ctx, image)
	if err != nil {
		return "", err
	}
	return JoinLines(lines), nil
}

// ExtractLines performs OCR on an image and returns the positioned text lines
func (s *AzureService) ExtractLines(ctx context.Context, image []byte) ([]models.TextLine, error) {
	data := image
	if s.enhance {
		processed, err := EnhanceForOCR(image)
		if err != nil {
			return nil, err
		}
		data = processed
	}

	result, err := s.client.RecognizePrintedTextInStream(
		ctx,
		true,
		io.NopCloser(bytes.NewReader(data)),
		s.language,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	return linesFromOCRResult(result), nil
}

// linesFromOCRResult extracts text lines with position information from OCR result
func linesFromOCRResult(result computervision.OcrResult) []models.TextLine {
	var textLines []models.TextLine
	if result.Regions == nil {
		return textLines
	}
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			box := parseBoundingBox(line.BoundingBox)
			if len(box) < 4 {
				continue
			}

			words := make([]string, 0, len(*line.Words))
			for _, word := range *line.Words {
				if word.Text != nil {
					words = append(words, *word.Text)
				}
			}

			textLines = append(textLines, models.TextLine{
				Text:   strings.Join(words, " "),
				X:      box[0],
				Y:      box[1],
				Width:  box[2],
				Height: box[3],
			})
		}
	}
	return textLines
}

// parseBoundingBox reads Azure's "x,y,width,height" box string
func parseBoundingBox(raw *string) []int {
	if raw == nil {
		return nil
	}
	parts := strings.Split(*raw, ",")
	box := make([]int, 0, len(parts))
	for _, part := range parts {
		val, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil
		}
		box = append(box, val)
	}
	return box
}
