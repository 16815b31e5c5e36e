package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sort"
	"strings"

	"billscan/pkg/models"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned for uploads that are not one of SupportedExtensions.
var ErrUnsupportedImage = errors.New("unsupported image type")

// SupportedExtensions lists the image types accepted for scanning
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tiff", ".webp"}

// Engine turns an encoded image into plain text, one OCR line per text line
type Engine interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// SupportedImage reports whether filename has an accepted image extension
func SupportedImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".tif" {
		ext = ".tiff"
	}
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Decode reads any supported image format
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return img, nil
}

// EnhanceForOCR decodes the image and applies the contrast pipeline used before
// recognition. The result is PNG encoded.
func EnhanceForOCR(data []byte) ([]byte, error) {
	src, err := Decode(data)
	if err != nil {
		return nil, err
	}

	// grayscale first so contrast works on luminance only
	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)
	img = imaging.AdjustBrightness(img, 10)
	img = imaging.AdjustGamma(img, 1.2)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode processed image: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail creates a cropped and enhanced version of the bill for display
func Thumbnail(data []byte, maxSide int) ([]byte, error) {
	src, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if maxSide <= 0 {
		maxSide = 1000
	}

	width := src.Bounds().Dx()
	height := src.Bounds().Dy()

	// trim 5% off every edge, where the scanner bed or table usually shows
	marginX := int(float64(width) * 0.05)
	marginY := int(float64(height) * 0.05)
	img := imaging.Crop(src, image.Rect(marginX, marginY, width-marginX, height-marginY))

	img = imaging.AdjustContrast(img, 20)
	img = imaging.Sharpen(img, 1.0)
	img = imaging.AdjustBrightness(img, 5)

	if width > maxSide || height > maxSide {
		img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JoinLines rebuilds plain text from positioned OCR lines. Lines whose vertical
// centres fall within half a line height of each other are treated as one row,
// so a label and an amount recognised in separate regions end up together.
func JoinLines(lines []models.TextLine) string {
	sorted := make([]models.TextLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]models.TextLine
	for _, l := range sorted {
		if n := len(rows); n > 0 && sameRow(rows[n-1][0], l) {
			rows[n-1] = append(rows[n-1], l)
			continue
		}
		rows = append(rows, []models.TextLine{l})
	}

	texts := make([]string, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		parts := make([]string, 0, len(row))
		for _, l := range row {
			parts = append(parts, l.Text)
		}
		texts = append(texts, strings.Join(parts, " "))
	}
	return strings.Join(texts, "\n")
}

func sameRow(a, b models.TextLine) bool {
	centreA := a.Y + a.Height/2
	centreB := b.Y + b.Height/2
	tolerance := a.Height / 2
	if tolerance == 0 {
		return centreA == centreB
	}
	diff := centreA - centreB
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
