package bills

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"billscan/pkg/models"
	"billscan/pkg/services/ocr"
	"billscan/pkg/services/totals"
	"billscan/pkg/store"

	"go.uber.org/zap"
)

// NoBillsMessage is shown when the table is empty.
const NoBillsMessage = "No bill details found in the uploaded images."

// Scan outcomes reported per upload.
const (
	StatusStored  = "stored"
	StatusNoTotal = "no_total"
	StatusError   = "error"
)

// Upload is one image submitted for scanning.
type Upload struct {
	Filename string
	Data     []byte
	Name     string
	Date     string
	Comment  string
}

// Result describes what happened to a single upload.
type Result struct {
	Filename        string  `json:"filename"`
	Status          string  `json:"status"`
	BillID          uint    `json:"bill_id,omitempty"`
	Amount          float64 `json:"amount,omitempty"`
	FormattedAmount string  `json:"formatted_amount,omitempty"`
	Line            string  `json:"line,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// Row is a bill as displayed, numbered from 1 in insertion order.
type Row struct {
	Number          int     `json:"bill_number"`
	ID              uint    `json:"id"`
	Name            string  `json:"name,omitempty"`
	Date            string  `json:"date,omitempty"`
	Comment         string  `json:"comment,omitempty"`
	Amount          float64 `json:"amount"`
	FormattedAmount string  `json:"formatted_amount"`
}

// Summary is the bill table plus its grand total.
type Summary struct {
	Bills          []Row   `json:"bills"`
	Total          float64 `json:"total"`
	FormattedTotal string  `json:"formatted_total"`
	Message        string  `json:"message,omitempty"`
}

// Service runs uploads through OCR and total extraction and keeps the results.
type Service struct {
	engine  ocr.Engine
	scanner *totals.Scanner
	store   store.Store
	log     *zap.Logger
}

// NewService builds the bill service. keywords default to totals.DefaultKeywords.
func NewService(engine ocr.Engine, st store.Store, log *zap.Logger, keywords ...string) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		engine:  engine,
		scanner: totals.NewScanner(keywords...),
		store:   st,
		log:     log.Named("bills"),
	}
}

// Scan processes every upload. A failed or totalless upload is reported in
// its Result and does not stop the rest; only storage failures abort.
func (s *Service) Scan(ctx context.Context, uploads []Upload) ([]Result, error) {
	results := make([]Result, 0, len(uploads))
	for _, u := range uploads {
		res, err := s.scanOne(ctx, u)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Service) scanOne(ctx context.Context, u Upload) (Result, error) {
	res := Result{Filename: u.Filename}
	log := s.log.With(zap.String("filename", u.Filename))

	if !ocr.SupportedImage(u.Filename) {
		res.Status = StatusError
		res.Error = ocr.ErrUnsupportedImage.Error()
		return res, nil
	}

	text, err := s.engine.ExtractText(ctx, u.Data)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return res, err
		}
		log.Warn("ocr failed", zap.Error(err))
		res.Status = StatusError
		res.Error = err.Error()
		return res, nil
	}

	candidate, ok := s.scanner.Highest(text)
	if !ok {
		log.Info("no total found", zap.Int("text_len", len(text)))
		res.Status = StatusNoTotal
		return res, nil
	}

	bill := &models.Bill{
		Name:        u.Name,
		Date:        u.Date,
		Comment:     u.Comment,
		Image:       base64.StdEncoding.EncodeToString(u.Data),
		ContentType: http.DetectContentType(u.Data),
		Amount:      candidate.Value,
		SourceLine:  candidate.Text,
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		return res, fmt.Errorf("insert bill details: %w", err)
	}
	log.Info("bill stored", zap.Uint("id", bill.ID), zap.Float64("amount", bill.Amount), zap.Int("line", candidate.Line))

	res.Status = StatusStored
	res.BillID = bill.ID
	res.Amount = candidate.Value
	res.FormattedAmount = totals.FormatCurrency(candidate.Value)
	res.Line = candidate.Text
	return res, nil
}

// Summary lists all bills with their grand total.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	stored, err := s.store.ListBills(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("get bill details: %w", err)
	}

	total, err := s.store.SumAmounts(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("sum bill amounts: %w", err)
	}

	sum := Summary{Bills: make([]Row, 0, len(stored)), Total: total}
	for i, b := range stored {
		sum.Bills = append(sum.Bills, Row{
			Number:          i + 1,
			ID:              b.ID,
			Name:            b.Name,
			Date:            b.Date,
			Comment:         b.Comment,
			Amount:          b.Amount,
			FormattedAmount: totals.FormatCurrency(b.Amount),
		})
	}
	sum.FormattedTotal = totals.FormatCurrency(sum.Total)
	if len(stored) == 0 {
		sum.Message = NoBillsMessage
	}
	return sum, nil
}

// Image returns the original upload of a stored bill and its content type.
func (s *Service) Image(ctx context.Context, id uint) ([]byte, string, error) {
	bill, err := s.store.GetBill(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := base64.StdEncoding.DecodeString(bill.Image)
	if err != nil {
		return nil, "", fmt.Errorf("decode stored image: %w", err)
	}
	return data, bill.ContentType, nil
}

// Thumbnail returns a cropped PNG preview of a stored bill.
func (s *Service) Thumbnail(ctx context.Context, id uint, maxSide int) ([]byte, error) {
	data, _, err := s.Image(ctx, id)
	if err != nil {
		return nil, err
	}
	return ocr.Thumbnail(data, maxSide)
}

// Delete removes one bill.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.store.DeleteBill(ctx, id)
}

// ClearAll removes every bill and returns how many were deleted.
func (s *Service) ClearAll(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAllBills(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete all bill details: %w", err)
	}
	s.log.Info("bills cleared", zap.Int64("count", n))
	return n, nil
}
