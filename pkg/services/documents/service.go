// Package documents lets users upload a PDF once and ask questions about it.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"billscan/pkg/models"
	"billscan/pkg/services/completion"
	"billscan/pkg/services/pdftext"
	"billscan/pkg/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotPDF is returned for uploads without a PDF header.
var ErrNotPDF = errors.New("file is not a PDF")

// Answer is the model's reply to a question about a document.
type Answer struct {
	DocumentID string `json:"document_id"`
	Prompt     string `json:"prompt"`
	Response   string `json:"response"`
}

// Service stores extracted PDF text and forwards questions to a Completer.
type Service struct {
	store     store.Store
	completer completion.Completer
	log       *zap.Logger
}

// NewService builds the document service. A nil completer makes Ask fail.
func NewService(st store.Store, completer completion.Completer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, completer: completer, log: log.Named("documents")}
}

// Upload extracts the text of a PDF and keeps it under a new id.
func (s *Service) Upload(ctx context.Context, filename string, data []byte) (*models.Document, error) {
	if !pdftext.IsPDF(data) {
		return nil, ErrNotPDF
	}
	pages, err := pdftext.ExtractBytes(data)
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		ID:        uuid.NewString(),
		Filename:  filename,
		Text:      pdftext.Join(pages),
		Pages:     len(pages),
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	s.log.Info("document processed", zap.String("id", doc.ID), zap.String("filename", filename), zap.Int("pages", doc.Pages))
	return doc, nil
}

// Get returns a stored document.
func (s *Service) Get(ctx context.Context, id string) (*models.Document, error) {
	return s.store.GetDocument(ctx, id)
}

// Ask answers prompt using the text of document id as context.
func (s *Service) Ask(ctx context.Context, id, prompt string) (*Answer, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, completion.ErrEmptyPrompt
	}
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ask(ctx, doc, prompt)
}

// AskText answers prompt against text that is not stored, as the CLI does.
func (s *Service) AskText(ctx context.Context, text, prompt string) (*Answer, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, completion.ErrEmptyPrompt
	}
	return s.ask(ctx, &models.Document{Text: text}, prompt)
}

func (s *Service) ask(ctx context.Context, doc *models.Document, prompt string) (*Answer, error) {
	if s.completer == nil {
		return nil, errors.New("no completion backend configured")
	}
	resp, err := s.completer.Complete(ctx, completion.BuildPrompt(doc.Text, prompt))
	if err != nil {
		return nil, err
	}
	return &Answer{DocumentID: doc.ID, Prompt: prompt, Response: resp}, nil
}
