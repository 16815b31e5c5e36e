package cli

import (
	"context"
	"fmt"

	"billscan/pkg/config"
	"billscan/pkg/logging"
	"billscan/pkg/services/bills"
	"billscan/pkg/services/completion"
	"billscan/pkg/services/documents"
	"billscan/pkg/services/ocr"
	"billscan/pkg/store"

	"go.uber.org/zap"
)

// app is the dependency chain shared by every command.
type app struct {
	store     store.Store
	bills     *bills.Service
	documents *documents.Service
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger, needOCR, needCompletion bool) (*app, error) {
	st, err := store.Open(cfg.DatabaseURL, logging.NewGormLogger(log))
	if err != nil {
		return nil, err
	}

	a := &app{store: st}

	var engine ocr.Engine
	if needOCR {
		engine, err = ocr.NewEngine(ocr.Options{
			Engine:        cfg.OCR.Engine,
			AzureEndpoint: cfg.OCR.AzureEndpoint,
			AzureKey:      cfg.OCR.AzureKey,
			TesseractLang: cfg.OCR.TesseractLang,
		})
		if err != nil {
			st.Close()
			return nil, err
		}
	}
	a.bills = bills.NewService(engine, st, log, cfg.OCR.Keywords...)

	var completer completion.Completer
	if needCompletion {
		if cfg.Completion.APIKey == "" {
			log.Warn("GEMINI_API_KEY not set, questions about documents will fail")
		} else {
			completer, err = completion.NewGeminiCompleter(ctx, completion.Options{
				APIKey:      cfg.Completion.APIKey,
				Model:       cfg.Completion.Model,
				MaxTokens:   cfg.Completion.MaxTokens,
				Temperature: cfg.Completion.Temperature,
			})
			if err != nil {
				st.Close()
				return nil, fmt.Errorf("completion backend: %w", err)
			}
		}
	}
	a.documents = documents.NewService(st, completer, log)

	return a, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
