package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"billscan/pkg/handlers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		if cfg.Mode == "prod" {
			gin.SetMode(gin.ReleaseMode)
		} else {
			gin.SetMode(gin.DebugMode)
		}

		ctx := cmd.Context()
		a, err := newApp(ctx, cfg, logger, true, true)
		if err != nil {
			return err
		}
		defer a.Close()

		r := handlers.NewRouter(
			logger,
			cfg.APIKey,
			handlers.NewBillHandler(a.bills, cfg.MaxUploadBytes()),
			handlers.NewDocumentHandler(a.documents, cfg.MaxUploadBytes()),
		)

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", zap.String("addr", srv.Addr), zap.String("ocr_engine", cfg.OCR.Engine))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
