package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Aashish23092/soil-health-scanner/client"
	"github.com/Aashish23092/soil-health-scanner/config"
	"github.com/Aashish23092/soil-health-scanner/handler"
	"github.com/Aashish23092/soil-health-scanner/service"
	"github.com/Aashish23092/soil-health-scanner/store"
	"github.com/Aashish23092/soil-health-scanner/utils/soilcard"
)

const shutdownTimeout = 10 * time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scanner HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		scanService := newScanService(cfg, cfg.Vision.Enabled)
		analysisService := service.NewAnalysisService(st, cfg.History.Limit)

		router := handler.NewRouter(
			handler.NewScanHandler(scanService, cfg.Server.MaxUploadBytes()),
			handler.NewAnalysisHandler(analysisService),
			cfg.Server.MaxUploadBytes(),
		)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("vision", cfg.Vision.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newScanService wires the OCR engine, the optional vision reader and the
// extraction pipeline.
func newScanService(cfg *config.Config, withVision bool) *service.ScanService {
	var ocr service.TextRecognizer = client.NewTesseractClient(cfg.OCR.TessdataPrefix, cfg.OCR.Language)
	if cfg.OCR.PaddleURL != "" {
		ocr = service.NewFallbackRecognizer(cfg.OCR.MinTextLength, ocr, client.NewPaddleClient(cfg.OCR.PaddleURL))
	}

	var vision service.CardReader
	if withVision && cfg.Vision.APIKey != "" {
		vision = client.NewVisionClient(cfg.Vision.APIKey, cfg.Vision.Model, cfg.Vision.MaxTokens, cfg.Vision.RequestsPerSecond)
	}

	extractor := soilcard.NewExtractor(soilcard.WithObserver(service.NewZapObserver(zap.L())))
	return service.NewScanService(ocr, vision, service.NewPDFProcessor(), extractor, service.ScanOptions{
		MinTextLength:   cfg.OCR.MinTextLength,
		PageConcurrency: cfg.OCR.PageConcurrency,
	})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
