package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tsawler/rubrica"
	"github.com/tsawler/rubrica/layout"
	"github.com/tsawler/rubrica/model"
)

// maxDumpBytes caps the request body for POST /v1/outline.
const maxDumpBytes = 32 << 20

func serveCmd(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8652", "listen address")
	configPath := fs.String("config", "", "path to YAML config file")
	fs.Parse(args)

	cfg, err := resolveConfig(*configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	analyzerCfg, err := cfg.analyzerConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newRouter(logger, analyzerCfg),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newRouter builds the HTTP surface: outline extraction plus a health probe.
func newRouter(logger *slog.Logger, config layout.AnalyzerConfig) http.Handler {
	r := chi.NewRouter()

	r.Post("/v1/outline", handleOutline(logger, config))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// handleOutline treats the request body as a layout dump, sniffs the
// format, and responds with the outline JSON. Malformed dumps get a 400;
// recognizable dumps with no detectable structure get an empty outline.
func handleOutline(logger *slog.Logger, config layout.AnalyzerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := http.MaxBytesReader(w, r.Body, maxDumpBytes)

		data, err := rubrica.FromReader(body).WithConfig(config).JSON()
		if err != nil {
			if errors.Is(err, model.ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			logger.Error("outline extraction failed", "error", err)
			writeError(w, http.StatusInternalServerError, errors.New("outline extraction failed"))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
