// Command rubrica infers document outlines from page layout dumps.
//
// Usage:
//
//	rubrica extract -in layout.json                # outline to stdout
//	rubrica extract -in layout.json -out toc.json  # outline to file
//	rubrica batch -in dumps/ -out outlines/        # whole directory
//	rubrica serve -addr :8652                      # HTTP service
//	rubrica version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tsawler/rubrica"
	"github.com/tsawler/rubrica/layout"
)

const version = "0.3.0"

const usage = `rubrica infers document outlines from page layout dumps.

Usage:

  rubrica extract -in FILE [-out FILE] [-config FILE] [-v]
  rubrica batch   -in DIR -out DIR [-jobs N] [-runlog FILE] [-config FILE]
  rubrica serve   [-addr ADDR] [-config FILE]
  rubrica version

Layout dumps are structured-text JSON or hOCR files; the format is
sniffed from the content. Run "rubrica <command> -h" for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = extractCmd(os.Args[2:])
	case "batch":
		err = batchCmd(os.Args[2:])
	case "serve":
		err = serveCmd(os.Args[2:])
	case "version":
		fmt.Println("rubrica " + version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "rubrica: unknown command %q\n\n", os.Args[1])
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "rubrica:", err)
		os.Exit(1)
	}
}

func extractCmd(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	in := fs.String("in", "", "layout dump to read")
	out := fs.String("out", "", "outline file to write (default stdout)")
	configPath := fs.String("config", "", "path to YAML config file")
	verbose := fs.Bool("v", false, "log pipeline stages to stderr")
	fs.Parse(args)

	if *in == "" {
		return errors.New("extract: -in is required")
	}

	cfg, err := resolveConfig(*configPath)
	if err != nil {
		return err
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	logger := newLogger(cfg.LogLevel)

	analyzerCfg, err := cfg.analyzerConfig()
	if err != nil {
		return err
	}
	if cfg.LogLevel == "debug" {
		analyzerCfg.Diagnostics = layout.NewSlogDiagnostics(logger)
	}

	if *out != "" {
		return rubrica.ProcessFileWithConfig(*in, *out, analyzerCfg)
	}

	data, err := rubrica.Open(*in).WithConfig(analyzerCfg).JSON()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func batchCmd(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	in := fs.String("in", "", "directory of layout dumps")
	out := fs.String("out", "", "directory for outline files")
	jobs := fs.Int("jobs", 0, "parallel workers (default one per CPU)")
	runlogPath := fs.String("runlog", "", "SQLite file to record the run in")
	configPath := fs.String("config", "", "path to YAML config file")
	fs.Parse(args)

	if *in == "" || *out == "" {
		return errors.New("batch: -in and -out are required")
	}

	cfg, err := resolveConfig(*configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	analyzerCfg, err := cfg.analyzerConfig()
	if err != nil {
		return err
	}

	workers := *jobs
	if workers == 0 {
		workers = cfg.Jobs
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	result, err := rubrica.ProcessBatchWithConfig(ctx, *in, *out, workers, analyzerCfg)
	if err != nil {
		return err
	}

	for _, doc := range result.Documents {
		if doc.Err != nil {
			logger.Warn("document failed", "input", doc.Input, "error", doc.Err)
		}
	}
	logger.Info("batch finished",
		"documents", len(result.Documents),
		"succeeded", result.Succeeded(),
		"failed", result.Failed(),
		"duration", result.Duration)

	if *runlogPath != "" {
		rl, err := openRunLog(*runlogPath)
		if err != nil {
			return fmt.Errorf("run log: %w", err)
		}
		defer rl.Close()

		id, err := rl.Record(*in, *out, started, result)
		if err != nil {
			return fmt.Errorf("run log: %w", err)
		}
		logger.Info("run recorded", "id", id, "db", *runlogPath)
	}

	if result.Failed() > 0 {
		return fmt.Errorf("batch: %d of %d documents failed", result.Failed(), len(result.Documents))
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
	slog.SetDefault(logger)
	return logger
}
