// integration.go provides file-to-file conveniences over the fluent API
package rubrica

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/tsawler/rubrica/format"
	"github.com/tsawler/rubrica/layout"
)

// ProcessFile reads the layout dump at in, infers its outline, and writes
// indented outline JSON to out.
//
// Example:
//
//	err := rubrica.ProcessFile("report.json", "report-outline.json")
func ProcessFile(in, out string) error {
	return ProcessFileWithConfig(in, out, layout.DefaultAnalyzerConfig())
}

// ProcessFileWithConfig processes a single file with custom configuration.
func ProcessFileWithConfig(in, out string, config layout.AnalyzerConfig) error {
	data, err := Open(in).WithConfig(config).JSON()
	if err != nil {
		return fmt.Errorf("processing %s: %w", in, err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing outline: %w", err)
	}
	return nil
}

// BatchDocument records the outcome for one document in a batch run.
type BatchDocument struct {
	// Input and Output are the dump path and the outline path
	Input  string
	Output string

	// Title and Headings summarize the outline when processing succeeded
	Title    string
	Headings int

	// Duration is the wall time spent on this document
	Duration time.Duration

	// Err is the processing error, nil on success
	Err error
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	// Documents holds one record per input, in directory order
	Documents []BatchDocument

	// Duration is the wall time of the whole run
	Duration time.Duration
}

// Succeeded returns the number of documents processed without error.
func (r *BatchResult) Succeeded() int {
	n := 0
	for _, d := range r.Documents {
		if d.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of documents that ended in an error.
func (r *BatchResult) Failed() int {
	return len(r.Documents) - r.Succeeded()
}

// ProcessBatch processes every layout dump in inDir (*.json, *.hocr,
// *.html) and writes one outline per input to outDir, named <base>.json.
// Up to jobs documents run concurrently; jobs below 1 means NumCPU. A
// document that fails is recorded in the result and does not stop the
// batch. Cancelling the context stops unstarted documents; their records
// carry the context error.
//
// Example:
//
//	result, err := rubrica.ProcessBatch(ctx, "dumps", "outlines", 4)
//	fmt.Printf("%d ok, %d failed\n", result.Succeeded(), result.Failed())
func ProcessBatch(ctx context.Context, inDir, outDir string, jobs int) (*BatchResult, error) {
	return ProcessBatchWithConfig(ctx, inDir, outDir, jobs, layout.DefaultAnalyzerConfig())
}

// ProcessBatchWithConfig processes a directory with custom configuration.
func ProcessBatchWithConfig(ctx context.Context, inDir, outDir string, jobs int, config layout.AnalyzerConfig) (*BatchResult, error) {
	start := time.Now()

	inputs, err := batchInputs(inDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	docs := make([]BatchDocument, len(inputs))
	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup

	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				docs[i] = BatchDocument{Input: in, Err: err}
				return
			}
			docs[i] = processBatchDocument(in, outDir, config)
		}(i, in)
	}
	wg.Wait()

	return &BatchResult{Documents: docs, Duration: time.Since(start)}, nil
}

// processBatchDocument runs one document through the pipeline and writes
// its outline JSON next to the others.
func processBatchDocument(in, outDir string, config layout.AnalyzerConfig) BatchDocument {
	start := time.Now()
	doc := BatchDocument{
		Input:  in,
		Output: filepath.Join(outDir, outlineName(in)),
	}

	result, err := Open(in).WithConfig(config).Analysis()
	if err != nil {
		doc.Err = err
		doc.Duration = time.Since(start)
		return doc
	}
	doc.Title = result.Title
	doc.Headings = result.HeadingCount()

	data, err := result.JSON()
	if err == nil {
		err = os.WriteFile(doc.Output, data, 0644)
	}
	doc.Err = err
	doc.Duration = time.Since(start)
	return doc
}

// batchInputs lists the layout dumps in dir, in name order.
func batchInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if format.Detect(entry.Name()) == format.Unknown {
			continue
		}
		inputs = append(inputs, filepath.Join(dir, entry.Name()))
	}
	return inputs, nil
}

// outlineName maps an input filename to its outline filename.
func outlineName(in string) string {
	base := filepath.Base(in)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}
