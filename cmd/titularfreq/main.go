// Command titularfreq ranks the titular names of a concession dataset
// by normalized frequency, so duplicate or inconsistently encoded
// holders can be reviewed in descending order of occurrence.
//
// Input is either a CSV file with a titular column or newline-separated
// titles on stdin. The report can optionally be persisted to a SQL
// database for later review.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_titular_frequency"
	"github.com/baditaflorin/go_titular_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_titular_frequency/internal/adapters/store"
	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
	"github.com/baditaflorin/go_titular_frequency/pkg/frequency"
)

func main() {
	input := flag.String("input", "", "CSV file with titulars (empty = newline-separated titles on stdin)")
	column := flag.String("column", "TITULAR", "CSV column holding the titular names")
	topN := flag.Int("top", 0, "Limit the report to the N most frequent titulars (0 = all)")
	minCount := flag.Int("min-count", 0, "Drop entries with fewer occurrences")
	soft := flag.Bool("soft", false, "Apply soft standardization (drop stopwords, mercantile terms, single-letter residue)")
	workers := flag.Int("workers", 0, "Parallel tally workers for stdin streams (0 = sequential)")
	storeDriver := flag.String("store-driver", "sqlite3", "Report store driver: sqlite3, mysql or postgres")
	storeDSN := flag.String("store-dsn", "", "Persist the report to this data source (empty = no persistence)")
	flag.Parse()

	log, err := createLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx := context.Background()

	var report domain.Report
	if *input != "" {
		report, err = countCSV(ctx, log, *input, *column, *topN, *minCount, *soft)
	} else {
		report, err = countStdin(ctx, log, *topN, *minCount, *soft, *workers)
	}
	if err != nil {
		log.Error("Frequency analysis failed", "error", err)
		os.Exit(1)
	}

	printReport(report)

	if *storeDSN != "" {
		reportStore, err := store.Open(store.Config{Driver: *storeDriver, DSN: *storeDSN}, logger.FromExisting(log))
		if err != nil {
			log.Error("Failed to open report store", "error", err)
			os.Exit(1)
		}
		defer reportStore.Close()

		runID, err := saveReport(ctx, reportStore, report)
		if err != nil {
			log.Error("Failed to save report", "error", err)
			os.Exit(1)
		}
		fmt.Printf("\nreport saved as run %d\n", runID)
	}
}

// countCSV loads one column of a CSV file and aggregates it.
func countCSV(ctx context.Context, log l.Logger, path, column string, topN, minCount int, soft bool) (domain.Report, error) {
	titles, err := readColumn(path, column)
	if err != nil {
		return domain.Report{}, err
	}
	log.Info("Loaded titulars from CSV", "file", path, "column", column, "rows", len(titles))

	opts := []titularfrequency.Option{
		titularfrequency.WithLogger(log),
		titularfrequency.WithTopN(topN),
		titularfrequency.WithMinCount(minCount),
	}
	if soft {
		opts = append(opts, titularfrequency.WithSoftStandardization())
	}
	counter, err := titularfrequency.New(opts...)
	if err != nil {
		return domain.Report{}, err
	}
	return counter.Count(ctx, titles), nil
}

// countStdin streams newline-separated titles from stdin.
func countStdin(ctx context.Context, log l.Logger, topN, minCount int, soft bool, workers int) (domain.Report, error) {
	opts := []frequency.StreamingOption{
		frequency.WithStreamingLogger(log),
		frequency.WithTopN(topN),
		frequency.WithMinCount(minCount),
	}
	if soft {
		opts = append(opts, frequency.WithSoftStandardization())
	}
	if workers > 1 {
		opts = append(opts, frequency.WithParallel(workers))
	}
	streaming, err := frequency.NewStreamingFrequency(opts...)
	if err != nil {
		return domain.Report{}, err
	}
	return streaming.CountFromReader(ctx, os.Stdin)
}

// readColumn reads every value of the named column of a CSV file.
func readColumn(path, column string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	idx := -1
	for i, name := range header {
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in %s", column, path)
	}

	var titles []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV record: %w", err)
		}
		if idx < len(record) {
			titles = append(titles, record[idx])
		}
	}
	return titles, nil
}

// printReport writes the ranked entries to stdout.
func printReport(report domain.Report) {
	for _, entry := range report.Entries {
		fmt.Printf("%8d  %s\n", entry.Count, entry.Title)
	}
	fmt.Printf("\n%d titles, %d distinct, %d empty, %s\n",
		report.TotalTitles, report.DistinctTitles, report.SkippedEmpty, report.ProcessingTime)
}

// saveReport persists the report through any configured store and
// returns the run identifier.
func saveReport(ctx context.Context, reportStore ports.ReportStore, report domain.Report) (int64, error) {
	return reportStore.SaveReport(ctx, report)
}

func createLogger() (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:      os.Stderr,
		JsonFormat:  false,
		AsyncWrite:  false,
		AddSource:   false,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  3,
	})
}
