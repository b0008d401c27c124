package stream

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/baditaflorin/go_titular_frequency/internal/adapters/normalizer"
	"github.com/baditaflorin/go_titular_frequency/internal/core/frequency"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

var _ ports.StreamCounter = (*Counter)(nil)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Close() error                          { return nil }

func newStreamCounter(t *testing.T, config Config) *Counter {
	t.Helper()
	core, err := frequency.NewCounter(frequency.DefaultConfig(), nopLogger{}, normalizer.NewOptimizedNormalizer())
	if err != nil {
		t.Fatalf("NewCounter returned error: %v", err)
	}
	return NewCounter(nopLogger{}, core, config)
}

func TestCountStream(t *testing.T) {
	input := strings.Join([]string{
		"José Pérez",
		"JOSE PEREZ",
		"jose  perez",
		"María López",
		"",
	}, "\n")

	counter := newStreamCounter(t, Config{BatchSize: 2})
	report, err := counter.CountStream(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("CountStream returned error: %v", err)
	}

	if report.TotalTitles != 5 {
		t.Errorf("Expected 5 total titles, got %d", report.TotalTitles)
	}
	if report.SkippedEmpty != 1 {
		t.Errorf("Expected 1 skipped title, got %d", report.SkippedEmpty)
	}
	if len(report.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(report.Entries))
	}
	if report.Entries[0].Title != "JOSE PEREZ" || report.Entries[0].Count != 3 {
		t.Errorf("Unexpected top entry: %+v", report.Entries[0])
	}
}

func TestCountStreamEmpty(t *testing.T) {
	counter := newStreamCounter(t, Config{})
	report, err := counter.CountStream(context.Background(), strings.NewReader(""))
	if err != nil {
		t.Fatalf("CountStream returned error: %v", err)
	}
	if report.TotalTitles != 0 || len(report.Entries) != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
}

func TestCountStreamNilReader(t *testing.T) {
	counter := newStreamCounter(t, Config{})
	_, err := counter.CountStream(context.Background(), nil)
	if err != io.ErrUnexpectedEOF {
		t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestCountStreamParallelMatchesSequential(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, "Titular número %d\n", i%37)
	}
	input := sb.String()

	sequential := newStreamCounter(t, Config{BatchSize: 16})
	parallel := newStreamCounter(t, Config{BatchSize: 16, Workers: 4})

	seqReport, err := sequential.CountStream(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Sequential CountStream returned error: %v", err)
	}
	parReport, err := parallel.CountStream(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parallel CountStream returned error: %v", err)
	}

	if seqReport.TotalTitles != parReport.TotalTitles {
		t.Errorf("Total mismatch: sequential %d, parallel %d", seqReport.TotalTitles, parReport.TotalTitles)
	}
	if len(seqReport.Entries) != len(parReport.Entries) {
		t.Fatalf("Entry count mismatch: sequential %d, parallel %d", len(seqReport.Entries), len(parReport.Entries))
	}
	for i := range seqReport.Entries {
		if seqReport.Entries[i] != parReport.Entries[i] {
			t.Errorf("Entry %d mismatch: sequential %+v, parallel %+v", i, seqReport.Entries[i], parReport.Entries[i])
		}
	}
}

func TestCountStreamCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	counter := newStreamCounter(t, Config{BatchSize: 1})
	_, err := counter.CountStream(ctx, strings.NewReader("JOSE PEREZ\nMARIA LOPEZ\n"))
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
