package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_titular_frequency"
	"github.com/baditaflorin/go_titular_frequency/internal/adapters/logger"
	"github.com/baditaflorin/go_titular_frequency/internal/adapters/normalizer"
	"github.com/baditaflorin/go_titular_frequency/internal/warmup"
	"github.com/baditaflorin/go_titular_frequency/pkg/lexical"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

var (
	// Frequency counter over raw title collections
	counter *titularfrequency.FrequencyCounter

	// Soft-standardizing counter for duplicate detection
	softCounter *titularfrequency.FrequencyCounter

	// Pairwise lexical comparator
	comparator *lexical.Comparator

	// Logger instance
	log l.Logger
)

// NormalizeRequest asks for the canonical form of raw titles
type NormalizeRequest struct {
	Titles []string `json:"titles"`
}

// NormalizeResponse returns the canonical forms in input order
type NormalizeResponse struct {
	Normalized []string `json:"normalized"`
}

// FrequencyRequest asks for a ranked frequency report
type FrequencyRequest struct {
	Titles []string `json:"titles"`
	Soft   bool     `json:"soft,omitempty"`
}

// FrequencyEntry is one row of the ranked report
type FrequencyEntry struct {
	Titular string `json:"titular"`
	Count   int    `json:"count"`
}

// FrequencyResponse returns the ranked report
type FrequencyResponse struct {
	Entries        []FrequencyEntry `json:"entries"`
	TotalTitles    int              `json:"total_titles"`
	DistinctTitles int              `json:"distinct_titles"`
	SkippedEmpty   int              `json:"skipped_empty"`
	ProcessingTime string           `json:"processing_time"`
}

// CompareRequest asks for a pairwise lexical comparison
type CompareRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

// CompareResponse returns the comparison verdict and metrics
type CompareResponse struct {
	Score         float64     `json:"score"`
	Class         string      `json:"class"`
	JaroWinkler   float64     `json:"jaro_winkler"`
	TokenSetRatio float64     `json:"token_set_ratio"`
	CosineQGrams  float64     `json:"cosine_qgrams"`
	Jaccard       float64     `json:"jaccard"`
	Prefiltered   bool        `json:"prefiltered"`
	Conflicts     [][2]string `json:"conflicts,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	log, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting titular frequency HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	initComponents(*warmUp)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	log.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		log.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}

// initComponents builds the counters and the comparator, optionally
// warming up their normalizers and pools before serving.
func initComponents(warmUp bool) {
	var err error
	counter, err = titularfrequency.New(titularfrequency.WithLogger(log))
	if err != nil {
		log.Error("Failed to initialize frequency counter", "error", err)
		os.Exit(1)
	}

	softCounter, err = titularfrequency.New(
		titularfrequency.WithLogger(log),
		titularfrequency.WithSoftStandardization(),
	)
	if err != nil {
		log.Error("Failed to initialize soft frequency counter", "error", err)
		os.Exit(1)
	}

	comparator, err = lexical.NewComparator(lexical.WithLogger(log))
	if err != nil {
		log.Error("Failed to initialize comparator", "error", err)
		os.Exit(1)
	}

	if warmUp {
		manager := warmup.NewManager(logger.FromExisting(log), warmup.DefaultConfig())
		factory := normalizer.NewNormalizerFactory()
		manager.RegisterNormalizer(factory.CreateNormalizer(normalizer.DefaultNormalizerType))
		manager.RegisterNormalizer(factory.CreateNormalizer(normalizer.OptimizedNormalizerType))
		manager.RegisterNormalizer(factory.CreateNormalizer(normalizer.SoftStandardNormalizerType))
		manager.RegisterCounter(counter)
		manager.RegisterCounter(softCounter)
		manager.WarmUp(context.Background())
	}

	log.Info("Components initialized successfully",
		"warm_up", warmUp,
		"cpus", runtime.NumCPU(),
	)
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "TitularFrequencyServer")

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/normalize":
		handleNormalize(ctx)
	case "/frequency":
		handleFrequency(ctx)
	case "/compare":
		handleCompare(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	// Log request
	duration := time.Since(startTime)
	log.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	writeJSONResponse(ctx, response)
}

// handleNormalize canonicalizes a batch of raw titles
func handleNormalize(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req NormalizeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	normalized := make([]string, len(req.Titles))
	for i, title := range req.Titles {
		normalized[i] = titularfrequency.Normalize(title)
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, NormalizeResponse{Normalized: normalized})
}

// handleFrequency computes a ranked frequency report
func handleFrequency(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req FrequencyRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fc := counter
	if req.Soft {
		fc = softCounter
	}
	report := fc.Count(c, req.Titles)

	response := FrequencyResponse{
		Entries:        make([]FrequencyEntry, 0, len(report.Entries)),
		TotalTitles:    report.TotalTitles,
		DistinctTitles: report.DistinctTitles,
		SkippedEmpty:   report.SkippedEmpty,
		ProcessingTime: report.ProcessingTime.String(),
	}
	for _, entry := range report.Entries {
		response.Entries = append(response.Entries, FrequencyEntry{
			Titular: entry.Title,
			Count:   entry.Count,
		})
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, response)
}

// handleCompare runs the pairwise lexical comparison
func handleCompare(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	if req.A == "" || req.B == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Both a and b titles are required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := comparator.Compare(c, req.A, req.B)

	response := CompareResponse{
		Score:         result.Score,
		Class:         result.Class.String(),
		JaroWinkler:   result.JaroWinkler,
		TokenSetRatio: result.TokenSetRatio,
		CosineQGrams:  result.CosineQGrams,
		Jaccard:       result.Jaccard,
		Prefiltered:   result.Prefiltered,
	}
	for _, conflict := range result.Conflicts {
		response.Conflicts = append(response.Conflicts, [2]string{conflict.From, conflict.To})
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, response)
}

// Helper functions

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		log.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	errResponse := ErrorResponse{
		Error: message,
	}

	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		log.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
