package warmup

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

// Config defines configuration for warming up the system before it
// starts serving.
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.NumCPU(),
		Iterations:  1000,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles warmup of registered components
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	counters    []ports.FrequencyCounter
	config      Config
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up
func (m *Manager) RegisterNormalizer(norm ports.Normalizer) {
	m.normalizers = append(m.normalizers, norm)
}

// RegisterCounter adds a frequency counter to be warmed up
func (m *Manager) RegisterCounter(counter ports.FrequencyCounter) {
	m.counters = append(m.counters, counter)
}

// sampleTitles exercise the diacritic, substitution and punctuation
// paths of the normalizers.
var sampleTitles = []string{
	`JOSÉ MARÍA PÉREZ GARCÍA`,
	`"AGRÍCOLA DEL VALLE, S.A. DE C.V."`,
	`ØSCAR   NÚÑEZ & HIJOS`,
	`EJIDO SAN JUAN (MUNICIPIO DE TEPIC)`,
	`jose maria perez garcia`,
}

// WarmUp runs the warmup process for all registered components,
// populating buffer pools and decision tables before real traffic.
func (m *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	m.logger.Info("Starting system warmup",
		"components", len(m.normalizers)+len(m.counters),
		"concurrency", m.config.Concurrency,
		"iterations", m.config.Iterations,
	)

	warmupCtx := ctx
	if m.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, m.config.Duration)
		defer cancel()
	}

	var wg sync.WaitGroup
	for i := 0; i < m.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < m.config.Iterations; j++ {
				select {
				case <-warmupCtx.Done():
					return
				default:
					// continue
				}

				for _, normalizer := range m.normalizers {
					for _, title := range sampleTitles {
						_ = normalizer.Normalize(title)
					}
				}
				for _, counter := range m.counters {
					_ = counter.Count(warmupCtx, sampleTitles)
				}
			}
		}()
	}
	wg.Wait()

	if m.config.ForceGC {
		m.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	m.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}
