package stream

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
	"github.com/baditaflorin/go_titular_frequency/internal/core/frequency"
)

// MaxJobQueueSize limits the number of pending tally jobs.
const MaxJobQueueSize = 32

// tallyJob is one batch of raw titles handed to a worker.
type tallyJob struct {
	titles []string
}

// tallyResult is the partial count produced by a worker.
type tallyResult struct {
	counts  map[string]int
	skipped int
}

// countParallel partitions the stream into batches tallied by a worker
// pool; the per-key partial counts are merged at the end. The split
// is safe because counting is associative and commutative per key.
func (c *Counter) countParallel(ctx context.Context, reader io.Reader) (domain.Report, error) {
	jobs := make(chan tallyJob, MaxJobQueueSize)
	results := make(chan tallyResult, c.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < c.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				counts, skipped := c.counter.Tally(job.titles)
				results <- tallyResult{counts: counts, skipped: skipped}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Reader goroutine: split into line batches and feed the workers.
	total := 0
	readErr := make(chan error, 1)
	go func() {
		defer close(jobs)

		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, MaxScannerBufferSize), MaxScannerBufferSize)

		batch := make([]string, 0, c.config.BatchSize)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			default:
				// continue
			}

			batch = append(batch, scanner.Text())
			total++
			if len(batch) == c.config.BatchSize {
				jobs <- tallyJob{titles: batch}
				batch = make([]string, 0, c.config.BatchSize)
			}
		}
		if err := scanner.Err(); err != nil {
			readErr <- err
			return
		}
		if len(batch) > 0 {
			jobs <- tallyJob{titles: batch}
		}
		readErr <- nil
	}()

	counts := make(map[string]int)
	skipped := 0
	for result := range results {
		frequency.Merge(counts, result.counts)
		skipped += result.skipped
	}

	if err := <-readErr; err != nil {
		c.logger.Warn("Parallel counting aborted", "error", err)
		return domain.Report{}, err
	}

	return c.counter.FromCounts(counts, total, skipped), nil
}
