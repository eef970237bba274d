package loadtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/raceboard/pkg/logger"
)

// Run executes the complete submission load test: generate answer sets,
// fire them concurrently, then verify the ledger and leaderboard agree
// with what the receipts promised.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting raceboard load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("teams", config.NumTeams),
		logger.Int("submissionsPerTeam", config.SubmissionsPerTeam),
		logger.Int("round", config.Round),
		logger.Int("workers", config.Workers),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	scenarios, err := fetchScenarios(ctx, config)
	if err != nil {
		return fmt.Errorf("scenario fetch failed: %w", err)
	}

	subs := generateSubmissions(config, scenarios)
	receipts, err := submitAll(ctx, config, subs, stats)
	if err != nil {
		return fmt.Errorf("submission phase failed: %w", err)
	}

	if err := verifyResults(ctx, config, receipts, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logger.Get().Info(ctx, "load test completed",
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("busy", stats.Busy),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
	)
	return nil
}

// submitAll fires every submission through a bounded worker pool. Busy
// responses are retried once after a short pause; the service promises no
// partial write happened, so a retry is always safe.
func submitAll(ctx context.Context, config *Config, subs []Submission, stats *Stats) ([]Receipt, error) {
	jobs := make(chan Submission)
	results := make(chan Receipt, len(subs))
	errs := make(chan error, len(subs))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := newHTTPClient(config.Timeout)
			for sub := range jobs {
				receipt, busy, err := postSubmission(ctx, client, config, sub)
				if busy {
					mu.Lock()
					stats.Busy++
					mu.Unlock()
					time.Sleep(100 * time.Millisecond)
					receipt, busy, err = postSubmission(ctx, client, config, sub)
				}
				mu.Lock()
				stats.Submitted++
				mu.Unlock()
				switch {
				case err != nil:
					mu.Lock()
					stats.Failed++
					mu.Unlock()
					errs <- err
				case busy:
					mu.Lock()
					stats.Failed++
					mu.Unlock()
					errs <- fmt.Errorf("submission for %s still busy after retry", sub.Team)
				default:
					mu.Lock()
					stats.Accepted++
					mu.Unlock()
					results <- receipt
					if config.Verbose {
						logger.Get().Debug(ctx, "submission accepted",
							logger.String("team", receipt.Team),
							logger.Int("score", receipt.Score),
						)
					}
				}
			}
		}()
	}

	for _, sub := range subs {
		select {
		case jobs <- sub:
		case <-ctx.Done():
			close(jobs)
			return nil, fmt.Errorf("context cancelled during submission: %w", ctx.Err())
		}
	}
	close(jobs)
	wg.Wait()
	close(results)
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}
	receipts := make([]Receipt, 0, len(results))
	for receipt := range results {
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}
