package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.BaseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("service unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status %d", resp.StatusCode)
	}
	return nil
}

// fetchScenarios retrieves the loaded scenario listing.
func fetchScenarios(ctx context.Context, config *Config) ([]scenarioSummary, error) {
	var out []scenarioSummary
	if err := getJSON(ctx, config, "/scenarios", &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("service reports no scenarios")
	}
	return out, nil
}

// postSubmission fires one submission and decodes the receipt. A 503 is
// reported as busy=true so the caller can count and retry.
func postSubmission(ctx context.Context, client *http.Client, config *Config, sub Submission) (Receipt, bool, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return Receipt{}, false, fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.BaseURL+"/submissions", bytes.NewReader(body))
	if err != nil {
		return Receipt{}, false, fmt.Errorf("build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Receipt{}, false, fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var receipt Receipt
		if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
			return Receipt{}, false, fmt.Errorf("decode receipt: %w", err)
		}
		return receipt, false, nil
	case http.StatusServiceUnavailable:
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // draining for connection reuse
		return Receipt{}, true, nil
	default:
		payload, _ := io.ReadAll(resp.Body)
		return Receipt{}, false, fmt.Errorf("submission rejected with %d: %s", resp.StatusCode, payload)
	}
}

// getLeaderboard retrieves the ranked rows for the configured round.
func getLeaderboard(ctx context.Context, config *Config) (leaderboardResponse, error) {
	var out leaderboardResponse
	path := fmt.Sprintf("/leaderboard?round=%d", config.Round)
	if err := getJSON(ctx, config, path, &out); err != nil {
		return leaderboardResponse{}, err
	}
	return out, nil
}

// getSubmissions retrieves the full round history.
func getSubmissions(ctx context.Context, config *Config) (submissionList, error) {
	var out submissionList
	path := fmt.Sprintf("/submissions?round=%d", config.Round)
	if err := getJSON(ctx, config, path, &out); err != nil {
		return submissionList{}, err
	}
	return out, nil
}

func getJSON(ctx context.Context, config *Config, path string, v any) error {
	client := newHTTPClient(config.Timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
