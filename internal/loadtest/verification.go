package loadtest

import (
	"context"
	"fmt"

	"github.com/okian/raceboard/pkg/logger"
)

// verifyResults checks the service's durable state against the receipts:
// every accepted submission must appear in the round history, and the
// leaderboard must rank each team by its best receipt score with dense
// 1-based ranks.
func verifyResults(ctx context.Context, config *Config, receipts []Receipt, stats *Stats) error {
	history, err := getSubmissions(ctx, config)
	if err != nil {
		return err
	}
	if got, want := len(history.Submissions), stats.Accepted; got != want {
		return fmt.Errorf("ledger holds %d records for round %d, expected %d", got, history.Round, want)
	}

	seen := make(map[string]struct{}, len(history.Submissions))
	for _, sub := range history.Submissions {
		seen[sub.ID] = struct{}{}
	}
	for _, receipt := range receipts {
		if _, ok := seen[receipt.ID]; !ok {
			return fmt.Errorf("receipt %s missing from round history", receipt.ID)
		}
	}

	best := make(map[string]int, config.NumTeams)
	for _, receipt := range receipts {
		if cur, ok := best[receipt.Team]; !ok || receipt.Score > cur {
			best[receipt.Team] = receipt.Score
		}
	}

	board, err := getLeaderboard(ctx, config)
	if err != nil {
		return err
	}
	if got, want := len(board.Rows), len(best); got != want {
		return fmt.Errorf("leaderboard has %d rows, expected %d teams", got, want)
	}

	prevScore := -1
	for i, row := range board.Rows {
		if row.Rank != i+1 {
			return fmt.Errorf("row %d has rank %d, ranks must be dense and 1-based", i, row.Rank)
		}
		if expected, ok := best[row.Team]; !ok {
			return fmt.Errorf("leaderboard lists unknown team %q", row.Team)
		} else if row.Score != expected {
			return fmt.Errorf("team %q shows score %d, best receipt was %d", row.Team, row.Score, expected)
		}
		if prevScore >= 0 && row.Score > prevScore {
			return fmt.Errorf("leaderboard not ordered by score at row %d", i)
		}
		prevScore = row.Score
	}

	logger.Get().Info(ctx, "verification passed",
		logger.Int("records", len(history.Submissions)),
		logger.Int("teams", len(board.Rows)),
	)
	return nil
}
