// Package leaderboard derives ranked round standings from the submission
// history. The view is rebuilt from scratch on every read; nothing here
// caches or mutates the records it is handed.
package leaderboard

import (
	"sort"

	"github.com/okian/raceboard/internal/domain/model"
)

// Build returns one row per team for the given round, ordered by total
// score descending with earlier submissions winning ties, and dense 1-based
// ranks assigned positionally. For a fixed history and round repeated calls
// return identical sequences.
func Build(history []model.SubmissionRecord, round int) []model.LeaderboardRow {
	best := make(map[string]model.SubmissionRecord)
	for _, rec := range history {
		if rec.Round != round {
			continue
		}
		cur, ok := best[rec.Team]
		if !ok || better(rec, cur) {
			best[rec.Team] = rec
		}
	}
	if len(best) == 0 {
		return nil
	}

	rows := make([]model.LeaderboardRow, 0, len(best))
	for _, rec := range best {
		rows = append(rows, model.LeaderboardRow{
			Team:      rec.Team,
			Scenario:  rec.Scenario,
			Score:     rec.Score,
			Submitted: rec.Timestamp,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		if !rows[i].Submitted.Equal(rows[j].Submitted) {
			return rows[i].Submitted.Before(rows[j].Submitted)
		}
		// Team names are unique per round here; this keeps the order
		// total when score and timestamp both collide.
		return rows[i].Team < rows[j].Team
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// Round returns the submissions for one round in timestamp order, oldest
// first. This backs the full round history listing.
func Round(history []model.SubmissionRecord, round int) []model.SubmissionRecord {
	var out []model.SubmissionRecord
	for _, rec := range history {
		if rec.Round == round {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// LatestRound returns the highest round number present in the history,
// zero when the history is empty.
func LatestRound(history []model.SubmissionRecord) int {
	latest := 0
	for _, rec := range history {
		if rec.Round > latest {
			latest = rec.Round
		}
	}
	return latest
}

// better reports whether a beats b as a team's best record for a round:
// higher score wins, equal scores go to the earlier submission.
func better(a, b model.SubmissionRecord) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Timestamp.Before(b.Timestamp)
}
