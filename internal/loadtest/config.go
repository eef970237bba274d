package loadtest

import "time"

// Config holds configuration for the submission load test.
type Config struct {
	BaseURL            string        // Base URL of the service
	NumTeams           int           // Number of distinct teams to simulate
	SubmissionsPerTeam int           // Submissions each team fires
	Round              int           // Round all submissions target
	Workers            int           // Number of concurrent workers
	Timeout            time.Duration // HTTP request timeout
	Verbose            bool          // Enable verbose logging
}

// Submission is the wire shape posted to /submissions.
type Submission struct {
	Team     string            `json:"team"`
	Round    int               `json:"round"`
	Scenario string            `json:"scenario"`
	Single   map[string]int    `json:"single"`
	Multi    map[string][]int  `json:"multi"`
	Binary   map[string][]bool `json:"binary"`
}

// Receipt mirrors the response from a submission.
type Receipt struct {
	ID    string `json:"id"`
	Team  string `json:"team"`
	Score int    `json:"score"`
}

// Row mirrors one leaderboard entry.
type Row struct {
	Rank  int    `json:"rank"`
	Team  string `json:"team"`
	Score int    `json:"score"`
}

// leaderboardResponse mirrors GET /leaderboard.
type leaderboardResponse struct {
	Round int   `json:"round"`
	Rows  []Row `json:"rows"`
}

// submissionList mirrors GET /submissions.
type submissionList struct {
	Round       int `json:"round"`
	Submissions []struct {
		ID    string `json:"id"`
		Team  string `json:"team"`
		Score int    `json:"score"`
	} `json:"submissions"`
}

// scenarioSummary mirrors GET /scenarios entries.
type scenarioSummary struct {
	Key      string `json:"key"`
	MaxScore int    `json:"max_score"`
	Sections []struct {
		ID      string   `json:"id"`
		Kind    string   `json:"kind"`
		Options []string `json:"options"`
		Items   []string `json:"items"`
	} `json:"sections"`
}

// Stats holds test statistics.
type Stats struct {
	Submitted int
	Accepted  int
	Busy      int
	Failed    int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
