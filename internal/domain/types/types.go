// Package types contains wire shapes shared between the app and HTTP layers.
package types

import "time"

// Row mirrors the read shape returned by leaderboard queries.
type Row struct {
	Rank      int       `json:"rank"`
	Team      string    `json:"team"`
	Scenario  string    `json:"scenario"`
	Score     int       `json:"score"`
	Submitted time.Time `json:"submitted_utc"`
}

// SectionScore is the per-section breakdown exposed to clients.
type SectionScore struct {
	Section string `json:"section"`
	Points  int    `json:"points"`
}

// Receipt acknowledges an accepted submission with its computed scores.
type Receipt struct {
	ID       string         `json:"id"`
	Team     string         `json:"team"`
	Round    int            `json:"round"`
	Scenario string         `json:"scenario"`
	Score    int            `json:"score"`
	Sections []SectionScore `json:"sections"`
}

// SectionSummary describes a graded section for form rendering. Answer
// keys are deliberately absent from this shape.
type SectionSummary struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Question string   `json:"question,omitempty"`
	Options  []string `json:"options,omitempty"`
	Items    []string `json:"items,omitempty"`
}

// ScenarioSummary describes a loaded scenario for form rendering.
type ScenarioSummary struct {
	Key      string           `json:"key"`
	Title    string           `json:"title,omitempty"`
	MaxScore int              `json:"max_score"`
	Sections []SectionSummary `json:"sections"`
}

// Submission mirrors one persisted record for round history listings.
type Submission struct {
	ID        string         `json:"id"`
	Submitted time.Time      `json:"submitted_utc"`
	Round     int            `json:"round"`
	Team      string         `json:"team"`
	Scenario  string         `json:"scenario"`
	Score     int            `json:"score"`
	Sections  []SectionScore `json:"sections"`
}
