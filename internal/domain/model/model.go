// Package model contains domain models passed between layers.
package model

import "time"

// NoSelection marks an unanswered single-choice section. Two unanswered
// sides never compare equal for scoring purposes.
const NoSelection = -1

// SectionKind discriminates the three graded section variants.
type SectionKind string

// Section kinds accepted in a scenario document.
const (
	SingleChoice SectionKind = "single"
	MultiChoice  SectionKind = "multi"
	BinaryKeyed  SectionKind = "binary"
)

// BinaryItem is one prompt in a binary-keyed section together with the
// expected answer.
type BinaryItem struct {
	Text   string
	Answer bool
}

// Section is a tagged variant over the three graded section kinds. Only the
// fields belonging to Kind are populated; the scenario loader rejects
// documents that mix them.
type Section struct {
	ID       string
	Kind     SectionKind
	Question string

	// SingleChoice and MultiChoice
	Options []string

	// SingleChoice
	AnswerIndex int
	Points      int

	// MultiChoice
	AnswerIndices  []int
	PenalizeExtras bool

	// MultiChoice and BinaryKeyed
	PointsEach int

	// BinaryKeyed
	Items []BinaryItem
}

// MaxPoints returns the highest score the section can award.
func (s Section) MaxPoints() int {
	switch s.Kind {
	case SingleChoice:
		return s.Points
	case MultiChoice:
		return len(s.AnswerIndices) * s.PointsEach
	case BinaryKeyed:
		return len(s.Items) * s.PointsEach
	}
	return 0
}

// Scenario is an immutable graded unit loaded once per process lifetime.
type Scenario struct {
	Key      string
	Title    string
	Sections []Section
}

// MaxScore returns the highest total a submission against this scenario
// can reach. The floor is always zero since section scores clamp at zero.
func (sc Scenario) MaxScore() int {
	total := 0
	for _, s := range sc.Sections {
		total += s.MaxPoints()
	}
	return total
}

// Section returns the section with the given id, if present.
func (sc Scenario) Section(id string) (Section, bool) {
	for _, s := range sc.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// AnswerSet is what a team submits for one scenario attempt. It is
// transient and lives only for the duration of one submission.
type AnswerSet struct {
	Team     string
	Round    int
	Scenario string

	// Single maps a single-choice section id to the selected option index,
	// NoSelection when unanswered.
	Single map[string]int
	// Multi maps a multi-choice section id to the selected option indices.
	Multi map[string][]int
	// Binary maps a binary-keyed section id to one answer per item,
	// positionally paired with the section's items.
	Binary map[string][]bool
}

// SectionScore is the points one section contributed to a submission.
type SectionScore struct {
	Section string `json:"section"`
	Points  int    `json:"points"`
}

// SubmissionRecord is the persisted, append-only unit of truth. Records are
// created exactly once per accepted submission and never mutated or deleted
// individually; only a whole-ledger reset removes them.
type SubmissionRecord struct {
	ID        string
	Timestamp time.Time
	Round     int
	Team      string
	Scenario  string
	Sections  []SectionScore
	// Score is the sum of Sections, recomputed from them on every write.
	Score int
}

// TotalFromSections sums the per-section scores. Score must always be
// derived through this, never carried independently of Sections.
func (r SubmissionRecord) TotalFromSections() int {
	total := 0
	for _, s := range r.Sections {
		total += s.Points
	}
	return total
}

// LeaderboardRow is a derived ranking row. It is recomputed on every
// leaderboard read and never persisted or cached beyond a single read.
type LeaderboardRow struct {
	Rank      int
	Team      string
	Scenario  string
	Score     int
	Submitted time.Time
}
