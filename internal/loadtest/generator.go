package loadtest

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateSubmissions builds the full batch of answer sets: NumTeams teams,
// SubmissionsPerTeam attempts each, every attempt against a randomly chosen
// scenario with randomly filled sections. Required single-choice answers
// are always present so nothing is rejected at validation.
func generateSubmissions(config *Config, scenarios []scenarioSummary) []Submission {
	subs := make([]Submission, 0, config.NumTeams*config.SubmissionsPerTeam)
	for t := 0; t < config.NumTeams; t++ {
		team := fmt.Sprintf("load-team-%03d", t+1)
		for i := 0; i < config.SubmissionsPerTeam; i++ {
			sc := scenarios[randomInt(len(scenarios))]
			subs = append(subs, buildSubmission(team, config.Round, sc))
		}
	}
	return subs
}

func buildSubmission(team string, round int, sc scenarioSummary) Submission {
	sub := Submission{
		Team:     team,
		Round:    round,
		Scenario: sc.Key,
		Single:   make(map[string]int),
		Multi:    make(map[string][]int),
		Binary:   make(map[string][]bool),
	}
	for _, section := range sc.Sections {
		switch section.Kind {
		case "single":
			sub.Single[section.ID] = randomInt(len(section.Options))
		case "multi":
			var picks []int
			for idx := range section.Options {
				if randomInt(2) == 1 {
					picks = append(picks, idx)
				}
			}
			sub.Multi[section.ID] = picks
		case "binary":
			answers := make([]bool, len(section.Items))
			for j := range answers {
				answers[j] = randomInt(2) == 1
			}
			sub.Binary[section.ID] = answers
		}
	}
	return sub
}
