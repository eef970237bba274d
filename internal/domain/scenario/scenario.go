// Package scenario loads the scenario definition document into validated,
// strongly typed domain structures. The document is parsed and checked once
// at startup; malformed scenarios are rejected here rather than surfacing
// deep inside scoring.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/okian/raceboard/internal/domain/model"
)

// rawSection mirrors the loosely typed JSON section shape before
// validation into the model.Section variant.
type rawSection struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	Question       string          `json:"question"`
	Options        []string        `json:"options"`
	AnswerIndex    *int            `json:"answer_index"`
	AnswerIndices  []int           `json:"answer_indices"`
	Points         int             `json:"points"`
	PointsEach     int             `json:"points_each"`
	PenalizeExtras *bool           `json:"penalize_extras"`
	Items          []rawBinaryItem `json:"items"`
}

type rawBinaryItem struct {
	Text   string          `json:"text"`
	Answer json.RawMessage `json:"answer"`
}

type rawScenario struct {
	Title    string       `json:"title"`
	Sections []rawSection `json:"sections"`
}

// Load reads and parses the scenario document at path.
func Load(path string) (map[string]model.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario document %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a scenario document and validates every scenario in it.
// The result is keyed by scenario key and safe to share read-only across
// the process lifetime.
func Parse(data []byte) (map[string]model.Scenario, error) {
	var doc map[string]rawScenario
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: document defines no scenarios", ErrInvalidScenario)
	}

	scenarios := make(map[string]model.Scenario, len(doc))
	for key, raw := range doc {
		sc, err := buildScenario(key, raw)
		if err != nil {
			return nil, err
		}
		scenarios[key] = sc
	}
	return scenarios, nil
}

// Keys returns the scenario keys in stable sorted order, for listings.
func Keys(scenarios map[string]model.Scenario) []string {
	keys := make([]string, 0, len(scenarios))
	for k := range scenarios {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildScenario(key string, raw rawScenario) (model.Scenario, error) {
	if strings.TrimSpace(key) == "" {
		return model.Scenario{}, fmt.Errorf("%w: empty scenario key", ErrInvalidScenario)
	}
	if len(raw.Sections) == 0 {
		return model.Scenario{}, fmt.Errorf("%w: scenario %q has no sections", ErrInvalidScenario, key)
	}

	sc := model.Scenario{
		Key:      key,
		Title:    raw.Title,
		Sections: make([]model.Section, 0, len(raw.Sections)),
	}

	seen := make(map[string]struct{}, len(raw.Sections))
	for i, rs := range raw.Sections {
		section, err := buildSection(key, i, rs)
		if err != nil {
			return model.Scenario{}, err
		}
		if _, dup := seen[section.ID]; dup {
			return model.Scenario{}, fmt.Errorf("%w: scenario %q repeats section id %q", ErrInvalidScenario, key, section.ID)
		}
		seen[section.ID] = struct{}{}
		sc.Sections = append(sc.Sections, section)
	}
	return sc, nil
}

func buildSection(key string, idx int, raw rawSection) (model.Section, error) {
	fail := func(format string, args ...any) (model.Section, error) {
		msg := fmt.Sprintf(format, args...)
		return model.Section{}, fmt.Errorf("%w: scenario %q section %d: %s", ErrInvalidScenario, key, idx, msg)
	}

	if strings.TrimSpace(raw.ID) == "" {
		return fail("missing id")
	}

	section := model.Section{ID: raw.ID, Question: raw.Question}

	switch model.SectionKind(raw.Kind) {
	case model.SingleChoice:
		section.Kind = model.SingleChoice
		if len(raw.Options) < 2 {
			return fail("single-choice needs at least two options")
		}
		if raw.AnswerIndex == nil {
			return fail("missing answer_index")
		}
		if *raw.AnswerIndex < 0 || *raw.AnswerIndex >= len(raw.Options) {
			return fail("answer_index %d out of range for %d options", *raw.AnswerIndex, len(raw.Options))
		}
		if raw.Points < 0 {
			return fail("negative points")
		}
		section.Options = raw.Options
		section.AnswerIndex = *raw.AnswerIndex
		section.Points = raw.Points

	case model.MultiChoice:
		section.Kind = model.MultiChoice
		if len(raw.Options) < 2 {
			return fail("multi-choice needs at least two options")
		}
		if raw.PointsEach < 0 {
			return fail("negative points_each")
		}
		seen := make(map[int]struct{}, len(raw.AnswerIndices))
		for _, ai := range raw.AnswerIndices {
			if ai < 0 || ai >= len(raw.Options) {
				return fail("answer index %d out of range for %d options", ai, len(raw.Options))
			}
			if _, dup := seen[ai]; dup {
				return fail("duplicate answer index %d", ai)
			}
			seen[ai] = struct{}{}
		}
		section.Options = raw.Options
		section.AnswerIndices = raw.AnswerIndices
		section.PointsEach = raw.PointsEach
		// Extras penalize by default, matching the grading contract.
		section.PenalizeExtras = raw.PenalizeExtras == nil || *raw.PenalizeExtras

	case model.BinaryKeyed:
		section.Kind = model.BinaryKeyed
		if len(raw.Items) == 0 {
			return fail("binary-keyed needs at least one item")
		}
		if raw.PointsEach < 0 {
			return fail("negative points_each")
		}
		section.PointsEach = raw.PointsEach
		section.Items = make([]model.BinaryItem, 0, len(raw.Items))
		for j, item := range raw.Items {
			answer, err := parseBoolean(item.Answer)
			if err != nil {
				return fail("item %d: %v", j, err)
			}
			section.Items = append(section.Items, model.BinaryItem{Text: item.Text, Answer: answer})
		}

	default:
		return fail("unknown kind %q", raw.Kind)
	}

	return section, nil
}

// parseBoolean accepts the boolean-like encodings scenario authors use:
// JSON booleans plus yes/no and true/false strings in any case.
func parseBoolean(raw json.RawMessage) (bool, error) {
	if len(raw) == 0 {
		return false, fmt.Errorf("missing answer")
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false, fmt.Errorf("answer %s is not boolean-like", string(raw))
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	}
	return false, fmt.Errorf("answer %q is not boolean-like", s)
}
