// Package scoring computes explicit right/wrong scores for submitted answer
// sets. Every function here is pure and deterministic: no clock, no global
// state, identical inputs always produce identical scores.
package scoring

import (
	"fmt"

	"github.com/okian/raceboard/internal/domain/model"
)

// SingleChoice awards points when the selected option matches the answer
// key. Both sides must be concrete selections; the absent marker never
// equals anything, including another absent marker.
func SingleChoice(selected, answer, points int) int {
	if selected < 0 || answer < 0 {
		return 0
	}
	if selected == answer {
		return points
	}
	return 0
}

// MultiChoice awards pointsEach per correctly selected option. When
// penalizeExtras is set, each selection outside the answer key subtracts
// one point from the raw score. The result never goes below zero, and
// duplicate or reordered selections do not change it.
func MultiChoice(selected, answer []int, pointsEach int, penalizeExtras bool) int {
	correct := toSet(answer)
	chosen := toSet(selected)

	hits, extras := 0, 0
	for idx := range chosen {
		if _, ok := correct[idx]; ok {
			hits++
		} else {
			extras++
		}
	}

	raw := hits * pointsEach
	if penalizeExtras {
		raw -= extras
	}
	if raw < 0 {
		return 0
	}
	return raw
}

// BinaryKeyed awards pointsEach per positional match between the given
// answers and the key items. The two lists must have the same length;
// anything else is a caller contract violation.
func BinaryKeyed(answers []bool, items []model.BinaryItem, pointsEach int) (int, error) {
	if len(answers) != len(items) {
		return 0, fmt.Errorf("%w: %d answers for %d items", ErrInvalidInput, len(answers), len(items))
	}
	total := 0
	for i, given := range answers {
		if given == items[i].Answer {
			total += pointsEach
		}
	}
	return total, nil
}

// Grade scores an answer set against a scenario, walking the sections in
// document order. It returns the ordered per-section breakdown and the
// total, which is always the sum of the breakdown.
func Grade(sc model.Scenario, ans model.AnswerSet) ([]model.SectionScore, int, error) {
	breakdown := make([]model.SectionScore, 0, len(sc.Sections))
	total := 0

	for _, section := range sc.Sections {
		var pts int
		switch section.Kind {
		case model.SingleChoice:
			selected := model.NoSelection
			if v, ok := ans.Single[section.ID]; ok {
				selected = v
			}
			pts = SingleChoice(selected, section.AnswerIndex, section.Points)
		case model.MultiChoice:
			pts = MultiChoice(ans.Multi[section.ID], section.AnswerIndices, section.PointsEach, section.PenalizeExtras)
		case model.BinaryKeyed:
			var err error
			pts, err = BinaryKeyed(ans.Binary[section.ID], section.Items, section.PointsEach)
			if err != nil {
				return nil, 0, fmt.Errorf("section %q: %w", section.ID, err)
			}
		default:
			return nil, 0, fmt.Errorf("%w: section %q has unknown kind %q", ErrInvalidInput, section.ID, section.Kind)
		}

		breakdown = append(breakdown, model.SectionScore{Section: section.ID, Points: pts})
		total += pts
	}

	return breakdown, total, nil
}

func toSet(indices []int) map[int]struct{} {
	set := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		set[idx] = struct{}{}
	}
	return set
}
