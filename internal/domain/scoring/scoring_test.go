package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/raceboard/internal/domain/model"
	"github.com/okian/raceboard/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSingleChoice(t *testing.T) {
	Convey("Given single-choice scoring", t, func() {
		Convey("When the selection matches the answer", func() {
			Convey("Then it should award the full points", func() {
				So(scoring.SingleChoice(0, 0, 10), ShouldEqual, 10)
				So(scoring.SingleChoice(3, 3, 7), ShouldEqual, 7)
				So(scoring.SingleChoice(2, 2, 0), ShouldEqual, 0)
			})
		})

		Convey("When the selection differs from the answer", func() {
			Convey("Then it should award nothing", func() {
				So(scoring.SingleChoice(1, 0, 10), ShouldEqual, 0)
				So(scoring.SingleChoice(0, 1, 10), ShouldEqual, 0)
			})
		})

		Convey("When either side is the absent marker", func() {
			Convey("Then it should never award, even if both are absent", func() {
				So(scoring.SingleChoice(model.NoSelection, 2, 10), ShouldEqual, 0)
				So(scoring.SingleChoice(2, model.NoSelection, 10), ShouldEqual, 0)
				So(scoring.SingleChoice(model.NoSelection, model.NoSelection, 10), ShouldEqual, 0)
			})
		})
	})
}

func TestMultiChoice(t *testing.T) {
	Convey("Given multi-choice scoring", t, func() {
		answer := []int{0, 2, 4}

		Convey("When the selection matches the answer set exactly", func() {
			Convey("Then it should award points per correct option", func() {
				So(scoring.MultiChoice([]int{0, 2, 4}, answer, 2, true), ShouldEqual, 6)
				So(scoring.MultiChoice([]int{4, 0, 2}, answer, 2, true), ShouldEqual, 6)
			})
		})

		Convey("When the selection holds duplicates", func() {
			Convey("Then duplicates should not change the score", func() {
				So(scoring.MultiChoice([]int{0, 0, 2, 2, 4}, answer, 2, true), ShouldEqual, 6)
			})
		})

		Convey("When extras are penalized", func() {
			Convey("Then each extra should subtract one point", func() {
				So(scoring.MultiChoice([]int{0, 2, 1}, answer, 2, true), ShouldEqual, 3)
			})

			Convey("And the score should clamp at zero", func() {
				So(scoring.MultiChoice([]int{1, 3, 5, 6}, answer, 1, true), ShouldEqual, 0)
				So(scoring.MultiChoice([]int{1, 3}, answer, 0, true), ShouldEqual, 0)
			})
		})

		Convey("When extras are not penalized", func() {
			Convey("Then extras should be ignored", func() {
				So(scoring.MultiChoice([]int{0, 2, 1, 3}, answer, 2, false), ShouldEqual, 4)
			})
		})

		Convey("When the answer set is empty", func() {
			Convey("Then any selection should score zero", func() {
				So(scoring.MultiChoice([]int{0, 1, 2}, nil, 5, false), ShouldEqual, 0)
				So(scoring.MultiChoice(nil, nil, 5, true), ShouldEqual, 0)
			})
		})
	})
}

func TestBinaryKeyed(t *testing.T) {
	Convey("Given binary-keyed scoring", t, func() {
		items := []model.BinaryItem{
			{Text: "Data is available", Answer: true},
			{Text: "Model ships this week", Answer: false},
			{Text: "Stakeholders agree", Answer: true},
		}

		Convey("When every answer matches the key", func() {
			Convey("Then it should award points per item", func() {
				got, err := scoring.BinaryKeyed([]bool{true, false, true}, items, 5)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, 15)
			})
		})

		Convey("When some answers match", func() {
			Convey("Then the total should be matches times points", func() {
				got, err := scoring.BinaryKeyed([]bool{true, true, false}, items, 5)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, 5)
			})
		})

		Convey("When the lengths differ", func() {
			Convey("Then it should fail with the invalid input kind", func() {
				_, err := scoring.BinaryKeyed([]bool{true}, items, 5)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, scoring.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When there are no items", func() {
			Convey("Then the score should be zero", func() {
				got, err := scoring.BinaryKeyed(nil, nil, 5)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, 0)
			})
		})
	})
}

func TestGrade(t *testing.T) {
	Convey("Given a scenario with all three section kinds", t, func() {
		sc := model.Scenario{
			Key: "churn",
			Sections: []model.Section{
				{ID: "problem", Kind: model.SingleChoice, Options: []string{"a", "b", "c"}, AnswerIndex: 1, Points: 10},
				{ID: "goals", Kind: model.MultiChoice, Options: []string{"a", "b", "c", "d"}, AnswerIndices: []int{0, 1, 3}, PointsEach: 2},
				{ID: "feasibility", Kind: model.BinaryKeyed, PointsEach: 5, Items: []model.BinaryItem{
					{Text: "data exists", Answer: true},
					{Text: "cheap to run", Answer: false},
				}},
			},
		}

		Convey("When grading the classic winning submission", func() {
			// Correct single choice (10), 2 of 3 multi without penalty (4),
			// 1 of 2 binary items (5): 19 total.
			sc.Sections[1].PenalizeExtras = false
			ans := model.AnswerSet{
				Team:     "Alpha",
				Round:    1,
				Scenario: "churn",
				Single:   map[string]int{"problem": 1},
				Multi:    map[string][]int{"goals": {0, 1}},
				Binary:   map[string][]bool{"feasibility": {true, true}},
			}

			breakdown, total, err := scoring.Grade(sc, ans)

			Convey("Then the total should be 19 with the right breakdown", func() {
				So(err, ShouldBeNil)
				So(total, ShouldEqual, 19)
				So(breakdown, ShouldResemble, []model.SectionScore{
					{Section: "problem", Points: 10},
					{Section: "goals", Points: 4},
					{Section: "feasibility", Points: 5},
				})
			})

			Convey("And repeated grading should be identical", func() {
				again, againTotal, err := scoring.Grade(sc, ans)
				So(err, ShouldBeNil)
				So(againTotal, ShouldEqual, total)
				So(again, ShouldResemble, breakdown)
			})
		})

		Convey("When the answer set misses a single-choice section", func() {
			ans := model.AnswerSet{
				Team:     "Beta",
				Round:    1,
				Scenario: "churn",
				Multi:    map[string][]int{"goals": {0}},
				Binary:   map[string][]bool{"feasibility": {true, false}},
			}

			Convey("Then the section should score zero, not error", func() {
				breakdown, total, err := scoring.Grade(sc, ans)
				So(err, ShouldBeNil)
				So(breakdown[0].Points, ShouldEqual, 0)
				So(total, ShouldEqual, breakdown[1].Points+breakdown[2].Points)
			})
		})

		Convey("When binary answers have the wrong cardinality", func() {
			ans := model.AnswerSet{
				Single: map[string]int{"problem": 1},
				Binary: map[string][]bool{"feasibility": {true}},
			}

			Convey("Then grading should fail with the invalid input kind", func() {
				_, _, err := scoring.Grade(sc, ans)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, scoring.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When the total is assembled", func() {
			ans := model.AnswerSet{
				Single: map[string]int{"problem": 0},
				Multi:  map[string][]int{"goals": {0, 2}},
				Binary: map[string][]bool{"feasibility": {false, false}},
			}

			Convey("Then it should always equal the sum of the breakdown", func() {
				breakdown, total, err := scoring.Grade(sc, ans)
				So(err, ShouldBeNil)
				sum := 0
				for _, sec := range breakdown {
					sum += sec.Points
				}
				So(total, ShouldEqual, sum)
			})
		})
	})
}
