package scenario_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/raceboard/internal/domain/model"
	"github.com/okian/raceboard/internal/domain/scenario"
	. "github.com/smartystreets/goconvey/convey"
)

const validDoc = `{
  "fraud-detection": {
    "title": "Fraud Detection at PayFast",
    "sections": [
      {
        "id": "problem",
        "kind": "single",
        "question": "What is the business problem?",
        "options": ["Too many chargebacks", "Slow onboarding", "High churn"],
        "answer_index": 0,
        "points": 10
      },
      {
        "id": "goals",
        "kind": "multi",
        "question": "Select all applicable goals",
        "options": ["Reduce fraud loss", "Grow headcount", "Keep approval rate", "Repaint the office"],
        "answer_indices": [0, 2],
        "points_each": 2,
        "penalize_extras": false
      },
      {
        "id": "feasibility",
        "kind": "binary",
        "points_each": 5,
        "items": [
          {"text": "Labeled history exists", "answer": "Yes"},
          {"text": "Real-time scoring is optional", "answer": false}
        ]
      }
    ]
  }
}`

func TestParse(t *testing.T) {
	Convey("Given a well-formed scenario document", t, func() {
		scenarios, err := scenario.Parse([]byte(validDoc))

		Convey("Then it should load into typed sections", func() {
			So(err, ShouldBeNil)
			So(scenarios, ShouldContainKey, "fraud-detection")

			sc := scenarios["fraud-detection"]
			So(sc.Key, ShouldEqual, "fraud-detection")
			So(sc.Sections, ShouldHaveLength, 3)

			So(sc.Sections[0].Kind, ShouldEqual, model.SingleChoice)
			So(sc.Sections[0].AnswerIndex, ShouldEqual, 0)
			So(sc.Sections[0].Points, ShouldEqual, 10)

			So(sc.Sections[1].Kind, ShouldEqual, model.MultiChoice)
			So(sc.Sections[1].AnswerIndices, ShouldResemble, []int{0, 2})
			So(sc.Sections[1].PenalizeExtras, ShouldBeFalse)

			So(sc.Sections[2].Kind, ShouldEqual, model.BinaryKeyed)
			So(sc.Sections[2].Items, ShouldResemble, []model.BinaryItem{
				{Text: "Labeled history exists", Answer: true},
				{Text: "Real-time scoring is optional", Answer: false},
			})
		})

		Convey("And the max score should sum all sections", func() {
			So(err, ShouldBeNil)
			So(scenarios["fraud-detection"].MaxScore(), ShouldEqual, 10+2*2+2*5)
		})
	})

	Convey("Given malformed documents", t, func() {
		cases := map[string]string{
			"not JSON at all":           `scenario: nope`,
			"empty document":            `{}`,
			"scenario without sections": `{"empty": {"title": "x", "sections": []}}`,
			"unknown section kind":      `{"s": {"sections": [{"id": "a", "kind": "essay", "options": ["x","y"]}]}}`,
			"answer index out of range": `{"s": {"sections": [{"id": "a", "kind": "single", "options": ["x","y"], "answer_index": 5, "points": 1}]}}`,
			"missing answer index":      `{"s": {"sections": [{"id": "a", "kind": "single", "options": ["x","y"], "points": 1}]}}`,
			"duplicate section ids":     `{"s": {"sections": [{"id": "a", "kind": "single", "options": ["x","y"], "answer_index": 0, "points": 1}, {"id": "a", "kind": "single", "options": ["x","y"], "answer_index": 1, "points": 1}]}}`,
			"non-boolean binary answer": `{"s": {"sections": [{"id": "a", "kind": "binary", "points_each": 1, "items": [{"text": "t", "answer": "maybe"}]}]}}`,
			"negative points":           `{"s": {"sections": [{"id": "a", "kind": "single", "options": ["x","y"], "answer_index": 0, "points": -3}]}}`,
		}

		for name, doc := range cases {
			Convey("When parsing a document with "+name, func() {
				_, err := scenario.Parse([]byte(doc))

				Convey("Then it should reject it at load time", func() {
					So(err, ShouldNotBeNil)
					So(errors.Is(err, scenario.ErrInvalidScenario), ShouldBeTrue)
				})
			})
		}
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a scenario document on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "scenarios.json")
		So(os.WriteFile(path, []byte(validDoc), 0o644), ShouldBeNil)

		Convey("When loading it", func() {
			scenarios, err := scenario.Load(path)

			Convey("Then the document should parse", func() {
				So(err, ShouldBeNil)
				So(scenarios, ShouldHaveLength, 1)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := scenario.Load(filepath.Join(dir, "missing.json"))

			Convey("Then loading should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestKeys(t *testing.T) {
	Convey("Given loaded scenarios", t, func() {
		scenarios := map[string]model.Scenario{
			"zeta":  {Key: "zeta"},
			"alpha": {Key: "alpha"},
			"mid":   {Key: "mid"},
		}

		Convey("When listing keys", func() {
			Convey("Then they come back sorted for stable listings", func() {
				So(scenario.Keys(scenarios), ShouldResemble, []string{"alpha", "mid", "zeta"})
			})
		})
	})
}
