package leaderboard_test

import (
	"testing"
	"time"

	"github.com/okian/raceboard/internal/domain/leaderboard"
	"github.com/okian/raceboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func rec(team string, round, score int, ts time.Time) model.SubmissionRecord {
	return model.SubmissionRecord{
		ID:        team + ts.Format("150405.000"),
		Timestamp: ts,
		Round:     round,
		Team:      team,
		Scenario:  "churn",
		Sections:  []model.SectionScore{{Section: "problem", Points: score}},
		Score:     score,
	}
}

func TestBuild(t *testing.T) {
	Convey("Given a submission history across rounds", t, func() {
		base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
		history := []model.SubmissionRecord{
			rec("Alpha", 1, 19, base),
			rec("Bravo", 1, 12, base.Add(1*time.Minute)),
			rec("Alpha", 1, 10, base.Add(2*time.Minute)), // worse later attempt
			rec("Charlie", 1, 19, base.Add(3*time.Minute)),
			rec("Bravo", 2, 25, base.Add(10*time.Minute)),
		}

		Convey("When building round 1", func() {
			rows := leaderboard.Build(history, 1)

			Convey("Then each team appears once with its best score", func() {
				So(rows, ShouldHaveLength, 3)
				So(rows[0].Team, ShouldEqual, "Alpha")
				So(rows[0].Score, ShouldEqual, 19)
			})

			Convey("And equal scores rank the earlier submission first", func() {
				So(rows[0].Team, ShouldEqual, "Alpha")
				So(rows[1].Team, ShouldEqual, "Charlie")
				So(rows[1].Score, ShouldEqual, 19)
				So(rows[2].Team, ShouldEqual, "Bravo")
			})

			Convey("And ranks are dense and positional", func() {
				So(rows[0].Rank, ShouldEqual, 1)
				So(rows[1].Rank, ShouldEqual, 2)
				So(rows[2].Rank, ShouldEqual, 3)
			})

			Convey("And higher scores always rank above lower ones", func() {
				for i := 1; i < len(rows); i++ {
					So(rows[i].Score, ShouldBeLessThanOrEqualTo, rows[i-1].Score)
				}
			})
		})

		Convey("When building the same round twice", func() {
			first := leaderboard.Build(history, 1)
			second := leaderboard.Build(history, 1)

			Convey("Then the sequences are identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When building a round with no submissions", func() {
			rows := leaderboard.Build(history, 7)

			Convey("Then the result is empty", func() {
				So(rows, ShouldBeEmpty)
			})
		})

		Convey("When a team's best came from an earlier worse-timestamped record", func() {
			// Bravo improves later in round 1; the improvement must win.
			withLate := append(history, rec("Bravo", 1, 30, base.Add(5*time.Minute)))
			rows := leaderboard.Build(withLate, 1)

			Convey("Then the later higher score is reported", func() {
				So(rows[0].Team, ShouldEqual, "Bravo")
				So(rows[0].Score, ShouldEqual, 30)
				So(rows[0].Submitted, ShouldEqual, base.Add(5*time.Minute))
			})
		})
	})
}

func TestRound(t *testing.T) {
	Convey("Given a mixed history", t, func() {
		base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
		history := []model.SubmissionRecord{
			rec("Bravo", 1, 12, base.Add(time.Minute)),
			rec("Alpha", 1, 19, base),
			rec("Alpha", 2, 5, base.Add(2*time.Minute)),
		}

		Convey("When listing round 1", func() {
			records := leaderboard.Round(history, 1)

			Convey("Then only that round's records come back, oldest first", func() {
				So(records, ShouldHaveLength, 2)
				So(records[0].Team, ShouldEqual, "Alpha")
				So(records[1].Team, ShouldEqual, "Bravo")
			})
		})
	})
}

func TestLatestRound(t *testing.T) {
	Convey("Given histories of varying shape", t, func() {
		base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

		Convey("When the history is empty", func() {
			So(leaderboard.LatestRound(nil), ShouldEqual, 0)
		})

		Convey("When several rounds are present", func() {
			history := []model.SubmissionRecord{
				rec("Alpha", 3, 1, base),
				rec("Alpha", 1, 1, base),
				rec("Bravo", 2, 1, base),
			}
			So(leaderboard.LatestRound(history), ShouldEqual, 3)
		})
	})
}
