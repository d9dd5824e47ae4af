package aggregate_test

import (
	"testing"

	"github.com/okian/scoreboard/internal/domain/aggregate"
	"github.com/okian/scoreboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func badge(s string) *string { return &s }

func championDocument() model.Document {
	return model.Document{
		Teams:      []model.Team{{ID: "t1", Name: "A", Color: model.DefaultTeamColor}},
		Challenges: []model.Challenge{{ID: "c1", Name: "X", MaxPoints: 100}},
		Scores:     []model.Score{{ID: "s1", TeamID: "t1", ChallengeID: "c1", Points: 80, Badge: badge("Champion")}},
	}
}

func TestScoresWithNames(t *testing.T) {
	Convey("Given one team, one challenge and one score", t, func() {
		doc := championDocument()

		Convey("When resolving names", func() {
			views := aggregate.ScoresWithNames(doc)

			Convey("Then the score carries both names", func() {
				So(len(views), ShouldEqual, 1)
				So(views[0].TeamName, ShouldEqual, "A")
				So(views[0].ChallengeName, ShouldEqual, "X")
				So(views[0].Points, ShouldEqual, 80.0)
				So(*views[0].Badge, ShouldEqual, "Champion")
			})
		})

		Convey("When the referenced entities are gone", func() {
			doc.Teams = nil
			doc.Challenges = nil
			views := aggregate.ScoresWithNames(doc)

			Convey("Then Unknown is substituted", func() {
				So(views[0].TeamName, ShouldEqual, model.UnknownName)
				So(views[0].ChallengeName, ShouldEqual, model.UnknownName)
			})
		})

		Convey("When there are no scores", func() {
			So(aggregate.ScoresWithNames(model.EmptyDocument()), ShouldBeEmpty)
		})
	})
}

func TestDashboardStats(t *testing.T) {
	Convey("Given the champion document", t, func() {
		stats := aggregate.DashboardStats(championDocument())

		Convey("Then counts and leaders are reported", func() {
			So(stats.TotalTeams, ShouldEqual, 1)
			So(stats.TotalChallenges, ShouldEqual, 1)
			So(stats.TotalScores, ShouldEqual, 1)
			So(len(stats.TopTeams), ShouldEqual, 1)
			So(stats.TopTeams[0].ID, ShouldEqual, "t1")
			So(stats.TopTeams[0].TotalPoints, ShouldEqual, 80.0)
		})
	})

	Convey("Given five teams", t, func() {
		doc := model.EmptyDocument()
		for i, id := range []string{"a", "b", "c", "d", "e"} {
			doc.Teams = append(doc.Teams, model.Team{ID: id, Name: id})
			doc.Scores = append(doc.Scores, model.Score{ID: "s" + id, TeamID: id, Points: float64(i * 10)})
		}
		stats := aggregate.DashboardStats(doc)

		Convey("Then only the top three are listed, highest first", func() {
			So(len(stats.TopTeams), ShouldEqual, aggregate.TopTeamsLimit)
			So(stats.TopTeams[0].ID, ShouldEqual, "e")
			So(stats.TopTeams[1].ID, ShouldEqual, "d")
			So(stats.TopTeams[2].ID, ShouldEqual, "c")
		})
	})
}

func TestTeamTotals(t *testing.T) {
	Convey("Given two teams tied at 50", t, func() {
		doc := model.Document{
			Teams: []model.Team{{ID: "t2", Name: "Second"}, {ID: "t1", Name: "First"}, {ID: "t3", Name: "None"}},
			Scores: []model.Score{
				{ID: "s1", TeamID: "t1", Points: 20},
				{ID: "s2", TeamID: "t2", Points: 50},
				{ID: "s3", TeamID: "t1", Points: 30},
				{ID: "s4", TeamID: "ghost", Points: 99},
			},
		}

		Convey("When computing totals", func() {
			totals := aggregate.TeamTotals(doc)

			Convey("Then ties keep collection order", func() {
				So(len(totals), ShouldEqual, 3)
				So(totals[0].ID, ShouldEqual, "t2")
				So(totals[1].ID, ShouldEqual, "t1")
				So(totals[0].TotalPoints, ShouldEqual, 50.0)
				So(totals[1].TotalPoints, ShouldEqual, 50.0)
			})

			Convey("Then teams without scores total zero", func() {
				So(totals[2].ID, ShouldEqual, "t3")
				So(totals[2].TotalPoints, ShouldEqual, 0.0)
			})

			Convey("Then dangling scores do not count", func() {
				var sum float64
				for _, tt := range totals {
					sum += tt.TotalPoints
				}
				So(sum, ShouldEqual, 100.0)
			})

			Convey("Then repeated calls agree", func() {
				So(aggregate.TeamTotals(doc), ShouldResemble, totals)
			})
		})

		Convey("When the document is aggregated", func() {
			before := doc.Clone()
			_ = aggregate.TeamTotals(doc)
			_ = aggregate.TeamAchievementsAll(doc)

			Convey("Then it is not modified", func() {
				So(doc.Teams, ShouldResemble, before.Teams)
				So(doc.Scores, ShouldResemble, before.Scores)
				So(doc.Challenges, ShouldBeNil)
				So(doc.Teams[0].ID, ShouldEqual, "t2")
				So(doc.Scores[0].ID, ShouldEqual, "s1")
			})
		})
	})
}

func TestTeamAchievements(t *testing.T) {
	Convey("Given a team with several scores", t, func() {
		doc := model.Document{
			Teams: []model.Team{{ID: "t1", Name: "A"}, {ID: "t2", Name: "B"}},
			Scores: []model.Score{
				{ID: "s1", TeamID: "t1", Points: 10, Badge: badge("Speed Demon")},
				{ID: "s2", TeamID: "t2", Points: 40, Badge: badge("Innovator")},
				{ID: "s3", TeamID: "t1", Points: 15},
				{ID: "s4", TeamID: "t1", Points: 5, Badge: badge("Speed Demon")},
			},
		}

		Convey("When rolling up one team", func() {
			a := aggregate.TeamAchievements(doc, "t1")

			Convey("Then badges keep order and duplicates", func() {
				So(a.Name, ShouldEqual, "A")
				So(a.TotalPoints, ShouldEqual, 30.0)
				So(a.ScoreCount, ShouldEqual, 3)
				So(a.Badges, ShouldResemble, []string{"Speed Demon", "Speed Demon"})
			})
		})

		Convey("When rolling up an unknown team", func() {
			a := aggregate.TeamAchievements(doc, "nope")

			Convey("Then an empty achievement is returned", func() {
				So(a.ID, ShouldEqual, "nope")
				So(a.ScoreCount, ShouldEqual, 0)
				So(a.Badges, ShouldBeEmpty)
			})
		})

		Convey("When rolling up every team", func() {
			all := aggregate.TeamAchievementsAll(doc)

			Convey("Then they are sorted by total", func() {
				So(len(all), ShouldEqual, 2)
				So(all[0].ID, ShouldEqual, "t2")
				So(all[0].Badges, ShouldResemble, []string{"Innovator"})
				So(all[1].ID, ShouldEqual, "t1")
				So(all[1].TotalPoints, ShouldEqual, 30.0)
			})
		})
	})
}
