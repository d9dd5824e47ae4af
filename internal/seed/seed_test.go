package seed

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/scoreboard/internal/adapters/http/api"
	"github.com/okian/scoreboard/internal/adapters/repository"
	service "github.com/okian/scoreboard/internal/app"
	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		panic(err)
	}
}

func newTestServer() (*httptest.Server, *service.Service) {
	svc := service.New(service.WithStore(repository.NewMemoryStore()))
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(mux)
	return httptest.NewServer(mux), svc
}

func TestRun(t *testing.T) {
	Convey("Given a running scoreboard API", t, func() {
		srv, svc := newTestServer()
		defer srv.Close()
		ctx := context.Background()
		out := filepath.Join(t.TempDir(), "export", "snapshot.json")

		config := &Config{
			BaseURL:       srv.URL,
			Teams:         5,
			Challenges:    3,
			ScoresPerTeam: 4,
			Workers:       3,
			Timeout:       5 * time.Second,
			Reset:         true,
			OutputFile:    out,
		}

		Convey("When seeding", func() {
			stats, err := Run(ctx, config)

			Convey("Then every entity is created and the leaderboard agrees", func() {
				So(err, ShouldBeNil)
				So(stats.TeamsCreated, ShouldEqual, 5)
				So(stats.ChallengesCreated, ShouldEqual, 3)
				So(stats.ScoresCreated, ShouldEqual, 20)
				So(stats.RequestsFailed, ShouldEqual, 0)
				So(stats.LeaderboardSize, ShouldEqual, 5)
				So(stats.Mismatches, ShouldEqual, 0)
				So(stats.Duration, ShouldBeGreaterThan, time.Duration(0))

				teams, challenges, scores := svc.Counts()
				So(teams, ShouldEqual, 5)
				So(challenges, ShouldEqual, 3)
				So(scores, ShouldEqual, 20)
			})

			Convey("Then the export is saved as a valid snapshot", func() {
				So(err, ShouldBeNil)
				raw, readErr := os.ReadFile(out)
				So(readErr, ShouldBeNil)
				doc, decodeErr := model.DecodeSnapshot(raw)
				So(decodeErr, ShouldBeNil)
				So(len(doc.Scores), ShouldEqual, 20)
			})

			Convey("And seeding again with reset replaces the data", func() {
				_, err := Run(ctx, config)
				So(err, ShouldBeNil)
				teams, _, scores := svc.Counts()
				So(teams, ShouldEqual, 5)
				So(scores, ShouldEqual, 20)
			})
		})

		Convey("When seeding without challenges", func() {
			config.Challenges = 0
			config.OutputFile = ""
			stats, err := Run(ctx, config)

			Convey("Then no scores are attempted", func() {
				So(err, ShouldBeNil)
				So(stats.ScoresCreated, ShouldEqual, 0)
				So(stats.LeaderboardSize, ShouldEqual, 5)
			})
		})
	})
}

func TestRunVerbose(t *testing.T) {
	Convey("Given a running scoreboard API and a captured log", t, func() {
		srv, _ := newTestServer()
		defer srv.Close()

		var buf bytes.Buffer
		So(logger.Init(logger.WithWriter(&buf)), ShouldBeNil)
		Reset(func() {
			_ = logger.Init(logger.WithWriter(os.Stderr))
		})

		config := &Config{BaseURL: srv.URL, Teams: 2, Challenges: 1, ScoresPerTeam: 1, Workers: 2, Timeout: 5 * time.Second}

		Convey("When seeding without verbose output", func() {
			_, err := Run(context.Background(), config)

			Convey("Then progress lines stay hidden", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldNotContainSubstring, "teams created")
			})
		})

		Convey("When seeding with verbose output", func() {
			config.Verbose = true
			_, err := Run(context.Background(), config)

			Convey("Then debug progress is logged", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "teams created")
				So(buf.String(), ShouldContainSubstring, "level=DEBUG")
			})
		})
	})
}

func TestRunUnhealthyService(t *testing.T) {
	Convey("Given a service that is not healthy", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()

		Convey("When seeding", func() {
			_, err := Run(ctx, &Config{BaseURL: srv.URL, Teams: 1, Workers: 1, Timeout: time.Second})

			Convey("Then the health check fails the run", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "health check failed")
			})
		})
	})
}

func TestCreateAll(t *testing.T) {
	Convey("Given a creation function that fails on odd indexes", t, func() {
		var failed atomic.Int64
		create := func(_ context.Context, i int) (int, error) {
			if i%2 == 1 {
				return 0, errors.New("rejected")
			}
			return i * 10, nil
		}

		Convey("When creating ten items", func() {
			got, err := createAll(context.Background(), 4, 10, &failed, create)

			Convey("Then successes keep their order and failures are counted", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []int{0, 20, 40, 60, 80})
				So(failed.Load(), ShouldEqual, int64(5))
			})
		})

		Convey("When nothing is requested", func() {
			got, err := createAll(context.Background(), 0, 0, &failed, create)
			So(err, ShouldBeNil)
			So(got, ShouldBeEmpty)
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := createAll(ctx, 2, 3, &failed, create)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestVerifyLeaderboard(t *testing.T) {
	Convey("Given two created teams with scores", t, func() {
		created := model.Document{
			Teams: []model.Team{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
			Scores: []model.Score{
				{ID: "s1", TeamID: "a", ChallengeID: "c", Points: 30},
				{ID: "s2", TeamID: "b", ChallengeID: "c", Points: 50},
			},
		}
		ctx := context.Background()

		Convey("When the leaderboard matches", func() {
			board := []model.TeamTotal{
				{Team: model.Team{ID: "b"}, TotalPoints: 50},
				{Team: model.Team{ID: "x"}, TotalPoints: 40},
				{Team: model.Team{ID: "a"}, TotalPoints: 30},
			}
			So(verifyLeaderboard(ctx, created, board), ShouldEqual, 0)
		})

		Convey("When a total differs and a team is missing", func() {
			board := []model.TeamTotal{{Team: model.Team{ID: "b"}, TotalPoints: 45}}
			So(verifyLeaderboard(ctx, created, board), ShouldEqual, 2)
		})

		Convey("When the board is out of order", func() {
			board := []model.TeamTotal{
				{Team: model.Team{ID: "a"}, TotalPoints: 30},
				{Team: model.Team{ID: "b"}, TotalPoints: 50},
			}
			So(verifyLeaderboard(ctx, created, board), ShouldEqual, 1)
		})
	})
}

func TestGenerators(t *testing.T) {
	Convey("Given the generators", t, func() {
		Convey("Then teams carry a name and members", func() {
			p := generateTeam(0)
			So(*p.Name, ShouldNotBeBlank)
			So(*p.Members, ShouldNotBeBlank)
		})

		Convey("Then challenges have positive max points", func() {
			p := generateChallenge(2)
			So(*p.Name, ShouldNotBeBlank)
			So(p.MaxPoints, ShouldNotBeNil)
			So(p.MaxPoints.Float64(), ShouldBeGreaterThan, 0.0)
		})

		Convey("Then scores stay within the challenge maximum", func() {
			c := model.Challenge{ID: "c1", MaxPoints: 100}
			for i := 0; i < 20; i++ {
				p := generateScore("t1", c)
				So(*p.TeamID, ShouldEqual, "t1")
				So(*p.ChallengeID, ShouldEqual, "c1")
				So(p.Points.Float64(), ShouldBeBetweenOrEqual, 0.0, 100.0)
			}
		})
	})
}
