package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/scoreboard/internal/adapters/http/api"
	repository "github.com/okian/scoreboard/internal/adapters/repository"
	service "github.com/okian/scoreboard/internal/app"
	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// failingStore refuses every save.
type failingStore struct {
	*repository.MemoryStore
}

func (failingStore) Save(context.Context, model.Document) error {
	return repository.ErrSaveDocument
}

func newTestHandler(store repository.Store, opts ...api.ServerOption) (http.Handler, *service.Service) {
	svc := service.New(service.WithStore(store))
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc, opts...).Register(mux)
	return api.Recovery(logger.Get())(api.CORS([]string{"http://localhost:4000", "https://*.example.com"})(mux)), svc
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder, v any) {
	So(json.Unmarshal(w.Body.Bytes(), v), ShouldBeNil)
}

func errorCode(w *httptest.ResponseRecorder) string {
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	decode(w, &body)
	return body.Code
}

func TestHealthAndOps(t *testing.T) {
	Convey("Given the API", t, func() {
		h, _ := newTestHandler(repository.NewMemoryStore())

		Convey("When checking health", func() {
			w := do(h, http.MethodGet, "/healthz", "")

			Convey("Then the API reports it is running", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldEqual, "{\"ok\":true,\"message\":\"API is running\"}\n")
			})
		})

		Convey("When reading stats and metrics", func() {
			stats := do(h, http.MethodGet, "/stats", "")
			prom := do(h, http.MethodGet, "/metrics", "")

			Convey("Then both respond", func() {
				So(stats.Code, ShouldEqual, http.StatusOK)
				So(stats.Body.String(), ShouldContainSubstring, `"started":true`)
				So(prom.Code, ShouldEqual, http.StatusOK)
				So(prom.Body.String(), ShouldContainSubstring, "scoreboard_admin_entities")
			})
		})

		Convey("When using an unknown route or wrong method", func() {
			So(do(h, http.MethodGet, "/nope", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(h, http.MethodPatch, "/teams", "").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("When reading the badge catalog", func() {
			w := do(h, http.MethodGet, "/badges", "")
			var badges []model.Badge
			decode(w, &badges)
			So(len(badges), ShouldEqual, 6)
		})
	})
}

func TestEntityRoutes(t *testing.T) {
	Convey("Given the API", t, func() {
		h, _ := newTestHandler(repository.NewMemoryStore())

		Convey("When creating a team", func() {
			w := do(h, http.MethodPost, "/teams", `{"name":"A","members":"ann"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			var team model.Team
			decode(w, &team)

			Convey("Then it can be read back", func() {
				got := do(h, http.MethodGet, "/teams/"+team.ID, "")
				So(got.Code, ShouldEqual, http.StatusOK)
				var again model.Team
				decode(got, &again)
				So(again, ShouldResemble, team)
				So(again.Color, ShouldEqual, model.DefaultTeamColor)
			})

			Convey("And updated partially", func() {
				w := do(h, http.MethodPut, "/teams/"+team.ID, `{"color":"#00ff00"}`)
				So(w.Code, ShouldEqual, http.StatusOK)
				var updated model.Team
				decode(w, &updated)
				So(updated.Name, ShouldEqual, "A")
				So(updated.Color, ShouldEqual, "#00ff00")
			})

			Convey("And deleted", func() {
				w := do(h, http.MethodDelete, "/teams/"+team.ID, "")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"removedScores":0`)
				So(w.Body.String(), ShouldContainSubstring, `"message":"Team deleted successfully"`)
				So(do(h, http.MethodGet, "/teams/"+team.ID, "").Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And a score with string points can be awarded", func() {
				cw := do(h, http.MethodPost, "/challenges", `{"name":"X","maxPoints":"100"}`)
				So(cw.Code, ShouldEqual, http.StatusCreated)
				var ch model.Challenge
				decode(cw, &ch)
				So(ch.MaxPoints, ShouldEqual, 100.0)

				sw := do(h, http.MethodPost, "/scores", fmt.Sprintf(`{"teamId":%q,"challengeId":%q,"points":"80","badge":"Champion"}`, team.ID, ch.ID))
				So(sw.Code, ShouldEqual, http.StatusCreated)

				Convey("Then the score list resolves names", func() {
					lw := do(h, http.MethodGet, "/scores", "")
					var views []model.ScoreView
					decode(lw, &views)
					So(len(views), ShouldEqual, 1)
					So(views[0].TeamName, ShouldEqual, "A")
					So(views[0].ChallengeName, ShouldEqual, "X")
				})

				Convey("Then the dashboard reports the team on top", func() {
					dw := do(h, http.MethodGet, "/dashboard/stats", "")
					var stats model.DashboardStats
					decode(dw, &stats)
					So(stats.TotalScores, ShouldEqual, 1)
					So(stats.TopTeams[0].TotalPoints, ShouldEqual, 80.0)

					aw := do(h, http.MethodGet, "/teams/"+team.ID+"/achievements", "")
					So(aw.Code, ShouldEqual, http.StatusOK)
					So(aw.Body.String(), ShouldContainSubstring, `"badges":["Champion"]`)

					So(do(h, http.MethodGet, "/dashboard/leaderboard", "").Code, ShouldEqual, http.StatusOK)
					So(do(h, http.MethodGet, "/dashboard/achievements", "").Code, ShouldEqual, http.StatusOK)
				})

				Convey("Then deleting the challenge cascades", func() {
					w := do(h, http.MethodDelete, "/challenges/"+ch.ID, "")
					So(w.Code, ShouldEqual, http.StatusOK)
					var res model.DeleteResult
					decode(w, &res)
					So(res.RemovedScores, ShouldEqual, 1)
				})
			})
		})

		Convey("When sending bad input", func() {
			malformed := do(h, http.MethodPost, "/teams", `{"name":`)
			empty := do(h, http.MethodPost, "/teams", "")
			missing := do(h, http.MethodPost, "/teams", `{"members":"x"}`)
			nan := do(h, http.MethodPost, "/challenges", `{"name":"X","maxPoints":"lots"}`)
			dangling := do(h, http.MethodPost, "/scores", `{"teamId":"ghost","challengeId":"ghost"}`)

			Convey("Then each gets the matching error code", func() {
				So(malformed.Code, ShouldEqual, http.StatusBadRequest)
				So(errorCode(malformed), ShouldEqual, "bad_request")
				So(errorCode(empty), ShouldEqual, "bad_request")
				So(missing.Code, ShouldEqual, http.StatusBadRequest)
				So(errorCode(missing), ShouldEqual, "validation_failed")
				So(errorCode(nan), ShouldEqual, "validation_failed")
				So(errorCode(dangling), ShouldEqual, "validation_failed")
			})
		})

		Convey("When addressing missing entities", func() {
			for _, path := range []string{"/teams/x", "/challenges/x", "/scores/x", "/teams/x/achievements"} {
				w := do(h, http.MethodGet, path, "")
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(errorCode(w), ShouldEqual, "not_found")
			}
			So(do(h, http.MethodPut, "/scores/x", `{}`).Code, ShouldEqual, http.StatusNotFound)
			So(do(h, http.MethodDelete, "/challenges/x", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestTransferRoutes(t *testing.T) {
	Convey("Given the API with a small import cap", t, func() {
		h, svc := newTestHandler(repository.NewMemoryStore(), api.WithMaxImportBytes(512))
		_, err := svc.CreateTeam(context.Background(), model.TeamPatch{Name: strPtr("A")})
		So(err, ShouldBeNil)

		Convey("When exporting", func() {
			w := do(h, http.MethodGet, "/data/export", "")

			Convey("Then the snapshot is sent as an attachment", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Disposition"), ShouldEqual, `attachment; filename="scoreboard-data.json"`)
				So(w.Body.String(), ShouldContainSubstring, "\n  \"teams\": [")
			})

			Convey("And re-importing it succeeds", func() {
				So(do(h, http.MethodDelete, "/data", "").Code, ShouldEqual, http.StatusOK)
				So(len(svc.ListTeams(context.Background())), ShouldEqual, 0)

				iw := do(h, http.MethodPost, "/data/import", w.Body.String())
				So(iw.Code, ShouldEqual, http.StatusOK)
				So(len(svc.ListTeams(context.Background())), ShouldEqual, 1)
			})
		})

		Convey("When importing a snapshot without scores", func() {
			w := do(h, http.MethodPost, "/data/import", `{"teams":[],"challenges":[]}`)

			Convey("Then it is rejected and nothing changes", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(errorCode(w), ShouldEqual, "validation_failed")
				So(len(svc.ListTeams(context.Background())), ShouldEqual, 1)
			})
		})

		Convey("When importing an oversized body", func() {
			big := `{"teams":[],"challenges":[],"scores":[],"pad":"` + strings.Repeat("x", 1024) + `"}`
			w := do(h, http.MethodPost, "/data/import", big)

			Convey("Then it is refused", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(errorCode(w), ShouldEqual, "bad_request")
			})
		})
	})
}

func TestPersistenceFailureRoutes(t *testing.T) {
	Convey("Given a store that cannot save", t, func() {
		h, _ := newTestHandler(failingStore{repository.NewMemoryStore()})

		Convey("When creating a team", func() {
			w := do(h, http.MethodPost, "/teams", `{"name":"A"}`)

			Convey("Then a persistence error is returned without details", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(errorCode(w), ShouldEqual, "persistence_failed")
				So(w.Body.String(), ShouldNotContainSubstring, "save document")
			})
		})
	})
}

func TestMiddleware(t *testing.T) {
	Convey("Given a panicking handler behind Recovery", t, func() {
		var buf bytes.Buffer
		So(logger.Init(logger.WithWriter(&buf)), ShouldBeNil)
		h := api.Recovery(logger.Get())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		Convey("When it is called", func() {
			w := do(h, http.MethodGet, "/", "")

			Convey("Then a 500 is returned and the panic logged", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(errorCode(w), ShouldEqual, "internal_error")
				So(buf.String(), ShouldContainSubstring, "panic recovered")
			})
		})
	})

	Convey("Given the CORS middleware", t, func() {
		h, _ := newTestHandler(repository.NewMemoryStore())
		preflight := func(origin string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodOptions, "/teams", nil)
			req.Header.Set("Origin", origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			return w
		}

		Convey("When an allowed origin sends a preflight", func() {
			w := preflight("http://localhost:4000")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://localhost:4000")
			So(w.Header().Get("Access-Control-Allow-Credentials"), ShouldEqual, "true")
		})

		Convey("When a wildcard subdomain origin is used", func() {
			w := preflight("https://front.example.com")
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://front.example.com")
		})

		Convey("When an unknown origin is used", func() {
			w := preflight("https://evil.test")
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})
	})
}

func strPtr(s string) *string { return &s }
