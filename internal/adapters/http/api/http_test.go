package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/internal/adapters/http/api"
	"github.com/okian/sihdash/internal/adapters/session"
	service "github.com/okian/sihdash/internal/app"
	"github.com/okian/sihdash/internal/domain/rollup"
	"github.com/okian/sihdash/internal/fixture"
	"github.com/okian/sihdash/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newMux(t *testing.T, csv string) *http.ServeMux {
	path := fixture.WriteFile(t.TempDir(), "outcomes.csv", csv)
	svc := service.New(service.WithDataPath(path), service.WithLogger(logger.Nop()))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)
	mux := http.NewServeMux()
	api.NewServer(svc, api.WithLogger(logger.Nop())).Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

func newSession(mux *http.ServeMux) string {
	w := do(mux, http.MethodPost, "/api/sessions", "")
	id, _ := decode(w)["session"].(string)
	return id
}

func TestSessionRoutes(t *testing.T) {
	Convey("Given a running API", t, func() {
		mux := newMux(t, fixture.OutcomesCSV)

		Convey("When a session is created", func() {
			w := do(mux, http.MethodPost, "/api/sessions", "")

			Convey("Then it returns 201 with an id", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(decode(w)["session"], ShouldNotBeEmpty)
			})
		})

		Convey("When filters are read without a session parameter", func() {
			w := do(mux, http.MethodGet, "/api/filters", "")

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decode(w)["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When an unknown session is used", func() {
			w := do(mux, http.MethodGet, "/api/overview?session=nope", "")

			Convey("Then it returns 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decode(w)["code"], ShouldEqual, "session_not_found")
			})
		})

		Convey("When filters are updated", func() {
			id := newSession(mux)
			w := do(mux, http.MethodPut, "/api/filters?session="+id, `{"selections":{"year":["2025"]}}`)

			Convey("Then the filtered count is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decode(w)["records"], ShouldEqual, 8.0)
				So(decode(w)["total"], ShouldEqual, 12.0)
			})

			Convey("Then reset restores the full count", func() {
				w := do(mux, http.MethodPost, "/api/filters/reset?session="+id, "")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decode(w)["records"], ShouldEqual, 12.0)
			})
		})

		Convey("When the update body is malformed or names an unknown key", func() {
			id := newSession(mux)
			bad := do(mux, http.MethodPut, "/api/filters?session="+id, `{"selections":`)
			unknown := do(mux, http.MethodPut, "/api/filters?session="+id, `{"selections":{"colour":["red"]}}`)

			Convey("Then both are rejected", func() {
				So(bad.Code, ShouldEqual, http.StatusBadRequest)
				So(unknown.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestViewRoutes(t *testing.T) {
	Convey("Given a session", t, func() {
		mux := newMux(t, fixture.OutcomesCSV)
		id := newSession(mux)
		q := "?session=" + id

		Convey("When reading the overview", func() {
			w := do(mux, http.MethodGet, "/api/overview"+q, "")

			Convey("Then it carries the summary and the unawarded notice", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := decode(w)
				So(body["records"], ShouldEqual, 12.0)
				summary := body["summary"].(map[string]any)
				So(summary["winning_teams"], ShouldEqual, 6.0)
				So(summary["total_prize"], ShouldEqual, 425000.0)
				So(body["unawarded_problem_statements"], ShouldHaveLength, 3)
			})
		})

		Convey("When reading views with query parameters", func() {
			ps := do(mux, http.MethodGet, "/api/problem-statements"+q+"&q=crop&sort=winners", "")
			in := do(mux, http.MethodGet, "/api/institutes"+q+"&sort=win_rate", "")
			tm := do(mux, http.MethodGet, "/api/teams"+q+"&q=asha", "")

			Convey("Then each returns its rows", func() {
				So(ps.Code, ShouldEqual, http.StatusOK)
				So(decode(ps)["rows"], ShouldHaveLength, 1)
				So(in.Code, ShouldEqual, http.StatusOK)
				So(decode(in)["sort"], ShouldEqual, "win_rate")
				So(tm.Code, ShouldEqual, http.StatusOK)
				So(decode(tm)["rows"], ShouldHaveLength, 1)
			})
		})

		Convey("When a sort key is unknown", func() {
			w := do(mux, http.MethodGet, "/api/problem-statements"+q+"&sort=colour", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When reading a problem statement", func() {
			ok := do(mux, http.MethodGet, "/api/problem-statements/SIH25001"+q, "")
			missing := do(mux, http.MethodGet, "/api/problem-statements/SIH99999"+q, "")

			Convey("Then known ids resolve and unknown ids are 404", func() {
				So(ok.Code, ShouldEqual, http.StatusOK)
				So(decode(ok)["teams"], ShouldEqual, 3.0)
				So(missing.Code, ShouldEqual, http.StatusNotFound)
				So(decode(missing)["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When exploring winners", func() {
			w := do(mux, http.MethodGet, "/api/explorer"+q+"&status=Winner&sort=prize_money&order=desc", "")

			Convey("Then the rows and filename follow the controls", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := decode(w)
				So(body["records"], ShouldEqual, 3.0)
				So(body["filename"], ShouldEqual, "sih_0-2025_filtered_dataset_3_records.csv")
				So(body["rows"], ShouldHaveLength, 3)
			})
		})

		Convey("When explorer parameters are invalid", func() {
			empty := do(mux, http.MethodGet, "/api/explorer"+q+"&columns=", "")
			negative := do(mux, http.MethodGet, "/api/explorer"+q+"&min_prize=-1", "")
			order := do(mux, http.MethodGet, "/api/explorer"+q+"&order=sideways", "")
			nan := do(mux, http.MethodGet, "/api/explorer"+q+"&min_prize=lots", "")

			Convey("Then each is a bad request", func() {
				So(empty.Code, ShouldEqual, http.StatusBadRequest)
				So(negative.Code, ShouldEqual, http.StatusBadRequest)
				So(order.Code, ShouldEqual, http.StatusBadRequest)
				So(nan.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestExportRoutes(t *testing.T) {
	Convey("Given a session", t, func() {
		mux := newMux(t, fixture.OutcomesCSV)
		q := "?session=" + newSession(mux)

		Convey("When exporting the team listing", func() {
			w := do(mux, http.MethodGet, "/api/export/teams"+q, "")

			Convey("Then a CSV attachment is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/csv; charset=utf-8")
				So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "teams_data.csv")
				lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
				So(lines, ShouldHaveLength, 13)
				So(lines[0], ShouldStartWith, "team_id,team_name")
			})
		})

		Convey("When exporting the explorer view", func() {
			w := do(mux, http.MethodGet, "/api/export/explorer"+q+"&columns=ps_id,status&status=Winner", "")

			Convey("Then only the selected columns are written", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "sih_0-2025_filtered_dataset_3_records.csv")
				So(w.Body.String(), ShouldStartWith, "ps_id,status\n")
			})
		})

		Convey("When exporting rollups", func() {
			in := do(mux, http.MethodGet, "/api/export/institutes"+q, "")
			ps := do(mux, http.MethodGet, "/api/export/problem-statements"+q, "")

			Convey("Then they use their fixed names", func() {
				So(in.Header().Get("Content-Disposition"), ShouldContainSubstring, "institute_summary.csv")
				So(ps.Header().Get("Content-Disposition"), ShouldContainSubstring, "problem_statements_summary.csv")
			})
		})

		Convey("When the kind is unknown", func() {
			w := do(mux, http.MethodGet, "/api/export/everything"+q, "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestDatasetRoutes(t *testing.T) {
	Convey("Given a dataset without a required column", t, func() {
		csv := strings.Replace(fixture.OutcomesCSV, ",theme,", ",topic,", 1)
		mux := newMux(t, csv)
		id := newSession(mux)

		Convey("When a view is requested", func() {
			w := do(mux, http.MethodGet, "/api/overview?session="+id, "")

			Convey("Then the schema failure names the column", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				body := decode(w)
				So(body["code"], ShouldEqual, "schema_invalid")
				So(body["message"], ShouldContainSubstring, "theme")
			})
		})

		Convey("When the dataset is reloaded", func() {
			w := do(mux, http.MethodPost, "/api/dataset/reload", "")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})

	Convey("Given a valid dataset", t, func() {
		mux := newMux(t, fixture.OutcomesCSV)

		Convey("Then reload, stats and metrics respond", func() {
			reload := do(mux, http.MethodPost, "/api/dataset/reload", "")
			So(reload.Code, ShouldEqual, http.StatusOK)
			So(decode(reload)["records"], ShouldEqual, 12.0)

			stats := do(mux, http.MethodGet, "/stats", "")
			So(stats.Code, ShouldEqual, http.StatusOK)
			So(decode(stats)["started"], ShouldBeTrue)

			health := do(mux, http.MethodGet, "/healthz", "")
			So(health.Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestStatusOf(t *testing.T) {
	Convey("Given errors from every layer", t, func() {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{api.Wrap("op", &dataset.LoadError{Path: "x", Err: errors.New("gone")}), 503, "dataset_unavailable"},
			{api.Wrap("op", &dataset.SchemaError{Path: "x", Missing: []string{"theme"}}), 503, "schema_invalid"},
			{api.Wrap("op", service.ErrNotStarted), 503, "unavailable"},
			{api.Wrap("op", session.ErrNotFound), 404, "session_not_found"},
			{api.Wrap("op", fmt.Errorf("%w: x", rollup.ErrNotFound)), 404, "not_found"},
			{api.NewKind("op", api.ErrMissingID), 400, "bad_request"},
			{api.Wrap("op", rollup.ErrUnknownSort), 400, "bad_request"},
			{api.Wrap("op", errors.New("boom")), 500, "internal_error"},
		}

		Convey("Then each maps to its status and code", func() {
			for _, c := range cases {
				status, code := api.StatusOf(c.err)
				So(status, ShouldEqual, c.status)
				So(code, ShouldEqual, c.code)
			}
		})

		Convey("Then messages drop the operation", func() {
			err := api.WrapKind("api.x", api.ErrBadRequest, errors.New("min_prize"))
			So(err.Error(), ShouldEqual, "api.x: bad request: min_prize")
			So(api.Message(err), ShouldEqual, "bad request: min_prize")
			So(api.Wrap("api.x", nil), ShouldBeNil)
		})
	})
}
