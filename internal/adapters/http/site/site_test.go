package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()
		Register(ctx, mux)

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			return w
		}

		Convey("Then / serves the dashboard page", func() {
			w := get("/")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			So(w.Body.String(), ShouldContainSubstring, "SIH Analytics Dashboard")
		})

		Convey("Then static assets are served", func() {
			So(get("/static/dashboard.js").Code, ShouldEqual, http.StatusOK)
			So(get("/static/dashboard.css").Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then unknown paths are not handled", func() {
			So(get("/some-asset").Code, ShouldEqual, http.StatusNotFound)
			So(get("/static/missing.js").Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a nil mux", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}
