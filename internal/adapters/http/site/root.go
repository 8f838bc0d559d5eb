// Package site serves the embedded dashboard page and its assets.
package site

import (
	"context"
	"net/http"
)

// Register attaches the dashboard page and static assets to mux.
//
//	GET /          -> dashboard page
//	GET /static/.. -> scripts and styles
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	files := http.FileServerFS(Assets())
	mux.Handle("GET /{$}", files)
	mux.Handle("GET /static/", http.StripPrefix("/static", files))
}
