// Package site serves the embedded country profile page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the page and its assets at the root of mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", http.FileServer(FS()))
}
