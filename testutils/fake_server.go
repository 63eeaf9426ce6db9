package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
)

// FakeAPIKey is the only key the fake football-data and api-football servers accept.
const FakeAPIKey = "test-key"

//go:embed fakedata
var fakedata embed.FS

type fakeServer struct {
	s *httptest.Server
}

func (f *fakeServer) Close() {
	f.s.Close()
}

func (f *fakeServer) URL() string {
	return f.s.URL
}

// hasFile reports whether a fixture exists, so handlers can answer 404 for
// everything else.
func hasFile(name string) bool {
	_, err := fakedata.Open(path.Join("fakedata", name))
	return err == nil
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := fakedata.ReadFile(path.Join("fakedata", name))
	if err != nil {
		log.Printf("error reading fakedata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	switch {
	case strings.HasSuffix(name, ".json"):
		w.Header().Set("Content-Type", "application/json")
	case strings.HasSuffix(name, ".html"):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case strings.HasSuffix(name, ".xml"):
		w.Header().Set("Content-Type", "application/rss+xml")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func serveFileOrNotFound(w http.ResponseWriter, format string, args ...any) {
	name := fmt.Sprintf(format, args...)
	if !hasFile(name) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	serveFile(w, name)
}
