package testutils

import (
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

type FakeFBrefServer struct {
	fakeServer
}

func NewFakeFBrefServer() *FakeFBrefServer {
	r := chi.NewRouter()
	r.Get("/en/comps/{id}/stats/{page}", fbrefStatsHandler)

	return &FakeFBrefServer{fakeServer{s: httptest.NewServer(r)}}
}

func fbrefStatsHandler(w http.ResponseWriter, r *http.Request) {
	serveFileOrNotFound(w, "fbref/stats_%s.html", chi.URLParam(r, "id"))
}
