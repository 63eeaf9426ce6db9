package testutils

import (
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

type FakeUnderstatServer struct {
	fakeServer
}

func NewFakeUnderstatServer() *FakeUnderstatServer {
	r := chi.NewRouter()
	r.Get("/league/{id}/{season}", understatLeagueHandler)

	return &FakeUnderstatServer{fakeServer{s: httptest.NewServer(r)}}
}

func understatLeagueHandler(w http.ResponseWriter, r *http.Request) {
	serveFileOrNotFound(w, "understat/league_%s_%s.html", chi.URLParam(r, "id"), chi.URLParam(r, "season"))
}
