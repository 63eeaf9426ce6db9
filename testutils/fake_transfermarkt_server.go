package testutils

import (
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

type FakeTransfermarktServer struct {
	fakeServer
}

func NewFakeTransfermarktServer() *FakeTransfermarktServer {
	r := chi.NewRouter()
	r.Get("/competitions/{id}/clubs", transfermarktClubsHandler)
	r.Get("/clubs/{id}/players", transfermarktPlayersHandler)

	return &FakeTransfermarktServer{fakeServer{s: httptest.NewServer(r)}}
}

func transfermarktClubsHandler(w http.ResponseWriter, r *http.Request) {
	serveFileOrNotFound(w, "transfermarkt/clubs_%s.json", chi.URLParam(r, "id"))
}

func transfermarktPlayersHandler(w http.ResponseWriter, r *http.Request) {
	serveFileOrNotFound(w, "transfermarkt/players_%s.json", chi.URLParam(r, "id"))
}
