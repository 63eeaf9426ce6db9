package testutils

import (
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

type FakeFootballDataServer struct {
	fakeServer
}

func NewFakeFootballDataServer() *FakeFootballDataServer {
	r := chi.NewRouter()
	r.Get("/v4/competitions/{code}/scorers", footballDataScorersHandler)

	return &FakeFootballDataServer{fakeServer{s: httptest.NewServer(r)}}
}

func footballDataScorersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Auth-Token") != FakeAPIKey {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "The resource you are looking for is restricted and apparently not within your permissions.", "errorCode": 403}`))
		return
	}
	serveFileOrNotFound(w, "footballdata/scorers_%s.json", chi.URLParam(r, "code"))
}
