package testutils

import (
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

type FakeAPIFootballServer struct {
	fakeServer
}

func NewFakeAPIFootballServer() *FakeAPIFootballServer {
	r := chi.NewRouter()
	r.Get("/players/topscorers", apiFootballTopScorersHandler)

	return &FakeAPIFootballServer{fakeServer{s: httptest.NewServer(r)}}
}

// api-football answers every request with a 200 and reports problems in the
// errors field.
func apiFootballTopScorersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-apisports-key") != FakeAPIKey {
		serveFile(w, "apifootball/error_token.json")
		return
	}

	league := r.URL.Query().Get("league")
	if r.URL.Query().Get("season") == "2024" && hasFile("apifootball/topscorers_"+league+".json") {
		serveFile(w, "apifootball/topscorers_"+league+".json")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"get": "players/topscorers", "errors": [], "results": 0, "response": []}`))
}
