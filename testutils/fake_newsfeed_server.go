package testutils

import (
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

type FakeNewsFeedServer struct {
	fakeServer
}

func NewFakeNewsFeedServer() *FakeNewsFeedServer {
	r := chi.NewRouter()
	r.Get("/rss/{name}", newsFeedHandler)
	r.Get("/broken.xml", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<rss><channel><item><title>unterminated"))
	})

	return &FakeNewsFeedServer{fakeServer{s: httptest.NewServer(r)}}
}

// FeedURL returns the address of a feed served from fakedata/newsfeed.
func (f *FakeNewsFeedServer) FeedURL(file string) string {
	return f.URL() + "/rss/" + file
}

func newsFeedHandler(w http.ResponseWriter, r *http.Request) {
	serveFileOrNotFound(w, "newsfeed/%s", chi.URLParam(r, "name"))
}
