package newsfeed

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/RealRedbaron07/scoutlens-app/platforms/internal/fetch"
	"github.com/RealRedbaron07/scoutlens-app/platforms/newsfeed/internal"
	"github.com/itbasis/go-clock"
)

const requestDelay = 1 * time.Second

type Feed struct {
	Name string
	URL  string
}

var DefaultFeeds = []Feed{
	{Name: "BBC Sport", URL: "https://feeds.bbci.co.uk/sport/football/rss.xml"},
	{Name: "Sky Sports", URL: "https://feeds.skynews.com/feeds/rss/sports.xml"},
}

// ParseFeeds reads feeds in the "Name|URL,Name|URL" format. Entries without
// a name use the URL's host.
func ParseFeeds(s string) []Feed {
	result := make([]Feed, 0, 2)
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, url, found := strings.Cut(entry, "|")
		if !found {
			url = name
			name = strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
			if i := strings.Index(name, "/"); i > 0 {
				name = name[:i]
			}
		}
		result = append(result, Feed{Name: strings.TrimSpace(name), URL: strings.TrimSpace(url)})
	}
	return result
}

// Item is a single news story. Date uses the YYYY-MM-DD format.
type Item struct {
	Title       string
	Description string
	Link        string
	Date        string
	Source      string
}

type Client interface {
	LoadItems(ctx context.Context, feed Feed) ([]Item, error)
}

type client struct {
	clock clock.Clock
	req   *fetch.Requester
}

func New(clock clock.Clock) (Client, error) {
	c := &client{
		clock: clock,
		req:   fetch.New("newsfeed", clock, requestDelay, fetch.DefaultRetryPolicy),
	}
	return c, nil
}

func NewForTest(clock clock.Clock) Client {
	return &client{
		clock: clock,
		req:   fetch.New("newsfeed", clock, 0, fetch.NoRetry),
	}
}

func (c *client) LoadItems(ctx context.Context, feed Feed) ([]Item, error) {
	body, err := c.req.Get(ctx, feed.URL, map[string]string{
		"Accept": "application/rss+xml, application/xml, text/xml",
	})
	if err != nil {
		return nil, fmt.Errorf("error loading feed %s: %w", feed.Name, err)
	}

	var res internal.RSS
	if err := xml.NewDecoder(bytes.NewReader(body)).Decode(&res); err != nil {
		return nil, fmt.Errorf("error parsing feed %s: %w", feed.Name, err)
	}
	if res.Channel == nil {
		return nil, errors.New("feed has no channel")
	}

	today := c.clock.Now().UTC().Format(time.DateOnly)
	result := make([]Item, 0, len(res.Channel.Items))
	for _, i := range res.Channel.Items {
		title := strings.TrimSpace(i.Title)
		if title == "" {
			continue
		}
		result = append(result, Item{
			Title:       title,
			Description: stripHTML(i.Description),
			Link:        strings.TrimSpace(i.Link),
			Date:        parseDate(i.PubDate, today),
			Source:      feed.Name,
		})
	}
	return result, nil
}

func stripHTML(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

var dateLayouts = []string{time.RFC1123Z, time.RFC1123, time.RFC3339, "Mon, 2 Jan 2006 15:04:05 MST", "Mon, 2 Jan 2006 15:04:05 -0700"}

func parseDate(s, fallback string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.DateOnly)
		}
	}
	return fallback
}
