package fbref

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
	"github.com/RealRedbaron07/scoutlens-app/platforms/internal/fetch"
	"github.com/RealRedbaron07/scoutlens-app/valuation"
	"github.com/itbasis/go-clock"
)

const (
	FBrefURL = "https://fbref.com"

	// FBref blocks clients that make more than about 20 requests a minute.
	requestDelay = 3 * time.Second

	// Rows for players with fewer minutes than this are skipped.
	minMinutes = 400
)

type Client interface {
	LoadStandardStats(ctx context.Context, league *model.League) ([]model.Player, error)
}

type client struct {
	url string
	req *fetch.Requester
}

func New(clock clock.Clock) (Client, error) {
	c := &client{
		url: FBrefURL,
		req: fetch.New(platforms.SourceFBref, clock, requestDelay, fetch.DefaultRetryPolicy),
	}
	return c, nil
}

func NewForTest(url string, clock clock.Clock) Client {
	return &client{
		url: url,
		req: fetch.New(platforms.SourceFBref, clock, 0, fetch.NoRetry),
	}
}

func (c *client) LoadStandardStats(ctx context.Context, league *model.League) ([]model.Player, error) {
	if league.FBrefID == 0 {
		return nil, fmt.Errorf("%s is not covered by fbref", league)
	}

	url := fmt.Sprintf("%s/en/comps/%d/stats/%s-Stats", c.url, league.FBrefID, league.FBrefSlug)
	body, err := c.req.Get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error loading stats page for %s: %w", league.Key, err)
	}

	return parseStandardStats(body, league)
}

func parseStandardStats(body []byte, league *model.League) ([]model.Player, error) {
	// FBref ships most of its tables inside HTML comments and un-comments
	// them with javascript.
	body = bytes.ReplaceAll(body, []byte("<!--"), nil)
	body = bytes.ReplaceAll(body, []byte("-->"), nil)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing stats page for %s: %w", league.Key, err)
	}

	table := doc.Find("table#stats_standard").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no standard stats table for %s", league.Key)
	}

	result := make([]model.Player, 0, 256)
	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		if row.HasClass("thead") || row.HasClass("over_header") || row.HasClass("spacer") {
			return
		}
		p, ok := parseRow(row, league)
		if !ok {
			return
		}
		result = append(result, p)
	})
	return result, nil
}

func parseRow(row *goquery.Selection, league *model.League) (model.Player, bool) {
	name := cell(row, "player")
	minutes := parseInt(cell(row, "minutes"))
	if name == "" || minutes < minMinutes {
		return model.Player{}, false
	}

	goals := parseInt(cell(row, "goals"))
	assists := parseInt(cell(row, "assists"))

	xg, ok := parseFloat(cell(row, "xg"))
	if !ok {
		xg = valuation.FallbackExpectedGoals(goals)
	}
	xa, ok := parseFloat(cell(row, "xg_assist"))
	if !ok {
		xa = valuation.FallbackExpectedAssists(assists)
	}

	age := parseInt(strings.Split(cell(row, "age"), "-")[0])
	if age <= 0 {
		age = model.DefaultAge
	}

	// "eng ENG" -> "ENG"
	nationality := ""
	if parts := strings.Fields(cell(row, "nationality")); len(parts) > 0 {
		nationality = parts[len(parts)-1]
	}

	p := model.Player{
		Name:        name,
		Team:        cell(row, "team"),
		Position:    model.ParsePosition(cell(row, "position")),
		Age:         age,
		Nationality: nationality,
		Goals:       goals,
		Assists:     assists,
		Penalties:   parseInt(cell(row, "pens_made")),
		XG:          xg,
		XA:          xa,
		Games:       parseInt(cell(row, "games")),
		Minutes:     minutes,
		Source:      "fbref",
	}
	p.SetLeague(league)
	return p, true
}

func cell(row *goquery.Selection, stat string) string {
	return strings.TrimSpace(row.Find(fmt.Sprintf("[data-stat='%s']", stat)).First().Text())
}

func parseInt(s string) int {
	v, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
