package understat

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/metrics"
	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms"
	"github.com/RealRedbaron07/scoutlens-app/platforms/internal/fetch"
	"github.com/gocolly/colly"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const (
	UnderstatURL = "https://understat.com"

	requestDelay = 2 * time.Second
)

var (
	ErrNoPlayerData = errors.New("no player data in page")

	// The page embeds the players as an escaped string literal that is handed to JSON.parse.
	playersDataRE = regexp.MustCompile(`(?s)playersData\s*=\s*JSON\.parse\('(.+?)'\)`)

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

type Client interface {
	// LoadLeaguePlayers returns every player of the league in the season,
	// regardless of the minutes played.
	LoadLeaguePlayers(ctx context.Context, league *model.League, season string) ([]model.Player, error)
	// LoadLeagues loads several leagues with one collector, one page at a
	// time. Leagues that fail are logged and skipped.
	LoadLeagues(ctx context.Context, leagues []*model.League, season string) ([]model.Player, error)
}

type client struct {
	url   string
	delay time.Duration
}

func New() (Client, error) {
	return &client{url: UnderstatURL, delay: requestDelay}, nil
}

func NewForTest(url string) Client {
	return &client{url: url}
}

func (c *client) LoadLeaguePlayers(ctx context.Context, league *model.League, season string) ([]model.Player, error) {
	if league.UnderstatID == "" {
		return nil, fmt.Errorf("%s is not covered by understat", league)
	}
	pages, err := c.collect(ctx, []*model.League{league}, season)
	if err != nil {
		return nil, err
	}
	pg := pages[league.Key]
	if pg.err != nil {
		return nil, fmt.Errorf("error loading league page for %s: %w", league.Key, pg.err)
	}
	return parsePlayers(pg.body, league)
}

func (c *client) LoadLeagues(ctx context.Context, leagues []*model.League, season string) ([]model.Player, error) {
	covered := make([]*model.League, 0, len(leagues))
	for _, l := range leagues {
		if l.UnderstatID != "" {
			covered = append(covered, l)
		}
	}

	pages, err := c.collect(ctx, covered, season)
	if err != nil {
		return nil, err
	}

	result := make([]model.Player, 0, len(covered)*500)
	for _, l := range covered {
		pg := pages[l.Key]
		err := pg.err
		var players []model.Player
		if err == nil {
			players, err = parsePlayers(pg.body, l)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"source": platforms.SourceUnderstat,
				"league": l.Key,
			}).WithError(err).Warn("skipping league")
			continue
		}
		result = append(result, players...)
	}
	return result, nil
}

type page struct {
	body []byte
	err  error
}

// collect fetches the league pages, keyed by league key.
func (c *client) collect(ctx context.Context, leagues []*model.League, season string) (map[string]page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		pages  = make(map[string]page, len(leagues))
		byURL  = make(map[string]string, len(leagues))
		urls   = make([]string, 0, len(leagues))
		year   = model.SeasonYear(season)
	)
	for _, l := range leagues {
		u := fmt.Sprintf("%s/league/%s/%s", c.url, l.UnderstatID, year)
		byURL[u] = l.Key
		urls = append(urls, u)
	}

	collector := colly.NewCollector(colly.UserAgent(fetch.UserAgent), colly.Async(true))
	if err := collector.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: c.delay}); err != nil {
		return nil, fmt.Errorf("error configuring understat collector: %w", err)
	}
	collector.OnResponse(func(r *colly.Response) {
		metrics.CountScrape(platforms.SourceUnderstat, nil)
		mu.Lock()
		defer mu.Unlock()
		pages[byURL[r.Request.URL.String()]] = page{body: r.Body}
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r.StatusCode != 0 {
			err = &fetch.StatusError{Code: r.StatusCode}
		}
		metrics.CountScrape(platforms.SourceUnderstat, err)
		mu.Lock()
		defer mu.Unlock()
		pages[byURL[r.Request.URL.String()]] = page{err: err}
	})

	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			break
		}
		if err := collector.Visit(u); err != nil {
			mu.Lock()
			pages[byURL[u]] = page{err: err}
			mu.Unlock()
		}
	}
	collector.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, u := range urls {
		if _, ok := pages[byURL[u]]; !ok {
			pages[byURL[u]] = page{err: ErrNoPlayerData}
		}
	}
	return pages, nil
}

type rawPlayer struct {
	ID         string `json:"id"`
	PlayerName string `json:"player_name"`
	Games      string `json:"games"`
	Time       string `json:"time"`
	Goals      string `json:"goals"`
	XG         string `json:"xG"`
	Assists    string `json:"assists"`
	XA         string `json:"xA"`
	Position   string `json:"position"`
	TeamTitle  string `json:"team_title"`
	NPG        string `json:"npg"`
}

func parsePlayers(body []byte, league *model.League) ([]model.Player, error) {
	m := playersDataRE.FindSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("%s: %w", league.Key, ErrNoPlayerData)
	}

	var raw []rawPlayer
	if err := json.Unmarshal([]byte(unescape(string(m[1]))), &raw); err != nil {
		return nil, fmt.Errorf("error decoding player data for %s: %w", league.Key, err)
	}

	result := make([]model.Player, 0, len(raw))
	for _, r := range raw {
		if r.PlayerName == "" {
			continue
		}
		goals := atoi(r.Goals)
		p := model.Player{
			Name:        r.PlayerName,
			Team:        r.TeamTitle,
			Position:    model.ParsePosition(r.Position),
			Age:         model.DefaultAge,
			Goals:       goals,
			Assists:     atoi(r.Assists),
			Penalties:   max(goals-atoi(r.NPG), 0),
			XG:          atof(r.XG),
			XA:          atof(r.XA),
			Games:       atoi(r.Games),
			Minutes:     atoi(r.Time),
			Source:      "understat",
		}
		p.SetLeague(league)
		result = append(result, p)
	}
	return result, nil
}

// unescape decodes the \xNN, \uNNNN, and single character escapes of a
// javascript string literal.
func unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteRune(rune(v))
					i += 2
					continue
				}
			}
			b.WriteString(`\x`)
		case 'u':
			if i+4 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+5], 16, 16); err == nil {
					b.WriteRune(rune(v))
					i += 4
					continue
				}
			}
			b.WriteString(`\u`)
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func atoi(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func atof(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
