package rumors

import (
	"strings"
	"testing"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms/newsfeed"
)

func TestIsTransferRelated(t *testing.T) {
	tests := map[string]struct {
		title       string
		description string
		expected    bool
	}{
		"transfer in title":       {title: "Transfer news: latest", expected: true},
		"keyword in description":  {title: "Arsenal news", description: "Arteta confirms talks over a new striker", expected: true},
		"case insensitive":        {title: "LINKED with a move", expected: true},
		"match report":            {title: "Liverpool 2-0 Brighton", description: "Salah scores again", expected: false},
		"international break":     {title: "Premier League table after the weekend", description: "How every side stands going into the international break.", expected: false},
		"set to without transfer": {title: "Salah set to start", expected: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := IsTransferRelated(tc.title, tc.description); got != tc.expected {
				t.Errorf("wanted: '%v', got: '%v'", tc.expected, got)
			}
		})
	}
}

func TestFromNewsItem(t *testing.T) {
	tests := map[string]struct {
		item     newsfeed.Item
		expected model.Rumor
	}{
		"agreed fee": {
			item: newsfeed.Item{
				Title:       "Liverpool agreed deal for Florian Wirtz from Leverkusen",
				Description: "Liverpool have agreed a €150m fee with Leverkusen for the Germany playmaker.",
				Link:        "https://www.bbc.co.uk/sport/football/articles/c1",
				Date:        "2024-11-14",
				Source:      "BBC Sport",
			},
			expected: model.Rumor{
				Player:     "Florian Wirtz",
				From:       "Leverkusen",
				To:         "Liverpool",
				Fee:        "€150M",
				Status:     model.RUMOR_HOT,
				Confidence: 75,
				Source:     "BBC Sport",
				Date:       "2024-11-14",
				Verified:   true,
				Expires:    "2024-12-15",
				Link:       "https://www.bbc.co.uk/sport/football/articles/c1",
			},
		},
		"linked with": {
			item: newsfeed.Item{
				Title:       "Viktor Gyokeres linked with Arsenal after Sporting hat-trick",
				Description: "Arsenal are monitoring the striker ahead of a January bid.",
				Date:        "2024-11-13",
				Source:      "Transfer Blog",
			},
			expected: model.Rumor{
				Player:     "Viktor Gyokeres",
				From:       "Unknown",
				To:         "Arsenal",
				Fee:        "Fee undisclosed",
				Status:     model.RUMOR_WARM,
				Confidence: 50,
				Source:     "Transfer Blog",
				Date:       "2024-11-13",
				Expires:    "2024-12-15",
			},
		},
		"free transfer": {
			item: newsfeed.Item{
				Title:       "Jonathan David to leave Lille on a free transfer",
				Description: "The forward's contract expires in the summer.",
				Source:      "Sky Sports",
			},
			expected: model.Rumor{
				Player:     "Jonathan David",
				From:       "Lille",
				To:         "Multiple Clubs",
				Fee:        "Free (contract expires)",
				Status:     model.RUMOR_WARM,
				Confidence: 50,
				Source:     "Sky Sports",
				Date:       "2024-11-15",
				Verified:   true,
				Expires:    "2024-12-15",
			},
		},
		"name with particle": {
			item: newsfeed.Item{
				Title:  "Virgil van Dijk in contract talks",
				Source: "BBC Sport",
				Date:   "2024-11-10",
			},
			expected: model.Rumor{
				Player:     "Virgil van Dijk",
				From:       "Unknown",
				To:         "Multiple Clubs",
				Fee:        "Fee undisclosed",
				Status:     model.RUMOR_WARM,
				Confidence: 50,
				Source:     "BBC Sport",
				Date:       "2024-11-10",
				Verified:   true,
				Expires:    "2024-12-15",
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := FromNewsItem(tc.item, testNow)
			if !ok {
				t.Fatalf("expected a rumor from %v", tc.item)
			}
			if !strings.HasPrefix(got.ID, "rumor_") || len(got.ID) <= len("rumor_") {
				t.Errorf("unexpected id: '%s'", got.ID)
			}
			got.ID = ""
			if got != tc.expected {
				t.Errorf("wanted: '%v', got: '%v'", tc.expected, got)
			}
		})
	}
}

func TestFromNewsItem_skipped(t *testing.T) {
	tests := map[string]newsfeed.Item{
		"not a transfer": {Title: "Premier League table after the weekend", Description: "How every side stands"},
		"no player name": {Title: "transfer window: all the done deals", Description: "every signing so far"},
	}

	for name, item := range tests {
		t.Run(name, func(t *testing.T) {
			if r, ok := FromNewsItem(item, testNow); ok {
				t.Errorf("expected no rumor, got: '%v'", r)
			}
		})
	}
}

func TestExtractFee(t *testing.T) {
	tests := map[string]struct {
		text     string
		expected string
	}{
		"euro millions": {text: "a €45.5m move", expected: "€45.5M"},
		"pounds word":   {text: "a £60 million bid", expected: "€60M"},
		"suffix":        {text: "worth 30m euros", expected: "€30M"},
		"free agent":    {text: "he is a free agent", expected: "Free (contract expires)"},
		"nothing":       {text: "an undisclosed fee", expected: "Fee undisclosed"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := extractFee(tc.text); got != tc.expected {
				t.Errorf("wanted: '%s', got: '%s'", tc.expected, got)
			}
		})
	}
}
