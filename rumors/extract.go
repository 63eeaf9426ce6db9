package rumors

import (
	"regexp"
	"strings"
	"time"

	"github.com/RealRedbaron07/scoutlens-app/model"
	"github.com/RealRedbaron07/scoutlens-app/platforms/newsfeed"
	"github.com/google/uuid"
)

const (
	unknownClub  = "Unknown"
	multipleClub = "Multiple Clubs"
	undisclosed  = "Fee undisclosed"
	freeTransfer = "Free (contract expires)"
)

var (
	transferKeywords = []string{
		"transfer", "signing", "deal", "move", "join", "leave", "exit",
		"contract", "agreement", "target", "interest", "rumor", "rumour",
		"bid", "offer", "negotiation", "talks", "linked", "set to", "agreed",
	}
	hotKeywords = []string{"confirmed", "done deal", "agreed", "signed", "complete"}

	// Outlets whose stories are marked as verified.
	trustedSources = []string{"BBC Sport", "Sky Sports"}

	club = `([A-Z][\p{L}]+(?:\s+[A-Z][\p{L}]+)?)`

	playerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`([A-Z][\p{L}]+ (?:van|von|de|da|di|del|der|den|dos|le|la|ten) [A-Z][\p{L}]+)`),
		regexp.MustCompile(`([A-Z][\p{L}]+ [A-Z][\p{L}]+(?:-[A-Z][\p{L}]+)?)`),
	}
	fromPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?i:from|at|leave|leaving|exit|departure from)\s+` + club),
		regexp.MustCompile(club + `\s+(?i:star|player|defender|midfielder|forward|striker|winger|goalkeeper)\b`),
	}
	toPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?i:to|join|joins|sign for|move to|linked with|target for)\s+` + club),
		regexp.MustCompile(`\b(?i:set for|agreed with|deal with)\s+` + club),
		regexp.MustCompile(`^` + club + `\s+(?i:agree|agreed|sign|signs|complete|completes|bid|make|eye|in talks)\b`),
	}
	feePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:€|£|\$)\s*(\d+(?:\.\d+)?)\s*(?:m\b|million)`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:million|m)\s*(?:euros|pounds|€|£|\$)`),
	}
	freePatterns = regexp.MustCompile(`(?i)free\s+(?:transfer|agent|deal)|contract\s+expires`)
)

// IsTransferRelated reports whether a story looks like transfer news.
func IsTransferRelated(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	for _, k := range transferKeywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// FromNewsItem builds a rumor from a transfer story. Returns false when the
// story is not about a transfer or no player name can be found in its title.
func FromNewsItem(item newsfeed.Item, now time.Time) (model.Rumor, bool) {
	if !IsTransferRelated(item.Title, item.Description) {
		return model.Rumor{}, false
	}

	player := firstMatch(playerPatterns, item.Title, "")
	if player == "" {
		return model.Rumor{}, false
	}

	combined := item.Title + ". " + item.Description
	from := firstMatch(fromPatterns, combined, unknownClub, player)
	to := firstMatch(toPatterns, item.Title, "", player, from)
	if to == "" {
		to = firstMatch(toPatterns, combined, multipleClub, player, from)
	}

	status := model.RUMOR_WARM
	lower := strings.ToLower(combined)
	for _, k := range hotKeywords {
		if strings.Contains(lower, k) {
			status = model.RUMOR_HOT
			break
		}
	}

	date := item.Date
	if date == "" {
		date = now.Format(time.DateOnly)
	}

	return model.Rumor{
		ID:         "rumor_" + uuid.NewString(),
		Player:     player,
		From:       from,
		To:         to,
		Fee:        extractFee(combined),
		Status:     status,
		Confidence: status.DefaultConfidence(),
		Source:     item.Source,
		Date:       date,
		Verified:   isTrusted(item.Source),
		Expires:    now.AddDate(0, 0, DefaultExpiresInDays).Format(time.DateOnly),
		Link:       item.Link,
	}, true
}

// firstMatch returns the first capture of the patterns, tried in order, that
// is not one of the excluded values.
func firstMatch(patterns []*regexp.Regexp, text, fallback string, exclude ...string) string {
	for _, p := range patterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			candidate := strings.TrimSpace(m[1])
			if excluded(candidate, exclude) {
				continue
			}
			return candidate
		}
	}
	return fallback
}

func excluded(candidate string, exclude []string) bool {
	for _, e := range exclude {
		if e != "" && (strings.Contains(e, candidate) || strings.Contains(candidate, e)) {
			return true
		}
	}
	return false
}

func extractFee(text string) string {
	if freePatterns.MatchString(text) {
		return freeTransfer
	}
	for _, p := range feePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return "€" + m[1] + "M"
		}
	}
	return undisclosed
}

func isTrusted(source string) bool {
	for _, s := range trustedSources {
		if strings.EqualFold(s, source) {
			return true
		}
	}
	return false
}
