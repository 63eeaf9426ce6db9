package model

import (
	"strings"
)

type Position string

const (
	POS_UNKNOWN Position = "UNK"
	POS_FW      Position = "F"
	POS_MF      Position = "M"
	POS_DF      Position = "D"
	POS_GK      Position = "G"
)

// ParsePosition understands the vocabularies of all of the data sources:
// single letters (Understat), two letter codes (FBref), and words like
// "Offence", "Midfield" or "Centre-Back" (football-data, Transfermarkt,
// API-Football). For multi-position strings like "FW,MF" or "F M S" the
// first position wins.
func ParsePosition(pos string) Position {
	pos = strings.ToLower(strings.TrimSpace(pos))
	if i := strings.IndexAny(pos, ", "); i > 0 && len(pos[:i]) <= 2 {
		pos = pos[:i]
	}

	switch pos {
	case "f", "fw", "st", "cf":
		return POS_FW
	case "m", "mf", "am", "dm", "cm":
		return POS_MF
	case "d", "df", "cb", "lb", "rb":
		return POS_DF
	case "g", "gk":
		return POS_GK
	}

	switch {
	case strings.Contains(pos, "goal"), strings.Contains(pos, "keeper"):
		return POS_GK
	case strings.Contains(pos, "mid"):
		return POS_MF
	case strings.Contains(pos, "back"), strings.Contains(pos, "defen"):
		return POS_DF
	case strings.Contains(pos, "forward"), strings.Contains(pos, "attack"),
		strings.Contains(pos, "offen"), strings.Contains(pos, "striker"),
		strings.Contains(pos, "wing"):
		return POS_FW
	default:
		return POS_UNKNOWN
	}
}
