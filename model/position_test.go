package model

import "testing"

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input    string
		expected Position
	}{
		{input: "F", expected: POS_FW},
		{input: "FW", expected: POS_FW},
		{input: "FW,MF", expected: POS_FW},
		{input: "F M S", expected: POS_FW},
		{input: "Offence", expected: POS_FW},
		{input: "Attacker", expected: POS_FW},
		{input: "Centre-Forward", expected: POS_FW},
		{input: "Left Winger", expected: POS_FW},
		{input: "mf", expected: POS_MF},
		{input: "M S", expected: POS_MF},
		{input: "Midfield", expected: POS_MF},
		{input: "Defensive Midfield", expected: POS_MF},
		{input: "Attacking Midfield", expected: POS_MF},
		{input: "DF", expected: POS_DF},
		{input: "D", expected: POS_DF},
		{input: "Defence", expected: POS_DF},
		{input: "Defender", expected: POS_DF},
		{input: "Centre-Back", expected: POS_DF},
		{input: "GK", expected: POS_GK},
		{input: "Goalkeeper", expected: POS_GK},
		{input: "", expected: POS_UNKNOWN},
		{input: "Coach", expected: POS_UNKNOWN},
	}

	for _, tc := range tests {
		a := ParsePosition(tc.input)
		if a != tc.expected {
			t.Errorf("input: '%s', expected: '%s', got '%s'", tc.input, tc.expected, a)
		}
	}
}
