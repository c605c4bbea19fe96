package utils_test

import (
	"testing"

	"levelup/src-server/utils"
)

func TestCleanupString(t *testing.T) {
	for input, want := range map[string]string{
		"  board   game ":  "Board Game",
		"card game.":       "Card Game",
		"TABLETOP RPG":     "Tabletop Rpg",
		"":                 "",
		"miniatures\twar.": "Miniatures War",
	} {
		if got := utils.CleanupString(input); got != want {
			t.Errorf("%q: expected %q, got %q", input, want, got)
		}
	}
}
