// Package parser converts play-console command strings into Command
// structs. Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strconv"
	"strings"
)

// Command is the parsed representation of a console input line.
type Command struct {
	Verb    string
	X, Y    int
	HasTile bool
	Arg     string // trailing non-coordinate argument
}

var verbAliases = map[string]string{
	// Search
	"s":       "search",
	"check":   "search",
	"examine": "search",
	"probe":   "search",

	// Enter / move
	"e":    "enter",
	"go":   "enter",
	"move": "enter",
	"step": "enter",

	// Look / map
	"l":   "look",
	"map": "look",

	// Listings
	"f":          "flags",
	"c":          "cards",
	"deck":       "cards",
	"o":          "objectives",
	"goals":      "objectives",
	"n":          "notes",
	"narratives": "notes",

	// Help
	"h": "help",
	"?": "help",
}

// Parse converts a raw input line into a Command. Coordinates may be
// given as "x y" or "x,y". Unparseable coordinates leave HasTile false
// and the raw text in Arg.
func Parse(input string) Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{}
	}

	words := strings.Fields(strings.ToLower(input))
	verb := words[0]
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	rest := words[1:]

	cmd := Command{Verb: verb}

	if x, y, ok := parseTile(rest); ok {
		cmd.X, cmd.Y = x, y
		cmd.HasTile = true
		return cmd
	}

	cmd.Arg = strings.Join(rest, " ")
	return cmd
}

// parseTile accepts ["2" "3"] or ["2,3"].
func parseTile(words []string) (x, y int, ok bool) {
	switch len(words) {
	case 1:
		parts := strings.SplitN(words[0], ",", 2)
		if len(parts) != 2 {
			return 0, 0, false
		}
		return parsePair(parts[0], parts[1])
	case 2:
		return parsePair(strings.TrimSuffix(words[0], ","), words[1])
	default:
		return 0, 0, false
	}
}

func parsePair(a, b string) (int, int, bool) {
	x, errX := strconv.Atoi(a)
	y, errY := strconv.Atoi(b)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return x, y, true
}
