package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleNote = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleCard = lipgloss.NewStyle().
			Bold(true)

	styleMapFog = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	styleMapOpen = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	styleMapItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("172")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindNote
	kindCard
	kindMap
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Note "):
		return kindNote
	case strings.HasPrefix(line, "Card drawn:"),
		strings.HasPrefix(line, "Revealed:"):
		return kindCard
	case isMapRow(line):
		return kindMap
	case strings.HasPrefix(line, "Unknown command"),
		strings.HasPrefix(line, "Search where?"),
		strings.HasPrefix(line, "Enter where?"):
		return kindError
	default:
		return kindNarrative
	}
}

// isMapRow reports whether a line is made only of map glyphs.
func isMapRow(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if r != '.' && r != '+' && r != '#' {
			return false
		}
	}
	return true
}

// styledMapRow renders one map row with per-glyph fog/open/item colors.
func styledMapRow(row string) string {
	var b strings.Builder
	for _, r := range row {
		switch r {
		case '.':
			b.WriteString(styleMapFog.Render("."))
		case '+':
			b.WriteString(styleMapOpen.Render("+"))
		case '#':
			b.WriteString(styleMapItem.Render("#"))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// styledPlayerInput renders the echoed player input in green with "> " prefix.
func styledPlayerInput(input string) string {
	return stylePlayerInput.Render("> " + input)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
