package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// quest title, fog-of-war progress, revealed cards, and turn count.
func (m Model) renderStatusBar() string {
	s := m.engine.Session
	defs := m.engine.Defs

	total := defs.Cols * defs.Rows
	left := fmt.Sprintf(" %s | Tiles: %d/%d", defs.Title, s.DiscoveredTiles.Len(), total)
	right := fmt.Sprintf("T:%d ", m.engine.Turn)

	if len(s.RevealedCards) > 0 {
		var titles []string
		for _, c := range s.RevealedCards {
			titles = append(titles, c.Title)
		}
		candidate := fmt.Sprintf("Cards: %s | T:%d ", strings.Join(titles, ", "), m.engine.Turn)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Cards: %d | T:%d ", len(s.RevealedCards), m.engine.Turn)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
