// Package engine provides the play-session orchestrator that wires rule
// resolution and state reduction into a single trigger step.
package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nholm/questdeck/engine/grid"
	"github.com/nholm/questdeck/engine/logic"
	"github.com/nholm/questdeck/engine/session"
	"github.com/nholm/questdeck/types"
)

// Engine holds the immutable quest definition and the current session
// snapshot. The snapshot is replaced, never mutated, on every trigger.
type Engine struct {
	Defs       *types.QuestDef
	Session    session.State
	SessionID  string
	Turn       int
	TriggerLog []string
}

// New creates an engine with a fresh session for the given quest.
func New(defs *types.QuestDef) *Engine {
	return &Engine{
		Defs:      defs,
		Session:   session.NewSession(),
		SessionID: uuid.NewString(),
	}
}

// Search fires the onSearch trigger for one tile.
func (e *Engine) Search(x, y int) types.Result {
	return e.HandleTrigger(types.Trigger{
		Type:  types.TriggerSearch,
		Tiles: []types.Tile{{X: x, Y: y}},
	})
}

// EnterTile fires the onEnter trigger for one tile and always discovers
// the entered tile itself, even when no rule fires.
func (e *Engine) EnterTile(x, y int) types.Result {
	result := e.HandleTrigger(types.Trigger{
		Type:  types.TriggerEnter,
		Tiles: []types.Tile{{X: x, Y: y}},
	})
	e.Session = session.Reduce(e.Session, session.RevealTiles([]types.Tile{{X: x, Y: y}}))
	return result
}

// HandleTrigger runs one full step: resolve the trigger against the
// quest's rules, turn the effect descriptor into session commands (one
// per non-empty collection), fold them through the reducer, and collect
// output lines for the frontends.
func (e *Engine) HandleTrigger(t types.Trigger) types.Result {
	var result types.Result

	// 1. Select the rules in play. A trigger aimed at a tile consults
	// the rules of icons whose footprint covers that tile; a trigger
	// aimed at an icon consults that icon's rules; otherwise all rules.
	rules := e.rulesFor(t)

	// 2. Resolve intent. Pure: no session access beyond the flag snapshot.
	effect := logic.Resolve(logic.Input{
		Trigger: t,
		Rules:   rules,
		Items:   e.Defs.Items,
		Flags:   e.Session.Flags,
		Notes:   e.Defs.Notes,
		Cols:    e.Defs.Cols,
		Rows:    e.Defs.Rows,
	})
	result.Effect = effect

	// 3. Apply: one command per non-empty collection.
	for _, cmd := range e.commandsFor(effect) {
		e.Session = session.Reduce(e.Session, cmd)
	}

	// 4. Narrate the newly revealed content.
	result.Output = e.describeEffect(effect)

	// 5. Log the trigger for save/replay.
	e.TriggerLog = append(e.TriggerLog, formatTrigger(t))
	e.Turn++

	return result
}

// rulesFor narrows the quest's rule library for one trigger. The
// resolution engine itself filters only by trigger type; tile and icon
// scoping is a host decision made here.
func (e *Engine) rulesFor(t types.Trigger) []types.IconRule {
	if t.IconID != "" {
		var rules []types.IconRule
		for _, r := range e.Defs.Rules {
			if r.IconID == t.IconID {
				rules = append(rules, r)
			}
		}
		return rules
	}

	if len(t.Tiles) > 0 {
		hit := map[string]bool{}
		for _, tile := range t.Tiles {
			region := grid.Rect{MinX: tile.X, MinY: tile.Y, MaxX: tile.X, MaxY: tile.Y}
			for _, id := range grid.ItemsInRegion(e.Defs.Items, region) {
				hit[id] = true
			}
		}
		var rules []types.IconRule
		for _, r := range e.Defs.Rules {
			if hit[r.IconID] {
				rules = append(rules, r)
			}
		}
		return rules
	}

	return e.Defs.Rules
}

// commandsFor converts an effect descriptor into session commands.
func (e *Engine) commandsFor(effect types.Effect) []session.Command {
	var cmds []session.Command

	if len(effect.RevealTiles) > 0 {
		cmds = append(cmds, session.RevealTiles(effect.RevealTiles))
	}
	for _, id := range effect.RevealEntities {
		cmds = append(cmds, session.RevealEntity(id, e.cardForIcon(id)))
	}
	for _, id := range effect.CardIDs {
		cmds = append(cmds, session.RevealCard(e.cardReveal(id)))
	}
	for _, flag := range effect.FlagsToSet {
		cmds = append(cmds, session.SetFlag(flag))
	}
	if len(effect.NoteIDs) > 0 {
		cmds = append(cmds, session.AddNarrative(effect.NoteIDs))
	}
	for _, id := range effect.Objectives {
		cmds = append(cmds, session.AddObjective(id))
	}

	return cmds
}

// cardForIcon finds the card attached to an icon's item, falling back to
// a bare reveal record when the icon has no card of its own.
func (e *Engine) cardForIcon(iconID string) session.CardReveal {
	for _, item := range e.Defs.Items {
		if item.ID != iconID {
			continue
		}
		if card, ok := e.card(item.Asset); ok {
			return session.CardReveal{ID: card.ID, Title: card.Title, Turn: e.Turn}
		}
	}
	return session.CardReveal{}
}

func (e *Engine) cardReveal(cardID string) session.CardReveal {
	if card, ok := e.card(cardID); ok {
		return session.CardReveal{ID: card.ID, Title: card.Title, Turn: e.Turn}
	}
	// Unknown ids are recorded as-is; validation is not the engine's job.
	return session.CardReveal{ID: cardID, Title: cardID, Turn: e.Turn}
}

func (e *Engine) card(id string) (types.Card, bool) {
	for _, c := range e.Defs.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return types.Card{}, false
}

func (e *Engine) note(id string) (types.QuestNote, bool) {
	for _, n := range e.Defs.Notes {
		if n.ID == id {
			return n, true
		}
	}
	return types.QuestNote{}, false
}

// describeEffect renders the newly revealed content as output lines.
func (e *Engine) describeEffect(effect types.Effect) []string {
	var output []string

	if n := len(effect.RevealTiles); n > 0 {
		output = append(output, fmt.Sprintf("%d tile(s) revealed.", n))
	}
	for _, id := range effect.RevealEntities {
		output = append(output, fmt.Sprintf("Revealed: %s.", e.itemName(id)))
	}
	for _, id := range effect.NoteIDs {
		if note, ok := e.note(id); ok {
			output = append(output, fmt.Sprintf("Note %d: %s", note.Number, note.Text))
		} else {
			output = append(output, fmt.Sprintf("Note revealed: %s.", id))
		}
	}
	for _, id := range effect.CardIDs {
		output = append(output, fmt.Sprintf("Card drawn: %s.", e.cardReveal(id).Title))
	}
	for _, id := range effect.Objectives {
		output = append(output, fmt.Sprintf("New objective: %s.", id))
	}

	if len(output) == 0 {
		output = append(output, "Nothing happens.")
	}
	return output
}

// itemName returns the display name of an icon's item.
func (e *Engine) itemName(iconID string) string {
	for _, item := range e.Defs.Items {
		if item.ID == iconID {
			if card, ok := e.card(item.Asset); ok && card.Title != "" {
				return card.Title
			}
			if item.Asset != "" {
				return item.Asset
			}
		}
	}
	return iconID
}

// Restore replaces the engine's session and bookkeeping, typically after
// loading a save.
func (e *Engine) Restore(s session.State, sessionID string, turn int, log []string) {
	e.Session = s
	if sessionID != "" {
		e.SessionID = sessionID
	}
	e.Turn = turn
	e.TriggerLog = log
}

func formatTrigger(t types.Trigger) string {
	s := t.Type
	for _, tile := range t.Tiles {
		s += " " + grid.Key(tile)
	}
	if t.IconID != "" {
		s += " @" + t.IconID
	}
	return s
}
