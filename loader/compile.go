// Package loader loads Lua quest content into Go structs at load time.
// The Lua VM is discarded after loading — zero Lua at play time.
package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nholm/questdeck/types"
)

// rawItem holds an item table before compilation.
type rawItem struct {
	id    string
	table *lua.LTable
}

// rawNote holds a note table before compilation.
type rawNote struct {
	id    string
	table *lua.LTable
}

// rawCard holds a card table before compilation.
type rawCard struct {
	id    string
	table *lua.LTable
}

// rawRule holds a logic rule before compilation.
type rawRule struct {
	iconID      string
	triggerType string
	table       *lua.LTable
	order       int
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// compile turns the collected raw Lua tables into a QuestDef.
func compile(coll *collector, opts Options) (*types.QuestDef, error) {
	if coll.quest == nil {
		return nil, fmt.Errorf("no Quest {} block found")
	}

	defs := &types.QuestDef{
		Title:   getString(coll.quest, "title"),
		Author:  getString(coll.quest, "author"),
		Version: getString(coll.quest, "version"),
		Intro:   getString(coll.quest, "intro"),
		Cols:    getInt(coll.quest, "cols"),
		Rows:    getInt(coll.quest, "rows"),
	}

	// Grid bounds fall back to app-level defaults when the quest omits
	// them.
	if defs.Cols <= 0 {
		defs.Cols = opts.DefaultCols
	}
	if defs.Rows <= 0 {
		defs.Rows = opts.DefaultRows
	}

	for _, raw := range coll.items {
		defs.Items = append(defs.Items, compileItem(raw))
	}
	for _, raw := range coll.notes {
		defs.Notes = append(defs.Notes, types.QuestNote{
			ID:     raw.id,
			Number: getInt(raw.table, "number"),
			Text:   getString(raw.table, "text"),
			IconID: getString(raw.table, "icon"),
		})
	}
	for _, raw := range coll.cards {
		defs.Cards = append(defs.Cards, types.Card{
			ID:    raw.id,
			Title: getString(raw.table, "title"),
			Body:  getString(raw.table, "body"),
			Kind:  getString(raw.table, "kind"),
		})
	}
	for _, raw := range coll.rules {
		defs.Rules = append(defs.Rules, compileRule(raw))
	}

	return defs, nil
}

func compileItem(raw rawItem) types.QuestItem {
	item := types.QuestItem{
		ID:       raw.id,
		Asset:    getString(raw.table, "asset"),
		X:        getInt(raw.table, "x"),
		Y:        getInt(raw.table, "y"),
		BaseW:    getInt(raw.table, "w"),
		BaseH:    getInt(raw.table, "h"),
		Rotation: getInt(raw.table, "rotation"),
		OffsetX:  getNumber(raw.table, "offset_x"),
		OffsetY:  getNumber(raw.table, "offset_y"),
	}
	if item.BaseW < 1 {
		item.BaseW = 1
	}
	if item.BaseH < 1 {
		item.BaseH = 1
	}
	return item
}

func compileRule(raw rawRule) types.IconRule {
	rule := types.IconRule{
		IconID:      raw.iconID,
		TriggerType: raw.triggerType,
		Mode:        types.ConditionsMode(getString(raw.table, "mode")),
		SourceOrder: raw.order,
	}
	if rule.Mode == "" {
		rule.Mode = types.ModeAll
	}

	if conds := getTable(raw.table, "conditions"); conds != nil {
		conds.ForEach(func(_, v lua.LValue) {
			if tbl, ok := v.(*lua.LTable); ok {
				rule.Conditions = append(rule.Conditions, compileCondition(tbl))
			}
		})
	}

	if acts := getTable(raw.table, "actions"); acts != nil {
		acts.ForEach(func(_, v lua.LValue) {
			if tbl, ok := v.(*lua.LTable); ok {
				rule.Actions = append(rule.Actions, compileAction(tbl))
			}
		})
	}

	return rule
}

// compileCondition maps a raw condition table to its typed variant.
// Unknown types are kept as-is; resolution treats them as non-matching.
func compileCondition(tbl *lua.LTable) types.Condition {
	kind := types.ConditionKind(getString(tbl, "type"))
	c := types.Condition{Kind: kind}

	switch kind {
	case types.CondFlagSet, types.CondFlagUnset:
		c.Operand = getString(tbl, "flag")
	case types.CondFlagIs:
		c.Operand = getString(tbl, "flag")
		c.Value = getBool(tbl, "value", false)
	case types.CondItemPresent:
		c.Operand = getString(tbl, "item")
	case types.CondNotePresent:
		c.Operand = getString(tbl, "note")
	default:
		c.Operand = getString(tbl, "operand")
	}
	return c
}

// compileAction maps a raw action table to its typed variant. Unknown
// types compile to an Action the resolution engine will ignore.
func compileAction(tbl *lua.LTable) types.Action {
	kind := types.ActionKind(getString(tbl, "type"))
	a := types.Action{Kind: kind}

	switch kind {
	case types.ActRevealTiles:
		a.Tiles = compileTiles(getTable(tbl, "tiles"))
	case types.ActRevealRadius:
		a.Radius = getInt(tbl, "radius")
	case types.ActRevealEntities:
		a.EntityIDs = compileStrings(getTable(tbl, "ids"))
	case types.ActAddNarrative:
		a.NoteIDs = compileStrings(getTable(tbl, "ids"))
	case types.ActRevealCard:
		a.CardIDs = compileStrings(getTable(tbl, "ids"))
	case types.ActSetFlag:
		a.Flag = getString(tbl, "flag")
	case types.ActAddObjective:
		a.ObjectiveID = getString(tbl, "objective")
	}
	return a
}

// compileTiles accepts entries as {2, 3} pairs or {x = 2, y = 3} tables.
func compileTiles(tbl *lua.LTable) []types.Tile {
	if tbl == nil {
		return nil
	}
	var tiles []types.Tile
	tbl.ForEach(func(_, v lua.LValue) {
		entry, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		if entry.RawGetString("x") != lua.LNil {
			tiles = append(tiles, types.Tile{
				X: getInt(entry, "x"),
				Y: getInt(entry, "y"),
			})
			return
		}
		x, okX := entry.RawGetInt(1).(lua.LNumber)
		y, okY := entry.RawGetInt(2).(lua.LNumber)
		if okX && okY {
			tiles = append(tiles, types.Tile{X: int(x), Y: int(y)})
		}
	})
	return tiles
}

func compileStrings(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	tbl.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}
