package engine

import (
	"reflect"
	"testing"

	"github.com/nholm/questdeck/types"
)

// testQuest is a small two-icon quest used across the engine tests: a
// searchable chest at (2,3) and an enter-triggered trap at (5,5).
func testQuest() *types.QuestDef {
	return &types.QuestDef{
		Title: "The Hollow Crypt",
		Cols:  26,
		Rows:  19,
		Items: []types.QuestItem{
			{ID: "icon-1", Asset: "card-1", X: 2, Y: 3, BaseW: 1, BaseH: 1},
			{ID: "icon-2", Asset: "card-2", X: 5, Y: 5, BaseW: 2, BaseH: 2},
		},
		Notes: []types.QuestNote{
			{ID: "note-1", Number: 1, Text: "The lid is scratched from the inside."},
		},
		Cards: []types.Card{
			{ID: "card-1", Title: "Iron Chest", Kind: "treasure"},
			{ID: "card-2", Title: "Pit Trap", Kind: "trap"},
		},
		Rules: []types.IconRule{
			{
				IconID:      "icon-1",
				TriggerType: types.TriggerSearch,
				Mode:        types.ModeAll,
				Conditions: []types.Condition{
					{Kind: types.CondFlagUnset, Operand: "chest-searched"},
				},
				Actions: []types.Action{
					{Kind: types.ActRevealTiles, Tiles: []types.Tile{{X: 2, Y: 3}}},
					{Kind: types.ActRevealEntities, EntityIDs: []string{"icon-1"}},
					{Kind: types.ActAddNarrative, NoteIDs: []string{"note-1"}},
					{Kind: types.ActRevealCard, CardIDs: []string{"card-1"}},
					{Kind: types.ActSetFlag, Flag: "chest-searched"},
					{Kind: types.ActAddObjective, ObjectiveID: "open-the-chest"},
				},
			},
			{
				IconID:      "icon-2",
				TriggerType: types.TriggerEnter,
				Mode:        types.ModeAll,
				Actions: []types.Action{
					{Kind: types.ActRevealEntities, EntityIDs: []string{"icon-2"}},
					{Kind: types.ActSetFlag, Flag: "trap-sprung"},
				},
			},
		},
	}
}

func TestNew_FreshSession(t *testing.T) {
	e := New(testQuest())

	if e.SessionID == "" {
		t.Error("SessionID should be assigned")
	}
	if e.Turn != 0 {
		t.Errorf("Turn = %d, want 0", e.Turn)
	}
	if e.Session.DiscoveredTiles.Len() != 0 {
		t.Error("fresh session should have no discovered tiles")
	}
}

func TestSearch_FiresIconRule(t *testing.T) {
	e := New(testQuest())

	result := e.Search(2, 3)

	if !e.Session.DiscoveredTile(types.Tile{X: 2, Y: 3}) {
		t.Error("tile (2,3) should be discovered")
	}
	if !e.Session.RevealedEntities.Has("icon-1") {
		t.Error("icon-1 should be revealed")
	}
	if !e.Session.Flag("chest-searched") {
		t.Error("chest-searched flag should be set")
	}
	if !e.Session.CardRevealed("card-1") {
		t.Error("card-1 should be in the revealed cards")
	}
	if !e.Session.Narratives.Has("note-1") {
		t.Error("note-1 should be in narratives")
	}
	if !e.Session.Objectives.Has("open-the-chest") {
		t.Error("objective should be recorded")
	}
	if len(result.Output) == 0 || result.Output[0] != "1 tile(s) revealed." {
		t.Errorf("unexpected output: %v", result.Output)
	}
}

func TestSearch_SecondTimeIsSuppressedByFlag(t *testing.T) {
	e := New(testQuest())
	e.Search(2, 3)

	result := e.Search(2, 3)

	if !reflect.DeepEqual(result.Output, []string{"Nothing happens."}) {
		t.Errorf("repeat search output = %v, want [Nothing happens.]", result.Output)
	}
	if got := len(e.Session.RevealedCards); got != 1 {
		t.Errorf("card should stay revealed once, got %d records", got)
	}
}

func TestSearch_EmptyTileDoesNothing(t *testing.T) {
	e := New(testQuest())

	result := e.Search(10, 10)

	if !reflect.DeepEqual(result.Output, []string{"Nothing happens."}) {
		t.Errorf("output = %v", result.Output)
	}
	if e.Session.DiscoveredTiles.Len() != 0 {
		t.Error("searching an empty tile should not discover it")
	}
}

func TestEnterTile_AlwaysDiscoversEnteredTile(t *testing.T) {
	e := New(testQuest())

	e.EnterTile(10, 10)

	if !e.Session.DiscoveredTile(types.Tile{X: 10, Y: 10}) {
		t.Error("entered tile should be discovered even with no rule")
	}
}

func TestEnterTile_FootprintCoversTrigger(t *testing.T) {
	e := New(testQuest())

	// icon-2 occupies (5,5)-(6,6); stepping on (6,6) still hits it.
	e.EnterTile(6, 6)

	if !e.Session.RevealedEntities.Has("icon-2") {
		t.Error("icon-2 should fire from any footprint tile")
	}
	if !e.Session.Flag("trap-sprung") {
		t.Error("trap-sprung flag should be set")
	}
}

func TestHandleTrigger_IconScopedTrigger(t *testing.T) {
	e := New(testQuest())

	e.HandleTrigger(types.Trigger{Type: types.TriggerSearch, IconID: "icon-1"})

	if !e.Session.Flag("chest-searched") {
		t.Error("icon-scoped trigger should fire icon-1's rule")
	}
	if e.Session.Flag("trap-sprung") {
		t.Error("icon-2's rule must not fire")
	}
}

func TestHandleTrigger_AdvancesTurnAndLog(t *testing.T) {
	e := New(testQuest())

	e.Search(2, 3)
	e.EnterTile(5, 5)

	if e.Turn != 2 {
		t.Errorf("Turn = %d, want 2", e.Turn)
	}
	want := []string{"onSearch 2,3", "onEnter 5,5"}
	if !reflect.DeepEqual(e.TriggerLog, want) {
		t.Errorf("TriggerLog = %v, want %v", e.TriggerLog, want)
	}
}

func TestHandleTrigger_SnapshotReplaced(t *testing.T) {
	e := New(testQuest())
	before := e.Session

	e.Search(2, 3)

	if before.DiscoveredTiles.Len() != 0 {
		t.Error("previous snapshot must not be mutated")
	}
	if before.Flag("chest-searched") {
		t.Error("previous snapshot must not see new flags")
	}
}

func TestDescribeEffect_NoteAndCardLines(t *testing.T) {
	e := New(testQuest())

	result := e.Search(2, 3)

	var foundNote, foundCard bool
	for _, line := range result.Output {
		if line == "Note 1: The lid is scratched from the inside." {
			foundNote = true
		}
		if line == "Card drawn: Iron Chest." {
			foundCard = true
		}
	}
	if !foundNote {
		t.Errorf("note line missing from %v", result.Output)
	}
	if !foundCard {
		t.Errorf("card line missing from %v", result.Output)
	}
}

func TestRestore_ReplacesSessionAndBookkeeping(t *testing.T) {
	e := New(testQuest())
	e.Search(2, 3)
	saved := e.Session
	savedTurn := e.Turn
	savedLog := append([]string(nil), e.TriggerLog...)

	restored := New(testQuest())
	restored.Restore(saved, "session-123", savedTurn, savedLog)

	if restored.SessionID != "session-123" {
		t.Errorf("SessionID = %q", restored.SessionID)
	}
	if restored.Turn != savedTurn {
		t.Errorf("Turn = %d, want %d", restored.Turn, savedTurn)
	}
	if !restored.Session.Flag("chest-searched") {
		t.Error("restored session should carry flags")
	}
	if !reflect.DeepEqual(restored.TriggerLog, savedLog) {
		t.Errorf("TriggerLog = %v", restored.TriggerLog)
	}
}

func TestRestore_KeepsSessionIDWhenEmpty(t *testing.T) {
	e := New(testQuest())
	original := e.SessionID

	e.Restore(e.Session, "", 0, nil)

	if e.SessionID != original {
		t.Error("empty sessionID should keep the generated one")
	}
}
