package logic

import (
	"testing"

	"github.com/nholm/questdeck/types"
)

func condInput(flags map[string]bool) Input {
	return Input{
		Flags: flags,
		Items: []types.QuestItem{{ID: "icon-1", X: 2, Y: 3}},
		Notes: []types.QuestNote{{ID: "note-1", Number: 1, Text: "A draft of cold air."}},
	}
}

func TestEvalCondition_FlagSet(t *testing.T) {
	in := condInput(map[string]bool{"searched": true})

	if !evalCondition(types.Condition{Kind: types.CondFlagSet, Operand: "searched"}, in) {
		t.Error("flag_set should hold for a set flag")
	}
	if evalCondition(types.Condition{Kind: types.CondFlagSet, Operand: "other"}, in) {
		t.Error("flag_set should not hold for an unset flag")
	}
}

func TestEvalCondition_FlagUnset(t *testing.T) {
	in := condInput(map[string]bool{"searched": true})

	if evalCondition(types.Condition{Kind: types.CondFlagUnset, Operand: "searched"}, in) {
		t.Error("flag_unset should not hold for a set flag")
	}
	if !evalCondition(types.Condition{Kind: types.CondFlagUnset, Operand: "other"}, in) {
		t.Error("flag_unset should hold for an unset flag")
	}
}

func TestEvalCondition_FlagIs(t *testing.T) {
	in := condInput(map[string]bool{"searched": true})

	tests := []struct {
		operand string
		value   bool
		want    bool
	}{
		{"searched", true, true},
		{"searched", false, false},
		{"missing", false, true}, // unset flags read false
		{"missing", true, false},
	}
	for _, tt := range tests {
		c := types.Condition{Kind: types.CondFlagIs, Operand: tt.operand, Value: tt.value}
		if got := evalCondition(c, in); got != tt.want {
			t.Errorf("flag_is(%q, %t) = %t, want %t", tt.operand, tt.value, got, tt.want)
		}
	}
}

func TestEvalCondition_ItemPresent(t *testing.T) {
	in := condInput(nil)

	if !evalCondition(types.Condition{Kind: types.CondItemPresent, Operand: "icon-1"}, in) {
		t.Error("item_present should hold for a placed item")
	}
	if evalCondition(types.Condition{Kind: types.CondItemPresent, Operand: "ghost"}, in) {
		t.Error("item_present should not hold for an absent item")
	}
}

func TestEvalCondition_NotePresent(t *testing.T) {
	in := condInput(nil)

	if !evalCondition(types.Condition{Kind: types.CondNotePresent, Operand: "note-1"}, in) {
		t.Error("note_present should hold for a defined note")
	}
	if evalCondition(types.Condition{Kind: types.CondNotePresent, Operand: "note-9"}, in) {
		t.Error("note_present should not hold for an undefined note")
	}
}

func TestEvalCondition_UnknownKindIsFalse(t *testing.T) {
	in := condInput(map[string]bool{"searched": true})

	if evalCondition(types.Condition{Kind: "future_predicate", Operand: "searched"}, in) {
		t.Error("unknown condition kind should evaluate false")
	}
}

func TestConditionsMet_AllEmptyIsVacuouslyTrue(t *testing.T) {
	rule := types.IconRule{Mode: types.ModeAll}
	if !conditionsMet(rule, condInput(nil)) {
		t.Error("mode all with no conditions should hold")
	}
}

func TestConditionsMet_AnyEmptyIsVacuouslyFalse(t *testing.T) {
	rule := types.IconRule{Mode: types.ModeAny}
	if conditionsMet(rule, condInput(nil)) {
		t.Error("mode any with no conditions should never hold")
	}
}

func TestConditionsMet_AllRequiresEvery(t *testing.T) {
	rule := types.IconRule{
		Mode: types.ModeAll,
		Conditions: []types.Condition{
			{Kind: types.CondFlagSet, Operand: "a"},
			{Kind: types.CondFlagSet, Operand: "b"},
		},
	}

	if conditionsMet(rule, condInput(map[string]bool{"a": true})) {
		t.Error("all should fail when one condition fails")
	}
	if !conditionsMet(rule, condInput(map[string]bool{"a": true, "b": true})) {
		t.Error("all should hold when every condition holds")
	}
}

func TestConditionsMet_AnyRequiresOne(t *testing.T) {
	rule := types.IconRule{
		Mode: types.ModeAny,
		Conditions: []types.Condition{
			{Kind: types.CondFlagSet, Operand: "a"},
			{Kind: types.CondFlagSet, Operand: "b"},
		},
	}

	if !conditionsMet(rule, condInput(map[string]bool{"b": true})) {
		t.Error("any should hold when one condition holds")
	}
	if conditionsMet(rule, condInput(nil)) {
		t.Error("any should fail when no condition holds")
	}
}
