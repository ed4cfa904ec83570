// Package logic implements icon logic rule resolution: given a trigger
// and the authored rules, it decides what should happen. It computes
// intent only and never touches session state.
package logic

import "github.com/nholm/questdeck/types"

// evalCondition evaluates a single condition against the supplied
// flags/items/notes context. Unknown kinds evaluate false so that a
// malformed or future-format rule fails to fire instead of halting play.
func evalCondition(c types.Condition, in Input) bool {
	switch c.Kind {
	case types.CondFlagSet:
		return in.Flags[c.Operand]

	case types.CondFlagUnset:
		return !in.Flags[c.Operand]

	case types.CondFlagIs:
		return in.Flags[c.Operand] == c.Value

	case types.CondItemPresent:
		for _, item := range in.Items {
			if item.ID == c.Operand {
				return true
			}
		}
		return false

	case types.CondNotePresent:
		for _, note := range in.Notes {
			if note.ID == c.Operand {
				return true
			}
		}
		return false

	default:
		return false
	}
}

// conditionsMet combines a rule's conditions under its mode.
// "all" is vacuously true on an empty list; "any" is vacuously false —
// a rule with mode any and no conditions never fires. An unknown mode
// behaves like "all".
func conditionsMet(rule types.IconRule, in Input) bool {
	if rule.Mode == types.ModeAny {
		for _, c := range rule.Conditions {
			if evalCondition(c, in) {
				return true
			}
		}
		return false
	}
	for _, c := range rule.Conditions {
		if !evalCondition(c, in) {
			return false
		}
	}
	return true
}
