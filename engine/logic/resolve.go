package logic

import (
	"github.com/nholm/questdeck/engine/grid"
	"github.com/nholm/questdeck/types"
)

// Input is the full snapshot a single Resolve call evaluates over.
// Cols and Rows bound reveal_radius expansion; when either is zero the
// radius action is a no-op.
type Input struct {
	Trigger types.Trigger
	Rules   []types.IconRule
	Items   []types.QuestItem
	Flags   map[string]bool
	Notes   []types.QuestNote
	Cols    int
	Rows    int
}

// Resolve filters the rules to those matching the trigger type, evaluates
// each rule's conditions under its mode, and folds the actions of every
// firing rule into one aggregated effect descriptor. Rules are visited in
// input order, so identical input produces an identical descriptor.
//
// Resolve is pure: it keeps no state across calls, performs no I/O, and
// treats unknown condition or action kinds as silent no-ops.
func Resolve(in Input) types.Effect {
	acc := newAccumulator()

	for _, rule := range in.Rules {
		if rule.TriggerType != in.Trigger.Type {
			continue
		}
		if !conditionsMet(rule, in) {
			continue
		}
		for _, action := range rule.Actions {
			applyAction(acc, action, in)
		}
	}

	return acc.effect()
}

// applyAction folds one action's payload into the accumulator.
func applyAction(acc *accumulator, action types.Action, in Input) {
	switch action.Kind {
	case types.ActRevealTiles:
		for _, t := range action.Tiles {
			acc.addTile(t)
		}

	case types.ActRevealRadius:
		// Expand around the trigger's originating tiles. Without an
		// originating tile there is nothing to expand from.
		for _, center := range in.Trigger.Tiles {
			region := grid.VisibleRegion(center, action.Radius, in.Cols, in.Rows)
			for _, t := range region.Tiles() {
				acc.addTile(t)
			}
		}

	case types.ActRevealEntities:
		for _, id := range action.EntityIDs {
			acc.entities.add(id)
		}

	case types.ActAddNarrative:
		for _, id := range action.NoteIDs {
			acc.notes.add(id)
		}

	case types.ActRevealCard:
		for _, id := range action.CardIDs {
			acc.cards.add(id)
		}

	case types.ActSetFlag:
		acc.flags.add(action.Flag)

	case types.ActAddObjective:
		acc.objectives.add(action.ObjectiveID)

	default:
		// Unknown action kind — ignore silently.
	}
}
