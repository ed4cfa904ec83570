package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nholm/questdeck/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Trigger types the stock frontends know how to fire. Others load with a
// warning so future authoring formats keep working.
var knownTriggerTypes = map[string]bool{
	types.TriggerSearch: true,
	types.TriggerEnter:  true,
}

// Known condition types.
var validConditionTypes = map[types.ConditionKind]bool{
	types.CondFlagSet:     true,
	types.CondFlagUnset:   true,
	types.CondFlagIs:      true,
	types.CondItemPresent: true,
	types.CondNotePresent: true,
}

// Known action types.
var validActionTypes = map[types.ActionKind]bool{
	types.ActRevealTiles:    true,
	types.ActRevealRadius:   true,
	types.ActRevealEntities: true,
	types.ActAddNarrative:   true,
	types.ActRevealCard:     true,
	types.ActSetFlag:        true,
	types.ActAddObjective:   true,
}

// validate checks the compiled quest for referential integrity and
// consistency. Hard errors abort loading; warnings print to stderr.
func validate(defs *types.QuestDef) error {
	ve := &ValidationError{}

	if defs.Title == "" {
		ve.Errors = append(ve.Errors, "Quest.title is required")
	}
	if defs.Cols <= 0 || defs.Rows <= 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"quest grid must be positive, got %dx%d", defs.Cols, defs.Rows))
	}

	itemIDs := map[string]bool{}
	for _, item := range defs.Items {
		if itemIDs[item.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate item id %q", item.ID))
		}
		itemIDs[item.ID] = true

		if item.X < 0 || item.Y < 0 ||
			item.X+item.BaseW > defs.Cols || item.Y+item.BaseH > defs.Rows {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"item %q footprint extends outside the %dx%d grid",
				item.ID, defs.Cols, defs.Rows))
		}
	}

	noteIDs := map[string]bool{}
	for _, note := range defs.Notes {
		if noteIDs[note.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate note id %q", note.ID))
		}
		noteIDs[note.ID] = true
		if note.IconID != "" && !itemIDs[note.IconID] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"note %q links unknown icon %q", note.ID, note.IconID))
		}
	}

	cardIDs := map[string]bool{}
	for _, card := range defs.Cards {
		if cardIDs[card.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate card id %q", card.ID))
		}
		cardIDs[card.ID] = true
	}

	for i, rule := range defs.Rules {
		where := fmt.Sprintf("rule %d (icon %q)", i+1, rule.IconID)

		if !itemIDs[rule.IconID] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"%s: icon is not a placed item", where))
		}
		if !knownTriggerTypes[rule.TriggerType] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"%s: unknown trigger type %q", where, rule.TriggerType))
		}
		if rule.Mode != types.ModeAll && rule.Mode != types.ModeAny {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: invalid conditions mode %q", where, rule.Mode))
		}
		if rule.Mode == types.ModeAny && len(rule.Conditions) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"%s: mode \"any\" with no conditions never fires", where))
		}

		for _, c := range rule.Conditions {
			if !validConditionTypes[c.Kind] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"%s: unknown condition type %q (will never match)", where, c.Kind))
			}
		}
		for _, a := range rule.Actions {
			if !validActionTypes[a.Kind] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"%s: unknown action type %q (will be ignored)", where, a.Kind))
				continue
			}
			validateActionRefs(ve, where, a, itemIDs, noteIDs, cardIDs)
		}
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// validateActionRefs checks that action payloads reference defined content.
func validateActionRefs(ve *ValidationError, where string, a types.Action,
	itemIDs, noteIDs, cardIDs map[string]bool) {

	switch a.Kind {
	case types.ActRevealEntities:
		for _, id := range a.EntityIDs {
			if !itemIDs[id] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s: reveals unknown entity %q", where, id))
			}
		}
	case types.ActAddNarrative:
		for _, id := range a.NoteIDs {
			if !noteIDs[id] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s: adds unknown note %q", where, id))
			}
		}
	case types.ActRevealCard:
		for _, id := range a.CardIDs {
			if !cardIDs[id] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s: reveals unknown card %q", where, id))
			}
		}
	case types.ActRevealRadius:
		if a.Radius < 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"%s: negative radius clamps to 0", where))
		}
	}
}
