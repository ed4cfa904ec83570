// Package types defines the shared data structures for the QuestDeck engine.
// This package contains only type definitions — no logic, no methods.
package types

// Tile is a single grid coordinate.
type Tile struct {
	X int
	Y int
}

// QuestItem is a placeable element on the quest map. Its footprint spans
// BaseW × BaseH cells from the (X, Y) origin, growing right and down.
type QuestItem struct {
	ID       string
	Asset    string
	X        int
	Y        int
	BaseW    int // 0 means 1 (normalized by the loader)
	BaseH    int // 0 means 1
	Rotation int
	OffsetX  float64
	OffsetY  float64
}

// QuestNote is a numbered narrative text entry.
type QuestNote struct {
	ID     string
	Number int
	Text   string
	IconID string // optional linked icon
}

// Card is a deck card that can be revealed during play.
type Card struct {
	ID    string
	Title string
	Body  string
	Kind  string // "item", "monster", "event", ...
}

// ConditionKind identifies one predicate variant.
type ConditionKind string

const (
	CondFlagSet     ConditionKind = "flag_set"
	CondFlagUnset   ConditionKind = "flag_unset"
	CondFlagIs      ConditionKind = "flag_is"
	CondItemPresent ConditionKind = "item_present"
	CondNotePresent ConditionKind = "note_present"
)

// Condition is a predicate gating a rule. Unknown kinds evaluate false.
type Condition struct {
	Kind    ConditionKind
	Operand string // flag name, item id, or note id depending on Kind
	Value   bool   // expected value for CondFlagIs
}

// ConditionsMode selects how a rule's condition list combines.
type ConditionsMode string

const (
	ModeAll ConditionsMode = "all" // every condition must hold; vacuously true when empty
	ModeAny ConditionsMode = "any" // at least one must hold; vacuously false when empty
)

// ActionKind identifies one action variant.
type ActionKind string

const (
	ActRevealTiles    ActionKind = "reveal_tiles"
	ActRevealRadius   ActionKind = "reveal_radius"
	ActRevealEntities ActionKind = "reveal_entities"
	ActAddNarrative   ActionKind = "add_narrative"
	ActRevealCard     ActionKind = "reveal_card"
	ActSetFlag        ActionKind = "set_flag"
	ActAddObjective   ActionKind = "add_objective"
)

// Action is one requested state change in a rule. Each Kind reads only its
// own payload fields; unknown kinds are ignored at resolution time.
type Action struct {
	Kind        ActionKind
	Tiles       []Tile   // reveal_tiles
	Radius      int      // reveal_radius
	EntityIDs   []string // reveal_entities
	NoteIDs     []string // add_narrative
	CardIDs     []string // reveal_card
	Flag        string   // set_flag
	ObjectiveID string   // add_objective
}

// Trigger type names emitted by the stock frontends. Rule authors may
// bind rules to any string; these are the ones the play console fires.
const (
	TriggerSearch = "onSearch"
	TriggerEnter  = "onEnter"
)

// IconRule binds a trigger type, conditions, and actions to one map icon.
type IconRule struct {
	IconID      string
	TriggerType string
	Mode        ConditionsMode
	Conditions  []Condition
	Actions     []Action
	SourceOrder int
}

// Trigger is a runtime game event that may activate rules sharing its type.
type Trigger struct {
	Type   string
	Tiles  []Tile // originating tile(s), e.g. the searched cell
	IconID string // optional: the icon the event was aimed at
}

// Effect is the aggregated, de-duplicated output of rule resolution.
// Every collection is a set under the hood, exposed in insertion order so
// repeated resolution of identical input is byte-for-byte reproducible.
type Effect struct {
	RevealTiles    []Tile
	RevealEntities []string
	NoteIDs        []string
	CardIDs        []string
	FlagsToSet     []string
	Objectives     []string
}

// QuestDef holds a complete authored quest, read-only at play time.
type QuestDef struct {
	Title   string
	Author  string
	Version string
	Intro   string
	Cols    int
	Rows    int
	Items   []QuestItem
	Notes   []QuestNote
	Cards   []Card
	Rules   []IconRule
}

// Result is the output of handling a single trigger.
type Result struct {
	Effect Effect
	Output []string
}
