// Package session owns the canonical play-session state and the pure
// reduction function over it. Every command yields a new snapshot; a
// snapshot, once produced, is never altered.
package session

import (
	"github.com/nholm/questdeck/engine/grid"
	"github.com/nholm/questdeck/types"
)

// CardReveal is one entry in the ordered revealed-card log.
type CardReveal struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Turn  int    `json:"turn"`
}

// State is one immutable snapshot of a play session. DiscoveredTiles,
// RevealedEntities, Narratives, and Objectives only ever grow;
// RevealedCards is append-only with first-reveal-wins de-duplication.
type State struct {
	DiscoveredTiles  Set
	RevealedEntities Set
	RevealedCards    []CardReveal
	Flags            map[string]bool
	Narratives       Set
	Objectives       Set
}

// NewSession returns the empty snapshot used at session start.
func NewSession() State {
	return State{}
}

// DiscoveredTile reports whether the tile has been revealed.
func (s State) DiscoveredTile(t types.Tile) bool {
	return s.DiscoveredTiles.Has(grid.Key(t))
}

// Flag returns the value of a flag. Unset flags read as false.
func (s State) Flag(name string) bool {
	return s.Flags[name]
}

// CardRevealed reports whether a card id is present in the reveal log.
func (s State) CardRevealed(id string) bool {
	for _, c := range s.RevealedCards {
		if c.ID == id {
			return true
		}
	}
	return false
}

// CommandKind identifies one state-changing command variant.
type CommandKind string

const (
	CmdRevealTiles  CommandKind = "reveal_tiles"
	CmdRevealEntity CommandKind = "reveal_entity"
	CmdRevealCard   CommandKind = "reveal_card"
	CmdSetFlag      CommandKind = "set_flag"
	CmdClearFlag    CommandKind = "clear_flag"
	CmdAddNarrative CommandKind = "add_narrative"
	CmdAddObjective CommandKind = "add_objective"
)

// Command is one discrete state change. Each Kind reads only its own
// payload fields; an unknown Kind reduces to the unchanged state.
type Command struct {
	Kind        CommandKind
	Tiles       []types.Tile
	EntityID    string
	Card        CardReveal
	Flag        string
	NoteIDs     []string
	ObjectiveID string
}

// RevealTiles builds a command adding every tile's coordinate key to the
// discovered set.
func RevealTiles(tiles []types.Tile) Command {
	return Command{Kind: CmdRevealTiles, Tiles: tiles}
}

// RevealEntity builds a command revealing an entity together with its card.
func RevealEntity(entityID string, card CardReveal) Command {
	return Command{Kind: CmdRevealEntity, EntityID: entityID, Card: card}
}

// RevealCard builds a command appending a card to the reveal log.
func RevealCard(card CardReveal) Command {
	return Command{Kind: CmdRevealCard, Card: card}
}

// SetFlag builds a command setting a flag to true.
func SetFlag(flag string) Command {
	return Command{Kind: CmdSetFlag, Flag: flag}
}

// ClearFlag builds a command setting a flag to false.
func ClearFlag(flag string) Command {
	return Command{Kind: CmdClearFlag, Flag: flag}
}

// AddNarrative builds a command adding note ids to the narrative set.
func AddNarrative(noteIDs []string) Command {
	return Command{Kind: CmdAddNarrative, NoteIDs: noteIDs}
}

// AddObjective builds a command adding an objective id.
func AddObjective(objectiveID string) Command {
	return Command{Kind: CmdAddObjective, ObjectiveID: objectiveID}
}

// Reduce applies one command to a snapshot and returns the next snapshot.
// It is total: no command can fail, unknown ids and flags are recorded
// as-is, and replaying the same command is idempotent. The input snapshot
// is never mutated.
func Reduce(s State, cmd Command) State {
	switch cmd.Kind {
	case CmdRevealTiles:
		keys := make([]string, 0, len(cmd.Tiles))
		for _, t := range cmd.Tiles {
			keys = append(keys, grid.Key(t))
		}
		s.DiscoveredTiles = s.DiscoveredTiles.With(keys...)
		return s

	case CmdRevealEntity:
		s.RevealedEntities = s.RevealedEntities.With(cmd.EntityID)
		return appendCard(s, cmd.Card)

	case CmdRevealCard:
		return appendCard(s, cmd.Card)

	case CmdSetFlag:
		return setFlag(s, cmd.Flag, true)

	case CmdClearFlag:
		return setFlag(s, cmd.Flag, false)

	case CmdAddNarrative:
		s.Narratives = s.Narratives.With(cmd.NoteIDs...)
		return s

	case CmdAddObjective:
		s.Objectives = s.Objectives.With(cmd.ObjectiveID)
		return s

	default:
		return s
	}
}

// appendCard appends a card to the reveal log unless its id is already
// present. The first reveal keeps its position; later reveals of the same
// id leave the state unchanged.
func appendCard(s State, card CardReveal) State {
	if card.ID == "" || s.CardRevealed(card.ID) {
		return s
	}
	cards := make([]CardReveal, len(s.RevealedCards), len(s.RevealedCards)+1)
	copy(cards, s.RevealedCards)
	s.RevealedCards = append(cards, card)
	return s
}

// setFlag writes a flag value onto a fresh map. Flags are never removed,
// only ever true or false.
func setFlag(s State, flag string, value bool) State {
	if flag == "" {
		return s
	}
	flags := make(map[string]bool, len(s.Flags)+1)
	for k, v := range s.Flags {
		flags[k] = v
	}
	flags[flag] = value
	s.Flags = flags
	return s
}

// Restore rebuilds a snapshot from persisted collections. Inputs are
// copied; the caller's slices and maps stay independent.
func Restore(tiles, entities, narratives, objectives []string,
	cards []CardReveal, flags map[string]bool) State {

	s := State{
		DiscoveredTiles:  Set{}.With(tiles...),
		RevealedEntities: Set{}.With(entities...),
		Narratives:       Set{}.With(narratives...),
		Objectives:       Set{}.With(objectives...),
	}
	if len(cards) > 0 {
		s.RevealedCards = make([]CardReveal, len(cards))
		copy(s.RevealedCards, cards)
	}
	if len(flags) > 0 {
		s.Flags = make(map[string]bool, len(flags))
		for k, v := range flags {
			s.Flags[k] = v
		}
	}
	return s
}
