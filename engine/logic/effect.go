package logic

import (
	"github.com/nholm/questdeck/engine/grid"
	"github.com/nholm/questdeck/types"
)

// accumulator builds the de-duplicated effect descriptor for one Resolve
// call. Every collection keeps insertion order.
type accumulator struct {
	tiles      []types.Tile
	tileSeen   map[string]struct{}
	entities   orderedIDs
	notes      orderedIDs
	cards      orderedIDs
	flags      orderedIDs
	objectives orderedIDs
}

func newAccumulator() *accumulator {
	return &accumulator{tileSeen: map[string]struct{}{}}
}

func (a *accumulator) addTile(t types.Tile) {
	key := grid.Key(t)
	if _, ok := a.tileSeen[key]; ok {
		return
	}
	a.tileSeen[key] = struct{}{}
	a.tiles = append(a.tiles, t)
}

func (a *accumulator) effect() types.Effect {
	return types.Effect{
		RevealTiles:    a.tiles,
		RevealEntities: a.entities.ids,
		NoteIDs:        a.notes.ids,
		CardIDs:        a.cards.ids,
		FlagsToSet:     a.flags.ids,
		Objectives:     a.objectives.ids,
	}
}

// orderedIDs is a small insertion-ordered id set.
type orderedIDs struct {
	ids  []string
	seen map[string]struct{}
}

func (o *orderedIDs) add(id string) {
	if id == "" {
		return
	}
	if o.seen == nil {
		o.seen = map[string]struct{}{}
	}
	if _, ok := o.seen[id]; ok {
		return
	}
	o.seen[id] = struct{}{}
	o.ids = append(o.ids, id)
}
