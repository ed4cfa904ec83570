// Package grid implements the map geometry: visibility windows around a
// point and footprint intersection against a region. It never touches
// session state.
package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nholm/questdeck/types"
)

// Key returns the canonical "x,y" coordinate key for a tile.
func Key(t types.Tile) string {
	return fmt.Sprintf("%d,%d", t.X, t.Y)
}

// ParseKey parses a coordinate key produced by Key.
func ParseKey(key string) (types.Tile, bool) {
	parts := strings.SplitN(key, ",", 2)
	if len(parts) != 2 {
		return types.Tile{}, false
	}
	x, errX := strconv.Atoi(parts[0])
	y, errY := strconv.Atoi(parts[1])
	if errX != nil || errY != nil {
		return types.Tile{}, false
	}
	return types.Tile{X: x, Y: y}, true
}

// Rect is an axis-aligned rectangle with inclusive bounds.
// A Rect with MaxX < MinX or MaxY < MinY is empty.
type Rect struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
}

// Empty reports whether the rectangle covers no tiles.
func (r Rect) Empty() bool {
	return r.MaxX < r.MinX || r.MaxY < r.MinY
}

// Contains reports whether the tile lies inside the rectangle.
func (r Rect) Contains(t types.Tile) bool {
	return t.X >= r.MinX && t.X <= r.MaxX && t.Y >= r.MinY && t.Y <= r.MaxY
}

// Intersects reports whether the two rectangles share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX &&
		r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Tiles enumerates the covered tiles in row-major order.
func (r Rect) Tiles() []types.Tile {
	if r.Empty() {
		return nil
	}
	tiles := make([]types.Tile, 0, (r.MaxX-r.MinX+1)*(r.MaxY-r.MinY+1))
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			tiles = append(tiles, types.Tile{X: x, Y: y})
		}
	}
	return tiles
}

// VisibleRegion computes the rectangular visibility window of the given
// inclusive radius around center, clamped to a cols × rows grid. The
// window never wraps and never extends outside the grid; near an edge it
// is asymmetric. A negative radius clamps to zero, and an out-of-range
// center clamps into the grid like any other center.
func VisibleRegion(center types.Tile, radius, cols, rows int) Rect {
	if cols <= 0 || rows <= 0 {
		return Rect{MinX: 0, MinY: 0, MaxX: -1, MaxY: -1}
	}
	if radius < 0 {
		radius = 0
	}
	cx := clamp(center.X, 0, cols-1)
	cy := clamp(center.Y, 0, rows-1)
	return Rect{
		MinX: max(0, cx-radius),
		MinY: max(0, cy-radius),
		MaxX: min(cols-1, cx+radius),
		MaxY: min(rows-1, cy+radius),
	}
}

// Footprint returns the rectangle of cells an item occupies. A zero or
// negative BaseW/BaseH counts as 1.
func Footprint(item types.QuestItem) Rect {
	w := item.BaseW
	if w < 1 {
		w = 1
	}
	h := item.BaseH
	if h < 1 {
		h = 1
	}
	return Rect{
		MinX: item.X,
		MinY: item.Y,
		MaxX: item.X + w - 1,
		MaxY: item.Y + h - 1,
	}
}

// ItemsInRegion returns the ids of items whose footprint intersects the
// region in at least one cell. Any overlap counts, not containment.
// Ids appear in input order, each at most once.
func ItemsInRegion(items []types.QuestItem, region Rect) []string {
	var ids []string
	seen := map[string]bool{}
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		if Footprint(item).Intersects(region) {
			ids = append(ids, item.ID)
			seen[item.ID] = true
		}
	}
	return ids
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
