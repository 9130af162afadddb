package model

import "math"

// Location представляет координаты в игровом мире (world units, not tiles).
// Value type, передаётся по значению (immutable).
type Location struct {
	X float64
	Y float64
}

// NewLocation создаёт Location с указанными координатами.
func NewLocation(x, y float64) Location {
	return Location{X: x, Y: y}
}

// Tile converts the location to tile coordinates for a tile of tileSize world units.
// Negative coordinates round toward -inf.
func (l Location) Tile(tileSize float64) (int32, int32) {
	if tileSize <= 0 {
		tileSize = 1
	}
	return int32(math.Floor(l.X / tileSize)), int32(math.Floor(l.Y / tileSize))
}
