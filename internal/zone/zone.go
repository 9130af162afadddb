// Package zone is a small region system: named rectangular areas in tile
// coordinates with a spatial grid index and "topmost area at a tile" lookup.
// It stands in for the host's own region system behind region.Resolver.
package zone

// Area is a named axis-aligned rectangle in tile units.
// Z orders overlapping areas: the highest Z is the topmost.
type Area struct {
	Name   string `yaml:"name"`
	X      int32  `yaml:"x"`
	Y      int32  `yaml:"y"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Z      int32  `yaml:"z"`
}

// Contains reports whether tile (x, y) lies inside the area.
// Right and bottom edges are exclusive.
func (a Area) Contains(x, y int32) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}

// above reports whether a should win over b when both contain a tile.
func (a Area) above(b Area) bool {
	if a.Z != b.Z {
		return a.Z > b.Z
	}
	return a.Name < b.Name
}
