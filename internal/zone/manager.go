package zone

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

const gridSize int32 = 64 // тайлов на ячейку сетки

type gridKey struct {
	gx, gy int32
}

// Manager indexes areas by grid cell for fast point lookups.
// Safe for concurrent use; Replace swaps the whole index.
type Manager struct {
	mu    sync.RWMutex
	areas map[string]Area
	grid  map[gridKey][]Area
}

// NewManager creates a Manager holding areas.
func NewManager(areas ...Area) (*Manager, error) {
	m := &Manager{}
	if err := m.Replace(areas); err != nil {
		return nil, err
	}
	return m, nil
}

// areasFile is the on-disk layout of an areas file.
type areasFile struct {
	Regions []Area `yaml:"regions"`
}

// LoadFile reads areas from a YAML file.
// A missing file yields an empty manager.
func LoadFile(path string) (*Manager, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("regions file not found, starting with no regions", "path", path)
			return NewManager()
		}
		return nil, fmt.Errorf("reading regions %s: %w", path, err)
	}

	var f areasFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing regions %s: %w", path, err)
	}

	m, err := NewManager(f.Regions...)
	if err != nil {
		return nil, fmt.Errorf("loading regions %s: %w", path, err)
	}

	slog.Info("regions loaded", "path", path, "regions", len(f.Regions))
	return m, nil
}

// Replace validates areas and swaps them in.
func (m *Manager) Replace(areas []Area) error {
	byName := make(map[string]Area, len(areas))
	for _, a := range areas {
		if a.Name == "" {
			return fmt.Errorf("area at (%d,%d): empty name", a.X, a.Y)
		}
		if a.Width <= 0 || a.Height <= 0 {
			return fmt.Errorf("area %q: non-positive size %dx%d", a.Name, a.Width, a.Height)
		}
		if _, dup := byName[a.Name]; dup {
			return fmt.Errorf("area %q: duplicate name", a.Name)
		}
		byName[a.Name] = a
	}

	grid := buildGrid(areas)

	m.mu.Lock()
	m.areas = byName
	m.grid = grid
	m.mu.Unlock()
	return nil
}

// TopRegion returns the topmost area containing tile (x, y).
func (m *Manager) TopRegion(x, y int32) (string, bool) {
	key := gridKey{gx: floorDiv(x, gridSize), gy: floorDiv(y, gridSize)}

	m.mu.RLock()
	candidates := m.grid[key]
	m.mu.RUnlock()

	var (
		top   Area
		found bool
	)
	for _, a := range candidates {
		if !a.Contains(x, y) {
			continue
		}
		if !found || a.above(top) {
			top, found = a, true
		}
	}
	return top.Name, found
}

// RegionExists reports whether an area called name is known.
func (m *Manager) RegionExists(name string) bool {
	_, ok := m.Area(name)
	return ok
}

// Area returns the area called name.
func (m *Manager) Area(name string) (Area, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.areas[name]
	return a, ok
}

// Count returns the number of areas.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.areas)
}

// buildGrid регистрирует каждую зону во всех ячейках сетки,
// которые пересекает её прямоугольник.
func buildGrid(areas []Area) map[gridKey][]Area {
	grid := make(map[gridKey][]Area)
	for _, a := range areas {
		gxMin := floorDiv(a.X, gridSize)
		gxMax := floorDiv(a.X+a.Width-1, gridSize)
		gyMin := floorDiv(a.Y, gridSize)
		gyMax := floorDiv(a.Y+a.Height-1, gridSize)

		for gx := gxMin; gx <= gxMax; gx++ {
			for gy := gyMin; gy <= gyMax; gy++ {
				key := gridKey{gx: gx, gy: gy}
				grid[key] = append(grid[key], a)
			}
		}
	}
	return grid
}

// floorDiv выполняет целочисленное деление с округлением к -inf,
// корректно обрабатывая отрицательные координаты.
func floorDiv(a, b int32) int32 {
	d := a / b
	if (a^b) < 0 && d*b != a {
		d--
	}

	return d
}
