package region

import (
	"fmt"
	"strings"
)

// Flag is a single behavioral toggle stored as one bit of a region's flag set.
// Bit values are persisted as-is, so existing values must never be renumbered.
type Flag uint32

// FlagSet is a bitmask of Flag values.
type FlagSet uint32

const (
	FlagNone Flag = 0
	// FlagNoItem suppresses item drops and spawns inside the region.
	FlagNoItem Flag = 1 << 0
	// FlagNoMob despawns hostile actors that enter the region.
	FlagNoMob Flag = 1 << 1
	// FlagMobKill instantly kills hostile actors that enter the region.
	FlagMobKill Flag = 1 << 2
)

// flagNames maps upper-case names to flags. Order of flagOrder is the listing order.
var flagNames = map[string]Flag{
	"NONE":    FlagNone,
	"NOITEM":  FlagNoItem,
	"NOMOB":   FlagNoMob,
	"MOBKILL": FlagMobKill,
}

var flagOrder = []Flag{FlagNone, FlagNoItem, FlagNoMob, FlagMobKill}

// String returns the canonical upper-case flag name.
func (f Flag) String() string {
	for name, v := range flagNames {
		if v == f {
			return name
		}
	}
	return fmt.Sprintf("FLAG(%d)", uint32(f))
}

// ParseFlag looks a flag up by name, case-insensitively.
func ParseFlag(name string) (Flag, error) {
	f, ok := flagNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return FlagNone, fmt.Errorf("flag %q: %w", name, ErrInvalidInput)
	}
	return f, nil
}

// FlagNames returns all known flag names in declaration order.
func FlagNames() []string {
	names := make([]string, 0, len(flagOrder))
	for _, f := range flagOrder {
		names = append(names, f.String())
	}
	return names
}

// Has reports whether every bit of f is set. FlagNone is never "set".
func (s FlagSet) Has(f Flag) bool {
	return f != FlagNone && uint32(s)&uint32(f) == uint32(f)
}

// With returns s with f set.
func (s FlagSet) With(f Flag) FlagSet { return s | FlagSet(f) }

// Without returns s with f cleared.
func (s FlagSet) Without(f Flag) FlagSet { return s &^ FlagSet(f) }

// List returns the set flags in declaration order.
func (s FlagSet) List() []Flag {
	var out []Flag
	for _, f := range flagOrder {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// String renders the set as "NOITEM|MOBKILL", or "NONE" when empty.
// Unknown bits (written by a newer build) are kept in hex.
func (s FlagSet) String() string {
	if s == 0 {
		return FlagNone.String()
	}

	var known FlagSet
	parts := make([]string, 0, 3)
	for _, f := range s.List() {
		parts = append(parts, f.String())
		known = known.With(f)
	}
	if rest := s &^ known; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}
