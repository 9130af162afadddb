package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// RegionsYAML is a two-region layout: Arena at tiles 0..9 and Field at 20..29.
const RegionsYAML = `regions:
  - {name: Arena, x: 0, y: 0, width: 10, height: 10}
  - {name: Field, x: 20, y: 0, width: 10, height: 10}
`

// WriteFile writes body to name inside a per-test temp dir and returns the path.
func WriteFile(tb testing.TB, name, body string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		tb.Fatalf("writing %s: %v", name, err)
	}
	return path
}
