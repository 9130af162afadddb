package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/regionflags/internal/testutil"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	regions := testutil.WriteFile(t, "regions.yaml", testutil.RegionsYAML)
	body := "storage_type: sqlite\n" +
		"sqlite_path: " + filepath.Join(t.TempDir(), "flags.db") + "\n" +
		"regions_file: " + regions + "\n"
	return testutil.WriteFile(t, "regionflags.yaml", body)
}

func execute(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestRegionctl_EditAndList(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, cfg, "define", "Arena")
	require.NoError(t, err)
	assert.Equal(t, "Region Arena has been defined.\n", out)

	_, err = execute(t, cfg, "flag", "set", "Arena", "nomob")
	require.NoError(t, err)
	_, err = execute(t, cfg, "damage", "Arena", "5")
	require.NoError(t, err)
	_, err = execute(t, cfg, "heal", "Arena", "3")
	require.NoError(t, err)
	_, err = execute(t, cfg, "ban", "Arena", "bomb")
	require.NoError(t, err)

	// Each invocation reloads from disk, so list sees every earlier write.
	out, err = execute(t, cfg, "list")
	require.NoError(t, err)
	assert.Equal(t, "Arena\tflags=NOMOB\tdamage=5/s\theal=every 3s\tbanned=bomb\n", out)

	_, err = execute(t, cfg, "flag", "clear", "Arena", "NOMOB")
	require.NoError(t, err)
	_, err = execute(t, cfg, "unban", "Arena", "bomb")
	require.NoError(t, err)

	out, err = execute(t, cfg, "list")
	require.NoError(t, err)
	assert.Equal(t, "Arena\tflags=NONE\tdamage=5/s\theal=every 3s\tbanned=\n", out)
}

func TestRegionctl_Errors(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := execute(t, cfg, "define", "Atlantis")
	assert.Error(t, err, "unknown region")

	_, err = execute(t, cfg, "damage", "Field", "5")
	assert.Error(t, err, "region not defined")

	_, err = execute(t, cfg, "damage", "Field", "-1")
	assert.Error(t, err)

	_, err = execute(t, cfg, "flag", "set", "Field", "PVP")
	assert.Error(t, err)

	out, err := execute(t, cfg, "list")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "No regions defined.\n"), out)
}

func TestRegionctl_FlagsAndMigrate(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, cfg, "flags")
	require.NoError(t, err)
	assert.Equal(t, "NONE, NOITEM, NOMOB, MOBKILL\n", out)

	out, err = execute(t, cfg, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "Schema is up to date (sqlite).\n", out)
}
