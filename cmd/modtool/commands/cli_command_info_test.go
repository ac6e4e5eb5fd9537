// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoCommand(t *testing.T) {
	dir := newTestModule(t)

	out, err := runCommand(t, "info", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Module name: howto")
	assert.Contains(t, out, "Base directory:")
	assert.Contains(t, out, filepath.Join(dir, "include"))
}

func TestInfoCommand_JSON(t *testing.T) {
	dir := newTestModule(t)

	out, err := runCommand(t, "info", "-d", dir, "--json")
	require.NoError(t, err)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "howto", info["modname"])
	assert.NotEmpty(t, info["base_dir"])
}

func TestInfoCommand_FromSubdir(t *testing.T) {
	dir := newTestModule(t)

	out, err := runCommand(t, "info", "-d", filepath.Join(dir, "lib"))
	require.NoError(t, err)
	assert.Contains(t, out, "Module name: howto")
}

func TestInfoCommand_NoModule(t *testing.T) {
	out, err := runCommand(t, "info", "-d", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No module found.")
}

func TestInfoCommand_BuildDir(t *testing.T) {
	dir := newTestModule(t)
	writeTestFile(t, dir, "build/CMakeCache.txt",
		"GNURADIO_CORE_INCLUDE_DIRS:PATH=/usr/include/gnuradio;/opt/include\n")

	out, err := runCommand(t, "info", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Build directory:")
	assert.Contains(t, out, "/usr/include/gnuradio")
	assert.Contains(t, out, "/opt/include")
}
