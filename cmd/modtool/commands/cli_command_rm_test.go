// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveCommand(t *testing.T) {
	dir := newTestModule(t)

	out, err := runCommand(t, "rm", "-d", dir, "-p", "square2")
	require.NoError(t, err)
	assert.Contains(t, out, "Removing file 'howto_square2_ff.cc'...")

	for _, rel := range []string{
		"lib/howto_square2_ff.cc",
		"lib/qa_howto_square2_ff.cc",
		"include/howto_square2_ff.h",
		"python/qa_howto_square2_ff.py",
		"grc/howto_square2_ff.xml",
	} {
		assert.NoFileExists(t, filepath.Join(dir, rel), rel)
	}

	libManifest := readTestFile(t, dir, "lib/CMakeLists.txt")
	assert.NotContains(t, libManifest, "howto_square2_ff.cc")
	assert.NotContains(t, libManifest, "add_executable")
	assert.NotContains(t, libManifest, "GR_ADD_TEST")

	assert.NotContains(t, readTestFile(t, dir, "include/CMakeLists.txt"), "howto_square2_ff.h")
	assert.NotContains(t, readTestFile(t, dir, "python/CMakeLists.txt"), "GR_ADD_TEST")
	assert.NotContains(t, readTestFile(t, dir, "grc/CMakeLists.txt"), "howto_square2_ff.xml")

	swigFile := readTestFile(t, dir, "swig/howto.i")
	assert.NotContains(t, swigFile, "square2")
	assert.Contains(t, swigFile, "gnuradio_swig_bug_workaround.h")
}

func TestRemoveCommand_BlockNameFallback(t *testing.T) {
	dir := newTestModule(t)

	_, err := runCommand(t, "rm", "-d", dir, "-N", "square2_ff")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "lib", "howto_square2_ff.cc"))
}

func TestRemoveCommand_NoPattern(t *testing.T) {
	dir := newTestModule(t)
	_, err := runCommand(t, "rm", "-d", dir)
	assert.ErrorContains(t, err, "no pattern given")
}

func TestRemoveCommand_NotAModule(t *testing.T) {
	_, err := runCommand(t, "rm", "-d", t.TempDir(), "-p", "x")
	assert.ErrorContains(t, err, "no module found")
}
