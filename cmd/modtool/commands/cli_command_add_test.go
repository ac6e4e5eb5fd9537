// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommand_SyncBlock(t *testing.T) {
	dir := newTestModule(t)

	out, err := runCommand(t, "add", "-d", dir, "-N", "square_ff", "-t", "sync",
		"--arg-list", "float scale_factor")
	require.NoError(t, err)
	assert.Contains(t, out, "Adding file 'howto_square_ff.cc'...")

	header := readTestFile(t, dir, "include/howto_square_ff.h")
	assert.Contains(t, header, "class HOWTO_API howto_square_ff : public gr_sync_block")
	impl := readTestFile(t, dir, "lib/howto_square_ff.cc")
	assert.Contains(t, impl, "howto_make_square_ff (float scale_factor)")

	libManifest := readTestFile(t, dir, "lib/CMakeLists.txt")
	assert.Contains(t, libManifest, "howto_square_ff.cc")
	assert.Contains(t, libManifest, "add_executable(qa_howto_square_ff qa_howto_square_ff.cc)")
	assert.FileExists(t, filepath.Join(dir, "lib", "qa_howto_square_ff.cc"))

	includeManifest := readTestFile(t, dir, "include/CMakeLists.txt")
	assert.Contains(t, includeManifest, "howto_square_ff.h")

	swigFile := readTestFile(t, dir, "swig/howto.i")
	assert.Contains(t, swigFile, "#include \"howto_square_ff.h\"")
	assert.Contains(t, swigFile, "GR_SWIG_BLOCK_MAGIC(howto,square_ff);")

	pyManifest := readTestFile(t, dir, "python/CMakeLists.txt")
	assert.Contains(t, pyManifest, "GR_ADD_TEST(qa_square_ff")
	st, err := os.Stat(filepath.Join(dir, "python", "qa_howto_square_ff.py"))
	require.NoError(t, err)
	assert.NotZero(t, st.Mode()&0o111, "python qa file should be executable")

	grcManifest := readTestFile(t, dir, "grc/CMakeLists.txt")
	assert.Contains(t, grcManifest, "howto_square_ff.xml")
	assert.FileExists(t, filepath.Join(dir, "grc", "howto_square_ff.xml"))
}

func TestAddCommand_SkipFlags(t *testing.T) {
	dir := newTestModule(t)

	_, err := runCommand(t, "add", "-d", dir, "-N", "decim_cc", "-t", "decimator",
		"--skip-swig", "--skip-python", "--skip-grc", "--skip-cpp-qa")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "lib", "howto_decim_cc.cc"))
	assert.NoFileExists(t, filepath.Join(dir, "lib", "qa_howto_decim_cc.cc"))
	assert.NoFileExists(t, filepath.Join(dir, "grc", "howto_decim_cc.xml"))
	assert.NotContains(t, readTestFile(t, dir, "swig/howto.i"), "decim_cc")
	assert.NoFileExists(t, filepath.Join(dir, "python", "qa_howto_decim_cc.py"))
}

func TestAddCommand_BlockTypeFromConfig(t *testing.T) {
	dir := newTestModule(t)
	writeTestFile(t, dir, ".modtool.yml", "block-type: sync\n")

	_, err := runCommand(t, "add", "-d", dir, "-N", "conf_ff",
		"--skip-python", "--skip-swig", "--skip-cpp-qa")
	require.NoError(t, err)
	assert.Contains(t, readTestFile(t, dir, "lib/howto_conf_ff.cc"), "gr_sync_block")
}

func TestAddCommand_InvalidBlockType(t *testing.T) {
	dir := newTestModule(t)
	_, err := runCommand(t, "add", "-d", dir, "-N", "foo", "-t", "magic")
	assert.ErrorContains(t, err, "invalid block type")
}

func TestAddCommand_MissingBlockName(t *testing.T) {
	dir := newTestModule(t)
	_, err := runCommand(t, "add", "-d", dir, "-t", "sync")
	assert.ErrorContains(t, err, "--block-name is required")
}

func TestAddCommand_LicenseFromModuleFile(t *testing.T) {
	dir := newTestModule(t)
	writeTestFile(t, dir, "LICENSE", "Custom license text\n")

	_, err := runCommand(t, "add", "-d", dir, "-N", "lic_ff", "-t", "sync",
		"--skip-python", "--skip-swig", "--skip-cpp-qa")
	require.NoError(t, err)
	assert.Contains(t, readTestFile(t, dir, "lib/howto_lic_ff.cc"), "Custom license text")
}

func TestAddCommand_PythonHierBlock(t *testing.T) {
	dir := newTestModule(t)

	_, err := runCommand(t, "add", "-d", dir, "-N", "chain", "-t", "hier", "-l", "python")
	require.NoError(t, err)

	py := readTestFile(t, dir, "python/chain.py")
	assert.Contains(t, py, "class chain(gr.hier_block2):")
	assert.Contains(t, readTestFile(t, dir, "python/CMakeLists.txt"), "chain.py")
	assert.FileExists(t, filepath.Join(dir, "grc", "howto_chain.xml"))
}

func TestAddCommand_PythonNonHierRejected(t *testing.T) {
	dir := newTestModule(t)
	_, err := runCommand(t, "add", "-d", dir, "-N", "foo", "-t", "sync", "-l", "python")
	assert.ErrorContains(t, err, "only supported as hier blocks")
}
