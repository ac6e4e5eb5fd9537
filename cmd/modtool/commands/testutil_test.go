// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with the given args and returns its
// combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readTestFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(data)
}

// newTestModule lays out a minimal module named howto with one existing
// block, square2_ff, registered everywhere a block gets registered.
func newTestModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeTestFile(t, dir, "CMakeLists.txt", `cmake_minimum_required(VERSION 2.6)
project(gr-howto CXX)
find_package(GnuradioCore)
`)
	writeTestFile(t, dir, "lib/CMakeLists.txt", `add_library(gnuradio-howto SHARED howto_square2_ff.cc)

add_executable(qa_howto_square2_ff qa_howto_square2_ff.cc)
target_link_libraries(qa_howto_square2_ff gnuradio-howto ${Boost_LIBRARIES})
GR_ADD_TEST(qa_howto_square2_ff qa_howto_square2_ff)
`)
	writeTestFile(t, dir, "include/CMakeLists.txt", `install(FILES
    howto_square2_ff.h
    DESTINATION include)
`)
	writeTestFile(t, dir, "python/CMakeLists.txt", `GR_PYTHON_INSTALL(FILES __init__.py DESTINATION ${GR_PYTHON_DIR}/howto)

GR_ADD_TEST(qa_howto_square2_ff ${PYTHON_EXECUTABLE} ${CMAKE_CURRENT_SOURCE_DIR}/qa_howto_square2_ff.py)
`)
	writeTestFile(t, dir, "grc/CMakeLists.txt", `install(FILES
    howto_square2_ff.xml
    DESTINATION ${GRC_BLOCKS_DIR})
`)
	writeTestFile(t, dir, "swig/howto.i", `%{
#include "gnuradio_swig_bug_workaround.h"
#include "howto_square2_ff.h"
%}

GR_SWIG_BLOCK_MAGIC(howto,square2_ff);
%include "howto_square2_ff.h"
`)

	writeTestFile(t, dir, "lib/howto_square2_ff.cc", `howto_square2_ff::howto_square2_ff (float scale_factor)
  : gr_sync_block ("square2_ff",
       gr_make_io_signature (1, 1, sizeof (float)),
       gr_make_io_signature (1, 1, sizeof (float)))
{
}
`)
	writeTestFile(t, dir, "include/howto_square2_ff.h", `class howto_square2_ff;

HOWTO_API howto_square2_ff_sptr howto_make_square2_ff (float scale_factor);
`)
	writeTestFile(t, dir, "lib/qa_howto_square2_ff.cc", "// qa\n")
	writeTestFile(t, dir, "python/qa_howto_square2_ff.py", "# qa\n")
	writeTestFile(t, dir, "grc/howto_square2_ff.xml", "<block/>\n")

	return dir
}
