// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeXMLCommand(t *testing.T) {
	dir := newTestModule(t)

	out, err := runCommand(t, "makexml", "-d", dir, "-p", "square2")
	require.NoError(t, err)
	assert.Contains(t, out, "Writing grc/howto_square2_ff.xml...")

	xml := readTestFile(t, dir, "grc/howto_square2_ff.xml")
	assert.Contains(t, xml, "<block>")
	assert.Contains(t, xml, "<key>howto_square2_ff</key>")
	assert.Contains(t, xml, "<make>howto.square2_ff($scale_factor)</make>")
	assert.Contains(t, xml, "<type>real</type>")

	// Already registered in the fixture, so no duplicate entry.
	grcManifest := readTestFile(t, dir, "grc/CMakeLists.txt")
	assert.Equal(t, 1, strings.Count(grcManifest, "howto_square2_ff.xml"))
}

func TestMakeXMLCommand_NoMatches(t *testing.T) {
	dir := newTestModule(t)

	out, err := runCommand(t, "makexml", "-d", dir, "-p", "doesnotexist")
	require.NoError(t, err)
	assert.Contains(t, out, "None found.")
}

func TestMakeXMLCommand_SkipsQAFiles(t *testing.T) {
	dir := newTestModule(t)

	out, err := runCommand(t, "makexml", "-d", dir, "-p", "qa_")
	require.NoError(t, err)
	assert.Contains(t, out, "None found.")
}
