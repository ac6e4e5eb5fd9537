// SPDX-License-Identifier: GPL-3.0-or-later

// Package golden compares test output against checked-in golden files.
// Run tests with -update to rewrite the golden files from current output.
package golden

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var Update = flag.Bool("update", false, "update golden files")

// Read returns the contents of testdata/<name>.golden, or "" if the file
// does not exist yet.
func Read(t *testing.T, name string) string {
	t.Helper()
	safeName(t, name)

	path := filepath.Join("testdata", name+".golden")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatalf("read golden %s: %v", path, err)
	}
	return string(data)
}

// Assert compares got against the golden file, rewriting it first when the
// -update flag is set.
func Assert(t *testing.T, name, got string) {
	t.Helper()

	if *Update {
		write(t, name, got)
	}
	want := Read(t, name)
	if got != want {
		t.Errorf("output does not match golden %s (run with -update to refresh):\nGOT:\n%s\nWANT:\n%s", name, got, want)
	}
}

func write(t *testing.T, name, content string) {
	t.Helper()
	safeName(t, name)

	if err := os.MkdirAll("testdata", 0o750); err != nil {
		t.Fatalf("mkdir testdata: %v", err)
	}
	path := filepath.Join("testdata", name+".golden")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write golden %s: %v", path, err)
	}
}

func safeName(t *testing.T, name string) {
	t.Helper()
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		t.Fatalf("invalid golden name %q", name)
	}
}
