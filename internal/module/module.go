// SPDX-License-Identifier: GPL-3.0-or-later

// Package module locates and describes a GNU Radio out-of-tree module
// directory.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Subdirs lists the module subdirectories modtool operates in.
var Subdirs = []string{"lib", "include", "python", "swig", "grc"}

var (
	corePackageRe  = regexp.MustCompile(`find_package\(GnuradioCore\)`)
	projectNameRe  = regexp.MustCompile(`(?m)projectname\s*=\s*([a-zA-Z0-9-_]+)$`)
	cmakeProjectRe = regexp.MustCompile(`(?m)project\s*\(\s*gr-([a-zA-Z0-9-_]+)\s*CXX`)
)

// Info describes a detected module.
type Info struct {
	// Dir is the module root directory.
	Dir string
	// Name is the module name without the gr- prefix.
	Name string
	// HasSubdir reports which of the known subdirectories exist.
	HasSubdir map[string]bool
}

// Detect validates dir as a module root and returns its description. A valid
// root has a top-level CMakeLists.txt referencing GnuradioCore and at least
// one of the known subdirectories.
func Detect(dir string) (*Info, error) {
	data, err := os.ReadFile(filepath.Join(dir, "CMakeLists.txt"))
	if err != nil {
		return nil, fmt.Errorf("no module found in %s: %w", dir, err)
	}
	if !corePackageRe.Match(data) {
		return nil, fmt.Errorf("no module found in %s: CMakeLists.txt does not reference GnuradioCore", dir)
	}

	info := &Info{Dir: dir, HasSubdir: make(map[string]bool)}
	for _, sub := range Subdirs {
		if st, err := os.Stat(filepath.Join(dir, sub)); err == nil && st.IsDir() {
			info.HasSubdir[sub] = true
		}
	}
	if len(info.HasSubdir) == 0 {
		return nil, fmt.Errorf("no module found in %s: none of the expected subdirectories exist", dir)
	}

	info.Name, err = Name(dir)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// DetectNear tries dir, then its parent, tolerating an include/... start
// directory. Used by the info command.
func DetectNear(dir string) (*Info, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if info, err := Detect(abs); err == nil {
		return info, nil
	}
	return Detect(filepath.Dir(abs))
}

// Name recovers the module name, preferring gnuradio.project's projectname
// line and falling back to the project(gr-X CXX) entry in CMakeLists.txt.
func Name(dir string) (string, error) {
	if data, err := os.ReadFile(filepath.Join(dir, "gnuradio.project")); err == nil {
		if m := projectNameRe.FindSubmatch(data); m != nil {
			return string(m[1]), nil
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "CMakeLists.txt"))
	if err != nil {
		return "", fmt.Errorf("reading CMakeLists.txt: %w", err)
	}
	m := cmakeProjectRe.FindSubmatch(data)
	if m == nil {
		return "", fmt.Errorf("cannot determine module name from %s", filepath.Join(dir, "CMakeLists.txt"))
	}
	return string(m[1]), nil
}

// MainSwigFile returns the name of the module's main SWIG interface file,
// either <mod>.i or <mod>_swig.i, or "" when neither exists.
func (i *Info) MainSwigFile() string {
	for _, fname := range []string{i.Name + ".i", i.Name + "_swig.i"} {
		if _, err := os.Stat(filepath.Join(i.Dir, "swig", fname)); err == nil {
			return fname
		}
	}
	return ""
}

// IncludeDirs returns the include directories that exist under the module.
func (i *Info) IncludeDirs() []string {
	var dirs []string
	for _, candidate := range []string{"include", filepath.Join("include", i.Name)} {
		if st, err := os.Stat(filepath.Join(i.Dir, candidate)); err == nil && st.IsDir() {
			dirs = append(dirs, filepath.Join(i.Dir, candidate))
		}
	}
	return dirs
}
