// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grtools/modtool/cmd/modtool/internal/clierr"
	"github.com/grtools/modtool/internal/module"
)

// session bundles the detected module and the global flag values a
// subcommand acts on.
type session struct {
	Info   *module.Info
	Config module.Config
	skip   map[string]bool
}

// newSession resolves the global flags into a detected module. Commands that
// require a module root call this first.
func newSession(cmd *cobra.Command) (*session, error) {
	dir, _ := cmd.Flags().GetString("directory")
	info, err := module.Detect(dir)
	if err != nil {
		return nil, clierr.Wrap(2, "no module found", err)
	}
	if name, _ := cmd.Flags().GetString("module-name"); name != "" {
		info.Name = name
	}

	cfg, err := module.LoadConfig(info.Dir)
	if err != nil {
		return nil, clierr.Wrap(1, "loading module config", err)
	}

	skip := make(map[string]bool)
	for _, sub := range []string{"lib", "swig", "python", "grc"} {
		skip[sub], _ = cmd.Flags().GetBool("skip-" + sub)
	}

	return &session{Info: info, Config: cfg, skip: skip}, nil
}

// Uses reports whether the command should touch the given subdirectory: it
// must exist and not be skipped by flag. include/ is coupled to the lib flag.
func (s *session) Uses(subdir string) bool {
	key := subdir
	if subdir == "include" {
		key = "lib"
	}
	return s.Info.HasSubdir[subdir] && !s.skip[key]
}

// Path joins path elements onto the module root.
func (s *session) Path(elem ...string) string {
	return filepath.Join(append([]string{s.Info.Dir}, elem...)...)
}
