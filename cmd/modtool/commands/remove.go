// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grtools/modtool/cmd/modtool/internal/clierr"
	"github.com/grtools/modtool/internal/fsutil"
	"github.com/grtools/modtool/internal/manifest"
)

// manifestEntries maps each subdirectory to the manifest entries its files
// are registered in.
var manifestEntries = map[string][]string{
	"lib":     {"add_library"},
	"include": {"install"},
	"python":  {"GR_PYTHON_INSTALL", "install"},
	"grc":     {"install"},
}

// NewRemoveCommand constructs the rm subcommand. It deletes files matching a
// pattern and unregisters them from the build files.
func NewRemoveCommand() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove"},
		Short:   "Remove a block from the module",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			re, err := resolvePattern(cmd, pattern, args)
			if err != nil {
				return err
			}

			for _, subdir := range []string{"lib", "include", "python", "grc"} {
				if !s.Uses(subdir) {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Traversing %s...\n", subdir)
				if err := removeFromSubdir(s, subdir, re, cmd); err != nil {
					return err
				}
			}
			if s.Uses("swig") {
				if err := removeFromSwig(s, re, cmd); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "regex selecting the files to remove")
	return cmd
}

// resolvePattern picks the file-selection regex from --pattern, --block-name
// or a positional argument, in that order.
func resolvePattern(cmd *cobra.Command, pattern string, args []string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern, _ = cmd.Flags().GetString("block-name")
	}
	if pattern == "" && len(args) > 0 {
		pattern = args[0]
	}
	if pattern == "" {
		return nil, clierr.New(2, "no pattern given (use --pattern or --block-name)")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, clierr.Wrap(2, "invalid pattern", err)
	}
	return re, nil
}

func removeFromSubdir(s *session, subdir string, re *regexp.Regexp, cmd *cobra.Command) error {
	entries, err := os.ReadDir(s.Path(subdir))
	if err != nil {
		return err
	}

	manifestPath := s.Path(subdir, "CMakeLists.txt")
	ed, err := manifest.Load(manifestPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		ed = nil
	}

	removedAny := false
	for _, entry := range entries {
		fname := entry.Name()
		if entry.IsDir() || fname == "CMakeLists.txt" || !re.MatchString(fname) {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removing file '%s'...\n", fname)
		if err := os.Remove(s.Path(subdir, fname)); err != nil {
			return err
		}
		removedAny = true
		if ed == nil {
			continue
		}
		if isQAFile(subdir, fname) {
			base := strings.TrimSuffix(fname, filepath.Ext(fname))
			ed.DeleteEntry("add_executable", regexp.QuoteMeta(fname))
			ed.DeleteEntry("target_link_libraries", regexp.QuoteMeta(base))
			ed.DeleteEntry("GR_ADD_TEST", regexp.QuoteMeta(base))
			continue
		}
		for _, manifestEntry := range manifestEntries[subdir] {
			ed.RemoveValue(manifestEntry, fname, "")
		}
	}

	if removedAny && ed != nil {
		ed.RemoveBlankRuns()
		return ed.Write(manifestPath)
	}
	return nil
}

// isQAFile reports whether fname is a QA registration rather than a library
// source in the given subdirectory.
func isQAFile(subdir, fname string) bool {
	switch subdir {
	case "lib":
		return strings.HasPrefix(fname, "qa_") && strings.HasSuffix(fname, ".cc")
	case "python":
		return strings.HasPrefix(fname, "qa_") && strings.HasSuffix(fname, ".py")
	}
	return false
}

// removeFromSwig strips matching includes and block magic lines from the
// module's main swig file.
func removeFromSwig(s *session, re *regexp.Regexp, cmd *cobra.Command) error {
	fname := s.Info.MainSwigFile()
	if fname == "" {
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Editing %s...\n", fname)
	path := s.Path("swig", fname)
	for _, p := range []string{
		`^#include.*` + re.String() + `.*\n`,
		`^%include.*` + re.String() + `.*\n`,
		`^GR_SWIG_BLOCK_MAGIC\(.*` + re.String() + `.*\n`,
	} {
		if err := fsutil.RemovePattern(path, p); err != nil {
			return err
		}
	}
	return nil
}
