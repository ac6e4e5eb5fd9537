// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grtools/modtool/internal/manifest"
)

// NewDisableCommand constructs the disable subcommand. Instead of deleting
// anything it comments the matching files out of the build.
func NewDisableCommand() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:     "disable",
		Aliases: []string{"dis"},
		Short:   "Disable blocks by commenting them out of the build files",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			re, err := resolvePattern(cmd, pattern, args)
			if err != nil {
				return err
			}

			for _, subdir := range []string{"lib", "include", "python", "grc", "swig"} {
				if !s.Uses(subdir) {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Traversing %s...\n", subdir)
				if err := disableInSubdir(s, subdir, re, cmd); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "regex selecting the files to disable")
	return cmd
}

func disableInSubdir(s *session, subdir string, re *regexp.Regexp, cmd *cobra.Command) error {
	manifestPath := s.Path(subdir, "CMakeLists.txt")
	ed, err := manifest.Load(manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, fname := range ed.FindFilenames(re) {
		fmt.Fprintf(cmd.OutOrStdout(), "Disabling %s...\n", fname)
		switch {
		case subdir == "python" && isQAFile(subdir, fname):
			ed.CommentOutLines(`GR_ADD_TEST.*` + regexp.QuoteMeta(fname))
		case subdir == "lib" && isQAFile(subdir, fname):
			base := strings.TrimSuffix(fname, ".cc")
			ed.CommentOutLines(`add_executable.*` + regexp.QuoteMeta(fname))
			ed.CommentOutLines(`target_link_libraries.*` + regexp.QuoteMeta(base))
			ed.CommentOutLines(`GR_ADD_TEST.*` + regexp.QuoteMeta(base))
		default:
			ed.DisableFile(fname)
		}
	}
	return ed.Write(manifestPath)
}
