// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grtools/modtool/cmd/modtool/internal/clierr"
	"github.com/grtools/modtool/internal/fsutil"
	"github.com/grtools/modtool/internal/module"
)

var modNameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// NewNewModCommand constructs the newmod subcommand. It bootstraps a new
// out-of-tree module by copying an existing one and renaming everything.
func NewNewModCommand() *cobra.Command {
	var (
		srcDir    string
		targetDir string
	)

	cmd := &cobra.Command{
		Use:     "newmod",
		Aliases: []string{"nm", "newmodule"},
		Short:   "Create a new out-of-tree module from an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			newName, _ := cmd.Flags().GetString("module-name")
			if newName == "" && len(args) > 0 {
				newName = args[0]
			}
			if !modNameRe.MatchString(newName) {
				return clierr.Newf(2, "invalid module name %q", newName)
			}
			if srcDir == "" {
				return clierr.New(2, "--source-dir is required")
			}

			src, err := module.Detect(srcDir)
			if err != nil {
				return clierr.Wrap(2, "invalid source directory", err)
			}
			if targetDir == "" {
				targetDir = "gr-" + newName
			}
			if _, err := os.Stat(targetDir); err == nil {
				return clierr.Newf(2, "the target directory %s already exists", targetDir)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Copying %s into %s...\n", srcDir, targetDir)
			if err := fsutil.CopyTree(srcDir, targetDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renaming module %s to %s...\n", src.Name, newName)
			return renameModule(targetDir, src.Name, newName)
		},
	}

	cmd.Flags().StringVarP(&srcDir, "source-dir", "D", "", "directory of the module to copy")
	cmd.Flags().StringVar(&targetDir, "target-dir", "", "directory to create (default gr-<module-name>)")
	return cmd
}

// renameModule rewrites the old module name to the new one in file contents
// and file names throughout the tree. The uppercase form covers include
// guards and API macros.
func renameModule(dir, oldName, newName string) error {
	replacements := [][2][]byte{
		{[]byte(oldName), []byte(newName)},
		{[]byte(strings.ToUpper(oldName)), []byte(strings.ToUpper(newName))},
	}

	var renames [][2]string
	err := filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		base := filepath.Base(path)
		if strings.Contains(base, oldName) {
			renamed := filepath.Join(filepath.Dir(path), strings.ReplaceAll(base, oldName, newName))
			renames = append(renames, [2]string{path, renamed})
		}
		if fi.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		updated := data
		for _, r := range replacements {
			updated = bytes.ReplaceAll(updated, r[0], r[1])
		}
		if bytes.Equal(updated, data) {
			return nil
		}
		return fsutil.AtomicWrite(path, updated)
	})
	if err != nil {
		return err
	}

	// Rename leaves first so parent paths stay valid.
	for i := len(renames) - 1; i >= 0; i-- {
		if err := os.Rename(renames[i][0], renames[i][1]); err != nil {
			return err
		}
	}
	return nil
}
