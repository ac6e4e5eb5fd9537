// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grtools/modtool/internal/module"
)

// moduleInfo is the serializable output of the info command.
type moduleInfo struct {
	BaseDir     string   `json:"base_dir"`
	ModName     string   `json:"modname"`
	BuildDir    string   `json:"build_dir,omitempty"`
	IncludeDirs []string `json:"incdirs"`
}

// NewInfoCommand constructs the info subcommand.
func NewInfoCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "info",
		Aliases: []string{"getinfo", "inf"},
		Short:   "Print information about the module",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("directory")
			info, err := module.DetectNear(dir)
			if err != nil {
				if asJSON {
					fmt.Fprintln(cmd.OutOrStdout(), "{}")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "No module found.")
				}
				return nil
			}

			out := buildModuleInfo(info)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			prettyPrintInfo(cmd, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the module info as JSON")
	return cmd
}

func buildModuleInfo(info *module.Info) moduleInfo {
	out := moduleInfo{
		ModName:     info.Name,
		IncludeDirs: info.IncludeDirs(),
	}
	out.BaseDir, _ = filepath.Abs(info.Dir)
	out.BuildDir = findBuildDir(info.Dir)
	if out.BuildDir != "" {
		out.IncludeDirs = append(out.IncludeDirs, coreIncludeDirs(out.BuildDir)...)
	}
	return out
}

// findBuildDir locates the CMake build directory, preferring build/ and
// falling back to the first directory holding a CMakeCache.txt.
func findBuildDir(dir string) string {
	if _, err := os.Stat(filepath.Join(dir, "build", "CMakeCache.txt")); err == nil {
		return filepath.Join(dir, "build")
	}
	var found string
	_ = filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil || found != "" || fi.IsDir() {
			return err
		}
		if filepath.Base(path) == "CMakeCache.txt" {
			found = filepath.Dir(path)
		}
		return nil
	})
	return found
}

// coreIncludeDirs extracts the GNU Radio include paths from CMakeCache.txt.
func coreIncludeDirs(buildDir string) []string {
	f, err := os.Open(filepath.Join(buildDir, "CMakeCache.txt"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var dirs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		for _, key := range []string{"GNURADIO_CORE_INCLUDE_DIRS:PATH=", "GRUEL_INCLUDE_DIRS:PATH="} {
			if rest, ok := strings.CutPrefix(line, key); ok {
				for _, d := range strings.Split(strings.TrimSpace(rest), ";") {
					if d != "" {
						dirs = append(dirs, d)
					}
				}
			}
		}
	}
	return dirs
}

func prettyPrintInfo(cmd *cobra.Command, out moduleInfo) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%19s: %s\n", "Base directory", out.BaseDir)
	fmt.Fprintf(w, "%19s: %s\n", "Module name", out.ModName)
	if out.BuildDir != "" {
		fmt.Fprintf(w, "%19s: %s\n", "Build directory", out.BuildDir)
	}
	fmt.Fprintf(w, "%19s: %s\n", "Include directories", strings.Join(out.IncludeDirs, " "))
}
