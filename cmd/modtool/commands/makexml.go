// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grtools/modtool/cmd/modtool/internal/clierr"
	"github.com/grtools/modtool/internal/blockparse"
	"github.com/grtools/modtool/internal/grcgen"
	"github.com/grtools/modtool/internal/manifest"
)

// NewMakeXMLCommand constructs the makexml subcommand. It parses block
// sources and writes GRC binding descriptors for them.
func NewMakeXMLCommand() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:     "makexml",
		Aliases: []string{"mx"},
		Short:   "Generate GRC XML bindings from block sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			re, err := resolvePattern(cmd, pattern, args)
			if err != nil {
				return err
			}
			if !s.Uses("lib") {
				return clierr.New(2, "module has no lib/ subdirectory")
			}

			files, err := matchingBlockSources(s, re)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "None found.")
				return nil
			}
			for _, fname := range files {
				if err := makeXMLForBlock(s, fname, cmd); err != nil {
					return clierr.Wrapf(1, err, "parsing %s", fname)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "regex selecting the blocks to parse")
	return cmd
}

// matchingBlockSources lists the lib/*.cc files that match the pattern,
// excluding QA code.
func matchingBlockSources(s *session, re *regexp.Regexp) ([]string, error) {
	entries, err := os.ReadDir(s.Path("lib"))
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		fname := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(fname, ".cc") || isQAFile("lib", fname) {
			continue
		}
		if re.MatchString(fname) {
			files = append(files, fname)
		}
	}
	return files, nil
}

func makeXMLForBlock(s *session, fname string, cmd *cobra.Command) error {
	base := strings.TrimSuffix(fname, ".cc")
	blockname := strings.TrimPrefix(base, s.Info.Name+"_")

	implText, err := os.ReadFile(s.Path("lib", fname))
	if err != nil {
		return err
	}
	headerText, err := os.ReadFile(s.Path("include", base+".h"))
	if err != nil {
		return err
	}

	ext := &blockparse.Extractor{Translate: grcgen.TranslateType}
	in, out, err := ext.ExtractIOPorts(string(implText))
	if err != nil {
		return err
	}
	params, err := ext.ExtractConstructorParams(string(headerText))
	if err != nil {
		return err
	}
	sig := blockparse.BuildSignature(in, out, params)

	desc := grcgen.Emit(sig, s.Info.Name, blockname, "")
	xmlName := base + ".xml"
	fmt.Fprintf(cmd.OutOrStdout(), "Writing grc/%s...\n", xmlName)
	if err := desc.WriteFile(s.Path("grc", xmlName)); err != nil {
		return err
	}
	return registerGRCFile(s, xmlName)
}

// registerGRCFile adds the XML file to the grc manifest unless it is already
// listed there.
func registerGRCFile(s *session, xmlName string) error {
	if !s.Uses("grc") {
		return nil
	}
	manifestPath := s.Path("grc", "CMakeLists.txt")
	ed, err := manifest.Load(manifestPath, manifest.WithSeparator("\n    "))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if strings.Contains(ed.String(), xmlName) {
		return nil
	}
	ed.AppendValue("install", xmlName, `DESTINATION[^()]+`)
	return ed.Write(manifestPath)
}
