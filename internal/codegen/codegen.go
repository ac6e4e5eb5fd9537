// SPDX-License-Identifier: GPL-3.0-or-later

// Package codegen renders skeleton source files for new blocks and provides
// the argument-list helpers the templates need.
package codegen

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"time"
)

// BlockTypes lists the supported block types for the add command.
var BlockTypes = []string{"sink", "source", "sync", "decimator", "interpolator", "general", "hier", "noblock"}

// grTypeOf maps a block type to the GNU Radio base class.
var grTypeOf = map[string]string{
	"sink":         "gr_sync_block",
	"source":       "gr_sync_block",
	"sync":         "gr_sync_block",
	"decimator":    "gr_sync_decimator",
	"interpolator": "gr_sync_interpolator",
	"general":      "gr_block",
	"hier":         "gr_hier_block2",
	"noblock":      "",
}

// ValidBlockType reports whether t is one of the supported block types.
func ValidBlockType(t string) bool {
	_, ok := grTypeOf[t]
	return ok
}

// Block carries the substitution data for one new block.
type Block struct {
	ModName   string
	BlockName string
	BlockType string
	ArgList   string
	License   string
}

// FullName returns the modname_blockname identifier.
func (b Block) FullName() string {
	return b.ModName + "_" + b.BlockName
}

// GRBlockType returns the GNU Radio base class for the block.
func (b Block) GRBlockType() string {
	return grTypeOf[b.BlockType]
}

var defaultValueRe = regexp.MustCompile(` *=[^,)]*`)

// StripDefaultValues removes default values from a C++ argument list.
func StripDefaultValues(args string) string {
	return defaultValueRe.ReplaceAllString(args, "")
}

// StripArgTypes reduces a C++ argument list to its argument names:
// "int arg1, double arg2 = 1.0" becomes "arg1, arg2".
func StripArgTypes(args string) string {
	args = StripDefaultValues(args)
	if strings.TrimSpace(args) == "" {
		return ""
	}
	var names []string
	for _, part := range strings.Split(args, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		name := strings.TrimLeft(fields[len(fields)-1], "*&")
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// CCComment wraps text in a C block comment.
func CCComment(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	var b strings.Builder
	b.WriteString("/* " + lines[0] + "\n")
	for _, line := range lines[1:] {
		b.WriteString(" * " + line + "\n")
	}
	b.WriteString(" */\n")
	return b.String()
}

// PyComment prefixes every line of text with a Python comment marker.
func PyComment(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n") + "\n"
}

// DefaultLicense returns the license header used when the module ships none.
func DefaultLicense(copyright string) string {
	if copyright == "" {
		copyright = "<+YOU OR YOUR COMPANY+>"
	}
	return fmt.Sprintf(`Copyright %d %s.

This is free software; you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation; either version 3, or (at your option)
any later version.

This software is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this software; see the file COPYING.  If not, write to
the Free Software Foundation, Inc., 51 Franklin Street,
Boston, MA 02110-1301, USA.
`, time.Now().Year(), copyright)
}

var funcs = template.FuncMap{
	"upper":         strings.ToUpper,
	"ccComment":     CCComment,
	"pyComment":     PyComment,
	"stripDefaults": StripDefaultValues,
	"stripTypes":    StripArgTypes,
}

// Render executes the named skeleton template with the block's data.
func Render(name string, b Block) (string, error) {
	src, ok := skeletons[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	tpl, err := template.New(name).Funcs(funcs).Parse(src)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}
	var out strings.Builder
	if err := tpl.Execute(&out, b); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", name, err)
	}
	return out.String(), nil
}
