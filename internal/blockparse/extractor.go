// SPDX-License-Identifier: GPL-3.0-or-later
package blockparse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// TypeTranslator maps a raw source type (plus the parameter's default value
// literal, when one exists) to a domain type tag. The default value lets a
// translator disambiguate encoding-sensitive cases, e.g. a hex literal on an
// int parameter.
type TypeTranslator func(rawType, defaultValue string) string

// Extractor scans implementation/header text pairs. The zero value translates
// types through the identity function.
type Extractor struct {
	Translate TypeTranslator
}

var (
	ioCallRe  = regexp.MustCompile(`gr_make_io_signature(v|\d)?\s*\(`)
	factoryRe = regexp.MustCompile(`\w+_API\s+\w+_sptr\s+\w+_make_\w+\s*\(`)
	sizeofRe  = regexp.MustCompile(`sizeof\s*\(([^)]*)\)`)
)

// ExtractIOPorts locates the paired port-construction calls in the
// implementation text and returns the input and output port descriptions.
// Both sides are always attempted; per-side failures are joined into the
// returned error.
func (e *Extractor) ExtractIOPorts(implText string) (in, out IOPort, err error) {
	in = IOPort{Direction: DirectionIn}
	out = IOPort{Direction: DirectionOut}

	locs := ioCallRe.FindAllStringSubmatchIndex(implText, -1)

	var inErr, outErr error
	switch len(locs) {
	case 0:
		inErr = fmt.Errorf("input: %w", ErrNoSignature)
		outErr = fmt.Errorf("output: %w", ErrNoSignature)
	case 1:
		inErr = e.parseIOPort(implText, locs[0], &in)
		outErr = fmt.Errorf("output: %w", ErrNoSignature)
	default:
		inErr = e.parseIOPort(implText, locs[0], &in)
		outErr = e.parseIOPort(implText, locs[1], &out)
		if outErr == nil && !pairedCalls(implText, locs[0], locs[1]) {
			outErr = fmt.Errorf("output: call not comma-joined to input call: %w", ErrNoSignature)
		}
	}

	return in, out, errors.Join(inErr, outErr)
}

// pairedCalls reports whether the second call follows the first's closing
// parenthesis separated only by a comma and whitespace.
func pairedCalls(text string, first, second []int) bool {
	_, end, err := scanCallArgs(text, first[1]-1)
	if err != nil {
		return false
	}
	between := strings.TrimSpace(text[end:second[0]])
	return between == ","
}

func (e *Extractor) parseIOPort(text string, loc []int, port *IOPort) error {
	variant := ""
	if loc[2] >= 0 {
		variant = text[loc[2]:loc[3]]
	}
	if variant == "v" {
		return fmt.Errorf("%s: %w", port.Direction,
			&UnsupportedConstructError{Construct: "vector-based io signature (gr_make_io_signaturev)"})
	}

	args, _, err := scanCallArgs(text, loc[1]-1)
	if err != nil {
		return fmt.Errorf("%s: %w", port.Direction, err)
	}
	if len(args) < 3 {
		return fmt.Errorf("%s: io signature call has %d arguments, want at least 3: %w",
			port.Direction, len(args), ErrNoSignature)
	}

	port.MinPorts = Arity(strings.TrimSpace(args[0]))
	port.MaxPorts = Arity(strings.TrimSpace(args[1]))
	for _, item := range args[2:] {
		port.Types = append(port.Types, e.parsePortType(item))
	}
	return nil
}

// parsePortType decodes one type-list item like "sizeof(float)*vlen" into a
// domain type tag and vector length.
func (e *Extractor) parsePortType(item string) PortType {
	item = strings.TrimSpace(item)

	m := sizeofRe.FindStringSubmatch(item)
	if m == nil {
		// No size wrapper: the whole item is the vector length of a
		// one-byte port.
		return PortType{DataType: "byte", VectorLength: item}
	}

	pt := PortType{DataType: e.translate(strings.TrimSpace(m[1]), "")}

	if !strings.Contains(item, "*") {
		pt.VectorLength = "1"
		return pt
	}
	var factors []string
	for _, fac := range strings.Split(item, "*") {
		if strings.Contains(fac, "sizeof") {
			continue
		}
		factors = append(factors, strings.TrimSpace(fac))
	}
	pt.VectorLength = strings.Join(factors, "*")
	if pt.VectorLength == "" {
		pt.VectorLength = "1"
	}
	return pt
}

// ExtractConstructorParams locates the factory-function declaration in the
// header text and decomposes its argument list. Any argument that cannot be
// split into type and name aborts the extraction.
func (e *Extractor) ExtractConstructorParams(headerText string) ([]ConstructorParam, error) {
	loc := factoryRe.FindStringIndex(headerText)
	if loc == nil {
		return nil, fmt.Errorf("factory declaration: %w", ErrNoSignature)
	}

	args, _, err := scanCallArgs(headerText, loc[1]-1)
	if err != nil {
		return nil, fmt.Errorf("factory declaration: %w", err)
	}
	if len(args) == 1 && strings.TrimSpace(args[0]) == "" {
		return []ConstructorParam{}, nil
	}

	params := make([]ConstructorParam, 0, len(args))
	for _, arg := range args {
		param, err := e.parseParam(arg)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	return params, nil
}

func (e *Extractor) parseParam(arg string) (ConstructorParam, error) {
	raw := strings.TrimSpace(arg)

	decl, defaultV, _ := strings.Cut(raw, "=")
	defaultV = strings.TrimSpace(defaultV)

	fields := strings.Fields(decl)
	if len(fields) < 2 {
		return ConstructorParam{}, &MalformedArgumentError{Raw: raw}
	}
	name := fields[len(fields)-1]
	typ := strings.Join(fields[:len(fields)-1], " ")

	// Reference/pointer glyphs bind to the name token in the templates'
	// style; fold them back into the type.
	glyphs := ""
	for len(name) > 0 && (name[0] == '*' || name[0] == '&') {
		glyphs += string(name[0])
		name = name[1:]
	}
	if name == "" {
		return ConstructorParam{}, &MalformedArgumentError{Raw: raw}
	}
	if glyphs != "" {
		typ += " " + glyphs
	}

	return ConstructorParam{
		Name:              name,
		Type:              e.translate(typ, defaultV),
		Default:           defaultV,
		InConstructorCall: true,
	}, nil
}

func (e *Extractor) translate(rawType, defaultValue string) string {
	if e.Translate == nil {
		return rawType
	}
	return e.Translate(rawType, defaultValue)
}

// scanCallArgs reads a parenthesized argument list starting at the opening
// parenthesis and splits it on top-level commas only, so that nested calls
// like sizeof(...) survive intact. It returns the argument texts and the
// index just past the closing parenthesis.
func scanCallArgs(text string, open int) ([]string, int, error) {
	if open >= len(text) || text[open] != '(' {
		return nil, 0, fmt.Errorf("expected '(' at offset %d: %w", open, ErrNoSignature)
	}

	var args []string
	depth := 0
	argStart := open + 1
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				args = append(args, text[argStart:i])
				return args, i + 1, nil
			}
		case ',':
			if depth == 1 {
				args = append(args, text[argStart:i])
				argStart = i + 1
			}
		}
	}
	return nil, 0, fmt.Errorf("unbalanced parentheses in call at offset %d: %w", open, ErrNoSignature)
}
