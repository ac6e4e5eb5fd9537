// SPDX-License-Identifier: GPL-3.0-or-later

// Package blockparse recovers a block's port signature and constructor
// parameter list from paired .cc/.h source text.
//
// There is no C++ parser here. The package is only correct for the source
// layouts modtool's own templates produce: it matches a few known syntactic
// shapes with regular expressions and depth-balanced splitting.
package blockparse

import (
	"strconv"
	"strings"
)

// PortDirection identifies the side a port belongs to.
type PortDirection string

const (
	DirectionIn  PortDirection = "in"
	DirectionOut PortDirection = "out"
)

// Arity is a port count as written in the source: a literal non-negative
// integer, or the -1 sentinel for unbounded.
type Arity string

// IsUnbounded reports whether the arity is the -1 sentinel.
func (a Arity) IsUnbounded() bool {
	return strings.TrimSpace(string(a)) == "-1"
}

// Literal returns the arity as an integer when it is one.
func (a Arity) Literal() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(a)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// PortType describes one concrete port before arity expansion.
type PortType struct {
	// DataType is the translated domain type tag, e.g. "float" or "complex".
	DataType string
	// VectorLength is "1", a literal integer, or a symbolic expression such
	// as "vlen".
	VectorLength string
}

// IOPort describes one side of a block's IO signature.
type IOPort struct {
	Direction PortDirection
	MinPorts  Arity
	MaxPorts  Arity
	// Types holds one entry per concrete port. When MaxPorts exceeds
	// len(Types), the last entry is the repeated port.
	Types []PortType
}

// CountParam is the conventional name of the parameter that resolves this
// side's unbounded port count at binding-generation time.
func (p IOPort) CountParam() string {
	if p.Direction == DirectionIn {
		return "num_inputs"
	}
	return "num_outputs"
}

// ConstructorParam is one parameter of the block's factory function.
type ConstructorParam struct {
	Name    string
	Type    string
	Default string
	// InConstructorCall is false for parameters synthesized to carry port
	// counts; the factory function does not declare them.
	InConstructorCall bool
}

// BlockSignature aggregates everything extracted from one block.
type BlockSignature struct {
	Input  IOPort
	Output IOPort
	Params []ConstructorParam
}

// BuildSignature assembles a BlockSignature from extracted ports and
// parameters. Sides with unbounded arity get a synthesized port-count
// parameter appended, excluded from the constructor call.
func BuildSignature(in, out IOPort, params []ConstructorParam) BlockSignature {
	sig := BlockSignature{Input: in, Output: out, Params: params}
	for _, port := range []IOPort{in, out} {
		if port.MaxPorts.IsUnbounded() {
			sig.Params = append(sig.Params, ConstructorParam{
				Name:    port.CountParam(),
				Type:    "int",
				Default: "2",
			})
		}
	}
	return sig
}
