// SPDX-License-Identifier: GPL-3.0-or-later

// Package grcgen emits GRC block binding descriptors from extracted block
// signatures. The descriptor is an XML document the visual editor consumes
// structurally; child ordering is fixed and serialization is byte-stable so
// generated files diff cleanly.
package grcgen

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/grtools/modtool/internal/blockparse"
	"github.com/grtools/modtool/internal/fsutil"
)

// Descriptor is the root of a GRC block binding document. Field order here is
// serialization order.
type Descriptor struct {
	XMLName  xml.Name `xml:"block"`
	Name     string   `xml:"name"`
	Key      string   `xml:"key"`
	Category string   `xml:"category"`
	Import   string   `xml:"import"`
	Make     string   `xml:"make"`

	Params  []ParamNode `xml:"param"`
	Sinks   []PortNode  `xml:"sink"`
	Sources []PortNode  `xml:"source"`

	Doc string `xml:"doc,omitempty"`
}

// ParamNode describes one constructor parameter.
type ParamNode struct {
	Name    string `xml:"name"`
	Key     string `xml:"key"`
	Type    string `xml:"type"`
	Default string `xml:"default"`
}

// PortNode describes one concrete port. Vlen is present only when the vector
// length differs from 1; Nports only on a repeated final port.
type PortNode struct {
	Name   string `xml:"name"`
	Type   string `xml:"type"`
	Vlen   string `xml:"vlen,omitempty"`
	Nports string `xml:"nports,omitempty"`
}

// Emit builds the descriptor for one block from its extracted signature.
func Emit(sig blockparse.BlockSignature, modname, blockname, doc string) *Descriptor {
	var makeArgs []string
	for _, p := range sig.Params {
		if p.InConstructorCall {
			makeArgs = append(makeArgs, "$"+p.Name)
		}
	}

	d := &Descriptor{
		Name:     capitalize(blockname),
		Key:      fmt.Sprintf("%s_%s", modname, blockname),
		Category: strings.ToUpper(modname),
		Import:   "import " + modname,
		Make:     fmt.Sprintf("%s.%s(%s)", modname, blockname, strings.Join(makeArgs, ", ")),
		Doc:      doc,
	}

	for _, p := range sig.Params {
		d.Params = append(d.Params, ParamNode{
			Name:    capitalize(p.Name),
			Key:     p.Name,
			Type:    p.Type,
			Default: p.Default,
		})
	}

	d.Sinks = portNodes(sig.Input)
	d.Sources = portNodes(sig.Output)
	return d
}

// portNodes expands one IO side into descriptor port nodes. The final node
// carries the repeat count when the declared maximum exceeds the concrete
// port count.
func portNodes(port blockparse.IOPort) []PortNode {
	var nodes []PortNode
	for i, pt := range port.Types {
		node := PortNode{
			Name: string(port.Direction),
			Type: pt.DataType,
			Vlen: vlenField(pt.VectorLength),
		}
		if i == len(port.Types)-1 {
			node.Nports = nportsField(port, len(port.Types))
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func vlenField(vlen string) string {
	if vlen == "" || vlen == "1" {
		return ""
	}
	if _, err := strconv.Atoi(vlen); err == nil {
		return vlen
	}
	return "$" + vlen
}

func nportsField(port blockparse.IOPort, concrete int) string {
	if port.MaxPorts.IsUnbounded() {
		return "$" + port.CountParam()
	}
	if n, ok := port.MaxPorts.Literal(); ok {
		if n > concrete {
			return strconv.Itoa(n - concrete)
		}
		return ""
	}
	// Symbolic maximum: reference the parameter by name.
	return "$" + strings.TrimSpace(string(port.MaxPorts))
}

// Marshal serializes the descriptor as pretty-printed XML with a fixed
// two-space indent. Output is byte-stable for identical input.
func (d *Descriptor) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling descriptor: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// WriteFile marshals the descriptor and writes it to path atomically.
func (d *Descriptor) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	return fsutil.AtomicWrite(path, data)
}

// capitalize upper-cases the first letter and lower-cases the rest, matching
// the display-name convention of existing GRC descriptors.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
