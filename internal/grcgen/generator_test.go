// SPDX-License-Identifier: GPL-3.0-or-later
package grcgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grtools/modtool/internal/blockparse"
	"github.com/grtools/modtool/internal/testutil/golden"
)

func squareSignature() blockparse.BlockSignature {
	in := blockparse.IOPort{
		Direction: blockparse.DirectionIn,
		MinPorts:  "1", MaxPorts: "1",
		Types: []blockparse.PortType{{DataType: "real", VectorLength: "1"}},
	}
	out := blockparse.IOPort{
		Direction: blockparse.DirectionOut,
		MinPorts:  "1", MaxPorts: "-1",
		Types: []blockparse.PortType{{DataType: "real", VectorLength: "1"}},
	}
	params := []blockparse.ConstructorParam{
		{Name: "decim", Type: "int", InConstructorCall: true},
		{Name: "gain", Type: "real", Default: "1.0", InConstructorCall: true},
	}
	return blockparse.BuildSignature(in, out, params)
}

func TestEmit_Header(t *testing.T) {
	d := Emit(squareSignature(), "howto", "square_ff", "")

	assert.Equal(t, "Square_ff", d.Name)
	assert.Equal(t, "howto_square_ff", d.Key)
	assert.Equal(t, "HOWTO", d.Category)
	assert.Equal(t, "import howto", d.Import)
	// Only declared params appear in the constructor call, in order.
	assert.Equal(t, "howto.square_ff($decim, $gain)", d.Make)
}

func TestEmit_ParamsIncludeSynthesized(t *testing.T) {
	d := Emit(squareSignature(), "howto", "square_ff", "")

	require.Len(t, d.Params, 3)
	assert.Equal(t, ParamNode{Name: "Decim", Key: "decim", Type: "int"}, d.Params[0])
	assert.Equal(t, ParamNode{Name: "Gain", Key: "gain", Type: "real", Default: "1.0"}, d.Params[1])
	assert.Equal(t, ParamNode{Name: "Num_outputs", Key: "num_outputs", Type: "int", Default: "2"}, d.Params[2])
}

func TestEmit_UnboundedRepeatCount(t *testing.T) {
	d := Emit(squareSignature(), "howto", "square_ff", "")

	require.Len(t, d.Sinks, 1)
	assert.Equal(t, PortNode{Name: "in", Type: "real"}, d.Sinks[0])

	require.Len(t, d.Sources, 1)
	assert.Equal(t, PortNode{Name: "out", Type: "real", Nports: "$num_outputs"}, d.Sources[0])
}

func TestEmit_LiteralRepeatCount(t *testing.T) {
	out := blockparse.IOPort{
		Direction: blockparse.DirectionOut,
		MinPorts:  "1", MaxPorts: "5",
		Types: []blockparse.PortType{{DataType: "complex", VectorLength: "1"}},
	}
	sig := blockparse.BuildSignature(blockparse.IOPort{Direction: blockparse.DirectionIn}, out, nil)

	d := Emit(sig, "howto", "fan_out", "")
	require.Len(t, d.Sources, 1)
	assert.Equal(t, "4", d.Sources[0].Nports)
}

func TestEmit_Vlen(t *testing.T) {
	in := blockparse.IOPort{
		Direction: blockparse.DirectionIn,
		MinPorts:  "2", MaxPorts: "2",
		Types: []blockparse.PortType{
			{DataType: "int", VectorLength: "1"},
			{DataType: "complex", VectorLength: "vlen"},
		},
	}
	sig := blockparse.BuildSignature(in, blockparse.IOPort{Direction: blockparse.DirectionOut}, nil)

	d := Emit(sig, "howto", "combiner", "")
	require.Len(t, d.Sinks, 2)
	assert.Empty(t, d.Sinks[0].Vlen, "vlen 1 is omitted")
	assert.Equal(t, "$vlen", d.Sinks[1].Vlen, "symbolic vlen is prefixed")

	litIn := in
	litIn.Types = []blockparse.PortType{{DataType: "real", VectorLength: "4"}}
	d = Emit(blockparse.BuildSignature(litIn, blockparse.IOPort{Direction: blockparse.DirectionOut}, nil),
		"howto", "combiner", "")
	assert.Equal(t, "4", d.Sinks[0].Vlen)
}

func TestEmit_DocLast(t *testing.T) {
	d := Emit(squareSignature(), "howto", "square_ff", "Squares the input stream.")
	assert.Equal(t, "Squares the input stream.", d.Doc)

	d = Emit(squareSignature(), "howto", "square_ff", "")
	assert.Empty(t, d.Doc)
}

func TestMarshal_Golden(t *testing.T) {
	d := Emit(squareSignature(), "howto", "square_ff", "Squares the input stream.")

	data, err := d.Marshal()
	require.NoError(t, err)
	golden.Assert(t, "square_ff", string(data))
}

func TestMarshal_ByteStable(t *testing.T) {
	a, err := Emit(squareSignature(), "howto", "square_ff", "doc").Marshal()
	require.NoError(t, err)
	b, err := Emit(squareSignature(), "howto", "square_ff", "doc").Marshal()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grc", "howto_square_ff.xml")
	d := Emit(squareSignature(), "howto", "square_ff", "")
	require.NoError(t, d.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<key>howto_square_ff</key>")
}

func TestTranslateType(t *testing.T) {
	tests := []struct {
		raw, def, want string
	}{
		{"float", "", "real"},
		{"double", "", "real"},
		{"gr_complex", "", "complex"},
		{"int", "0xFF", "hex"},
		{"int", "7", "int"},
		{"unsigned char", "0x0F", "unsigned char"},
		{"std::string", "", "std::string"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TranslateType(tt.raw, tt.def), "%s/%s", tt.raw, tt.def)
	}
}
