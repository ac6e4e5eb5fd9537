// SPDX-License-Identifier: GPL-3.0-or-later

package codegen

import "fmt"

// InputSig returns the input io_signature arguments for the block skeleton.
// Sources have no inputs.
func (b Block) InputSig() string {
	if b.BlockType == "source" {
		return "0, 0, 0"
	}
	return "<+MIN_IN+>, <+MAX_IN+>, sizeof (<+float+>)"
}

// OutputSig returns the output io_signature arguments for the block skeleton.
// Sinks have no outputs.
func (b Block) OutputSig() string {
	if b.BlockType == "sink" {
		return "0, 0, 0"
	}
	return "<+MIN_OUT+>, <+MAX_OUT+>, sizeof (<+float+>)"
}

// DecimSuffix returns the extra base-class constructor argument for
// rate-changing blocks.
func (b Block) DecimSuffix() string {
	switch b.BlockType {
	case "decimator":
		return ", <+decimation+>"
	case "interpolator":
		return ", <+interpolation+>"
	}
	return ""
}

// SwigBlockMagic returns the lines appended to the main swig file for a
// new block.
func SwigBlockMagic(modname, blockname string) string {
	return fmt.Sprintf("\nGR_SWIG_BLOCK_MAGIC(%s,%s);\n%%include \"%s_%s.h\"\n",
		modname, blockname, modname, blockname)
}

// QACMakeEntry returns the CMake stanza that registers a C++ QA executable.
func QACMakeEntry(basename, filename, modname string) string {
	return fmt.Sprintf(`
add_executable(%s %s)
target_link_libraries(%s gnuradio-%s ${Boost_LIBRARIES})
GR_ADD_TEST(%s %s)
`, basename, filename, basename, modname, basename, basename)
}

var skeletons = map[string]string{
	"block_cpp": `/* -*- c++ -*- */
{{ccComment .License -}}
#ifdef HAVE_CONFIG_H
#include "config.h"
#endif

#include <gr_io_signature.h>
#include "{{.FullName}}.h"


{{.FullName}}_sptr
{{.ModName}}_make_{{.BlockName}} ({{stripDefaults .ArgList}})
{
	return gnuradio::get_initial_sptr (new {{.FullName}}({{stripTypes .ArgList}}));
}


/*
 * The private constructor
 */
{{.FullName}}::{{.FullName}} ({{stripDefaults .ArgList}})
  : {{.GRBlockType}} ("{{.BlockName}}",
		   gr_make_io_signature({{.InputSig}}),
		   gr_make_io_signature({{.OutputSig}}){{.DecimSuffix}})
{
{{- if eq .BlockType "hier"}}
	connect(self(), 0, d_firstblock, 0);
	// connect other blocks
	connect(d_lastblock, 0, self(), 0);
{{- else}}
	// Put in <+constructor stuff+> here
{{- end}}
}


/*
 * Our virtual destructor.
 */
{{.FullName}}::~{{.FullName}}()
{
	// Put in <+destructor stuff+> here
}

{{if eq .BlockType "general" -}}
int
{{.FullName}}::general_work (int noutput_items,
				   gr_vector_int &ninput_items,
				   gr_vector_const_void_star &input_items,
				   gr_vector_void_star &output_items)
{
	const float *in = (const float *) input_items[0];
	float *out = (float *) output_items[0];

	// Do <+signal processing+>
	// Tell runtime system how many input items we consumed on
	// each input stream.
	consume_each (noutput_items);

	// Tell runtime system how many output items we produced.
	return noutput_items;
}
{{else if ne .BlockType "hier" -}}
int
{{.FullName}}::work(int noutput_items,
		  gr_vector_const_void_star &input_items,
		  gr_vector_void_star &output_items)
{
	const float *in = (const float *) input_items[0];
	float *out = (float *) output_items[0];

	// Do <+signal processing+>

	// Tell runtime system how many output items we produced.
	return noutput_items;
}
{{end}}`,

	"block_h": `/* -*- c++ -*- */
{{ccComment .License}}
#ifndef INCLUDED_{{upper .ModName}}_{{upper .BlockName}}_H
#define INCLUDED_{{upper .ModName}}_{{upper .BlockName}}_H

#include <{{.ModName}}_api.h>
#include <{{.GRBlockType}}.h>

class {{.FullName}};

typedef boost::shared_ptr<{{.FullName}}> {{.FullName}}_sptr;

{{upper .ModName}}_API {{.FullName}}_sptr {{.ModName}}_make_{{.BlockName}} ({{.ArgList}});

/*!
 * \brief <+description+>
 *
 */
class {{upper .ModName}}_API {{.FullName}} : public {{.GRBlockType}}
{
 private:
	friend {{upper .ModName}}_API {{.FullName}}_sptr {{.ModName}}_make_{{.BlockName}} ({{stripDefaults .ArgList}});

	{{.FullName}}({{stripDefaults .ArgList}});

 public:
	~{{.FullName}}();

{{if eq .BlockType "general"}}	// Where all the action really happens
	int general_work (int noutput_items,
	    gr_vector_int &ninput_items,
	    gr_vector_const_void_star &input_items,
	    gr_vector_void_star &output_items);
{{else if ne .BlockType "hier"}}	// Where all the action really happens
	int work (int noutput_items,
	    gr_vector_const_void_star &input_items,
	    gr_vector_void_star &output_items);
{{end}}};

#endif /* INCLUDED_{{upper .ModName}}_{{upper .BlockName}}_H */
`,

	"noblock_h": `/* -*- c++ -*- */
{{ccComment .License}}
#ifndef INCLUDED_{{upper .ModName}}_{{upper .BlockName}}_H
#define INCLUDED_{{upper .ModName}}_{{upper .BlockName}}_H

#include <{{.ModName}}_api.h>

class {{upper .ModName}}_API {{.BlockName}}
{
	{{.BlockName}}({{.ArgList}});
	~{{.BlockName}}();
 private:
};

#endif /* INCLUDED_{{upper .ModName}}_{{upper .BlockName}}_H */
`,

	"noblock_cpp": `/* -*- c++ -*- */
{{ccComment .License}}
#ifdef HAVE_CONFIG_H
#include <config.h>
#endif

#include <{{.FullName}}.h>


{{.BlockName}}::{{.BlockName}}({{stripDefaults .ArgList}})
{
}

{{.BlockName}}::~{{.BlockName}}()
{
}
`,

	"qa_cpp": `/* -*- c++ -*- */
{{ccComment .License}}
#include <boost/test/unit_test.hpp>

BOOST_AUTO_TEST_CASE(qa_{{.FullName}}_t1){
    BOOST_CHECK_EQUAL(2 + 2, 4);
    // BOOST_* test macros <+here+>
}

BOOST_AUTO_TEST_CASE(qa_{{.FullName}}_t2){
    BOOST_CHECK_EQUAL(2 + 2, 4);
    // BOOST_* test macros <+here+>
}
`,

	"qa_python": `#!/usr/bin/env python
{{pyComment .License}}
from gnuradio import gr, gr_unittest
import {{.ModName}}_swig as {{.ModName}}

class qa_{{.BlockName}} (gr_unittest.TestCase):

    def setUp (self):
        self.tb = gr.top_block ()

    def tearDown (self):
        self.tb = None

    def test_001_t (self):
        # set up fg
        self.tb.run ()
        # check data


if __name__ == '__main__':
    gr_unittest.run(qa_{{.BlockName}}, "qa_{{.BlockName}}.xml")
`,

	"hier_python": `#!/usr/bin/env python
{{pyComment .License}}
from gnuradio import gr

class {{.BlockName}}(gr.hier_block2):
    def __init__(self{{if .ArgList}}, {{.ArgList}}{{end}}):
        """
        docstring
        """
        gr.hier_block2.__init__(self, "{{.BlockName}}",
            gr.io_signature(<+MIN_IN+>, <+MAX_IN+>, gr.sizeof_<+float+>),  # Input signature
            gr.io_signature(<+MIN_OUT+>, <+MAX_OUT+>, gr.sizeof_<+float+>)) # Output signature

        # Define blocks and connect them
        self.connect()
`,

	"grc_xml": `<?xml version="1.0"?>
<block>
  <name>{{.BlockName}}</name>
  <key>{{.FullName}}</key>
  <category>{{.ModName}}</category>
  <import>import {{.ModName}}</import>
  <make>{{.ModName}}.{{.BlockName}}({{stripTypes .ArgList}})</make>
  <!-- Make one 'param' node for every parameter you want settable from the GUI.
       Sub-nodes:
       * name
       * key (makes the value accessible as $keyname, e.g. in the make node)
       * type -->
  <param>
    <name>...</name>
    <key>...</key>
    <type>...</type>
  </param>

  <!-- Make one 'sink' node per input. Sub-nodes:
       * name (an identifier for the GUI)
       * type
       * vlen
       * optional (set to 1 for optional inputs) -->
  <sink>
    <name>in</name>
    <type><!-- e.g. int, real, complex, byte, short, xxx_vector, ...--></type>
  </sink>

  <!-- Make one 'source' node per output. Sub-nodes:
       * name (an identifier for the GUI)
       * type
       * vlen
       * optional (set to 1 for optional inputs) -->
  <source>
    <name>out</name>
    <type><!-- e.g. int, real, complex, byte, short, xxx_vector, ...--></type>
  </source>
</block>
`,
}
