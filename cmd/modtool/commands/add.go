// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grtools/modtool/cmd/modtool/internal/clierr"
	"github.com/grtools/modtool/internal/codegen"
	"github.com/grtools/modtool/internal/fsutil"
	"github.com/grtools/modtool/internal/manifest"
)

// NewAddCommand constructs the add subcommand. It renders the skeleton
// sources for a new block and registers them in the build files.
func NewAddCommand() *cobra.Command {
	var (
		blockType   string
		lang        string
		argList     string
		licenseFile string
		copyright   string
		skipCppQA   bool
		skipPyQA    bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new block to the module",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			blockName, _ := cmd.Flags().GetString("block-name")
			if blockName == "" {
				return clierr.New(2, "--block-name is required")
			}
			if blockType == "" {
				blockType = s.Config.BlockType
			}
			if !codegen.ValidBlockType(blockType) {
				return clierr.Newf(2, "invalid block type %q (one of %s)",
					blockType, strings.Join(codegen.BlockTypes, ", "))
			}
			if lang != "cpp" && lang != "python" {
				return clierr.Newf(2, "invalid language %q (cpp or python)", lang)
			}
			if licenseFile == "" {
				licenseFile = s.Config.LicenseFile
			}
			if copyright == "" {
				copyright = s.Config.Copyright
			}

			license, err := chooseLicense(s, licenseFile, copyright)
			if err != nil {
				return err
			}
			block := codegen.Block{
				ModName:   s.Info.Name,
				BlockName: blockName,
				BlockType: blockType,
				ArgList:   argList,
				License:   license,
			}

			a := &adder{session: s, block: block, out: cmd.OutOrStdout()}
			if lang == "cpp" {
				if s.Uses("lib") {
					if err := a.runLib(!skipCppQA); err != nil {
						return err
					}
				}
				if block.BlockType != "noblock" && s.Uses("swig") {
					if err := a.runSwig(); err != nil {
						return err
					}
					if s.Uses("grc") {
						if err := a.runGRC(); err != nil {
							return err
						}
					}
				}
				if !skipPyQA && s.Uses("python") {
					if err := a.runPythonQA(); err != nil {
						return err
					}
				}
			} else {
				if block.BlockType != "hier" {
					return clierr.New(2, "python blocks are only supported as hier blocks")
				}
				if !s.Uses("python") {
					return clierr.New(2, "module has no python/ subdirectory")
				}
				if err := a.runPythonHier(); err != nil {
					return err
				}
				if s.Uses("grc") {
					if err := a.runGRC(); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&blockType, "block-type", "t", "", "type of the new block (sink, source, sync, decimator, interpolator, general, hier, noblock)")
	cmd.Flags().StringVarP(&lang, "lang", "l", "cpp", "language of the new block (cpp or python)")
	cmd.Flags().StringVar(&argList, "arg-list", "", "comma-separated list of the block's constructor arguments")
	cmd.Flags().StringVar(&licenseFile, "license-file", "", "file containing the license header for new files")
	cmd.Flags().StringVar(&copyright, "copyright", "", "copyright holder for the default license")
	cmd.Flags().BoolVar(&skipCppQA, "skip-cpp-qa", false, "do not generate C++ QA code")
	cmd.Flags().BoolVar(&skipPyQA, "skip-python-qa", false, "do not generate Python QA code")

	return cmd
}

// chooseLicense selects the license header text: an explicit file first, then
// LICENSE or LICENCE in the module root, then the built-in default.
func chooseLicense(s *session, licenseFile, copyright string) (string, error) {
	if licenseFile != "" {
		data, err := os.ReadFile(licenseFile)
		if err != nil {
			return "", clierr.Wrap(1, "reading license file", err)
		}
		return string(data), nil
	}
	for _, name := range []string{"LICENSE", "LICENCE"} {
		if data, err := os.ReadFile(s.Path(name)); err == nil {
			return string(data), nil
		}
	}
	return codegen.DefaultLicense(copyright), nil
}

type adder struct {
	*session
	block codegen.Block
	out   io.Writer
}

func (a *adder) render(tpl, subdir, fname string) error {
	fmt.Fprintf(a.out, "Adding file '%s'...\n", fname)
	content, err := codegen.Render(tpl, a.block)
	if err != nil {
		return err
	}
	return fsutil.AtomicWrite(a.Path(subdir, fname), []byte(content))
}

// runLib creates the .cc and .h files and registers them in the lib and
// include build manifests.
func (a *adder) runLib(withQA bool) error {
	fnameCC := a.block.FullName() + ".cc"
	fnameH := a.block.FullName() + ".h"
	tplCC, tplH := "block_cpp", "block_h"
	if a.block.BlockType == "noblock" {
		tplCC, tplH = "noblock_cpp", "noblock_h"
	}
	if err := a.render(tplH, "include", fnameH); err != nil {
		return err
	}
	if err := a.render(tplCC, "lib", fnameCC); err != nil {
		return err
	}

	ed, err := manifest.Load(a.Path("lib", "CMakeLists.txt"))
	if err != nil {
		return err
	}
	ed.AppendValue("add_library", fnameCC, "")
	if err := ed.Write(a.Path("lib", "CMakeLists.txt")); err != nil {
		return err
	}

	ed, err = manifest.Load(a.Path("include", "CMakeLists.txt"), manifest.WithSeparator("\n    "))
	if err != nil {
		return err
	}
	ed.AppendValue("install", fnameH, `DESTINATION[^()]+`)
	if err := ed.Write(a.Path("include", "CMakeLists.txt")); err != nil {
		return err
	}

	if !withQA || a.block.BlockType == "noblock" {
		return nil
	}
	fnameQA := "qa_" + fnameCC
	if err := a.render("qa_cpp", "lib", fnameQA); err != nil {
		return err
	}
	entry := codegen.QACMakeEntry("qa_"+a.block.FullName(), fnameQA, a.block.ModName)
	if err := fsutil.AppendToFile(a.Path("lib", "CMakeLists.txt"), entry); err != nil {
		return err
	}
	ed, err = manifest.Load(a.Path("lib", "CMakeLists.txt"))
	if err != nil {
		return err
	}
	ed.RemoveBlankRuns()
	return ed.Write(a.Path("lib", "CMakeLists.txt"))
}

var swigIncludeRe = regexp.MustCompile(`#include`)

// runSwig registers the block header in the module's main swig file.
func (a *adder) runSwig() error {
	fname := a.Info.MainSwigFile()
	if fname == "" {
		fmt.Fprintln(a.out, "Warning: no main swig file found, skipping swig/.")
		return nil
	}
	path := a.Path("swig", fname)
	fmt.Fprintf(a.out, "Editing %s...\n", fname)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	include := fmt.Sprintf("#include \"%s.h\"", a.block.FullName())
	if swigIncludeRe.Match(data) {
		if err := fsutil.AppendAfterLastMatch(path, `^#include.*\n`, include); err != nil {
			return err
		}
	} else {
		// An empty swig file still has the %{ ... %} section.
		if err := fsutil.AppendAfterLastMatch(path, `^%\{\n`, include); err != nil {
			return err
		}
	}
	return fsutil.AppendToFile(path, codegen.SwigBlockMagic(a.block.ModName, a.block.BlockName))
}

// runPythonQA adds Python QA code and registers the test.
func (a *adder) runPythonQA() error {
	fname := "qa_" + a.block.FullName() + ".py"
	if err := a.render("qa_python", "python", fname); err != nil {
		return err
	}
	if err := os.Chmod(a.Path("python", fname), 0o755); err != nil {
		return err
	}
	line := fmt.Sprintf("GR_ADD_TEST(qa_%s ${PYTHON_EXECUTABLE} ${CMAKE_CURRENT_SOURCE_DIR}/%s)\n",
		a.block.BlockName, fname)
	return fsutil.AppendToFile(a.Path("python", "CMakeLists.txt"), line)
}

// runPythonHier adds a Python hier block and registers it for installation.
func (a *adder) runPythonHier() error {
	fname := a.block.BlockName + ".py"
	if err := a.render("hier_python", "python", fname); err != nil {
		return err
	}
	ed, err := manifest.Load(a.Path("python", "CMakeLists.txt"))
	if err != nil {
		return err
	}
	ed.AppendValue("GR_PYTHON_INSTALL", fname, `DESTINATION[^()]+`)
	return ed.Write(a.Path("python", "CMakeLists.txt"))
}

// runGRC drops a GRC XML stub and registers it for installation.
func (a *adder) runGRC() error {
	fname := a.block.FullName() + ".xml"
	if err := a.render("grc_xml", "grc", fname); err != nil {
		return err
	}
	ed, err := manifest.Load(a.Path("grc", "CMakeLists.txt"), manifest.WithSeparator("\n    "))
	if err != nil {
		return err
	}
	ed.AppendValue("install", fname, `DESTINATION[^()]+`)
	return ed.Write(a.Path("grc", "CMakeLists.txt"))
}
