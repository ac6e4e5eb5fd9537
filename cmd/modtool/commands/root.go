// SPDX-License-Identifier: GPL-3.0-or-later

// Package commands contains the Cobra subcommands for the modtool CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the modtool root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("MODTOOL_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "modtool",
		Short:         "modtool - edit GNU Radio out-of-tree modules",
		Long:          "modtool adds, removes and disables blocks in GNU Radio out-of-tree modules and generates GRC bindings from block sources.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringP("directory", "d", ".", "base directory of the module")
	cmd.PersistentFlags().StringP("module-name", "n", "", "use this module name instead of the detected one")
	cmd.PersistentFlags().StringP("block-name", "N", "", "name of the block to operate on")
	cmd.PersistentFlags().Bool("skip-lib", false, "do not touch the lib/ subdirectory")
	cmd.PersistentFlags().Bool("skip-swig", false, "do not touch the swig/ subdirectory")
	cmd.PersistentFlags().Bool("skip-python", false, "do not touch the python/ subdirectory")
	cmd.PersistentFlags().Bool("skip-grc", false, "do not touch the grc/ subdirectory")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of modtool",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "modtool version %s\n", version)
		},
	})

	cmd.AddCommand(NewAddCommand())
	cmd.AddCommand(NewRemoveCommand())
	cmd.AddCommand(NewDisableCommand())
	cmd.AddCommand(NewMakeXMLCommand())
	cmd.AddCommand(NewNewModCommand())
	cmd.AddCommand(NewInfoCommand())

	return cmd
}
