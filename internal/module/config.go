// SPDX-License-Identifier: GPL-3.0-or-later
package module

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional per-module defaults file at the module root.
const ConfigFile = ".modtool.yml"

// Config carries per-module defaults for the add command. All fields are
// optional; flags override them.
type Config struct {
	// LicenseFile points at the license header used for new source files.
	LicenseFile string `yaml:"license-file"`
	// Copyright is the copyright holder substituted into new files.
	Copyright string `yaml:"copyright"`
	// BlockType is the default block type for add.
	BlockType string `yaml:"block-type"`
}

// LoadConfig reads the module's .modtool.yml. A missing file yields the zero
// Config; a malformed one is an error.
func LoadConfig(dir string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", ConfigFile, err)
	}
	return cfg, nil
}
