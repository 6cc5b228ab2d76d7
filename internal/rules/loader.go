// File: internal/rules/loader.go
// Project: EC4X Engine
// Description: Loads a rule snapshot from a configuration file
// Version: 1.0.0
// Created: 2026-01-07

package rules

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a rule snapshot from path, starting from Default() so a
// scenario's config file only needs to list overrides. path may be empty,
// in which case Default() is returned unmodified.
//
// Rule snapshots already round-trip through encoding/json elsewhere
// (ConfigHash, the persisted `config_json` column), so JSON is used here
// too rather than introducing a second config format.
func Load(path string) (*Snapshot, error) {
	snapshot := Default()
	if path == "" {
		return snapshot, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return snapshot, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rules: read config %q: %w", path, err)
	}

	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("rules: parse config %q: %w", path, err)
	}
	return snapshot, nil
}
