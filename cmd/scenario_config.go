package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/epidemic-sim/epidemic-sim/sim"
)

// ScenarioFile is the on-disk format of --scenario-file: named presets
// mapping to complete simulation configs.
type ScenarioFile struct {
	Scenarios map[string]sim.Config `yaml:"scenarios"`
}

// loadScenario reads the named preset from a scenario YAML file. Parsing is
// strict: an unknown key is an error, so a typo in a preset cannot silently
// fall back to a zero value.
func loadScenario(path, name string) (sim.Config, error) {
	if name == "" {
		return sim.Config{}, fmt.Errorf("--scenario-file %s given without --scenario", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sim.Config{}, fmt.Errorf("read scenario file: %w", err)
	}

	var file ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return sim.Config{}, fmt.Errorf("parse scenario file %s: %w", path, err)
	}

	cfg, ok := file.Scenarios[name]
	if !ok {
		names := make([]string, 0, len(file.Scenarios))
		for n := range file.Scenarios {
			names = append(names, n)
		}
		sort.Strings(names)
		return sim.Config{}, fmt.Errorf("scenario %q not found in %s (available: %s)",
			name, path, strings.Join(names, ", "))
	}

	logrus.Infof("Using scenario preset %q from %s", name, path)
	return cfg, nil
}
