// Package config loads optional bvc-cli defaults from a YAML file, so
// repeated invocations against the same solver/depth don't need to repeat
// flags every time.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a -config document. Zero values mean
// "use the flag default"; every field is optional.
type File struct {
	SolverPath  string `yaml:"solver"`
	Depth       int    `yaml:"depth"`
	CheckSorted bool   `yaml:"check_sorted"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
