// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration. Command line flags override it.
//
type Config struct {
	Cycles uint64   `yaml:"cycles"` // clock cycles to run
	Watch  []string `yaml:"watch"`  // signals to log and trace
	VCD    string   `yaml:"vcd"`    // waveform output path
	DB     string   `yaml:"db"`     // trace database path
}

var config = Config{
	Cycles: 100,
	Watch:  []string{"top.cnt_rd"},
}

// loadConfig merges the file at path, if given, over the defaults.
func loadConfig(path string) error {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading configuration")
	}
	if err := yaml.Unmarshal(b, &config); err != nil {
		return errors.Wrap(err, "parsing configuration")
	}
	if config.Cycles == 0 {
		return errors.New("configuration: cycles must be positive")
	}
	return nil
}
