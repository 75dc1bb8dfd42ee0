package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = ".cagc.yaml"

// config is read from .cagc.yaml, command line flags override its values.
type config struct {
	Engine   string  `yaml:"engine"`
	Skip     *string `yaml:"skip"`
	MaxDepth int     `yaml:"max-depth"`
	Format   string  `yaml:"format"`
	Color    string  `yaml:"color"`
}

// loadConfig reads configuration file; missing file is not an error unless its path was set explicitly.
func loadConfig(path string, explicit bool) (config, error) {
	var c config
	data, e := os.ReadFile(path)
	if e != nil {
		if errors.Is(e, os.ErrNotExist) && !explicit {
			return c, nil
		}
		return c, fmt.Errorf("reading config: %w", e)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if e = dec.Decode(&c); e != nil && !errors.Is(e, io.EOF) {
		return c, fmt.Errorf("parsing config %s: %w", path, e)
	}
	return c, nil
}
