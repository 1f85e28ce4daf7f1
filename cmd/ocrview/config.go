package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gardar/ocrview/pkg/viewer"
)

// loadConfig reads a YAML file over the viewer defaults. Keys the file
// leaves out keep their default values; unknown keys are an error.
func loadConfig(path string) (viewer.Config, error) {
	cfg := viewer.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// parseShow reads the comma separated -show list
func parseShow(list string) ([]viewer.Toggle, error) {
	var toggles []viewer.Toggle
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := viewer.ParseToggle(name)
		if err != nil {
			return nil, err
		}
		toggles = append(toggles, t)
	}
	return toggles, nil
}
