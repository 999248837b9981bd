package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyAPI     = "api"
	keyOutput  = "output"
	keyLogging = "logging"
	keyRevenue = "revenue"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyAPI:     true,
	keyOutput:  true,
	keyLogging: true,
	keyRevenue: true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// the target Config. Keys set inside a section override the target's value;
// keys the overlay omits keep whatever the target already had.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]interface{}
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes raw YAML bytes over the current value of the
// section named by key.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyAPI:
		v := target.API
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.API = v
	case keyOutput:
		v := target.Output
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		v := target.Logging
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Logging = v
	case keyRevenue:
		v := target.Revenue
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Revenue = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
