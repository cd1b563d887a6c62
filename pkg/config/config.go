package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/limaJavier/hstt/pkg/search"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load reads a search configuration from a JSON or YAML file, chosen by extension. Keys
// absent from the file keep their default values
func Load(file string) (search.Config, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return search.Config{}, fmt.Errorf("cannot read configuration: %w", err)
	}

	var input map[string]any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &input)
	case ".json":
		err = json.Unmarshal(bytes, &input)
	default:
		return search.Config{}, fmt.Errorf("unsupported configuration format \"%v\": use .json, .yaml or .yml", filepath.Ext(file))
	}
	if err != nil {
		return search.Config{}, fmt.Errorf("cannot parse configuration %v: %w", file, err)
	}
	return Decode(input)
}

// Decode overlays input on the default configuration and validates the result
func Decode(input map[string]any) (search.Config, error) {
	config := search.DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &config,
	})
	if err != nil {
		return search.Config{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return search.Config{}, fmt.Errorf("cannot decode configuration: %w", err)
	}
	if err := config.Validate(); err != nil {
		return search.Config{}, err
	}
	return config, nil
}
