package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileFormat identifies a configuration file syntax.
type FileFormat string

const (
	FileFormatYAML FileFormat = "yaml"
	FileFormatTOML FileFormat = "toml"
)

const yamlIndent = 2

// FileFormatFor returns the syntax implied by a config file name.
// Unknown extensions are treated as YAML.
func FileFormatFor(path string) FileFormat {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FileFormatTOML
	}
	return FileFormatYAML
}

// Decode parses configuration data in the syntax implied by path. It also
// returns the keys that do not map onto Config; those are ignored.
func Decode(path string, data []byte) (*Config, []string, error) {
	if FileFormatFor(path) == FileFormatTOML {
		return FromTOML(data)
	}
	return FromYAML(data)
}

// Encode serializes the configuration in the given syntax.
func (c *Config) Encode(format FileFormat) ([]byte, error) {
	switch format {
	case FileFormatTOML:
		return c.ToTOML()
	case FileFormatYAML:
		return c.ToYAML()
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}

// FromYAML parses YAML configuration. Unknown keys are reported, not
// rejected.
func FromYAML(data []byte) (*Config, []string, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(cfg)

	var typeErr *yaml.TypeError
	var unknown []string
	switch {
	case err == nil, errors.Is(err, io.EOF):
	case errors.As(err, &typeErr):
		var others []string
		for _, msg := range typeErr.Errors {
			if key, ok := unknownYAMLField(msg); ok {
				unknown = append(unknown, key)
			} else {
				others = append(others, msg)
			}
		}
		if len(others) > 0 {
			return nil, nil, fmt.Errorf("parse yaml: %s", strings.Join(others, "; "))
		}
		// Strict decoding stops filling fields at the first unknown key.
		cfg = &Config{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, unknown, nil
}

// unknownYAMLField extracts the key from a yaml.v3 strict-mode message such
// as "line 3: field colour not found in type config.Config".
func unknownYAMLField(msg string) (string, bool) {
	_, rest, ok := strings.Cut(msg, "field ")
	if !ok {
		return "", false
	}
	key, _, ok := strings.Cut(rest, " not found in type ")
	return key, ok
}

// ToYAML serializes the configuration as YAML.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// FromTOML parses TOML configuration. Unknown keys are reported, not
// rejected; rule options are free-form and never reported.
func FromTOML(data []byte) (*Config, []string, error) {
	cfg := &Config{}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parse toml: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}

	var unknown []string
	for _, key := range meta.Undecoded() {
		if len(key) >= 3 && key[0] == "rules" && key[2] == "options" {
			continue
		}
		unknown = append(unknown, key.String())
	}
	return cfg, unknown, nil
}

// ToTOML serializes the configuration as TOML.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
