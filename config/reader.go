package config

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Format is the encoding of a config file.
type Format string

// Supported config formats.
const (
	FormatJSON  Format = "json"
	FormatJSON5 Format = "json5"
	FormatTOML  Format = "toml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".json5":
		return FormatJSON5
	default:
		return FormatJSON
	}
}

// Read reads a config from the given file, substituting environment variables first. Fields missing from the file
// keep their Default values.
func Read(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf), FormatFromPath(filePath))
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, format Format) (*Config, error) {
	attrs := map[string]interface{}{}
	switch format {
	case FormatTOML:
		if err := toml.NewDecoder(r).Decode(&attrs); err != nil {
			return nil, errors.Wrapf(err, "failed to decode config %q from toml", originalPath)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&attrs); err != nil {
			return nil, errors.Wrapf(err, "failed to decode config %q from json", originalPath)
		}
	case FormatJSON5:
		buf, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if err := json5.Unmarshal(buf, &attrs); err != nil {
			return nil, errors.Wrapf(err, "failed to decode config %q from json5", originalPath)
		}
	default:
		return nil, errors.Errorf("unknown config format %q", format)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      cfg,
		ZeroFields:  true,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config %q", originalPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %q", originalPath)
	}
	return cfg, nil
}
