// Package config provides the configuration loader for canopy.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path. A missing canopy.yaml yields the defaults;
// any other missing file is an error. Relative data paths are resolved against the
// directory of the configuration file.
func (l *Loader) Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && filepath.Base(path) == domain.ConfigFileName {
			l.Logger.Debug("no configuration file, using defaults", "path", path)
			cfg := domain.DefaultConfig()
			cfg.DataPath = filepath.Join(filepath.Dir(path), cfg.DataPath)
			return cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Canopyfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrInvalidConfig, err), "failed to parse config file"),
			"path", path)
	}

	cfg, err := file.toDomain(filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func invalid(field string, value any) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "invalid value"), "field", field), "value", value)
}

func (f *Canopyfile) toDomain(dir string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if f.Version != "" && f.Version != domain.ConfigVersion {
		return nil, invalid("version", f.Version)
	}

	if f.Data != "" {
		cfg.DataPath = f.Data
	}
	cfg.DataPath = resolve(dir, cfg.DataPath)
	cfg.Ignores = f.Ignore
	if f.ChildrenDir != "" {
		cfg.ChildrenDir = resolve(dir, f.ChildrenDir)
	}
	cfg.Fields = f.Fields.WithDefaults()

	if f.NodeHeight != nil {
		if *f.NodeHeight < 0 {
			return nil, invalid("nodeHeight", *f.NodeHeight)
		}
		cfg.NodeHeight = *f.NodeHeight
	}
	for key, h := range f.Heights {
		if h < 0 {
			return nil, invalid("heights."+key, h)
		}
	}
	cfg.Heights = f.Heights
	cfg.HeightField = f.HeightField
	cfg.ClassField = f.ClassField
	if len(cfg.Heights) > 0 && cfg.HeightField == "" {
		cfg.HeightField = "type"
	}

	if f.LevelPadding != nil {
		if *f.LevelPadding < 0 {
			return nil, invalid("levelPadding", *f.LevelPadding)
		}
		cfg.LevelPadding = *f.LevelPadding
	}

	strategy, err := domain.ParseIDStrategy(f.IDStrategy)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrInvalidConfig, err), "field", "idStrategy")
	}
	cfg.IDStrategy = strategy

	if f.AllowDrag != nil {
		cfg.AllowDrag = *f.AllowDrag
	}
	cfg.DenyRootIndexZero = f.AllowDrop.DenyRootIndexZero

	if f.LoadConcurrency != nil {
		if *f.LoadConcurrency < 1 {
			return nil, invalid("loadConcurrency", *f.LoadConcurrency)
		}
		cfg.LoadConcurrency = *f.LoadConcurrency
	}

	for name, handler := range f.Actions {
		action, err := domain.ParseAction(name)
		if err != nil {
			return nil, zerr.With(errors.Join(domain.ErrInvalidConfig, err), "field", "actions")
		}
		cfg.Actions[action] = handler
	}

	if f.LogLevel != "" {
		cfg.LogLevel = domain.ParseLogLevel(f.LogLevel)
	}
	cfg.LogJSON = f.LogJSON
	return cfg, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
