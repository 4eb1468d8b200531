package config

import "go.trai.ch/canopy/internal/core/domain"

// Canopyfile represents the structure of the canopy.yaml configuration file.
// Pointer fields distinguish unset values from explicit zeros.
type Canopyfile struct {
	Version         string            `yaml:"version"`
	Data            string            `yaml:"data"`
	ChildrenDir     string            `yaml:"childrenDir"`
	Ignore          []string          `yaml:"ignore"`
	Fields          domain.FieldNames `yaml:"fields"`
	NodeHeight      *int              `yaml:"nodeHeight"`
	Heights         map[string]int    `yaml:"heights"`
	HeightField     string            `yaml:"heightField"`
	ClassField      string            `yaml:"classField"`
	LevelPadding    *int              `yaml:"levelPadding"`
	IDStrategy      string            `yaml:"idStrategy"`
	AllowDrag       *bool             `yaml:"allowDrag"`
	AllowDrop       AllowDropDTO      `yaml:"allowDrop"`
	LoadConcurrency *int              `yaml:"loadConcurrency"`
	Actions         map[string]string `yaml:"actions"`
	LogLevel        string            `yaml:"logLevel"`
	LogJSON         bool              `yaml:"logJSON"`
}

// AllowDropDTO configures the built-in drop policy.
type AllowDropDTO struct {
	DenyRootIndexZero bool `yaml:"denyRootIndexZero"`
}
