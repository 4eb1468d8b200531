package domain

const (
	// ConfigFileName is the configuration file read when no path is given.
	ConfigFileName = "canopy.yaml"

	// ConfigVersion is the only supported configuration schema version.
	ConfigVersion = "1"
)

// Config is the resolved tree configuration.
// It is produced by a ConfigLoader and consumed when the tree is built.
type Config struct {
	// DataPath is the file holding the top-level node data.
	DataPath string

	// ChildrenDir holds lazily loaded children, one file per node id.
	// Empty disables lazy loading.
	ChildrenDir string

	// Ignores lists file name patterns hidden when DataPath is a directory.
	Ignores []string

	// Fields maps logical node fields to data keys.
	Fields FieldNames

	// NodeHeight is the self height of every node without an override.
	NodeHeight int

	// HeightField names the data key whose value selects an entry of Heights.
	HeightField string

	// Heights overrides NodeHeight per HeightField value.
	Heights map[string]int

	// ClassField names the data key whose value is a node's presentation class.
	ClassField string

	// LevelPadding is the indentation per level.
	LevelPadding int

	// IDStrategy selects how missing ids are generated.
	IDStrategy IDStrategy

	// AllowDrag enables dragging nodes.
	AllowDrag bool

	// DenyRootIndexZero rejects drops at index 0 of top-level nodes.
	DenyRootIndexZero bool

	// LoadConcurrency bounds concurrent child loads during expand-all.
	LoadConcurrency int

	// Actions maps mouse actions to built-in handler names.
	Actions map[Action]string

	// LogLevel is the minimum level written by the logger.
	LogLevel LogLevel

	// LogJSON switches the logger from human-readable lines to JSON records.
	LogJSON bool
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		DataPath:        "tree.json",
		Fields:          DefaultFieldNames(),
		NodeHeight:      1,
		LevelPadding:    2,
		IDStrategy:      IDStrategyUUID,
		AllowDrag:       true,
		LoadConcurrency: 4,
		Actions: map[Action]string{
			ActionClick:         "toggleActive",
			ActionExpanderClick: "toggleExpanded",
			ActionDrop:          "moveNode",
		},
		LogLevel: LogLevelInfo,
	}
}
