package domain

// Field is a logical node field that is mapped onto a key of the host's node data.
type Field int

const (
	// FieldID holds the node identity.
	FieldID Field = iota
	// FieldChildren holds the raw child data array.
	FieldChildren
	// FieldDisplay holds the display label.
	FieldDisplay
	// FieldIsExpanded marks a node to be expanded when it is loaded lazily.
	FieldIsExpanded
	// FieldHasChildren declares that a node has children that are not loaded yet.
	FieldHasChildren
)

// String returns the logical name of the field.
func (f Field) String() string {
	switch f {
	case FieldID:
		return "id"
	case FieldChildren:
		return "children"
	case FieldDisplay:
		return "display"
	case FieldIsExpanded:
		return "isExpanded"
	case FieldHasChildren:
		return "hasChildren"
	default:
		return "unknown"
	}
}

// FieldNames maps logical fields to the keys used in the host's node data.
type FieldNames struct {
	ID          string `yaml:"idField"`
	Children    string `yaml:"childrenField"`
	Display     string `yaml:"displayField"`
	IsExpanded  string `yaml:"isExpandedField"`
	HasChildren string `yaml:"hasChildrenField"`
}

// DefaultFieldNames returns the mapping used when none is configured.
func DefaultFieldNames() FieldNames {
	return FieldNames{
		ID:          "id",
		Children:    "children",
		Display:     "name",
		IsExpanded:  "isExpanded",
		HasChildren: "hasChildren",
	}
}

// Key returns the data key for the given logical field.
func (n FieldNames) Key(f Field) string {
	switch f {
	case FieldID:
		return n.ID
	case FieldChildren:
		return n.Children
	case FieldDisplay:
		return n.Display
	case FieldIsExpanded:
		return n.IsExpanded
	case FieldHasChildren:
		return n.HasChildren
	default:
		return ""
	}
}

// WithDefaults fills every empty key with its default.
func (n FieldNames) WithDefaults() FieldNames {
	def := DefaultFieldNames()
	if n.ID == "" {
		n.ID = def.ID
	}
	if n.Children == "" {
		n.Children = def.Children
	}
	if n.Display == "" {
		n.Display = def.Display
	}
	if n.IsExpanded == "" {
		n.IsExpanded = def.IsExpanded
	}
	if n.HasChildren == "" {
		n.HasChildren = def.HasChildren
	}
	return n
}
