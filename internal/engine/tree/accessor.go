package tree

import "go.trai.ch/canopy/internal/core/domain"

// Accessor reads and writes logical fields of host node data.
// Node data is never copied; writes go back into the host's value.
type Accessor interface {
	Get(data any, f domain.Field) (any, bool)
	Set(data any, f domain.Field, v any)
}

// MapAccessor addresses map[string]any node data, such as decoded JSON or YAML,
// through a field name mapping.
type MapAccessor struct {
	Names domain.FieldNames
}

// NewMapAccessor creates a MapAccessor, filling empty names with their defaults.
func NewMapAccessor(names domain.FieldNames) MapAccessor {
	return MapAccessor{Names: names.WithDefaults()}
}

// Get implements Accessor.
func (a MapAccessor) Get(data any, f domain.Field) (any, bool) {
	m, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[a.Names.Key(f)]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Set implements Accessor. Writes to non-map data are dropped.
func (a MapAccessor) Set(data any, f domain.Field, v any) {
	m, ok := data.(map[string]any)
	if !ok {
		return
	}
	m[a.Names.Key(f)] = v
}

// AccessorFuncs adapts typed host records through named extraction and injection
// functions. A nil extractor reports the field as absent; a nil injector drops writes.
type AccessorFuncs struct {
	ID          func(data any) (any, bool)
	SetID       func(data any, id string)
	Children    func(data any) ([]any, bool)
	SetChildren func(data any, children []any)
	Display     func(data any) (any, bool)
	IsExpanded  func(data any) bool
	HasChildren func(data any) bool
}

// Get implements Accessor.
func (a AccessorFuncs) Get(data any, f domain.Field) (any, bool) {
	switch f {
	case domain.FieldID:
		if a.ID != nil {
			return a.ID(data)
		}
	case domain.FieldChildren:
		if a.Children != nil {
			children, ok := a.Children(data)
			if !ok {
				return nil, false
			}
			return children, true
		}
	case domain.FieldDisplay:
		if a.Display != nil {
			return a.Display(data)
		}
	case domain.FieldIsExpanded:
		if a.IsExpanded != nil {
			return a.IsExpanded(data), true
		}
	case domain.FieldHasChildren:
		if a.HasChildren != nil {
			return a.HasChildren(data), true
		}
	}
	return nil, false
}

// Set implements Accessor. Only the id and children fields are writable.
func (a AccessorFuncs) Set(data any, f domain.Field, v any) {
	switch f {
	case domain.FieldID:
		if a.SetID != nil {
			if id, ok := domain.NodeIDFromValue(v); ok {
				a.SetID(data, id.String())
			}
		}
	case domain.FieldChildren:
		if a.SetChildren != nil {
			children, _ := asSlice(v)
			a.SetChildren(data, children)
		}
	case domain.FieldDisplay, domain.FieldIsExpanded, domain.FieldHasChildren:
	}
}

// asSlice converts a raw children value into a slice of node data.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		res := make([]any, len(s))
		for i, m := range s {
			res[i] = m
		}
		return res, true
	default:
		return nil, false
	}
}

// truthy interprets a flag field value decoded from JSON or YAML.
func truthy(v any, ok bool) bool {
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	case float64:
		return b != 0
	case int:
		return b != 0
	default:
		return v != nil
	}
}
