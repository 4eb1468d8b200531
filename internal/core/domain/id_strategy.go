package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// IDStrategy selects how ids are generated for nodes whose data carries none.
type IDStrategy string

const (
	// IDStrategyUUID assigns a random UUID.
	IDStrategyUUID IDStrategy = "uuid"
	// IDStrategySequence assigns a tree-scoped monotonic counter.
	IDStrategySequence IDStrategy = "sequence"
	// IDStrategyContent derives the id from the parent id, index and display label,
	// so reconstructed nodes keep their identity.
	IDStrategyContent IDStrategy = "content"
)

// ParseIDStrategy converts a configuration value to an IDStrategy.
// An empty value selects IDStrategyUUID.
func ParseIDStrategy(s string) (IDStrategy, error) {
	switch IDStrategy(strings.ToLower(s)) {
	case "", IDStrategyUUID:
		return IDStrategyUUID, nil
	case IDStrategySequence:
		return IDStrategySequence, nil
	case IDStrategyContent:
		return IDStrategyContent, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownIDStrategy, "cannot parse id strategy"), "id_strategy", s)
	}
}
