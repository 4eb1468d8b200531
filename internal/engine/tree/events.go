package tree

import "go.trai.ch/canopy/internal/core/domain"

// publish delivers events to the sink. Callers must not hold any tree lock.
func (t *Tree) publish(events ...domain.Event) {
	for _, e := range events {
		if e.Name.IsDeprecated() {
			t.opts.Logger.Debug("deprecated event", "event", string(e.Name), "warning", e.Warning)
		}
		if t.opts.Events != nil {
			t.opts.Events.Publish(e)
		}
	}
}
