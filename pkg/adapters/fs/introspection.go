package fs

import (
	"os"
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path     string     `json:"path"`
	Exists   bool       `json:"exists"`
	Modified *time.Time `json:"modified,omitempty"`
}

// State implements introspection.Introspectable.
func (s *ConfigStore) State() any {
	state := StoreState{Path: s.path}
	if info, err := os.Stat(s.path); err == nil {
		mod := info.ModTime()
		state.Exists = true
		state.Modified = &mod
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *ConfigStore) ComponentType() string {
	return "config-store"
}

var _ introspection.Introspectable = (*ConfigStore)(nil)
var _ introspection.Component = (*ConfigStore)(nil)
