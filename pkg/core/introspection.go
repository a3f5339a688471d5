package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	StoreType string `json:"store_type"`
	APIType   string `json:"api_type"`
	LoggedIn  bool   `json:"logged_in"`
	Instance  string `json:"instance,omitempty"`
}

// State implements introspection.Introspectable.
// The access token is never part of the state.
func (s *Service) State() any {
	state := ServiceState{
		StoreType: componentType(s.store, "store"),
		APIType:   componentType(s.api, "api"),
	}

	if cred, err := s.store.Load(); err == nil {
		state.LoggedIn = true
		state.Instance = cred.Instance
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

// Components returns the store and API when they are introspectable.
func (s *Service) Components() []introspection.Introspectable {
	var out []introspection.Introspectable
	for _, c := range []any{s.store, s.api} {
		if intro, ok := c.(introspection.Introspectable); ok {
			out = append(out, intro)
		}
	}
	return out
}

func componentType(v any, fallback string) string {
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return fallback
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
