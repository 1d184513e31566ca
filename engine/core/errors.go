package core

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the engine packages. Typed errors unwrap to these
// sentinels so callers can test with errors.Is.
var (
	ErrMissingComponent = errors.New("missing component")
	ErrStaleEntity      = errors.New("stale entity reference")
	ErrResourceNotFound = errors.New("resource not found")
	ErrConfiguration    = errors.New("configuration error")
)

// MissingComponentError reports a required component an entity does not have
type MissingComponentError struct {
	Entity EntityID
	Type   ComponentType
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("entity %v: missing component %v", e.Entity, e.Type)
}

func (e *MissingComponentError) Unwrap() error { return ErrMissingComponent }

// StaleEntityError reports an id whose entity was already deleted
type StaleEntityError struct {
	Entity EntityID
}

func (e *StaleEntityError) Error() string {
	return fmt.Sprintf("entity %v: stale reference", e.Entity)
}

func (e *StaleEntityError) Unwrap() error { return ErrStaleEntity }

// ResourceError reports a failed collaborator lookup (map, image, save slot)
type ResourceError struct {
	Kind string
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q not found: %v", e.Kind, e.Name, e.Err)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *ResourceError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrResourceNotFound, e.Err}
	}
	return []error{ErrResourceNotFound}
}

// ConfigError reports a malformed tuning value rejected at construction time
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }
