package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntity is wrapped by every InvalidEntityError.
	ErrInvalidEntity = errors.New("ecs: invalid entity")
	// ErrUnsupported is wrapped by every UnsupportedError.
	ErrUnsupported = errors.New("ecs: unsupported")
)

// InvalidEntityError reports an operation that referenced an entity and component
// combination violating a precondition: a missing component on get, a duplicate add,
// a double remove, or a mutation of an entity that is not alive.
// These are raised as panics since the calling code is defective.
type InvalidEntityError struct {
	Op        string
	Entity    uint64
	Component string
}

func (e InvalidEntityError) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("ecs: %s: invalid entity %d", e.Op, e.Entity)
	}
	return fmt.Sprintf("ecs: %s: invalid entity %d for component %s", e.Op, e.Entity, e.Component)
}

func (e InvalidEntityError) Unwrap() error {
	return ErrInvalidEntity
}

// UnsupportedError reports a request the manager cannot serve, such as a query
// built without any component types.
type UnsupportedError struct {
	Op     string
	Reason string
}

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("ecs: %s: %s", e.Op, e.Reason)
}

func (e UnsupportedError) Unwrap() error {
	return ErrUnsupported
}
