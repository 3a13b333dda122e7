package ecs

import (
	"errors"
	"fmt"
)

// MaxHierarchyDepth bounds every walk over the parent/child tree. Deeper
// chains are treated as a cycle.
const MaxHierarchyDepth = 256

var (
	ErrComponentMissing   = errors.New("ecs: component missing")
	ErrComponentAmbiguous = errors.New("ecs: more than one component of the requested type")
	ErrComponentMismatch  = errors.New("ecs: component does not match the requested Go type")
	ErrHierarchyCycle     = errors.New("ecs: cyclic parent/child hierarchy")
	ErrEntityDestroyed    = errors.New("ecs: entity destroyed")
)

// LookupError describes a failed typed component lookup.
type LookupError struct {
	Entity     EntityId
	EntityName string
	Component  string
	Count      int
	Err        error
}

func (e *LookupError) Error() string {
	name := e.EntityName
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("%v: %s on entity %d (%s), found %d", e.Err, e.Component, e.Entity, name, e.Count)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
