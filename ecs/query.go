package ecs

import (
	"slices"
	"strings"
)

// EntityQuery selects entities by the component types they hold.
// A query is immutable: Without returns a new query.
type EntityQuery struct {
	include []TypeId
	exclude []TypeId
}

// NewQuery creates a query accepting entities holding every type in include.
// An empty include set accepts every entity.
func NewQuery(include ...TypeId) EntityQuery {
	return EntityQuery{include: slices.Clone(include)}
}

// Without returns a copy of the query that also rejects entities holding
// every type in exclude.
func (q EntityQuery) Without(exclude ...TypeId) EntityQuery {
	return EntityQuery{
		include: q.include,
		exclude: append(slices.Clone(q.exclude), exclude...),
	}
}

// Include returns the included types.
func (q EntityQuery) Include() []TypeId {
	return slices.Clone(q.include)
}

// Exclude returns the excluded types.
func (q EntityQuery) Exclude() []TypeId {
	return slices.Clone(q.exclude)
}

// Accept reports whether entity matches the query. The exclude check runs
// first: a non-empty exclude set that the entity fully holds rejects it
// whatever include says.
func (q EntityQuery) Accept(entity *Entity) bool {
	if len(q.exclude) > 0 && entity.HasAll(q.exclude) {
		return false
	}
	return entity.HasAll(q.include)
}

func (q EntityQuery) String() string {
	var b strings.Builder
	b.WriteString("include[")
	for i, typ := range q.include {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(TypeName(typ))
	}
	b.WriteString("]")
	if len(q.exclude) > 0 {
		b.WriteString(" exclude[")
		for i, typ := range q.exclude {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(TypeName(typ))
		}
		b.WriteString("]")
	}
	return b.String()
}
