package models

import "strings"

// Filter selects entities by owning project and funnel type. Empty fields match everything.
type Filter struct {
	ProjectID string
	Type      ContentType
}

type Filterable interface {
	OwnerID() string
	Kind() ContentType
}

func (c Content) OwnerID() string    { return c.ProjectID }
func (c Content) Kind() ContentType  { return c.Type }
func (c Campaign) OwnerID() string   { return c.ProjectID }
func (c Campaign) Kind() ContentType { return c.Type }

func (f Filter) Match(item Filterable) bool {
	if id := strings.TrimSpace(f.ProjectID); id != "" && item.OwnerID() != id {
		return false
	}
	if f.Type != "" && item.Kind() != f.Type {
		return false
	}
	return true
}

// Apply returns the matching items in their original order. The input slice is not modified.
func Apply[T Filterable](items []T, f Filter) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}
