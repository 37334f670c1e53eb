// Package model holds the item entity, its filter and patch types, and the
// request payloads the HTTP layer binds into.
package model

// Item is a single to-do entry.
type Item struct {
	ID          int64  `json:"id" db:"id"`
	Description string `json:"description" db:"description"`
	IsDone      bool   `json:"is_done" db:"is_done"`
}

// ItemFilter narrows a listing. A nil field places no constraint; set
// fields are combined with AND.
type ItemFilter struct {
	IsDone *bool
	// HasDescription compares against the empty string, so a
	// whitespace-only description still counts as present.
	HasDescription *bool
}

// Matches reports whether item satisfies every constraint in f.
func (f ItemFilter) Matches(item Item) bool {
	if f.IsDone != nil && item.IsDone != *f.IsDone {
		return false
	}
	if f.HasDescription != nil && (item.Description != "") != *f.HasDescription {
		return false
	}
	return true
}

// IsEmpty reports whether f places no constraint at all.
func (f ItemFilter) IsEmpty() bool {
	return f.IsDone == nil && f.HasDescription == nil
}

// ItemPatch is a partial update. Nil fields are left unchanged.
type ItemPatch struct {
	Description *string
	IsDone      *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Description == nil && p.IsDone == nil
}

// Apply copies the set fields of p onto item.
func (p ItemPatch) Apply(item *Item) {
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.IsDone != nil {
		item.IsDone = *p.IsDone
	}
}
