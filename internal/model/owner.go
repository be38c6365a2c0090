package model

import "errors"

// ErrAmbiguousOwner is returned when a program item, assignment, or task
// does not belong to exactly one of {template, occurrence}.
var ErrAmbiguousOwner = errors.New("owner must be exactly one of template or occurrence")

// OwnerRef binds a row to either an event template or an event occurrence,
// never both. The two columns stay nullable at the storage level (with a
// CHECK constraint), but code always goes through the constructors and
// accessors so the exclusivity invariant holds structurally.
type OwnerRef struct {
	TemplateID   *string `gorm:"type:uuid;index" json:"template_id,omitempty"`
	OccurrenceID *string `gorm:"type:uuid;index" json:"occurrence_id,omitempty"`
}

// TemplateOwner builds an OwnerRef pointing at a template.
func TemplateOwner(templateID string) OwnerRef {
	return OwnerRef{TemplateID: &templateID}
}

// OccurrenceOwner builds an OwnerRef pointing at an occurrence.
func OccurrenceOwner(occurrenceID string) OwnerRef {
	return OwnerRef{OccurrenceID: &occurrenceID}
}

// Validate checks the exactly-one invariant.
func (o OwnerRef) Validate() error {
	if (o.TemplateID == nil) == (o.OccurrenceID == nil) {
		return ErrAmbiguousOwner
	}
	return nil
}

// OwnedByTemplate reports whether the row belongs to the given template.
func (o OwnerRef) OwnedByTemplate(templateID string) bool {
	return o.TemplateID != nil && *o.TemplateID == templateID
}

// OwnedByOccurrence reports whether the row belongs to the given occurrence.
func (o OwnerRef) OwnedByOccurrence(occurrenceID string) bool {
	return o.OccurrenceID != nil && *o.OccurrenceID == occurrenceID
}
