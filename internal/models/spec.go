package models

import (
	"time"
)

// ActionSpec is the author-supplied description of a USDC transfer action.
// While a draft is being collected every field may still be zero.
type ActionSpec struct {
	Title             string    `json:"title" validate:"required"`
	Icon              string    `json:"icon" validate:"required"`
	Description       string    `json:"description" validate:"required"`
	Label             string    `json:"label" validate:"required"`
	PredefinedAmounts []float64 `json:"predefinedAmounts" validate:"required,min=1,dive,gt=0"`
	Recipient         string    `json:"recipient" validate:"required"`
}

// Clone returns a deep copy so later mutations of the receiver never leak into the copy.
func (s ActionSpec) Clone() ActionSpec {
	out := s
	if s.PredefinedAmounts != nil {
		out.PredefinedAmounts = make([]float64, len(s.PredefinedAmounts))
		copy(out.PredefinedAmounts, s.PredefinedAmounts)
	}
	return out
}

// ActionParameter describes a user-supplied input of an action link
type ActionParameter struct {
	Name     string `json:"name"`
	Label    string `json:"label,omitempty"`
	Required bool   `json:"required,omitempty"`
}

// ActionLink is one executable option of a published action
type ActionLink struct {
	Label      string            `json:"label"`
	Href       string            `json:"href"`
	Parameters []ActionParameter `json:"parameters,omitempty"`
}

// Links groups the executable options of an action
type Links struct {
	Actions []ActionLink `json:"actions"`
}

// Spec is a persisted, fully validated action specification
type Spec struct {
	ID string `json:"id"`
	ActionSpec
	Links     Links     `json:"links"`
	CreatedAt time.Time `json:"createdAt"`
}
