package model

import "strings"

// Challenge is a task teams earn points on. MaxPoints is advisory and is not
// enforced against awarded points.
type Challenge struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description"`
	MaxPoints   float64 `json:"maxPoints" validate:"gte=0"`
}

// ChallengePatch carries the challenge fields a client may set.
type ChallengePatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=4000"`
	MaxPoints   *Number `json:"maxPoints,omitempty" validate:"omitempty,gte=0"`
}

// Apply merges p over c.
func (p ChallengePatch) Apply(c Challenge) Challenge {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.MaxPoints != nil {
		c.MaxPoints = p.MaxPoints.Float64()
	}
	return c
}

// NewChallenge builds a challenge with the given id from p.
func NewChallenge(id string, p ChallengePatch) Challenge {
	return p.Apply(Challenge{ID: id})
}
