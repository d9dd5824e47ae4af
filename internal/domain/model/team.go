// Package model contains the scoreboard entities, their patches and the
// derived read models served to clients.
package model

import "strings"

// DefaultTeamColor is applied when a team is created without a colour.
const DefaultTeamColor = "#7A1027"

// Team is a competing group.
type Team struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required,max=120"`
	Members string `json:"members"`
	Color   string `json:"color" validate:"omitempty,hexcolor"`
}

// TeamPatch carries the team fields a client may set. Nil fields are left
// untouched on update.
type TeamPatch struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Members *string `json:"members,omitempty" validate:"omitempty,max=2000"`
	Color   *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Apply merges p over t.
func (p TeamPatch) Apply(t Team) Team {
	if p.Name != nil {
		t.Name = strings.TrimSpace(*p.Name)
	}
	if p.Members != nil {
		t.Members = *p.Members
	}
	if p.Color != nil {
		t.Color = strings.TrimSpace(*p.Color)
	}
	return t
}

// NewTeam builds a team with the given id from p.
func NewTeam(id string, p TeamPatch) Team {
	t := p.Apply(Team{ID: id})
	if t.Color == "" {
		t.Color = DefaultTeamColor
	}
	return t
}
