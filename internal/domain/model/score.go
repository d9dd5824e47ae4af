package model

import "strings"

// Score is a point award for a team on a challenge.
type Score struct {
	ID          string  `json:"id" validate:"required"`
	TeamID      string  `json:"teamId" validate:"required"`
	ChallengeID string  `json:"challengeId" validate:"required"`
	Points      float64 `json:"points" validate:"gte=0"`
	Badge       *string `json:"badge"`
}

// ScorePatch carries the score fields a client may set. An empty Badge
// clears the badge.
type ScorePatch struct {
	TeamID      *string `json:"teamId,omitempty"`
	ChallengeID *string `json:"challengeId,omitempty"`
	Points      *Number `json:"points,omitempty" validate:"omitempty,gte=0"`
	Badge       *string `json:"badge,omitempty" validate:"omitempty,max=60"`
}

// Apply merges p over s.
func (p ScorePatch) Apply(s Score) Score {
	if p.TeamID != nil {
		s.TeamID = strings.TrimSpace(*p.TeamID)
	}
	if p.ChallengeID != nil {
		s.ChallengeID = strings.TrimSpace(*p.ChallengeID)
	}
	if p.Points != nil {
		s.Points = p.Points.Float64()
	}
	if p.Badge != nil {
		s.Badge = normalizeBadge(*p.Badge)
	}
	return s
}

// NewScore builds a score with the given id from p. The badge is nil unless
// p names a non-empty one.
func NewScore(id string, p ScorePatch) Score {
	return p.Apply(Score{ID: id})
}

// HasBadge reports whether s carries a badge label.
func (s Score) HasBadge() bool { return s.Badge != nil }

func normalizeBadge(b string) *string {
	b = strings.TrimSpace(b)
	if b == "" {
		return nil
	}
	return &b
}
