package model

// Document is the single persisted aggregate holding every collection.
type Document struct {
	Teams      []Team      `json:"teams"`
	Scores     []Score     `json:"scores"`
	Challenges []Challenge `json:"challenges"`
}

// EmptyDocument returns a document with empty, non-nil collections.
func EmptyDocument() Document {
	return Document{
		Teams:      []Team{},
		Scores:     []Score{},
		Challenges: []Challenge{},
	}
}

// Normalize replaces nil collections with empty ones and folds empty badges
// to nil so the document always serializes the same way.
func (d *Document) Normalize() {
	if d.Teams == nil {
		d.Teams = []Team{}
	}
	if d.Scores == nil {
		d.Scores = []Score{}
	}
	if d.Challenges == nil {
		d.Challenges = []Challenge{}
	}
	for i := range d.Scores {
		if d.Scores[i].Badge != nil {
			d.Scores[i].Badge = normalizeBadge(*d.Scores[i].Badge)
		}
	}
}

// Clone returns a copy whose collections can be modified without affecting d.
// Badge strings are shared; they are never mutated in place.
func (d Document) Clone() Document {
	return Document{
		Teams:      append([]Team{}, d.Teams...),
		Scores:     append([]Score{}, d.Scores...),
		Challenges: append([]Challenge{}, d.Challenges...),
	}
}

// TeamIndex returns the position of the team with id, or -1.
func (d Document) TeamIndex(id string) int {
	for i := range d.Teams {
		if d.Teams[i].ID == id {
			return i
		}
	}
	return -1
}

// ChallengeIndex returns the position of the challenge with id, or -1.
func (d Document) ChallengeIndex(id string) int {
	for i := range d.Challenges {
		if d.Challenges[i].ID == id {
			return i
		}
	}
	return -1
}

// ScoreIndex returns the position of the score with id, or -1.
func (d Document) ScoreIndex(id string) int {
	for i := range d.Scores {
		if d.Scores[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveScoresWhere drops every score matching pred, keeping order, and
// returns how many were removed.
func (d *Document) RemoveScoresWhere(pred func(Score) bool) int {
	kept := d.Scores[:0]
	removed := 0
	for _, s := range d.Scores {
		if pred(s) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	d.Scores = kept
	return removed
}
