package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// snapshotEnvelope distinguishes absent or null collections from empty ones.
type snapshotEnvelope struct {
	Teams      *[]Team      `json:"teams"`
	Scores     *[]Score     `json:"scores"`
	Challenges *[]Challenge `json:"challenges"`
}

// EncodeSnapshot renders doc as two-space indented JSON.
func EncodeSnapshot(doc Document) ([]byte, error) {
	doc = doc.Clone()
	doc.Normalize()
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses a full document. All three collections must be
// present and every id must be non-empty and unique within its collection.
func DecodeSnapshot(raw []byte) (Document, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}

	var missing []string
	if env.Teams == nil {
		missing = append(missing, "teams")
	}
	if env.Scores == nil {
		missing = append(missing, "scores")
	}
	if env.Challenges == nil {
		missing = append(missing, "challenges")
	}
	if len(missing) > 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrMissingCollection, strings.Join(missing, ", "))
	}

	doc := Document{
		Teams:      *env.Teams,
		Scores:     *env.Scores,
		Challenges: *env.Challenges,
	}
	doc.Normalize()
	if err := doc.CheckIdentifiers(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// CheckIdentifiers verifies ids are non-empty and unique per collection.
func (d Document) CheckIdentifiers() error {
	if err := uniqueIDs("teams", len(d.Teams), func(i int) string { return d.Teams[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("challenges", len(d.Challenges), func(i int) string { return d.Challenges[i].ID }); err != nil {
		return err
	}
	return uniqueIDs("scores", len(d.Scores), func(i int) string { return d.Scores[i].ID })
}

func uniqueIDs(collection string, n int, idAt func(int) string) error {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := idAt(i)
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: %s[%d] has no id", ErrInvalidIdentifier, collection, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s id %q", ErrDuplicateIdentifier, collection, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
