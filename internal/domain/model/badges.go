package model

// Badge describes a predefined award label.
type Badge struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

var badgeCatalog = []Badge{
	{Name: "First Blood", Icon: "🩸", Description: "First team to complete a challenge"},
	{Name: "Speed Demon", Icon: "⚡", Description: "Completed challenge in record time"},
	{Name: "Perfect Score", Icon: "💯", Description: "Achieved maximum points on a challenge"},
	{Name: "Team Player", Icon: "🤝", Description: "Excellent collaboration"},
	{Name: "Innovator", Icon: "💡", Description: "Creative solution approach"},
	{Name: "Champion", Icon: "👑", Description: "Top performer overall"},
}

// BadgeCatalog returns the predefined badges. Score badges are free text and
// are not restricted to this list.
func BadgeCatalog() []Badge {
	return append([]Badge(nil), badgeCatalog...)
}
