package seed

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/scoreboard/internal/domain/model"
)

var (
	teamAdjectives = []string{"Crimson", "Silent", "Rapid", "Golden", "Iron", "Lunar", "Electric", "Wild"}
	teamNouns      = []string{"Falcons", "Foxes", "Comets", "Otters", "Titans", "Wolves", "Pixels", "Rockets"}
	challengeKinds = []string{"Relay", "Puzzle", "Quiz", "Hackathon", "Scavenger Hunt", "Debate", "Escape Room"}
	memberNames    = []string{"Ana", "Ben", "Chloé", "Dev", "Emil", "Fatou", "Gus", "Hana", "Ines", "Jon"}
	pointSteps     = []int64{50, 100, 150, 200}
)

// randInt returns a uniform value in [0, n) using crypto/rand.
func randInt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0
	}
	return v.Int64()
}

func pick(list []string) string {
	return list[randInt(int64(len(list)))]
}

func str(s string) *string { return &s }

// generateTeam builds a team patch with a unique name.
func generateTeam(i int) model.TeamPatch {
	name := fmt.Sprintf("%s %s %d-%s", pick(teamAdjectives), pick(teamNouns), i+1, uuid.NewString()[:4])

	members := make([]string, 0, 4)
	for j := int64(0); j < 2+randInt(3); j++ {
		members = append(members, pick(memberNames))
	}

	return model.TeamPatch{
		Name:    str(name),
		Members: str(strings.Join(members, ", ")),
		Color:   str(fmt.Sprintf("#%06X", randInt(0xFFFFFF+1))),
	}
}

// generateChallenge builds a challenge patch with a max drawn from pointSteps.
func generateChallenge(i int) model.ChallengePatch {
	kind := pick(challengeKinds)
	return model.ChallengePatch{
		Name:        str(fmt.Sprintf("%s #%d", kind, i+1)),
		Description: str("Generated " + strings.ToLower(kind) + " round"),
		MaxPoints:   model.NumberOf(float64(pointSteps[randInt(int64(len(pointSteps)))])),
	}
}

// generateScore awards up to maxPoints to team on challenge. About one score
// in four carries a badge from the catalog.
func generateScore(teamID string, challenge model.Challenge) model.ScorePatch {
	p := model.ScorePatch{
		TeamID:      str(teamID),
		ChallengeID: str(challenge.ID),
		Points:      model.NumberOf(float64(randInt(int64(challenge.MaxPoints) + 1))),
	}
	if randInt(4) == 0 {
		badges := model.BadgeCatalog()
		p.Badge = str(badges[randInt(int64(len(badges)))].Name)
	}
	return p
}
