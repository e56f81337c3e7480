package main

import (
	"math"
	"sort"
)

// PlayerScore is a single row of the final ranking.
type PlayerScore struct {
	PlayerID   string   `json:"playerId"`
	PlayerName string   `json:"playerName"`
	Score      int      `json:"score"`
	Tags       []string `json:"tags"`
	UniqueTags *int     `json:"uniqueTags,omitempty"` // quickdraw/solo only
}

// scoringInput carries everything the scoring functions need. memberIDs
// order is significant: it breaks ranking ties and decides quickdraw
// tag ownership.
type scoringInput struct {
	memberIDs   []string
	names       map[string]string
	submissions map[string][]string
}

func (in scoringInput) name(playerID string) string {
	if name, ok := in.names[playerID]; ok {
		return name
	}
	return "Unknown"
}

// sortScoresDesc orders descending by score; the stable sort keeps
// memberIDs encounter order between equal scores.
func sortScoresDesc(scores []PlayerScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
}

// sharpshooterScores rewards tags nobody else thought of. A tag
// submitted by c distinct players earns each of them
// playerCount-(c-1) points: full credit when unique, down to a single
// point when the whole room converges on it.
func sharpshooterScores(in scoringInput) []PlayerScore {
	playerCount := len(in.memberIDs)

	tagCounts := make(map[string]int)
	for _, tags := range in.submissions {
		for _, tag := range tags {
			tagCounts[tag]++
		}
	}

	scores := make([]PlayerScore, 0, playerCount)
	for _, playerID := range in.memberIDs {
		tags := in.submissions[playerID]

		total := 0
		for _, tag := range tags {
			total += playerCount - (tagCounts[tag] - 1)
		}

		scores = append(scores, PlayerScore{
			PlayerID:   playerID,
			PlayerName: in.name(playerID),
			Score:      total,
			Tags:       tags,
		})
	}

	sortScoresDesc(scores)

	return scores
}

// quickdrawScores assigns each tag to whoever claimed it first and
// scores one point per owned tag. Ownership follows memberIDs order,
// not wall-clock submission time.
func quickdrawScores(in scoringInput) []PlayerScore {
	ownership := make(map[string]string)
	for _, playerID := range in.memberIDs {
		for _, tag := range in.submissions[playerID] {
			if _, claimed := ownership[tag]; !claimed {
				ownership[tag] = playerID
			}
		}
	}

	scores := make([]PlayerScore, 0, len(in.memberIDs))
	for _, playerID := range in.memberIDs {
		tags := in.submissions[playerID]

		owned := 0
		for _, tag := range tags {
			if ownership[tag] == playerID {
				owned++
			}
		}

		unique := owned
		scores = append(scores, PlayerScore{
			PlayerID:   playerID,
			PlayerName: in.name(playerID),
			Score:      owned,
			Tags:       tags,
			UniqueTags: &unique,
		})
	}

	sortScoresDesc(scores)

	return scores
}

// soloScores grades a single player against the whole vocabulary: the
// percentage of known tags submitted, rounded half up.
func soloScores(in scoringInput) ([]PlayerScore, error) {
	if len(in.memberIDs) != 1 {
		return nil, errInvalidPlayerCount
	}

	playerID := in.memberIDs[0]
	tags := in.submissions[playerID]

	percent := int(math.Round(float64(len(tags)) / float64(len(htmlTags)) * 100))

	unique := len(tags)

	return []PlayerScore{{
		PlayerID:   playerID,
		PlayerName: in.name(playerID),
		Score:      percent,
		Tags:       tags,
		UniqueTags: &unique,
	}}, nil
}

// scoreVariant dispatches to the right algorithm for the room variant.
func scoreVariant(variant string, in scoringInput) ([]PlayerScore, error) {
	switch variant {
	case variantSharpshooter:
		return sharpshooterScores(in), nil
	case variantQuickdraw:
		return quickdrawScores(in), nil
	case variantSolo:
		return soloScores(in)
	default:
		return nil, errInvalidVariant
	}
}
