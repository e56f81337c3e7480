package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namesFor(ids ...string) map[string]string {
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		names[id] = "player " + id
	}
	return names
}

func TestSharpshooterAllDistinct(t *testing.T) {
	// Every player submits one tag nobody else picked: full credit each.
	in := scoringInput{
		memberIDs: []string{"p1", "p2", "p3"},
		names:     namesFor("p1", "p2", "p3"),
		submissions: map[string][]string{
			"p1": {"div"},
			"p2": {"span"},
			"p3": {"nav"},
		},
	}

	scores := sharpshooterScores(in)
	require.Len(t, scores, 3)
	for _, s := range scores {
		assert.Equal(t, 3, s.Score)
	}
}

func TestSharpshooterFullConvergence(t *testing.T) {
	in := scoringInput{
		memberIDs: []string{"p1", "p2", "p3"},
		names:     namesFor("p1", "p2", "p3"),
		submissions: map[string][]string{
			"p1": {"div"},
			"p2": {"div"},
			"p3": {"div"},
		},
	}

	for _, s := range sharpshooterScores(in) {
		assert.Equal(t, 1, s.Score)
	}
}

func TestSharpshooterSharedAndUniqueMix(t *testing.T) {
	// Two players, both submit "div", then one unique tag each:
	// div earns 2-(2-1)=1, the unique tag earns 2, totals 3 and 3.
	in := scoringInput{
		memberIDs: []string{"p1", "p2"},
		names:     namesFor("p1", "p2"),
		submissions: map[string][]string{
			"p1": {"div", "span"},
			"p2": {"div", "p"},
		},
	}

	scores := sharpshooterScores(in)
	require.Len(t, scores, 2)

	assert.Equal(t, 3, scores[0].Score)
	assert.Equal(t, 3, scores[1].Score)

	// Equal scores keep member order.
	assert.Equal(t, "p1", scores[0].PlayerID)
	assert.Equal(t, "p2", scores[1].PlayerID)
}

func TestSharpshooterRankingDescending(t *testing.T) {
	in := scoringInput{
		memberIDs: []string{"p1", "p2"},
		names:     namesFor("p1", "p2"),
		submissions: map[string][]string{
			"p1": {"div"},
			"p2": {"span", "nav", "p"},
		},
	}

	scores := sharpshooterScores(in)
	assert.Equal(t, "p2", scores[0].PlayerID)
	assert.Equal(t, 6, scores[0].Score)
	assert.Equal(t, "p1", scores[1].PlayerID)
	assert.Equal(t, 2, scores[1].Score)
}

func TestSharpshooterEmptySubmissions(t *testing.T) {
	in := scoringInput{
		memberIDs:   []string{"p1", "p2"},
		names:       namesFor("p1", "p2"),
		submissions: map[string][]string{},
	}

	scores := sharpshooterScores(in)
	require.Len(t, scores, 2)
	for _, s := range scores {
		assert.Zero(t, s.Score)
		assert.Empty(t, s.Tags)
	}
}

func TestQuickdrawFirstClaimWins(t *testing.T) {
	in := scoringInput{
		memberIDs: []string{"p1", "p2"},
		names:     namesFor("p1", "p2"),
		submissions: map[string][]string{
			"p1": {"div"},
			"p2": {"div"},
		},
	}

	scores := quickdrawScores(in)
	require.Len(t, scores, 2)

	assert.Equal(t, "p1", scores[0].PlayerID)
	assert.Equal(t, 1, scores[0].Score)
	require.NotNil(t, scores[0].UniqueTags)
	assert.Equal(t, 1, *scores[0].UniqueTags)

	assert.Equal(t, "p2", scores[1].PlayerID)
	assert.Equal(t, 0, scores[1].Score)
	require.NotNil(t, scores[1].UniqueTags)
	assert.Equal(t, 0, *scores[1].UniqueTags)
}

func TestQuickdrawOwnershipFollowsMemberOrder(t *testing.T) {
	// p2 appears later in member order, so p1 owns every contested tag
	// regardless of who typed it first.
	in := scoringInput{
		memberIDs: []string{"p1", "p2", "p3"},
		names:     namesFor("p1", "p2", "p3"),
		submissions: map[string][]string{
			"p1": {"div", "span"},
			"p2": {"span", "nav"},
			"p3": {"nav", "p"},
		},
	}

	scores := quickdrawScores(in)

	byID := make(map[string]PlayerScore)
	for _, s := range scores {
		byID[s.PlayerID] = s
	}

	assert.Equal(t, 2, byID["p1"].Score) // div, span
	assert.Equal(t, 1, byID["p2"].Score) // nav
	assert.Equal(t, 1, byID["p3"].Score) // p

	for _, s := range scores {
		require.NotNil(t, s.UniqueTags)
		assert.Equal(t, s.Score, *s.UniqueTags)
	}
}

func TestSoloPercentage(t *testing.T) {
	full := append([]string(nil), htmlTags...)
	half := full[:(len(full)+1)/2]

	tests := []struct {
		name string
		tags []string
		want int
	}{
		{"no submissions", nil, 0},
		{"half the vocabulary", half, 50},
		{"full vocabulary", full, 100},
		{"single tag", []string{"div"}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := scoringInput{
				memberIDs:   []string{"p1"},
				names:       namesFor("p1"),
				submissions: map[string][]string{"p1": tc.tags},
			}

			scores, err := soloScores(in)
			require.NoError(t, err)
			require.Len(t, scores, 1)
			assert.Equal(t, tc.want, scores[0].Score)
			require.NotNil(t, scores[0].UniqueTags)
			assert.Equal(t, len(tc.tags), *scores[0].UniqueTags)
		})
	}
}

func TestSoloRejectsWrongPlayerCount(t *testing.T) {
	for _, ids := range [][]string{nil, {"p1", "p2"}, {"p1", "p2", "p3"}} {
		in := scoringInput{
			memberIDs:   ids,
			names:       namesFor(ids...),
			submissions: map[string][]string{},
		}

		_, err := soloScores(in)
		assert.ErrorIs(t, err, errInvalidPlayerCount, "member count %d", len(ids))
	}
}

func TestScoreVariantDispatch(t *testing.T) {
	in := scoringInput{
		memberIDs:   []string{"p1"},
		names:       namesFor("p1"),
		submissions: map[string][]string{"p1": {"div"}},
	}

	for _, variant := range []string{variantSharpshooter, variantQuickdraw, variantSolo} {
		scores, err := scoreVariant(variant, in)
		require.NoError(t, err, variant)
		require.Len(t, scores, 1)
	}

	_, err := scoreVariant("tango", in)
	assert.ErrorIs(t, err, errInvalidVariant)
}

func TestScoringUnknownName(t *testing.T) {
	in := scoringInput{
		memberIDs:   []string{"p1"},
		names:       map[string]string{},
		submissions: map[string][]string{"p1": {"div"}},
	}

	scores := sharpshooterScores(in)
	assert.Equal(t, "Unknown", scores[0].PlayerName)
}
