package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateEloChange_EqualRatings(t *testing.T) {
	newWinner, newLoser := CalculateEloChange(1200, 1200)

	assert.Equal(t, 1216, newWinner)
	assert.Equal(t, 1184, newLoser)
}

func TestCalculateEloChange_FavouriteWins(t *testing.T) {
	// Expected score of a +200 favourite is ~0.76, so the gain is small.
	newWinner, newLoser := CalculateEloChange(1400, 1200)

	assert.Equal(t, 1408, newWinner)
	assert.Equal(t, 1192, newLoser)
}

func TestCalculateEloChange_UnderdogWins(t *testing.T) {
	newWinner, newLoser := CalculateEloChange(1200, 1400)

	assert.Equal(t, 1224, newWinner)
	assert.Equal(t, 1376, newLoser)
}

func TestCalculateEloChange_WinnerNeverLosesPoints(t *testing.T) {
	for _, pair := range [][2]int{
		{1200, 1200}, {1000, 1600}, {1600, 1000}, {1199, 1201}, {800, 2000},
	} {
		newWinner, newLoser := CalculateEloChange(pair[0], pair[1])
		assert.GreaterOrEqual(t, newWinner, pair[0], "winner rating must not drop")
		assert.LessOrEqual(t, newLoser, pair[1], "loser rating must not rise")
	}
}

func TestCalculateEloChange_SymmetricDeltas(t *testing.T) {
	// With one shared K-factor the expected scores sum to 1, so the two
	// deltas cancel out (up to rounding both are computed independently,
	// but the formulas are mirror images).
	for _, pair := range [][2]int{
		{1200, 1200}, {1300, 1250}, {1500, 1100},
	} {
		newWinner, newLoser := CalculateEloChange(pair[0], pair[1])
		winnerDelta := newWinner - pair[0]
		loserDelta := newLoser - pair[1]
		assert.Equal(t, winnerDelta, -loserDelta)
	}
}
