package utils

import "math"

// KFactor is the ELO K-factor used for every individual match.
const KFactor = 32.0

// StartingElo is the rating every player begins with.
const StartingElo = 1200

// CalculateEloChange computes both players' new ratings after an individual
// match using the standard ELO formula. Ratings are integers; the fractional
// deltas are rounded half away from zero.
func CalculateEloChange(winnerElo, loserElo int) (newWinnerElo, newLoserElo int) {
	expectedWinner := expectedScore(float64(winnerElo), float64(loserElo))
	expectedLoser := expectedScore(float64(loserElo), float64(winnerElo))

	newWinnerElo = winnerElo + int(math.Round(KFactor*(1.0-expectedWinner)))
	newLoserElo = loserElo + int(math.Round(KFactor*(0.0-expectedLoser)))

	return newWinnerElo, newLoserElo
}

// expectedScore is the logistic expected score of a player rated ratingA
// against a player rated ratingB.
func expectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/400.0))
}
