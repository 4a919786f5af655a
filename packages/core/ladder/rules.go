package ladder

// The pyramid has four levels. Level 1 is the top, level 4 the base, so a
// numerically lower level means a higher standing.
const (
	TopLevel  = 1
	BaseLevel = 4
)

// Reason classifies a level change for the audit log.
type Reason string

const (
	ReasonVictoryPromotion   Reason = "victory_promotion"
	ReasonDefeatDemotion     Reason = "defeat_demotion"
	ReasonConsecutiveDefeats Reason = "consecutive_defeats"
	ReasonAdminAdjustment    Reason = "admin_adjustment"
)

// Role identifies which side of a match a transition applies to.
type Role string

const (
	RoleWinner Role = "winner"
	RoleLoser  Role = "loser"
)

// Transition is a single level change produced by EvaluateMatch.
type Transition struct {
	Role     Role
	OldLevel int
	NewLevel int
	Reason   Reason
}

// Result is one completed individual match seen from a player's perspective,
// with the levels both sides held when it was played.
type Result struct {
	Won           bool
	PlayerLevel   int
	OpponentLevel int
}

// ClampLevel bounds a level to the pyramid range.
func ClampLevel(level int) int {
	if level < TopLevel {
		return TopLevel
	}
	if level > BaseLevel {
		return BaseLevel
	}
	return level
}

// CanChallenge reports whether a player at challengerLevel may challenge a
// player at challengedLevel: same level, or exactly one level above.
// Self-challenges are rejected by the caller before levels are consulted.
func CanChallenge(challengerLevel, challengedLevel int) bool {
	diff := challengerLevel - challengedLevel
	return diff == 0 || diff == 1
}

// EvaluateMatch decides the level transitions caused by a completed individual
// match. Levels are the pre-match levels; histories are each player's most
// recent completed individual results (newest first) and must already include
// the match being evaluated. Group matches never reach this function.
//
// Rules, in priority order:
//  1. Upset swap: a winner ranked below the loser takes the loser's level and
//     the loser drops to the winner's old level.
//  2. Two consecutive wins at the same level against same-level opponents
//     promote the winner one level.
//  3. Two consecutive losses at the same level against same-level opponents
//     demote the loser one level.
//
// Rules 2 and 3 only apply to same-level matches, so rule 1 never combines
// with them. A transition that would leave the pyramid range is a no-op.
func EvaluateMatch(winnerLevel, loserLevel int, winnerHistory, loserHistory []Result) []Transition {
	var transitions []Transition

	if winnerLevel > loserLevel {
		transitions = append(transitions,
			Transition{
				Role:     RoleWinner,
				OldLevel: winnerLevel,
				NewLevel: loserLevel,
				Reason:   ReasonVictoryPromotion,
			},
			Transition{
				Role:     RoleLoser,
				OldLevel: loserLevel,
				NewLevel: winnerLevel,
				Reason:   ReasonDefeatDemotion,
			})
		return transitions
	}

	if winnerLevel != loserLevel {
		// Beating someone ranked below moves nobody.
		return nil
	}

	if winnerLevel > TopLevel && hasStreakAtLevel(winnerHistory, winnerLevel, true) {
		transitions = append(transitions, Transition{
			Role:     RoleWinner,
			OldLevel: winnerLevel,
			NewLevel: winnerLevel - 1,
			Reason:   ReasonVictoryPromotion,
		})
	}

	if loserLevel < BaseLevel && hasStreakAtLevel(loserHistory, loserLevel, false) {
		transitions = append(transitions, Transition{
			Role:     RoleLoser,
			OldLevel: loserLevel,
			NewLevel: loserLevel + 1,
			Reason:   ReasonConsecutiveDefeats,
		})
	}

	return transitions
}

// hasStreakAtLevel reports whether the two most recent results are both the
// given outcome, played at the given level against same-level opponents.
func hasStreakAtLevel(history []Result, level int, won bool) bool {
	if len(history) < 2 {
		return false
	}
	for _, r := range history[:2] {
		if r.Won != won || r.PlayerLevel != level || r.OpponentLevel != level {
			return false
		}
	}
	return true
}
