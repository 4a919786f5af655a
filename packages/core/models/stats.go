package models

type Stats struct {
	TotalPlayers        int64 `json:"total_players"`
	ActivePlayers       int64 `json:"active_players"`
	TotalMatches        int64 `json:"total_matches"`
	MatchesThisMonth    int64 `json:"matches_this_month"`
	OpenChallenges      int64 `json:"open_challenges"`
	ChallengesThisMonth int64 `json:"challenges_this_month"`
	PromotionsThisMonth int64 `json:"promotions_this_month"`
	DemotionsThisMonth  int64 `json:"demotions_this_month"`
}
