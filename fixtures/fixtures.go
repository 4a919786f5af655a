package fixtures

import (
	"fmt"
	"log"
	"math/rand"

	authModels "auth/models"
	authUtils "auth/utils"
	"core/logger"
	"core/models"
	"core/services"

	"gorm.io/gorm"
)

type Fixtures struct {
	db               *gorm.DB
	matchService     *services.MatchService
	challengeService *services.ChallengeService
}

func NewFixtures(db *gorm.DB) *Fixtures {
	log := logger.New()
	matchService := services.NewMatchService(db, log)
	return &Fixtures{
		db:               db,
		matchService:     matchService,
		challengeService: services.NewChallengeService(db, matchService, log),
	}
}

// rosterEntry seeds one player at a starting level. The pyramid narrows
// towards level 1.
type rosterEntry struct {
	alias string
	level int
}

var roster = []rosterEntry{
	{"alexandre", 1},
	{"marie", 1},
	{"julien", 2},
	{"sophie", 2},
	{"thomas", 2},
	{"camille", 3},
	{"nicolas", 3},
	{"laura", 3},
	{"antoine", 3},
	{"emma", 4},
	{"lucas", 4},
	{"chloe", 4},
}

// GenerateTestData seeds the demo roster across the four levels, plus a
// handful of played challenges so histories and streaks are populated.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	players, err := f.generateUsersAndPlayers()
	if err != nil {
		return fmt.Errorf("failed to generate players: %w", err)
	}

	if err := f.playChallenges(players); err != nil {
		return fmt.Errorf("failed to play challenges: %w", err)
	}

	if err := f.generateGroupMatch(players); err != nil {
		return fmt.Errorf("failed to generate group match: %w", err)
	}

	log.Printf("Fixtures generated: %d players", len(players))
	return nil
}

func (f *Fixtures) generateUsersAndPlayers() ([]models.Player, error) {
	hashedPassword, err := authUtils.HashPassword("password123")
	if err != nil {
		return nil, err
	}

	var players []models.Player

	for i, entry := range roster {
		userID := uint(i + 1)

		user := authModels.User{
			ID:       userID,
			Email:    fmt.Sprintf("%s@ladder.local", entry.alias),
			Username: entry.alias,
			Password: hashedPassword,
			Enabled:  true,
			Roles:    authModels.GetDefaultRoles(),
		}
		// The first seeded user doubles as the admin account.
		if i == 0 {
			user.AddRole(authModels.RoleAdmin)
		}

		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}

		player := models.Player{
			ID:        userID,
			Alias:     entry.alias,
			Level:     entry.level,
			EloRating: 1200,
			Active:    true,
		}
		if err := f.db.Create(&player).Error; err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	return players, nil
}

// playChallenges runs a handful of challenges through the real services so
// ratings, levels, streaks and histories stay consistent with each other.
func (f *Fixtures) playChallenges(players []models.Player) error {
	byAlias := make(map[string]models.Player, len(players))
	for _, p := range players {
		byAlias[p.Alias] = p
	}

	pairings := []struct {
		challenger string
		challenged string
	}{
		{"emma", "lucas"},
		{"camille", "nicolas"},
		{"camille", "thomas"},
		{"laura", "antoine"},
		{"julien", "sophie"},
		{"emma", "chloe"},
		{"nicolas", "laura"},
		{"thomas", "julien"},
	}

	for _, pairing := range pairings {
		challenger := byAlias[pairing.challenger]
		challenged := byAlias[pairing.challenged]

		challenge, err := f.challengeService.CreateChallenge(challenger.ID, challenged.ID, models.ChallengeKindDirect, nil)
		if err != nil {
			return err
		}

		if _, err := f.challengeService.Respond(challenge.ID, challenged.ID, services.DecisionAccept); err != nil {
			return err
		}

		winnerID := challenger.ID
		if rand.Intn(3) == 0 { // #nosec G404
			winnerID = challenged.ID
		}
		if _, err := f.challengeService.Complete(challenge.ID, winnerID); err != nil {
			return err
		}
	}

	// One open challenge left pending for the UI to show.
	sophie, antoine := byAlias["sophie"], byAlias["antoine"]
	if _, err := f.challengeService.CreateChallenge(antoine.ID, sophie.ID, models.ChallengeKindDirect, nil); err != nil {
		return err
	}

	return nil
}

func (f *Fixtures) generateGroupMatch(players []models.Player) error {
	if len(players) < 4 {
		return nil
	}

	_, err := f.matchService.RecordGroupMatch(
		[]string{players[0].Alias, players[2].Alias},
		[]string{players[1].Alias, players[3].Alias},
		1,
	)
	return err
}

// ClearAllData wipes every fixture table, children first.
func (f *Fixtures) ClearAllData() error {
	tables := []string{
		"elo_history",
		"level_history",
		"group_match_participants",
		"challenges",
		"matches",
		"players",
		"users",
	}

	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return nil
}
