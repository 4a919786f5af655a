package services

import (
	"fmt"
	"testing"

	"core/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Player{},
		&models.Challenge{},
		&models.Match{},
		&models.GroupMatchParticipant{},
		&models.LevelHistory{},
		&models.EloHistory{},
	)
	require.NoError(t, err)

	return db
}

func newTestServices(t *testing.T) (*gorm.DB, *MatchService, *ChallengeService) {
	t.Helper()

	db := setupTestDB(t)
	log := zerolog.Nop()
	matchService := NewMatchService(db, log)
	challengeService := NewChallengeService(db, matchService, log)

	return db, matchService, challengeService
}

// createTestPlayer seeds an active player at the given level with the
// starting rating.
func createTestPlayer(t *testing.T, db *gorm.DB, alias string, level int) *models.Player {
	t.Helper()

	player := &models.Player{
		Alias:     alias,
		Level:     level,
		EloRating: 1200,
		Active:    true,
	}
	require.NoError(t, db.Create(player).Error)

	return player
}

func reloadPlayer(t *testing.T, db *gorm.DB, id uint) *models.Player {
	t.Helper()

	var player models.Player
	require.NoError(t, db.First(&player, id).Error)
	return &player
}
