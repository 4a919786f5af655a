package core

import (
	"core/cron"
	"core/handlers"
	"core/services"

	authMiddleware "auth/middleware"
	authModels "auth/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Module struct {
	PlayerHandler       *handlers.PlayerHandler
	PlayerService       *services.PlayerService
	ChallengeHandler    *handlers.ChallengeHandler
	ChallengeService    *services.ChallengeService
	MatchHandler        *handlers.MatchHandler
	MatchService        *services.MatchService
	EloHistoryHandler   *handlers.EloHistoryHandler
	EloHistoryService   *services.EloHistoryService
	LevelHistoryHandler *handlers.LevelHistoryHandler
	LevelHistoryService *services.LevelHistoryService
	StatsHandler        *handlers.StatsHandler
	StatsService        *services.StatsService
	Scheduler           *cron.Scheduler
	db                  *gorm.DB
}

func NewModule(db *gorm.DB, logger zerolog.Logger) *Module {
	playerService := services.NewPlayerService(db, logger)
	playerHandler := handlers.NewPlayerHandler(playerService)

	matchService := services.NewMatchService(db, logger)
	matchHandler := handlers.NewMatchHandler(matchService)

	challengeService := services.NewChallengeService(db, matchService, logger)
	challengeHandler := handlers.NewChallengeHandler(challengeService)

	eloHistoryService := services.NewEloHistoryService(db)
	eloHistoryHandler := handlers.NewEloHistoryHandler(eloHistoryService)

	levelHistoryService := services.NewLevelHistoryService(db)
	levelHistoryHandler := handlers.NewLevelHistoryHandler(levelHistoryService)

	statsService := services.NewStatsService(db)
	statsHandler := handlers.NewStatsHandler(statsService)

	scheduler := cron.NewScheduler(challengeService, logger)

	return &Module{
		PlayerHandler:       playerHandler,
		PlayerService:       playerService,
		ChallengeHandler:    challengeHandler,
		ChallengeService:    challengeService,
		MatchHandler:        matchHandler,
		MatchService:        matchService,
		EloHistoryHandler:   eloHistoryHandler,
		EloHistoryService:   eloHistoryService,
		LevelHistoryHandler: levelHistoryHandler,
		LevelHistoryService: levelHistoryService,
		StatsHandler:        statsHandler,
		StatsService:        statsService,
		Scheduler:           scheduler,
		db:                  db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	players := r.Group("/players")
	{
		players.GET("", m.PlayerHandler.GetAllPlayers)
		players.GET("/pyramid", m.PlayerHandler.GetPyramid)
		players.GET("/top", m.PlayerHandler.GetTopPlayers)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.GET("/:id/matches", m.PlayerHandler.GetPlayerMatches)
		players.GET("/:id/elo-history", m.PlayerHandler.GetEloHistory)
		players.GET("/:id/level-history", m.PlayerHandler.GetLevelHistory)
		players.GET("/:id/challenges", m.ChallengeHandler.GetOpenChallenges)
		players.POST("", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.PlayerHandler.CreatePlayer)
		players.PATCH("/:id/active", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.PlayerHandler.SetActive)
		players.POST("/:id/level", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.PlayerHandler.AdjustLevel)
	}

	challenges := r.Group("/challenges")
	{
		challenges.GET("", m.ChallengeHandler.GetChallenges)
		challenges.GET("/can", m.ChallengeHandler.CanChallenge)
		challenges.GET("/:id", m.ChallengeHandler.GetChallenge)
		challenges.POST("", authMiddleware.JWTMiddleware(), m.ChallengeHandler.CreateChallenge)
		challenges.PATCH("/:id/respond", authMiddleware.JWTMiddleware(), m.ChallengeHandler.RespondChallenge)
		challenges.PATCH("/:id/complete", authMiddleware.JWTMiddleware(), m.ChallengeHandler.CompleteChallenge)
		challenges.PATCH("/:id/cancel", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.ChallengeHandler.CancelChallenge)
		challenges.POST("/sweep", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.ChallengeHandler.SweepExpired)
	}

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/recent", m.MatchHandler.GetRecentMatches)
		matches.POST("/group", authMiddleware.JWTMiddleware(), m.MatchHandler.RecordGroupMatch)
	}

	eloHistory := r.Group("/elo-history")
	{
		eloHistory.GET("/recent", m.EloHistoryHandler.GetRecentEloChanges)
	}

	levelHistory := r.Group("/level-history")
	{
		levelHistory.GET("/recent", m.LevelHistoryHandler.GetRecentLevelChanges)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
}

// StartScheduler starts the periodic challenge-expiry sweep.
func (m *Module) StartScheduler() error {
	return m.Scheduler.Start()
}

// StopScheduler stops the scheduler.
func (m *Module) StopScheduler() {
	m.Scheduler.Stop()
}
