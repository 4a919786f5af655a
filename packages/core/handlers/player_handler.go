package handlers

import (
	"net/http"

	"core/ladder"
	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(playerService *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// GetPlayer retrieves a player by ID
// @Summary Get player by ID
// @Description Get player information by player ID
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	player, err := h.playerService.GetPlayerByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, player)
}

// CreatePlayer enrolls a new player on the ladder
// @Summary Enroll a player
// @Description Create a ladder entry for a user, starting at the given level (default: base level)
// @Tags players
// @Accept json
// @Produce json
// @Param request body models.CreatePlayerRequest true "Player details"
// @Success 201 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req models.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	level := req.Level
	if level == 0 {
		level = ladder.BaseLevel
	}

	player, err := h.playerService.CreatePlayer(req.UserID, req.Alias, level)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, player)
}

// GetPyramid retrieves the pyramid standings
// @Summary Get the pyramid
// @Description Get the active roster grouped by level, top level first
// @Tags players
// @Produce json
// @Success 200 {array} models.PyramidLevel
// @Failure 500 {object} map[string]string
// @Router /players/pyramid [get]
func (h *PlayerHandler) GetPyramid(c *gin.Context) {
	pyramid, err := h.playerService.GetPyramid()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pyramid)
}

// GetEloHistory retrieves rating history for a player
// @Summary Get player rating history
// @Description Get rating history for a specific player, oldest first
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {array} models.EloHistory
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/elo-history [get]
func (h *PlayerHandler) GetEloHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.playerService.GetPlayerByID(id); err != nil {
		respondServiceError(c, err)
		return
	}

	eloHistory, err := h.playerService.GetEloHistoryByPlayerID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, eloHistory)
}

// GetLevelHistory retrieves level changes for a player
// @Summary Get player level history
// @Description Get promotions and demotions for a specific player, oldest first
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {array} models.LevelHistory
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/level-history [get]
func (h *PlayerHandler) GetLevelHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.playerService.GetPlayerByID(id); err != nil {
		respondServiceError(c, err)
		return
	}

	levelHistory, err := h.playerService.GetLevelHistoryByPlayerID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, levelHistory)
}

// GetTopPlayers retrieves top N players
// @Summary Get top players
// @Description Get top N active players by rating, current streak or best streak
// @Tags players
// @Produce json
// @Param by query string false "Ranking: 'elo', 'streak' or 'best_streak' (default: 'elo')"
// @Param limit query int false "Number of players to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Player
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/top [get]
func (h *PlayerHandler) GetTopPlayers(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 10)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid limit parameter",
		})
		return
	}
	if limit > 100 {
		limit = 100
	}

	var players []models.Player
	switch c.DefaultQuery("by", "elo") {
	case "elo":
		players, err = h.playerService.GetTopPlayersByElo(limit)
	case "streak":
		players, err = h.playerService.GetTopPlayersByStreak(limit)
	case "best_streak":
		players, err = h.playerService.GetTopPlayersByBestStreak(limit)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid by parameter",
		})
		return
	}

	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, players)
}

// GetPlayerMatches retrieves matches for a specific player with pagination
// @Summary Get matches for a player
// @Description Get individual matches for a specific player, newest first, with optional win/loss filtering
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Param wins query string false "Filter for wins only (set to '1')"
// @Param losses query string false "Filter for losses only (set to '1')"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Number of matches per page (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/matches [get]
func (h *PlayerHandler) GetPlayerMatches(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.playerService.GetPlayerByID(id); err != nil {
		respondServiceError(c, err)
		return
	}

	var filter string
	wins := c.Query("wins")
	losses := c.Query("losses")

	if wins == "1" && losses == "1" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot filter for both wins and losses at the same time",
		})
		return
	} else if wins == "1" {
		filter = "wins"
	} else if losses == "1" {
		filter = "losses"
	}

	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	paginatedResponse, err := h.playerService.GetPlayerMatches(id, filter, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginatedResponse)
}

// GetAllPlayers retrieves all players with pagination and sorting
// @Summary Get all players
// @Description Get all players with pagination and sorting options
// @Tags players
// @Produce json
// @Param orderBy query string false "Sort field: 'level', 'alias', 'elo_rating', 'created_at' (default: 'level')"
// @Param direction query string false "Sort direction: 'ASC' or 'DESC' (default: 'ASC')"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Number of players per page (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedPlayersResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [get]
func (h *PlayerHandler) GetAllPlayers(c *gin.Context) {
	orderBy := c.DefaultQuery("orderBy", "level")
	direction := c.DefaultQuery("direction", "ASC")

	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	paginatedResponse, err := h.playerService.GetAllPlayers(orderBy, direction, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginatedResponse)
}

// SetActive activates or deactivates a player
// @Summary Set player activation
// @Description Activate or deactivate a player. Inactive players keep their history but leave the pyramid.
// @Tags players
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param request body models.SetActiveRequest true "Activation flag"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/active [patch]
func (h *PlayerHandler) SetActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	player, err := h.playerService.SetActive(id, *req.Active)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, player)
}

// AdjustLevel moves a player to an arbitrary level
// @Summary Adjust player level
// @Description Move a player to an arbitrary level, recorded as an administrative adjustment
// @Tags players
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param request body models.AdjustLevelRequest true "Target level"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/level [post]
func (h *PlayerHandler) AdjustLevel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AdjustLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	player, err := h.playerService.AdjustLevel(id, req.Level)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, player)
}
