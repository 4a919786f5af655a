package handlers

import (
	"net/http"
	"time"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// GetRecentMatches retrieves the N most recent matches
// @Summary Get recent matches
// @Description Get the most recently completed matches, newest first
// @Tags matches
// @Produce json
// @Param limit query int false "Number of matches to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/recent [get]
func (h *MatchHandler) GetRecentMatches(c *gin.Context) {
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

	matches, err := h.matchService.GetRecentMatches(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatches retrieves matches with filters and pagination
// @Summary Get matches
// @Description Get matches with optional player, kind and date filtering, newest first
// @Tags matches
// @Produce json
// @Param playerId query int false "Only matches involving this player"
// @Param kind query string false "Filter by kind: 'individual' or 'group'"
// @Param dateFrom query string false "Only matches completed on or after this date (YYYY-MM-DD)"
// @Param dateTo query string false "Only matches completed on or before this date (YYYY-MM-DD)"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Number of matches per page (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	filters := services.MatchFilters{
		Page:    page,
		PerPage: pageSize,
	}

	if raw := c.Query("playerId"); raw != "" {
		playerID, err := parseUintValue(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid playerId parameter",
			})
			return
		}
		filters.PlayerID = &playerID
	}

	if kind := c.Query("kind"); kind != "" {
		if kind != models.MatchKindIndividual && kind != models.MatchKindGroup {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid kind parameter",
			})
			return
		}
		filters.Kind = &kind
	}

	if raw := c.Query("dateFrom"); raw != "" {
		dateFrom, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid dateFrom parameter, expected YYYY-MM-DD",
			})
			return
		}
		filters.DateFrom = &dateFrom
	}

	if raw := c.Query("dateTo"); raw != "" {
		dateTo, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid dateTo parameter, expected YYYY-MM-DD",
			})
			return
		}
		filters.DateTo = &dateTo
	}

	paginatedResponse, err := h.matchService.GetMatches(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginatedResponse)
}

// RecordGroupMatch records a team match
// @Summary Record a group match
// @Description Record a match between two teams of players. Group matches are kept for the record and never affect ratings or levels.
// @Tags matches
// @Accept json
// @Produce json
// @Param request body models.RecordGroupMatchRequest true "Teams and result"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/group [post]
func (h *MatchHandler) RecordGroupMatch(c *gin.Context) {
	var req models.RecordGroupMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	match, err := h.matchService.RecordGroupMatch(req.Team1Aliases, req.Team2Aliases, req.WinningTeam)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}
