package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	authMiddleware "auth/middleware"
	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
}

func NewChallengeHandler(challengeService *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

// CreateChallenge opens a new challenge
// @Summary Create a challenge
// @Description Open a direct challenge or suggest a match between two players. Suggestions record the authenticated user as the proposer.
// @Tags challenges
// @Accept json
// @Produce json
// @Param request body models.CreateChallengeRequest true "Challenge details"
// @Success 201 {object} models.Challenge
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /challenges [post]
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	var req models.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var suggestedByID *uint
	if req.Kind == models.ChallengeKindSuggestion {
		if userID, exists := authMiddleware.GetUserID(c); exists {
			suggestedByID = &userID
		}
	}

	challenge, err := h.challengeService.CreateChallenge(req.ChallengerID, req.ChallengedID, req.Kind, suggestedByID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, challenge)
}

// CanChallenge checks challenge legality
// @Summary Check challenge legality
// @Description Check whether a challenge between two players would respect the level rules. Advisory only.
// @Tags challenges
// @Produce json
// @Param challenger_id query int true "Challenger player ID"
// @Param challenged_id query int true "Challenged player ID"
// @Success 200 {object} models.CanChallengeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /challenges/can [get]
func (h *ChallengeHandler) CanChallenge(c *gin.Context) {
	challengerID, err := parseUintValue(c.Query("challenger_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid challenger_id parameter",
		})
		return
	}

	challengedID, err := parseUintValue(c.Query("challenged_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid challenged_id parameter",
		})
		return
	}

	resp, err := h.challengeService.CanChallenge(challengerID, challengedID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetChallenge retrieves a challenge by ID
// @Summary Get challenge by ID
// @Tags challenges
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} models.Challenge
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /challenges/{id} [get]
func (h *ChallengeHandler) GetChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	challenge, err := h.challengeService.GetChallenge(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// GetChallenges retrieves challenges with filters and pagination
// @Summary Get challenges
// @Description Get challenges with optional player and status filtering, newest first
// @Tags challenges
// @Produce json
// @Param playerId query int false "Only challenges involving this player"
// @Param status query string false "Filter by status: 'pending', 'accepted', 'completed', 'rejected', 'expired', 'cancelled'"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Number of challenges per page (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedChallengesResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /challenges [get]
func (h *ChallengeHandler) GetChallenges(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	filters := services.ChallengeFilters{
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

	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}

	paginatedResponse, err := h.challengeService.GetChallenges(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginatedResponse)
}

// GetOpenChallenges lists a player's open challenges
// @Summary Get open challenges for a player
// @Description Get the pending and accepted challenges a player is involved in, soonest deadline first
// @Tags challenges
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {array} models.Challenge
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/challenges [get]
func (h *ChallengeHandler) GetOpenChallenges(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	challenges, err := h.challengeService.GetOpenChallengesForPlayer(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenges)
}

// RespondChallenge records a participant's answer
// @Summary Respond to a challenge
// @Description Accept or reject a pending challenge as one of its participants
// @Tags challenges
// @Accept json
// @Produce json
// @Param id path int true "Challenge ID"
// @Param request body models.RespondChallengeRequest true "Decision"
// @Success 200 {object} models.Challenge
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /challenges/{id}/respond [patch]
func (h *ChallengeHandler) RespondChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.RespondChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	challenge, err := h.challengeService.Respond(id, req.PlayerID, req.Decision)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// CompleteChallenge reports the result of an accepted challenge
// @Summary Complete a challenge
// @Description Report the winner of an accepted challenge. Records the match, updates ratings, levels and streaks atomically.
// @Tags challenges
// @Accept json
// @Produce json
// @Param id path int true "Challenge ID"
// @Param request body models.CompleteChallengeRequest true "Winner"
// @Success 200 {object} models.Challenge
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /challenges/{id}/complete [patch]
func (h *ChallengeHandler) CompleteChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CompleteChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	challenge, err := h.challengeService.Complete(id, req.WinnerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// CancelChallenge cancels an open challenge
// @Summary Cancel a challenge
// @Description Close a pending or accepted challenge with no ladder effects
// @Tags challenges
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} models.Challenge
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /challenges/{id}/cancel [patch]
func (h *ChallengeHandler) CancelChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	challenge, err := h.challengeService.Cancel(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// SweepExpired expires overdue challenges
// @Summary Sweep expired challenges
// @Description Close every pending challenge past its deadline. Safe to run repeatedly.
// @Tags challenges
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 500 {object} map[string]string
// @Router /challenges/sweep [post]
func (h *ChallengeHandler) SweepExpired(c *gin.Context) {
	swept, err := h.challengeService.SweepExpired()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expired": swept,
	})
}
