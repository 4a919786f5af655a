package handlers

import (
	"net/http"

	"core/services"

	"github.com/gin-gonic/gin"
)

type EloHistoryHandler struct {
	eloHistoryService *services.EloHistoryService
}

func NewEloHistoryHandler(eloHistoryService *services.EloHistoryService) *EloHistoryHandler {
	return &EloHistoryHandler{
		eloHistoryService: eloHistoryService,
	}
}

// GetRecentEloChanges retrieves recent rating changes across the ladder
// @Summary Get recent rating changes
// @Description Get recent rating changes for all players, newest first
// @Tags elo-history
// @Produce json
// @Param limit query int false "Number of entries to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.EloHistory
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /elo-history/recent [get]
func (h *EloHistoryHandler) GetRecentEloChanges(c *gin.Context) {
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

	eloChanges, err := h.eloHistoryService.GetRecentEloChanges(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, eloChanges)
}
