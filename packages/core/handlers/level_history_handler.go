package handlers

import (
	"net/http"

	"core/services"

	"github.com/gin-gonic/gin"
)

type LevelHistoryHandler struct {
	levelHistoryService *services.LevelHistoryService
}

func NewLevelHistoryHandler(levelHistoryService *services.LevelHistoryService) *LevelHistoryHandler {
	return &LevelHistoryHandler{
		levelHistoryService: levelHistoryService,
	}
}

// GetRecentLevelChanges retrieves recent promotions and demotions
// @Summary Get recent level changes
// @Description Get recent promotions and demotions across the ladder, newest first
// @Tags level-history
// @Produce json
// @Param limit query int false "Number of entries to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.LevelHistory
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /level-history/recent [get]
func (h *LevelHistoryHandler) GetRecentLevelChanges(c *gin.Context) {
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

	levelChanges, err := h.levelHistoryService.GetRecentLevelChanges(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, levelChanges)
}
