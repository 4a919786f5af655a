package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"core/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates service sentinel errors into HTTP responses
// with a stable machine-readable code alongside the message.
func respondServiceError(c *gin.Context, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, services.ErrPlayerNotFound):
		status, code = http.StatusNotFound, "player_not_found"
	case errors.Is(err, services.ErrChallengeNotFound):
		status, code = http.StatusNotFound, "challenge_not_found"
	case errors.Is(err, services.ErrInvalidParticipants):
		status, code = http.StatusBadRequest, "invalid_participants"
	case errors.Is(err, services.ErrInvalidTeams):
		status, code = http.StatusBadRequest, "invalid_teams"
	case errors.Is(err, services.ErrInvalidWinner):
		status, code = http.StatusBadRequest, "invalid_winner"
	case errors.Is(err, services.ErrNotAParticipant):
		status, code = http.StatusForbidden, "not_a_participant"
	case errors.Is(err, services.ErrAlreadyDecided):
		status, code = http.StatusConflict, "already_decided"
	case errors.Is(err, services.ErrNotAccepted):
		status, code = http.StatusConflict, "not_accepted"
	case errors.Is(err, services.ErrChallengeClosed):
		status, code = http.StatusConflict, "challenge_closed"
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
			"code":  "internal_error",
		})
		return
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  code,
	})
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := parseUintValue(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return value, true
}

// parsePagination reads page/pageSize query parameters, capping pageSize at
// 100 to prevent excessive queries.
func parsePagination(c *gin.Context) (page, pageSize int, ok bool) {
	var err error

	page, err = parseIntQuery(c, "page", 1)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid page parameter",
		})
		return 0, 0, false
	}

	pageSize, err = parseIntQuery(c, "pageSize", 10)
	if err != nil || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pageSize parameter",
		})
		return 0, 0, false
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return page, pageSize, true
}

func parseUintValue(raw string) (uint, error) {
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func parseIntQuery(c *gin.Context, name string, fallback int) (int, error) {
	return strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
}
