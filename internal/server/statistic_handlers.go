package server

import (
	"time"

	"monkmode/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDailyStatistics handles GET /api/statistics?date=YYYY-MM-DD&friendId=N.
// Without friendId it returns the caller's own day; with friendId it returns
// a friend's day, which requires an accepted friendship.
// @Summary Get daily statistics
// @Tags statistics
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Param friendId query int false "Friend's user ID"
// @Success 200 {object} models.DailyStatisticView
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /statistics [get]
func (s *Server) GetDailyStatistics(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	date, err := s.parseDateQuery(c, "date")
	if err != nil {
		return nil
	}

	ownerID := userID
	if friendID := c.QueryInt("friendId", 0); friendID > 0 {
		ownerID = uint(friendID)
	}

	view, err := s.statService.GetDailyView(c.Context(), userID, ownerID, date)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(view)
}

// GetStatisticsRange handles GET /api/statistics/range?from=&to=&friendId=
func (s *Server) GetStatisticsRange(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	from, err := s.parseDateQuery(c, "from")
	if err != nil {
		return nil
	}
	to, err := s.parseDateQuery(c, "to")
	if err != nil {
		return nil
	}
	if to.Before(from) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid range (to before from)"))
	}

	ownerID := userID
	if friendID := c.QueryInt("friendId", 0); friendID > 0 {
		ownerID = uint(friendID)
	}

	stats, err := s.statService.GetRange(c.Context(), userID, ownerID, from, to)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(stats)
}

// UpdateStatistics handles POST /api/statistics/update. Minutes accumulate
// onto the (user, day) row; posting twice adds both amounts.
func (s *Server) UpdateStatistics(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Date    string `json:"date"`
		Minutes int    `json:"minutes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, parseErr := time.Parse("2006-01-02", req.Date)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid date (expected YYYY-MM-DD)"))
		}
		date = parsed.UTC()
	}

	stat, err := s.statService.AddFocusTime(c.Context(), userID, date, req.Minutes)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(stat)
}
