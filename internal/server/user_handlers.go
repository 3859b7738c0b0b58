package server

import (
	"monkmode/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Public profile: progression fields only.
	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"level":    user.Level,
		"xp":       user.Xp,
	})
}

// AwardXp handles POST /api/users/xp
// @Summary Award XP to the current user
// @Description Add experience points, applying level-ups with remainder carry
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{amount=int} true "XP amount"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users/xp [post]
func (s *Server) AwardXp(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Amount int `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	before, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	prevLevel := before.Level

	user, err := s.userService.AwardXp(c.Context(), userID, req.Amount)
	if err != nil {
		return respondServiceError(c, err)
	}

	if user.Level > prevLevel {
		s.publishUserEvent(userID, EventLevelUp, map[string]interface{}{
			"level": user.Level,
			"xp":    user.Xp,
		})
	}

	return c.JSON(user)
}
