package server

import (
	"time"

	"monkmode/internal/models"
	"monkmode/internal/service"

	"github.com/gofiber/fiber/v2"
)

type timeBlockRequest struct {
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	StartTime int       `json:"start_time"`
	EndTime   int       `json:"end_time"`
	IsFocus   bool      `json:"is_focus"`
}

// CreateTimeBlock handles POST /api/timeblocks
func (s *Server) CreateTimeBlock(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req timeBlockRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	block, err := s.timeBlockService.CreateTimeBlock(c.Context(), userID, service.TimeBlockInput{
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsFocus:   req.IsFocus,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(block)
}

// GetTimeBlocks handles GET /api/timeblocks?date=YYYY-MM-DD
func (s *Server) GetTimeBlocks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	date, err := s.parseDateQuery(c, "date")
	if err != nil {
		return nil
	}

	blocks, err := s.timeBlockService.ListForDate(c.Context(), userID, date)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(blocks)
}

// GetTimeBlock handles GET /api/timeblocks/:id
func (s *Server) GetTimeBlock(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	blockID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	block, err := s.timeBlockService.GetTimeBlock(c.Context(), userID, blockID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(block)
}

// UpdateTimeBlock handles PUT /api/timeblocks/:id
func (s *Server) UpdateTimeBlock(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	blockID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req timeBlockRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	block, err := s.timeBlockService.UpdateTimeBlock(c.Context(), userID, blockID, service.TimeBlockInput{
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsFocus:   req.IsFocus,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(block)
}

// CompleteTimeBlock handles POST /api/timeblocks/:id/complete. Focus blocks
// bank their minutes into daily statistics and XP.
func (s *Server) CompleteTimeBlock(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	blockID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	before, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	prevLevel := before.Level

	user, err := s.timeBlockService.CompleteFocusBlock(c.Context(), userID, blockID)
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

// DeleteTimeBlock handles DELETE /api/timeblocks/:id
func (s *Server) DeleteTimeBlock(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	blockID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.timeBlockService.DeleteTimeBlock(c.Context(), userID, blockID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ApplyTemplate handles POST /api/timeblocks/apply-template
func (s *Server) ApplyTemplate(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		TemplateID uint      `json:"template_id"`
		Date       time.Time `json:"date"`
	}
	if err := c.BodyParser(&req); err != nil || req.TemplateID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Template ID is required"))
	}

	template, err := s.templateService.GetTemplate(c.Context(), userID, req.TemplateID)
	if err != nil {
		return respondServiceError(c, err)
	}

	blocks, err := s.timeBlockService.ApplyTemplate(c.Context(), userID, template, req.Date)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(blocks)
}
