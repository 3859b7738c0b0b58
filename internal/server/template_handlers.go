package server

import (
	"monkmode/internal/models"
	"monkmode/internal/service"

	"github.com/gofiber/fiber/v2"
)

type templateRequest struct {
	Title  string `json:"title"`
	Blocks []struct {
		Title     string `json:"title"`
		StartTime int    `json:"start_time"`
		EndTime   int    `json:"end_time"`
		IsFocus   bool   `json:"is_focus"`
	} `json:"blocks"`
}

func (r templateRequest) toInput() service.TemplateInput {
	in := service.TemplateInput{Title: r.Title}
	for _, b := range r.Blocks {
		in.Blocks = append(in.Blocks, service.TemplateBlockInput{
			Title:     b.Title,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			IsFocus:   b.IsFocus,
		})
	}
	return in
}

// CreateTemplate handles POST /api/templates
func (s *Server) CreateTemplate(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	template, err := s.templateService.CreateTemplate(c.Context(), userID, req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(template)
}

// GetTemplates handles GET /api/templates
func (s *Server) GetTemplates(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	templates, err := s.templateService.ListTemplates(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(templates)
}

// GetTemplate handles GET /api/templates/:id
func (s *Server) GetTemplate(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	templateID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	template, err := s.templateService.GetTemplate(c.Context(), userID, templateID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(template)
}

// UpdateTemplate handles PUT /api/templates/:id
func (s *Server) UpdateTemplate(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	templateID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	template, err := s.templateService.UpdateTemplate(c.Context(), userID, templateID, req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(template)
}

// DeleteTemplate handles DELETE /api/templates/:id
func (s *Server) DeleteTemplate(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	templateID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.templateService.DeleteTemplate(c.Context(), userID, templateID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
