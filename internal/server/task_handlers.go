package server

import (
	"time"

	"monkmode/internal/models"
	"monkmode/internal/service"

	"github.com/gofiber/fiber/v2"
)

type taskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	TimeBlockID *uint      `json:"time_block_id"`
}

// CreateTask handles POST /api/tasks
func (s *Server) CreateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	task, err := s.taskService.CreateTask(c.Context(), service.CreateTaskInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		TimeBlockID: req.TimeBlockID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTasks handles GET /api/tasks
func (s *Server) GetTasks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	tasks, err := s.taskService.ListTasks(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(tasks)
}

// GetIncompleteTasks handles GET /api/tasks/incomplete
func (s *Server) GetIncompleteTasks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	tasks, err := s.taskService.ListIncompleteTasks(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(tasks)
}

// GetTask handles GET /api/tasks/:id
func (s *Server) GetTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	task, err := s.taskService.GetTask(c.Context(), userID, taskID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(task)
}

// UpdateTask handles PUT /api/tasks/:id
func (s *Server) UpdateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	task, err := s.taskService.UpdateTask(c.Context(), userID, taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(task)
}

// CompleteTask handles POST /api/tasks/:id/complete
func (s *Server) CompleteTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	task, err := s.taskService.CompleteTask(c.Context(), userID, taskID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(task)
}

// ReopenTask handles POST /api/tasks/:id/reopen
func (s *Server) ReopenTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	task, err := s.taskService.ReopenTask(c.Context(), userID, taskID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(task)
}

// AssignTaskToTimeBlock handles PUT /api/tasks/:id/timeblock. A null
// time_block_id unlinks the task.
func (s *Server) AssignTaskToTimeBlock(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		TimeBlockID *uint `json:"time_block_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	task, err := s.taskService.AssignToTimeBlock(c.Context(), userID, taskID, req.TimeBlockID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(task)
}

// DeleteTask handles DELETE /api/tasks/:id
func (s *Server) DeleteTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taskService.DeleteTask(c.Context(), userID, taskID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
