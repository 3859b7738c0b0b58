package service

import (
	"context"
	"time"

	"monkmode/internal/models"
	"monkmode/internal/repository"
)

type TaskService struct {
	taskRepo      repository.TaskRepository
	timeBlockRepo repository.TimeBlockRepository
}

type CreateTaskInput struct {
	UserID      uint
	Title       string
	Description string
	DueDate     *time.Time
	TimeBlockID *uint
}

type UpdateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

func NewTaskService(taskRepo repository.TaskRepository, timeBlockRepo repository.TimeBlockRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, timeBlockRepo: timeBlockRepo}
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}

	if in.TimeBlockID != nil {
		if err := s.checkBlockOwnership(ctx, *in.TimeBlockID, in.UserID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		TimeBlockID: in.TimeBlockID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, models.NewForbiddenError("Task belongs to another user")
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID uint) ([]models.Task, error) {
	return s.taskRepo.GetByUser(ctx, userID)
}

// ListIncompleteTasks returns the user's tasks that have not been completed.
func (s *TaskService) ListIncompleteTasks(ctx context.Context, userID uint) ([]models.Task, error) {
	tasks, err := s.taskRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	incomplete := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsCompleted {
			incomplete = append(incomplete, t)
		}
	}
	return incomplete, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uint, in UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		task.Title = in.Title
	}
	task.Description = in.Description
	task.DueDate = in.DueDate

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteTask marks the task done and stamps CompletedAt. Completing an
// already-completed task is a no-op.
func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID uint) (*models.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsCompleted {
		now := time.Now().UTC()
		task.IsCompleted = true
		task.CompletedAt = &now
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return nil, err
		}
	}
	return task, nil
}

// ReopenTask clears the completion state.
func (s *TaskService) ReopenTask(ctx context.Context, userID, taskID uint) (*models.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if task.IsCompleted {
		task.IsCompleted = false
		task.CompletedAt = nil
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return nil, err
		}
	}
	return task, nil
}

// AssignToTimeBlock links the task to one of the user's own time blocks, or
// unlinks it when timeBlockID is nil.
func (s *TaskService) AssignToTimeBlock(ctx context.Context, userID, taskID uint, timeBlockID *uint) (*models.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if timeBlockID != nil {
		if err := s.checkBlockOwnership(ctx, *timeBlockID, userID); err != nil {
			return nil, err
		}
	}

	task.TimeBlockID = timeBlockID
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint) error {
	if _, err := s.GetTask(ctx, userID, taskID); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, taskID)
}

func (s *TaskService) checkBlockOwnership(ctx context.Context, timeBlockID, userID uint) error {
	block, err := s.timeBlockRepo.GetByID(ctx, timeBlockID)
	if err != nil {
		return err
	}
	if block.UserID != userID {
		return models.NewForbiddenError("Time block belongs to another user")
	}
	return nil
}
