package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskhub/internal/constants"
	"taskhub/internal/models"
	"taskhub/internal/repository"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	DueDate     *time.Time
	UserID      uint64
}

// UpdateTaskInput represents a partial task update; nil fields are left
// untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	DueDate     *time.Time
}

// CreateTask creates a new task owned by an existing user. A missing due
// date gets the server default of creation time plus three days.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	now := time.Now()
	dueDate := now.Add(constants.DefaultDueDateOffset)
	if input.DueDate != nil {
		if !input.DueDate.After(now) {
			return nil, ErrDueDateNotFuture
		}
		dueDate = *input.DueDate
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}

	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newNotFound("user", input.UserID)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     dueDate,
		UserID:      input.UserID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID)
}

// ListTasks returns tasks, optionally filtered by status equality and
// ordered by an allow-listed field.
func (s *TaskService) ListTasks(status, sortBy, order string) ([]models.Task, error) {
	opts, err := resolveSort(taskSortFields, sortBy, order)
	if err != nil {
		return nil, err
	}

	filter := repository.TaskFilter{Sort: opts}
	if status != "" {
		taskStatus := models.TaskStatus(status)
		filter.Status = &taskStatus
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a task by id
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newNotFound("task", id)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update, re-validating any supplied field
// against the creation constraints.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.DueDate != nil {
		if !input.DueDate.After(time.Now()) {
			return nil, ErrDueDateNotFuture
		}
		task.DueDate = *input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(id)
}

// ChangeStatus sets a task's status to one of the recognized values. The
// value is checked before the task is touched.
func (s *TaskService) ChangeStatus(id uint64, status models.TaskStatus) (*models.Task, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to change status: %w", err)
	}

	return s.taskRepo.FindByID(id)
}

// DeleteTask removes a task permanently
func (s *TaskService) DeleteTask(id uint64) error {
	if _, err := s.GetTask(id); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func validateTitle(title string) error {
	if len(title) < constants.MinTitleLength || len(title) > constants.MaxTitleLength {
		return ErrTitleLength
	}
	return nil
}
