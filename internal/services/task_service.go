package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/taskforce/taskforce-api/internal/models"
	"github.com/taskforce/taskforce-api/internal/repository"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrNotYourTask       = errors.New("not your task")
	ErrNoFieldsToUpdate  = errors.New("no data to update")
	ErrInvalidTaskStatus = errors.New("invalid status")
)

// TaskService handles task business logic. Employee actors are scoped
// to their own tasks; admins and managers see everything.
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
	Priority    string
	Deadline    *time.Time
	AssignedTo  *string
}

// CreateTask creates a task in pending status. An unrecognized priority
// is coerced to medium rather than rejected.
func (s *TaskService) CreateTask(actor *models.User, input CreateTaskInput) (*models.Task, error) {
	task := &models.Task{
		Title:         input.Title,
		Description:   input.Description,
		Status:        models.TaskStatusPending,
		Priority:      models.NormalizePriority(input.Priority),
		Deadline:      input.Deadline,
		AssignedTo:    input.AssignedTo,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status     *string
	Priority   *string
	AssignedTo *string
}

// ListTasks returns tasks visible to the actor, with the assignee names
// resolved in one batch lookup. For an employee the assignedTo filter
// is forced to their own ID regardless of what the caller supplied.
func (s *TaskService) ListTasks(actor *models.User, input ListTasksInput) ([]models.Task, map[string]string, error) {
	filter := repository.TaskFilter{}
	if input.Status != nil {
		status := models.TaskStatus(*input.Status)
		filter.Status = &status
	}
	if input.Priority != nil {
		priority := models.TaskPriority(*input.Priority)
		filter.Priority = &priority
	}
	if actor.Role == models.RoleEmployee {
		filter.AssignedTo = &actor.ID
	} else if input.AssignedTo != nil {
		filter.AssignedTo = input.AssignedTo
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	names, err := s.resolveAssigneeNames(tasks)
	if err != nil {
		return nil, nil, err
	}
	return tasks, names, nil
}

// GetTask returns a single task. Employees may only fetch tasks
// assigned to them.
func (s *TaskService) GetTask(actor *models.User, taskID string) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if actor.Role == models.RoleEmployee && !assignedTo(task, actor.ID) {
		return nil, ErrNotYourTask
	}
	return task, nil
}

// UpdateTaskInput represents input for updating a task. Nil fields were
// not supplied and stay untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *string
	Deadline    *time.Time
	AssignedTo  *string
}

func (in UpdateTaskInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.Priority == nil &&
		in.Deadline == nil && in.AssignedTo == nil
}

// UpdateTask applies the supplied fields to an existing task and stamps
// UpdatedAt.
func (s *TaskService) UpdateTask(taskID string, input UpdateTaskInput) (*models.Task, error) {
	if input.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = models.TaskPriority(*input.Priority)
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
	}
	if input.AssignedTo != nil {
		task.AssignedTo = input.AssignedTo
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// UpdateTaskStatus moves a task to a new status. Admins and managers
// may change any task; an employee only tasks assigned to them.
func (s *TaskService) UpdateTaskStatus(actor *models.User, taskID, status string) (*models.Task, error) {
	if !models.IsValidTaskStatus(status) {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if actor.Role == models.RoleEmployee && !assignedTo(task, actor.ID) {
		return nil, ErrNotYourTask
	}

	task.Status = models.TaskStatus(status)
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(taskID string) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) findTask(taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// resolveAssigneeNames batch-loads the current display names of every
// distinct assignee referenced by the tasks.
func (s *TaskService) resolveAssigneeNames(tasks []models.Task) (map[string]string, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, t := range tasks {
		if t.AssignedTo == nil {
			continue
		}
		if _, ok := seen[*t.AssignedTo]; ok {
			continue
		}
		seen[*t.AssignedTo] = struct{}{}
		ids = append(ids, *t.AssignedTo)
	}

	names, err := s.userRepo.NamesByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assignee names: %w", err)
	}
	return names, nil
}

func assignedTo(task *models.Task, userID string) bool {
	return task.AssignedTo != nil && *task.AssignedTo == userID
}
