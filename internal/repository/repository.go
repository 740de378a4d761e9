package repository

import (
	"github.com/taskforce/taskforce-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all users
	List() ([]models.User, error)

	// ListByRole returns all users with the given role
	ListByRole(role models.Role) ([]models.User, error)

	// NamesByIDs returns a map of user ID to display name for the given IDs
	NamesByIDs(ids []string) (map[string]string, error)

	// Update persists changes to an existing user
	Update(user *models.User) error

	// DeleteWithAssignedTasks removes a user and every task assigned to
	// them within a single transaction
	DeleteWithAssignedTasks(id string) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	AssignedTo *string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id string) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update persists changes to an existing task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id string) error
}
