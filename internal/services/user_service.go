package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskforce/taskforce-api/internal/models"
	"github.com/taskforce/taskforce-api/internal/repository"
)

var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrSelfDeactivation = errors.New("cannot deactivate yourself")
	ErrSelfDeletion     = errors.New("cannot delete yourself")
)

// UserService handles administrative user operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns every user record.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns a single user by ID.
func (s *UserService) GetUser(id string) (*models.User, error) {
	return s.findUser(id)
}

// UpdateUserInput represents input for updating a user. Nil fields were
// not supplied and stay untouched.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *string
}

func (in UpdateUserInput) empty() bool {
	return in.Name == nil && in.Email == nil && in.Role == nil
}

// UpdateUser applies the supplied fields and stamps UpdatedAt.
func (s *UserService) UpdateUser(id string, input UpdateUserInput) (*models.User, error) {
	if input.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = models.Role(*input.Role)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ToggleActive flips a user's active flag and returns the new state.
// An admin cannot deactivate their own account.
func (s *UserService) ToggleActive(actorID, id string) (bool, error) {
	user, err := s.findUser(id)
	if err != nil {
		return false, err
	}
	if user.ID == actorID {
		return false, ErrSelfDeactivation
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.Update(user); err != nil {
		return false, fmt.Errorf("failed to toggle active flag: %w", err)
	}
	return user.IsActive, nil
}

// SetRole assigns a new role to a user. Unlike registration, an
// unrecognized role is rejected here rather than coerced.
func (s *UserService) SetRole(id, role string) error {
	if !models.IsValidRole(role) {
		return ErrInvalidRole
	}

	user, err := s.findUser(id)
	if err != nil {
		return err
	}

	user.Role = models.Role(role)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// DeleteUser removes a user and cascades to every task assigned to
// them. An admin cannot delete their own account.
func (s *UserService) DeleteUser(actorID, id string) error {
	if id == actorID {
		return ErrSelfDeletion
	}

	if err := s.userRepo.DeleteWithAssignedTasks(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserService) findUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
