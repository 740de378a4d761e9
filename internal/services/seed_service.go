package services

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskforce/taskforce-api/internal/models"
	"github.com/taskforce/taskforce-api/internal/repository"
)

// seedAdminEmail marks a database as already seeded.
const seedAdminEmail = "admin@office.com"

// SeedCredentials are the plaintext demo logins returned after seeding.
// Intended for non-production environments only.
type SeedCredentials struct {
	Admin    SeedLogin `json:"admin"`
	Manager  SeedLogin `json:"manager"`
	Employee SeedLogin `json:"employee"`
}

type SeedLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedService loads a fixed set of demo users and tasks.
type SeedService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

// NewSeedService creates a new SeedService
func NewSeedService(userRepo repository.UserRepository, taskRepo repository.TaskRepository) *SeedService {
	return &SeedService{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// Seed inserts the demo fixture unless the database already holds it.
// Returns (false, nil, nil) when the data was seeded previously; the
// store is left untouched in that case.
func (s *SeedService) Seed() (bool, *SeedCredentials, error) {
	if _, err := s.userRepo.FindByEmail(seedAdminEmail); err == nil {
		return false, nil, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil, fmt.Errorf("failed to check seed marker: %w", err)
	}

	admin, err := s.seedUser(seedAdminEmail, "admin123", "Alex Admin", models.RoleAdmin, true)
	if err != nil {
		return false, nil, err
	}
	manager, err := s.seedUser("manager@office.com", "manager123", "Morgan Manager", models.RoleManager, true)
	if err != nil {
		return false, nil, err
	}
	john, err := s.seedUser("john@office.com", "employee123", "John Developer", models.RoleEmployee, true)
	if err != nil {
		return false, nil, err
	}
	sarah, err := s.seedUser("sarah@office.com", "employee123", "Sarah Designer", models.RoleEmployee, true)
	if err != nil {
		return false, nil, err
	}
	if _, err := s.seedUser("mike@office.com", "employee123", "Mike Tester", models.RoleEmployee, false); err != nil {
		return false, nil, err
	}

	now := time.Now().UTC()
	tasks := []models.Task{
		{
			Title:       "Design landing page",
			Description: "Create mockups for the new landing page",
			Status:      models.TaskStatusInProgress,
			Priority:    models.TaskPriorityHigh,
			Deadline:    deadlineIn(now, 3*24*time.Hour),
			AssignedTo:  &sarah.ID,
		},
		{
			Title:       "Fix authentication bug",
			Description: "Users unable to reset passwords",
			Status:      models.TaskStatusPending,
			Priority:    models.TaskPriorityCritical,
			Deadline:    deadlineIn(now, 24*time.Hour),
			AssignedTo:  &john.ID,
		},
		{
			Title:       "Write unit tests",
			Description: "Cover payment module with tests",
			Status:      models.TaskStatusReview,
			Priority:    models.TaskPriorityMedium,
			Deadline:    deadlineIn(now, 5*24*time.Hour),
			AssignedTo:  &john.ID,
		},
		{
			Title:       "Update API documentation",
			Description: "Document all new endpoints",
			Status:      models.TaskStatusPending,
			Priority:    models.TaskPriorityLow,
			Deadline:    deadlineIn(now, 7*24*time.Hour),
			AssignedTo:  &john.ID,
		},
		{
			Title:       "Design email templates",
			Description: "Create responsive email templates",
			Status:      models.TaskStatusCompleted,
			Priority:    models.TaskPriorityMedium,
			Deadline:    deadlineIn(now, -2*24*time.Hour),
			AssignedTo:  &sarah.ID,
		},
		{
			Title:       "Performance optimization",
			Description: "Optimize database queries",
			Status:      models.TaskStatusPending,
			Priority:    models.TaskPriorityHigh,
			Deadline:    deadlineIn(now, 4*24*time.Hour),
			AssignedTo:  &john.ID,
		},
	}

	creators := map[int]*models.User{0: manager, 1: manager, 2: manager, 3: admin, 4: manager, 5: admin}
	for i := range tasks {
		creator := creators[i]
		tasks[i].CreatedBy = creator.ID
		tasks[i].CreatedByName = creator.Name
		if err := s.taskRepo.Create(&tasks[i]); err != nil {
			return false, nil, fmt.Errorf("failed to seed task %q: %w", tasks[i].Title, err)
		}
	}

	creds := &SeedCredentials{
		Admin:    SeedLogin{Email: admin.Email, Password: "admin123"},
		Manager:  SeedLogin{Email: manager.Email, Password: "manager123"},
		Employee: SeedLogin{Email: john.Email, Password: "employee123"},
	}
	return true, creds, nil
}

func (s *SeedService) seedUser(email, password, name string, role models.Role, active bool) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		Role:         role,
		IsActive:     active,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", email, err)
	}
	return user, nil
}

func deadlineIn(now time.Time, d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}
