package services

import (
	"fmt"
	"math"
	"time"

	"github.com/taskforce/taskforce-api/internal/dto"
	"github.com/taskforce/taskforce-api/internal/models"
	"github.com/taskforce/taskforce-api/internal/repository"
)

// StatsService aggregates dashboard and performance figures over the
// task and user stores.
type StatsService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *StatsService {
	return &StatsService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// EmployeeStats returns the status breakdown of the tasks assigned to a
// single user.
func (s *StatsService) EmployeeStats(userID string) (*dto.TaskCounts, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{AssignedTo: &userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	counts := countTasks(tasks, time.Now().UTC())
	return &counts, nil
}

// GlobalStats returns the admin/manager dashboard: global task counts
// plus the user population breakdown.
func (s *StatsService) GlobalStats() (*dto.GlobalStats, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	stats := &dto.GlobalStats{
		TotalUsers: len(users),
		TaskCounts: countTasks(tasks, time.Now().UTC()),
	}
	for _, u := range users {
		if u.IsActive {
			stats.ActiveUsers++
		}
		switch u.Role {
		case models.RoleAdmin:
			stats.RoleDistribution.Admin++
		case models.RoleManager:
			stats.RoleDistribution.Manager++
		case models.RoleEmployee:
			stats.RoleDistribution.Employee++
		}
	}
	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers

	return stats, nil
}

// Performance reports per-employee assigned/completed totals and the
// completion rate, rounded to one decimal place. A user with no tasks
// has a rate of exactly 0.
func (s *StatsService) Performance() ([]dto.EmployeePerformance, error) {
	employees, err := s.userRepo.ListByRole(models.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	report := make([]dto.EmployeePerformance, 0, len(employees))
	for _, emp := range employees {
		tasks, err := s.taskRepo.List(repository.TaskFilter{AssignedTo: &emp.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to load tasks for %s: %w", emp.ID, err)
		}

		total := len(tasks)
		completed := 0
		for _, t := range tasks {
			if t.Status == models.TaskStatusCompleted {
				completed++
			}
		}

		rate := 0.0
		if total > 0 {
			rate = math.Round(float64(completed)/float64(total)*1000) / 10
		}

		report = append(report, dto.EmployeePerformance{
			ID:             emp.ID,
			Name:           emp.Name,
			Email:          emp.Email,
			IsActive:       emp.IsActive,
			TotalTasks:     total,
			CompletedTasks: completed,
			CompletionRate: rate,
		})
	}

	return report, nil
}

// countTasks tallies tasks by status. A task is overdue when its
// deadline is chronologically before now and it is not completed.
func countTasks(tasks []models.Task, now time.Time) dto.TaskCounts {
	counts := dto.TaskCounts{TotalTasks: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusPending:
			counts.Pending++
		case models.TaskStatusInProgress:
			counts.InProgress++
		case models.TaskStatusReview:
			counts.Review++
		case models.TaskStatusCompleted:
			counts.Completed++
		}
		if t.Deadline != nil && t.Deadline.Before(now) && t.Status != models.TaskStatusCompleted {
			counts.Overdue++
		}
	}
	return counts
}
