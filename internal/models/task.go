package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValidTaskStatus reports whether value is one of the recognized statuses.
func IsValidTaskStatus(value string) bool {
	switch TaskStatus(value) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// IsValidTaskPriority reports whether value is one of the recognized priorities.
func IsValidTaskPriority(value string) bool {
	switch TaskPriority(value) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// NormalizePriority maps unrecognized priority values to medium.
func NormalizePriority(value string) TaskPriority {
	if IsValidTaskPriority(value) {
		return TaskPriority(value)
	}
	return TaskPriorityMedium
}

// Task is a unit of work. AssignedTo is a weak reference to User.ID:
// it is not a foreign key and may dangle after a user is deleted;
// readers resolve missing assignees to "Unassigned".
type Task struct {
	ID            string       `gorm:"type:varchar(36);primarykey" json:"id"`
	Title         string       `gorm:"type:varchar(255);not null" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	Status        TaskStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority      TaskPriority `gorm:"type:varchar(20);not null;default:'medium';index" json:"priority"`
	Deadline      *time.Time   `json:"deadline"`
	AssignedTo    *string      `gorm:"type:varchar(36);index" json:"assignedTo"`
	CreatedBy     string       `gorm:"type:varchar(36);not null" json:"createdBy"`
	CreatedByName string       `gorm:"type:varchar(255);not null" json:"createdByName"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
