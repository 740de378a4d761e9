package dto

import (
	"time"

	"github.com/taskforce/taskforce-api/internal/models"
)

// TaskView represents a task in list responses, enriched with the
// assignee's current display name. A missing or dangling assignee
// resolves to "Unassigned".
type TaskView struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         models.TaskStatus   `json:"status"`
	Priority       models.TaskPriority `json:"priority"`
	Deadline       *time.Time          `json:"deadline"`
	AssignedTo     *string             `json:"assignedTo"`
	AssignedToName string              `json:"assignedToName"`
	CreatedBy      string              `json:"createdBy"`
	CreatedByName  string              `json:"createdByName"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// UnassignedName is the read-time fallback for tasks whose assignee is
// absent or no longer exists.
const UnassignedName = "Unassigned"

// ToTaskView converts a Task model to TaskView using the given
// ID-to-name lookup.
func ToTaskView(task models.Task, names map[string]string) TaskView {
	view := TaskView{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Priority:       task.Priority,
		Deadline:       task.Deadline,
		AssignedTo:     task.AssignedTo,
		AssignedToName: UnassignedName,
		CreatedBy:      task.CreatedBy,
		CreatedByName:  task.CreatedByName,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
	if task.AssignedTo != nil {
		if name, ok := names[*task.AssignedTo]; ok {
			view.AssignedToName = name
		}
	}
	return view
}

// ToTaskViews converts a slice of Task models to views
func ToTaskViews(tasks []models.Task, names map[string]string) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = ToTaskView(t, names)
	}
	return views
}
