package dto

// TaskCounts aggregates a set of tasks by status plus the overdue total.
type TaskCounts struct {
	TotalTasks int `json:"totalTasks"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Review     int `json:"review"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
}

// RoleDistribution is the per-role user histogram.
type RoleDistribution struct {
	Admin    int `json:"admin"`
	Manager  int `json:"manager"`
	Employee int `json:"employee"`
}

// GlobalStats is the admin/manager dashboard: global task counts plus
// the user population breakdown.
type GlobalStats struct {
	TotalUsers    int `json:"totalUsers"`
	ActiveUsers   int `json:"activeUsers"`
	InactiveUsers int `json:"inactiveUsers"`
	TaskCounts
	RoleDistribution RoleDistribution `json:"roleDistribution"`
}

// EmployeePerformance is one row of the performance report.
type EmployeePerformance struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	IsActive       bool    `json:"isActive"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
}
