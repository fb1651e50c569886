package domain

import "time"

// TaskStats summarizes a set of tasks.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// NewTaskStats derives Pending from Total and Completed.
func NewTaskStats(total, completed, overdue int) TaskStats {
	return TaskStats{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
		Overdue:   overdue,
	}
}

// ComputeTaskStats tallies tasks in memory against the given day.
func ComputeTaskStats(tasks []*Task, today time.Time) TaskStats {
	var completed, overdue int
	for _, t := range tasks {
		if t.Status == StatusCompleted {
			completed++
		}
		if t.IsOverdue(today) {
			overdue++
		}
	}
	return NewTaskStats(len(tasks), completed, overdue)
}

// AdminStats are the system-wide counters shown to administrators.
type AdminStats struct {
	TotalUsers     int `json:"total_users"`
	AdminUsers     int `json:"admin_users"`
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
}

// UserSummary is a user row with task counts for the admin view.
// TaskCount counts tasks the user owns or is assigned.
type UserSummary struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Role           Role   `json:"role"`
	TaskCount      int    `json:"task_count"`
	CompletedTasks int    `json:"completed_tasks"`
}

// UserRef is the minimal user projection used by pickers.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// TaskRow is a task joined with the display names of its relations.
type TaskRow struct {
	Task
	OwnerUsername    string `json:"username,omitempty"`
	AssigneeUsername string `json:"assigned_username,omitempty"`
	BucketName       string `json:"bucket_name,omitempty"`
	BucketColor      string `json:"bucket_color,omitempty"`
}
