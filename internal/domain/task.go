package domain

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of due dates.
const DateLayout = "2006-01-02"

// Status represents the workflow state of a task.
type Status string

// Possible task status values
const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusTesting    Status = "testing"
	StatusCompleted  Status = "completed"
)

// Priority represents the urgency of a task.
type Priority string

// Possible task priority values
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// Common validation errors for Task
var (
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrEmptyOwner      = errors.New("task owner cannot be empty")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

// ParseStatus converts a string into a Status.
// An empty string yields StatusNotStarted.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "":
		return StatusNotStarted, nil
	case StatusNotStarted, StatusInProgress, StatusTesting, StatusCompleted:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ParsePriority converts a string into a Priority.
// An empty string yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(s), nil
	default:
		return "", ErrInvalidPriority
	}
}

// Rank orders priorities for sorting: urgent=1, high=2, medium=3, low=4.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 4
	default:
		return len(Priorities) + 1
	}
}

// ParseDueDate parses a YYYY-MM-DD date. An empty string means no due date.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return nil, NewValidationError("due_date", "must be a date (YYYY-MM-DD)", ErrInvalidDate)
	}
	return &d, nil
}

// Today returns the calendar date of t as midnight UTC.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Task is a unit of work on the board.
type Task struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"user_id"`
	AssigneeID  *int64     `json:"assigned_to,omitempty"`
	BucketID    *int64     `json:"bucket_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskFields holds the caller-editable fields of a task.
type TaskFields struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    Priority
	BucketID    *int64
	AssigneeID  *int64
	Status      Status
}

// Normalize trims text fields and fills defaults for empty enums.
func (f *TaskFields) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	if f.Priority == "" {
		f.Priority = PriorityMedium
	}
	if f.Status == "" {
		f.Status = StatusNotStarted
	}
}

// Validate checks the fields after normalization.
func (f *TaskFields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	if _, err := ParsePriority(string(f.Priority)); err != nil {
		return NewValidationError("priority", "is invalid", err)
	}
	if _, err := ParseStatus(string(f.Status)); err != nil {
		return NewValidationError("status", "is invalid", err)
	}
	return nil
}

// NewTask creates a task owned by ownerID. The status always starts as
// not_started regardless of fields.Status.
func NewTask(ownerID int64, fields TaskFields) (*Task, error) {
	if ownerID == 0 {
		return nil, NewValidationError("user_id", "is required", ErrEmptyOwner)
	}

	fields.Normalize()
	fields.Status = StatusNotStarted
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	task := &Task{OwnerID: ownerID, CreatedAt: time.Now().UTC()}
	task.Apply(fields)
	return task, nil
}

// Apply replaces every mutable field of the task.
func (t *Task) Apply(f TaskFields) {
	t.Title = f.Title
	t.Description = f.Description
	t.DueDate = f.DueDate
	t.Priority = f.Priority
	t.BucketID = f.BucketID
	t.AssigneeID = f.AssigneeID
	t.Status = f.Status
}

// Fields returns the task's mutable fields.
func (t *Task) Fields() TaskFields {
	return TaskFields{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		BucketID:    t.BucketID,
		AssigneeID:  t.AssigneeID,
		Status:      t.Status,
	}
}

// ToggledStatus returns the status a completion toggle moves the task to.
// Any status other than completed jumps to completed; completed always
// returns to not_started. Intermediate statuses are not restored.
func (t *Task) ToggledStatus() Status {
	if t.Status == StatusCompleted {
		return StatusNotStarted
	}
	return StatusCompleted
}

// IsOverdue reports whether the task is past due on the given day and not completed.
func (t *Task) IsOverdue(today time.Time) bool {
	if t.DueDate == nil || t.Status == StatusCompleted {
		return false
	}
	return t.DueDate.Before(Today(today))
}

// IsOwnedOrAssigned reports whether userID created the task or is its assignee.
func (t *Task) IsOwnedOrAssigned(userID int64) bool {
	if userID == 0 {
		return false
	}
	return t.OwnerID == userID || (t.AssigneeID != nil && *t.AssigneeID == userID)
}

// CanAccess is the single access predicate for reading, mutating, deleting or
// moving a task: admins always pass, everyone else must own or be assigned the task.
func CanAccess(t *Task, id Identity) bool {
	if t == nil || id.IsZero() {
		return false
	}
	return id.IsAdmin() || t.IsOwnedOrAssigned(id.UserID)
}
