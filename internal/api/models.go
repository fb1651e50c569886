package api

import (
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the registration endpoint. The
// password rules live in the service so the messages stay in one place.
type RegisterRequest struct {
	Username        string `json:"username"         validate:"max=150"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`

	// Token is the signed session token. It is also set as a cookie.
	Token string `json:"token"`

	// ExpiresAt is the ISO 8601 timestamp when the session expires
	ExpiresAt string `json:"expires_at"`

	User UserResponse `json:"user"`
}

// TaskRequest is the create form for a task. Empty enums take their
// defaults and empty references leave the relation unset.
type TaskRequest struct {
	Title       string `json:"title"                 validate:"max=200"`
	Description string `json:"description,omitempty" validate:"max=5000"`
	DueDate     string `json:"due_date,omitempty"    validate:"omitempty,datetime=2006-01-02"`
	Priority    string `json:"priority,omitempty"    validate:"omitempty,oneof=low medium high urgent"`
	Status      string `json:"status,omitempty"      validate:"omitempty,oneof=not_started in_progress testing completed"`
	AssignedTo  *int64 `json:"assigned_to,omitempty" validate:"omitempty,gt=0"`
	BucketID    *int64 `json:"bucket_id,omitempty"   validate:"omitempty,gt=0"`
}

// ToFields converts the request into domain task fields.
func (req TaskRequest) ToFields() (domain.TaskFields, error) {
	due, err := domain.ParseDueDate(req.DueDate)
	if err != nil {
		return domain.TaskFields{}, err
	}
	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		return domain.TaskFields{}, domain.NewValidationError("priority", "is not a known priority", err)
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return domain.TaskFields{}, domain.NewValidationError("status", "is not a known status", err)
	}
	return domain.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Priority:    priority,
		Status:      status,
		AssigneeID:  req.AssignedTo,
		BucketID:    req.BucketID,
	}, nil
}

// UpdateTaskRequest is the edit form for a task. Unlike creation, the
// priority and status must be submitted so an edit never resets them.
type UpdateTaskRequest struct {
	Title       string `json:"title"                 validate:"max=200"`
	Description string `json:"description,omitempty" validate:"max=5000"`
	DueDate     string `json:"due_date,omitempty"    validate:"omitempty,datetime=2006-01-02"`
	Priority    string `json:"priority"              validate:"required,oneof=low medium high urgent"`
	Status      string `json:"status"                validate:"required,oneof=not_started in_progress testing completed"`
	AssignedTo  *int64 `json:"assigned_to,omitempty" validate:"omitempty,gt=0"`
	BucketID    *int64 `json:"bucket_id,omitempty"   validate:"omitempty,gt=0"`
}

// ToFields converts the request into domain task fields.
func (req UpdateTaskRequest) ToFields() (domain.TaskFields, error) {
	return TaskRequest(req).ToFields()
}

// MoveRequest moves a task to another bucket.
type MoveRequest struct {
	BucketID int64 `json:"bucket_id" validate:"required,gt=0"`
}

// BucketRequest creates or edits a bucket.
type BucketRequest struct {
	Name  string `json:"name"            validate:"required,max=100"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// TaskResponse is a task as shown on the board, with its relations'
// display names and the due date as YYYY-MM-DD.
type TaskResponse struct {
	ID               int64           `json:"id"`
	OwnerID          int64           `json:"user_id"`
	AssigneeID       *int64          `json:"assigned_to,omitempty"`
	BucketID         *int64          `json:"bucket_id,omitempty"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	DueDate          string          `json:"due_date,omitempty"`
	Priority         domain.Priority `json:"priority"`
	Status           domain.Status   `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	Overdue          bool            `json:"overdue"`
	OwnerUsername    string          `json:"username,omitempty"`
	AssigneeUsername string          `json:"assigned_username,omitempty"`
	BucketName       string          `json:"bucket_name,omitempty"`
	BucketColor      string          `json:"bucket_color,omitempty"`
}

// ColumnResponse is one bucket column on the board.
type ColumnResponse struct {
	Bucket *domain.Bucket `json:"bucket"`
	Tasks  []TaskResponse `json:"tasks"`
}

// BoardResponse is the kanban board.
type BoardResponse struct {
	Columns    []ColumnResponse `json:"columns"`
	Unbucketed []TaskResponse   `json:"unbucketed"`
	Users      []domain.UserRef `json:"users"`
	Stats      domain.TaskStats `json:"stats"`
	Today      string           `json:"today"`
}

// DashboardResponse is the caller's own task list.
type DashboardResponse struct {
	Tasks   []TaskResponse        `json:"tasks"`
	Stats   domain.TaskStats      `json:"stats"`
	Filters domain.DashboardQuery `json:"filters"`
	Today   string                `json:"today"`
}

// AdminResponse is the administration overview.
type AdminResponse struct {
	Users   []domain.UserSummary `json:"users"`
	Tasks   []TaskResponse       `json:"tasks"`
	Stats   domain.AdminStats    `json:"stats"`
	Buckets []*domain.Bucket     `json:"buckets"`
	Today   string               `json:"today"`
}

// userToResponse converts a domain user to its public view.
func userToResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}

// taskToResponse converts a bare task. Relation names are left empty.
func taskToResponse(t *domain.Task, today time.Time) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		AssigneeID:  t.AssigneeID,
		BucketID:    t.BucketID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		Overdue:     t.IsOverdue(today),
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format(domain.DateLayout)
	}
	return resp
}

func rowToResponse(row *domain.TaskRow, today time.Time) TaskResponse {
	resp := taskToResponse(&row.Task, today)
	resp.OwnerUsername = row.OwnerUsername
	resp.AssigneeUsername = row.AssigneeUsername
	resp.BucketName = row.BucketName
	resp.BucketColor = row.BucketColor
	return resp
}

func rowsToResponse(rows []*domain.TaskRow, today time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToResponse(row, today))
	}
	return out
}

// parseToday reads a view's YYYY-MM-DD date. A malformed value falls back
// to the current day.
func parseToday(s string) time.Time {
	d, err := time.ParseInLocation(domain.DateLayout, s, time.UTC)
	if err != nil {
		return domain.Today(time.Now())
	}
	return d
}

func boardToResponse(v *service.BoardView) BoardResponse {
	today := parseToday(v.Today)
	cols := make([]ColumnResponse, 0, len(v.Columns))
	for _, c := range v.Columns {
		cols = append(cols, ColumnResponse{Bucket: c.Bucket, Tasks: rowsToResponse(c.Tasks, today)})
	}
	return BoardResponse{
		Columns:    cols,
		Unbucketed: rowsToResponse(v.Unbucketed, today),
		Users:      v.Users,
		Stats:      v.Stats,
		Today:      v.Today,
	}
}

func dashboardToResponse(v *service.DashboardView) DashboardResponse {
	return DashboardResponse{
		Tasks:   rowsToResponse(v.Tasks, parseToday(v.Today)),
		Stats:   v.Stats,
		Filters: v.Filters,
		Today:   v.Today,
	}
}

func adminToResponse(v *service.AdminView) AdminResponse {
	return AdminResponse{
		Users:   v.Users,
		Tasks:   rowsToResponse(v.Tasks, parseToday(v.Today)),
		Stats:   v.Stats,
		Buckets: v.Buckets,
		Today:   v.Today,
	}
}
