package postgres

import (
	"database/sql"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
)

type userRow struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
}

var userColumns = []string{"id", "username", "password_hash", "role"}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:             r.ID,
		Username:       r.Username,
		HashedPassword: r.PasswordHash,
		Role:           domain.Role(r.Role),
	}
}

type bucketRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"`
	CreatedAt time.Time `db:"created_at"`
}

var bucketColumns = []string{"id", "name", "color", "created_at"}

func (r bucketRow) toDomain() *domain.Bucket {
	return &domain.Bucket{ID: r.ID, Name: r.Name, Color: r.Color, CreatedAt: r.CreatedAt}
}

// taskRow scans plain task selects as well as the joined projections;
// the joined columns stay NULL when a query does not select them.
type taskRow struct {
	ID               int64          `db:"id"`
	UserID           int64          `db:"user_id"`
	AssignedTo       sql.NullInt64  `db:"assigned_to"`
	BucketID         sql.NullInt64  `db:"bucket_id"`
	Title            string         `db:"title"`
	Description      sql.NullString `db:"description"`
	DueDate          sql.NullTime   `db:"due_date"`
	Priority         string         `db:"priority"`
	Status           string         `db:"status"`
	CreatedAt        time.Time      `db:"created_at"`
	OwnerUsername    sql.NullString `db:"owner_username"`
	AssigneeUsername sql.NullString `db:"assignee_username"`
	BucketName       sql.NullString `db:"bucket_name"`
	BucketColor      sql.NullString `db:"bucket_color"`
}

var taskColumns = []string{
	"id", "user_id", "assigned_to", "bucket_id", "title", "description",
	"due_date", "priority", "status", "created_at",
}

var taskJoinedColumns = []string{
	"t.id", "t.user_id", "t.assigned_to", "t.bucket_id", "t.title", "t.description",
	"t.due_date", "t.priority", "t.status", "t.created_at",
	"o.username AS owner_username",
	"a.username AS assignee_username",
	"b.name AS bucket_name",
	"b.color AS bucket_color",
}

func (r taskRow) toDomain() *domain.Task {
	t := &domain.Task{
		ID:          r.ID,
		OwnerID:     r.UserID,
		Title:       r.Title,
		Description: r.Description.String,
		Priority:    domain.Priority(r.Priority),
		Status:      domain.Status(r.Status),
		CreatedAt:   r.CreatedAt,
	}
	if r.AssignedTo.Valid {
		v := r.AssignedTo.Int64
		t.AssigneeID = &v
	}
	if r.BucketID.Valid {
		v := r.BucketID.Int64
		t.BucketID = &v
	}
	if r.DueDate.Valid {
		d := domain.Today(r.DueDate.Time)
		t.DueDate = &d
	}
	return t
}

func (r taskRow) toRow() *domain.TaskRow {
	return &domain.TaskRow{
		Task:             *r.toDomain(),
		OwnerUsername:    r.OwnerUsername.String,
		AssigneeUsername: r.AssigneeUsername.String,
		BucketName:       r.BucketName.String,
		BucketColor:      r.BucketColor.String,
	}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
