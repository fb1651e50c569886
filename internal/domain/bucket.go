package domain

import (
	"errors"
	"strings"
	"time"
)

// DefaultBucketColor is used when a bucket is created without a color.
const DefaultBucketColor = "#667eea"

// Common validation errors for Bucket
var (
	ErrEmptyBucketName = errors.New("bucket name cannot be empty")
)

// Bucket is a named workflow column on the board.
type Bucket struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBucket creates a bucket, defaulting the color.
func NewBucket(name, color string) (*Bucket, error) {
	b := &Bucket{
		Name:      strings.TrimSpace(name),
		Color:     strings.TrimSpace(color),
		CreatedAt: time.Now().UTC(),
	}
	if b.Color == "" {
		b.Color = DefaultBucketColor
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks if the Bucket has valid data.
func (b *Bucket) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return NewValidationError("name", "is required", ErrEmptyBucketName)
	}
	return nil
}

// WorkflowBucket enumerates the seeded workflow columns that map to a status.
type WorkflowBucket int

// The seeded workflow buckets, in board order.
const (
	BucketToDo WorkflowBucket = iota + 1
	BucketInProgress
	BucketTesting
	BucketDone
)

// WorkflowBuckets lists the seeded buckets in creation order.
var WorkflowBuckets = []WorkflowBucket{BucketToDo, BucketInProgress, BucketTesting, BucketDone}

// Name returns the bucket's display name.
func (w WorkflowBucket) Name() string {
	switch w {
	case BucketToDo:
		return "To Do"
	case BucketInProgress:
		return "In Progress"
	case BucketTesting:
		return "Testing"
	case BucketDone:
		return "Done"
	default:
		return ""
	}
}

// Color returns the seeded display color.
func (w WorkflowBucket) Color() string {
	switch w {
	case BucketToDo:
		return "#17a2b8"
	case BucketInProgress:
		return "#ffc107"
	case BucketTesting:
		return "#fd7e14"
	case BucketDone:
		return "#28a745"
	default:
		return DefaultBucketColor
	}
}

// Status returns the task status a task takes when moved into this bucket.
func (w WorkflowBucket) Status() Status {
	switch w {
	case BucketToDo:
		return StatusNotStarted
	case BucketInProgress:
		return StatusInProgress
	case BucketTesting:
		return StatusTesting
	case BucketDone:
		return StatusCompleted
	default:
		return StatusNotStarted
	}
}

// LookupWorkflowBucket finds the workflow bucket with an exact (case-sensitive) name.
func LookupWorkflowBucket(name string) (WorkflowBucket, bool) {
	for _, w := range WorkflowBuckets {
		if w.Name() == name {
			return w, true
		}
	}
	return 0, false
}

// StatusForBucketName maps a bucket name to a task status.
// Names outside the seeded set map to not_started.
func StatusForBucketName(name string) Status {
	if w, ok := LookupWorkflowBucket(name); ok {
		return w.Status()
	}
	return StatusNotStarted
}

// DefaultBuckets returns fresh Bucket values for the seeded set.
func DefaultBuckets() []*Bucket {
	buckets := make([]*Bucket, 0, len(WorkflowBuckets))
	now := time.Now().UTC()
	for _, w := range WorkflowBuckets {
		buckets = append(buckets, &Bucket{Name: w.Name(), Color: w.Color(), CreatedAt: now})
	}
	return buckets
}
