package store

import (
	"context"

	"github.com/phrazzld/taskboard/internal/domain"
)

// BucketStore defines the interface for bucket persistence.
type BucketStore interface {
	// Create saves a new bucket and populates its ID.
	Create(ctx context.Context, bucket *domain.Bucket) error

	// GetByID returns ErrBucketNotFound if the bucket does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Bucket, error)

	// Update replaces name and color.
	// Returns ErrBucketNotFound if the bucket does not exist.
	Update(ctx context.Context, bucket *domain.Bucket) error

	// List returns every bucket ordered by id (creation order).
	List(ctx context.Context) ([]*domain.Bucket, error)

	// ListByName returns every bucket ordered by name.
	ListByName(ctx context.Context) ([]*domain.Bucket, error)

	// Count returns the number of buckets.
	Count(ctx context.Context) (int, error)
}
