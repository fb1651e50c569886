package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// BucketService is the bucket registry: the workflow columns of the board.
type BucketService struct {
	buckets store.BucketStore
	tx      store.TxRunner
	logger  *slog.Logger
}

// NewBucketService creates a BucketService.
func NewBucketService(buckets store.BucketStore, tx store.TxRunner, logger *slog.Logger) (*BucketService, error) {
	if buckets == nil {
		return nil, domain.NewValidationError("buckets", "cannot be nil", domain.ErrValidation)
	}
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BucketService{
		buckets: buckets,
		tx:      tx,
		logger:  logger.With(slog.String("component", "bucket_service")),
	}, nil
}

// SeedDefaults inserts the four workflow buckets when no bucket exists.
// It reports whether anything was inserted.
func (s *BucketService) SeedDefaults(ctx context.Context) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	seeded := false

	err := s.tx.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		n, err := st.Buckets.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for _, b := range domain.DefaultBuckets() {
			if err := st.Buckets.Create(ctx, b); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		log.Error("failed to seed buckets", slog.String("error", err.Error()))
		return false, operationFailed("seed_buckets", err)
	}

	if seeded {
		log.Info("seeded default buckets", slog.Int("count", len(domain.WorkflowBuckets)))
	}
	return seeded, nil
}

// List returns every bucket in creation order.
func (s *BucketService) List(ctx context.Context) ([]*domain.Bucket, error) {
	buckets, err := s.buckets.List(ctx)
	if err != nil {
		return nil, operationFailed("list_buckets", err)
	}
	return buckets, nil
}

// ListByName returns every bucket ordered by name.
func (s *BucketService) ListByName(ctx context.Context) ([]*domain.Bucket, error) {
	buckets, err := s.buckets.ListByName(ctx)
	if err != nil {
		return nil, operationFailed("list_buckets", err)
	}
	return buckets, nil
}

// Create adds a bucket. An empty color falls back to the default.
func (s *BucketService) Create(ctx context.Context, name, color string) (*domain.Bucket, error) {
	b, err := domain.NewBucket(name, color)
	if err != nil {
		return nil, err
	}
	if err := s.buckets.Create(ctx, b); err != nil {
		return nil, operationFailed("create_bucket", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("bucket created",
		slog.Int64("bucket_id", b.ID),
		slog.String("name", b.Name))
	return b, nil
}

// Rename replaces a bucket's name and color. Tasks already in the bucket
// keep their status; only later moves use the new name.
func (s *BucketService) Rename(ctx context.Context, id int64, name, color string) (*domain.Bucket, error) {
	b, err := domain.NewBucket(name, color)
	if err != nil {
		return nil, err
	}
	b.ID = id

	err = s.tx.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		existing, err := st.Buckets.GetByID(ctx, id)
		if err != nil {
			return err
		}
		b.CreatedAt = existing.CreatedAt
		return st.Buckets.Update(ctx, b)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrBucketNotFound
		}
		return nil, operationFailed("rename_bucket", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("bucket renamed",
		slog.Int64("bucket_id", id),
		slog.String("name", b.Name))
	return b, nil
}
