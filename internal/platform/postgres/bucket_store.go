package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// PostgresBucketStore implements the store.BucketStore interface.
type PostgresBucketStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBucketStore creates a new PostgreSQL implementation of the BucketStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresBucketStore(db store.DBTX, logger *slog.Logger) *PostgresBucketStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBucketStore{
		db:     db,
		logger: logger.With(slog.String("component", "bucket_store")),
	}
}

var _ store.BucketStore = (*PostgresBucketStore)(nil)

// Create implements store.BucketStore.Create.
func (s *PostgresBucketStore) Create(ctx context.Context, bucket *domain.Bucket) error {
	if err := bucket.Validate(); err != nil {
		return err
	}

	query, args, err := psql.Insert("buckets").
		Columns("name", "color", "created_at").
		Values(bucket.Name, bucket.Color, bucket.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert bucket: %w", err)
	}

	if err := s.db.GetContext(ctx, &bucket.ID, query, args...); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create bucket",
			slog.String("name", bucket.Name),
			slog.String("error", err.Error()))
		return store.NewStoreError("bucket", "create", "failed to insert bucket", MapError(err))
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("bucket created",
		slog.Int64("bucket_id", bucket.ID),
		slog.String("name", bucket.Name))
	return nil
}

// GetByID implements store.BucketStore.GetByID.
func (s *PostgresBucketStore) GetByID(ctx context.Context, id int64) (*domain.Bucket, error) {
	query, args, err := psql.Select(bucketColumns...).From("buckets").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select bucket: %w", err)
	}

	var row bucketRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBucketNotFound
		}
		return nil, store.NewStoreError("bucket", "get", "failed to query bucket", MapError(err))
	}
	return row.toDomain(), nil
}

// Update implements store.BucketStore.Update.
func (s *PostgresBucketStore) Update(ctx context.Context, bucket *domain.Bucket) error {
	if err := bucket.Validate(); err != nil {
		return err
	}

	query, args, err := psql.Update("buckets").
		SetMap(map[string]any{"name": bucket.Name, "color": bucket.Color}).
		Where(squirrel.Eq{"id": bucket.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update bucket: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return store.NewStoreError("bucket", "update", "failed to update bucket", MapError(err))
	}
	return checkRowsAffected(result, store.ErrBucketNotFound)
}

// List implements store.BucketStore.List.
func (s *PostgresBucketStore) List(ctx context.Context) ([]*domain.Bucket, error) {
	return s.list(ctx, "id")
}

// ListByName implements store.BucketStore.ListByName.
func (s *PostgresBucketStore) ListByName(ctx context.Context) ([]*domain.Bucket, error) {
	return s.list(ctx, "name", "id")
}

func (s *PostgresBucketStore) list(ctx context.Context, orderBy ...string) ([]*domain.Bucket, error) {
	query, args, err := psql.Select(bucketColumns...).From("buckets").OrderBy(orderBy...).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list buckets: %w", err)
	}

	var rows []bucketRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, store.NewStoreError("bucket", "list", "failed to list buckets", MapError(err))
	}

	buckets := make([]*domain.Bucket, 0, len(rows))
	for _, r := range rows {
		buckets = append(buckets, r.toDomain())
	}
	return buckets, nil
}

// Count implements store.BucketStore.Count.
func (s *PostgresBucketStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM buckets"); err != nil {
		return 0, store.NewStoreError("bucket", "count", "failed to count buckets", MapError(err))
	}
	return n, nil
}
