package mocks

import (
	"context"
	"sort"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
)

// MockBucketStore implements store.BucketStore over a Memory.
type MockBucketStore struct {
	CreateFn     func(ctx context.Context, bucket *domain.Bucket) error
	GetByIDFn    func(ctx context.Context, id int64) (*domain.Bucket, error)
	UpdateFn     func(ctx context.Context, bucket *domain.Bucket) error
	ListFn       func(ctx context.Context) ([]*domain.Bucket, error)
	ListByNameFn func(ctx context.Context) ([]*domain.Bucket, error)
	CountFn      func(ctx context.Context) (int, error)

	mem *Memory
}

// NewMockBucketStore creates a bucket store backed by mem.
func NewMockBucketStore(mem *Memory) *MockBucketStore {
	return &MockBucketStore{mem: mem}
}

var _ store.BucketStore = (*MockBucketStore)(nil)

// Create implements store.BucketStore.
func (m *MockBucketStore) Create(ctx context.Context, bucket *domain.Bucket) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, bucket)
	}
	if err := bucket.Validate(); err != nil {
		return err
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	m.mem.nextBucketID++
	bucket.ID = m.mem.nextBucketID
	m.mem.buckets[bucket.ID] = copyBucket(bucket)
	return nil
}

// GetByID implements store.BucketStore.
func (m *MockBucketStore) GetByID(ctx context.Context, id int64) (*domain.Bucket, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	b, ok := m.mem.buckets[id]
	if !ok {
		return nil, store.ErrBucketNotFound
	}
	return copyBucket(b), nil
}

// Update implements store.BucketStore.
func (m *MockBucketStore) Update(ctx context.Context, bucket *domain.Bucket) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, bucket)
	}
	if err := bucket.Validate(); err != nil {
		return err
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	b, ok := m.mem.buckets[bucket.ID]
	if !ok {
		return store.ErrBucketNotFound
	}
	b.Name, b.Color = bucket.Name, bucket.Color
	return nil
}

// List implements store.BucketStore.
func (m *MockBucketStore) List(ctx context.Context) ([]*domain.Bucket, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.sorted(func(a, b *domain.Bucket) bool { return a.ID < b.ID }), nil
}

// ListByName implements store.BucketStore.
func (m *MockBucketStore) ListByName(ctx context.Context) ([]*domain.Bucket, error) {
	if m.ListByNameFn != nil {
		return m.ListByNameFn(ctx)
	}
	return m.sorted(func(a, b *domain.Bucket) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	}), nil
}

func (m *MockBucketStore) sorted(less func(a, b *domain.Bucket) bool) []*domain.Bucket {
	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	out := make([]*domain.Bucket, 0, len(m.mem.buckets))
	for _, b := range m.mem.buckets {
		out = append(out, copyBucket(b))
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Count implements store.BucketStore.
func (m *MockBucketStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()
	return len(m.mem.buckets), nil
}
