package mocks

import (
	"sync"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
)

// Memory is an in-memory database shared by the mock stores.
type Memory struct {
	mu sync.Mutex

	users   map[int64]*domain.User
	buckets map[int64]*domain.Bucket
	tasks   map[int64]*domain.Task

	nextUserID   int64
	nextBucketID int64
	nextTaskID   int64
}

// NewMemory creates an empty database.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[int64]*domain.User),
		buckets: make(map[int64]*domain.Bucket),
		tasks:   make(map[int64]*domain.Task),
	}
}

type snapshot struct {
	users                                map[int64]*domain.User
	buckets                              map[int64]*domain.Bucket
	tasks                                map[int64]*domain.Task
	nextUserID, nextBucketID, nextTaskID int64
}

func (m *Memory) snapshot() snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := snapshot{
		users:        make(map[int64]*domain.User, len(m.users)),
		buckets:      make(map[int64]*domain.Bucket, len(m.buckets)),
		tasks:        make(map[int64]*domain.Task, len(m.tasks)),
		nextUserID:   m.nextUserID,
		nextBucketID: m.nextBucketID,
		nextTaskID:   m.nextTaskID,
	}
	for id, u := range m.users {
		s.users[id] = copyUser(u)
	}
	for id, b := range m.buckets {
		s.buckets[id] = copyBucket(b)
	}
	for id, t := range m.tasks {
		s.tasks[id] = copyTask(t)
	}
	return s
}

func (m *Memory) restore(s snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users, m.buckets, m.tasks = s.users, s.buckets, s.tasks
	m.nextUserID, m.nextBucketID, m.nextTaskID = s.nextUserID, s.nextBucketID, s.nextTaskID
}

// AddUser inserts a user directly, bypassing validation. The stored hash is
// "hashed:"+password, matching MockPasswordHasher.
func (m *Memory) AddUser(username, password string, role domain.Role) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextUserID++
	u := &domain.User{
		ID:             m.nextUserID,
		Username:       username,
		HashedPassword: FakeHashPrefix + password,
		Role:           role,
	}
	m.users[u.ID] = u
	return copyUser(u)
}

// AddBucket inserts a bucket directly.
func (m *Memory) AddBucket(name, color string) *domain.Bucket {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextBucketID++
	b := &domain.Bucket{ID: m.nextBucketID, Name: name, Color: color, CreatedAt: time.Now().UTC()}
	m.buckets[b.ID] = b
	return copyBucket(b)
}

// AddTask inserts a task directly, assigning an ID. A zero CreatedAt is
// replaced by a timestamp that increases with every insert.
func (m *Memory) AddTask(t domain.Task) *domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertTaskLocked(&t)
	return copyTask(&t)
}

func (m *Memory) insertTaskLocked(t *domain.Task) {
	m.nextTaskID++
	t.ID = m.nextTaskID
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(t.ID) * time.Second)
	}
	m.tasks[t.ID] = copyTask(t)
}

// Task returns a copy of the stored task, or nil.
func (m *Memory) Task(id int64) *domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.tasks[id]; ok {
		return copyTask(t)
	}
	return nil
}

// User returns a copy of the stored user, or nil.
func (m *Memory) User(id int64) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[id]; ok {
		return copyUser(u)
	}
	return nil
}

// TaskCount returns the number of stored tasks.
func (m *Memory) TaskCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func copyBucket(b *domain.Bucket) *domain.Bucket {
	c := *b
	return &c
}

func copyTask(t *domain.Task) *domain.Task {
	c := *t
	if t.AssigneeID != nil {
		v := *t.AssigneeID
		c.AssigneeID = &v
	}
	if t.BucketID != nil {
		v := *t.BucketID
		c.BucketID = &v
	}
	if t.DueDate != nil {
		v := *t.DueDate
		c.DueDate = &v
	}
	return &c
}
