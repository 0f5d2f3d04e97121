package dao

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"

	"github.com/exparity/userdao/internal/model"
	"github.com/exparity/userdao/internal/store"
)

// mockStore is a minimal in-memory store for gateway tests. It copies users
// and comments on the way in and out so callers never share instances with
// the stored state.
type mockStore struct {
	users    map[int64]*model.User
	comments map[int64][]*model.Comment
	nextUser int64
	nextCmt  int64

	// failCommentAt makes AddComment fail for the comment at this position.
	failCommentAt int
	failErr       error

	txCount     int
	readTxCount int
	closed      bool
}

func newMockStore() *mockStore {
	return &mockStore{
		users:         make(map[int64]*model.User),
		comments:      make(map[int64][]*model.Comment),
		failCommentAt: -1,
	}
}

var _ store.Store = (*mockStore)(nil)

func (m *mockStore) CreateUser(_ context.Context, u *model.User) error {
	m.nextUser++
	u.ID = m.nextUser
	cp := *u
	cp.Comments = nil
	m.users[u.ID] = &cp
	return nil
}

func (m *mockStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	comments, _ := m.GetComments(ctx, id)
	cp.Comments = comments
	return &cp, nil
}

func (m *mockStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		u, _ := m.GetUser(ctx, id)
		result = append(result, u)
	}
	return result, nil
}

func (m *mockStore) AddComment(_ context.Context, userID int64, position int, c *model.Comment) error {
	if position == m.failCommentAt {
		return m.failErr
	}
	if _, ok := m.users[userID]; !ok {
		return &store.SaveError{Kind: store.KindConstraint, Err: errors.New("unknown user")}
	}
	m.nextCmt++
	c.ID = m.nextCmt
	cp := *c
	m.comments[userID] = append(m.comments[userID], &cp)
	return nil
}

func (m *mockStore) GetComments(_ context.Context, userID int64) ([]*model.Comment, error) {
	result := make([]*model.Comment, 0, len(m.comments[userID]))
	for _, c := range m.comments[userID] {
		cp := *c
		result = append(result, &cp)
	}
	return result, nil
}

// RunInTransaction restores the previous state when fn fails.
func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	m.txCount++
	users := maps.Clone(m.users)
	comments := make(map[int64][]*model.Comment, len(m.comments))
	for id, cs := range m.comments {
		comments[id] = append([]*model.Comment(nil), cs...)
	}
	nextUser, nextCmt := m.nextUser, m.nextCmt

	if err := fn(m); err != nil {
		m.users, m.comments = users, comments
		m.nextUser, m.nextCmt = nextUser, nextCmt
		return err
	}
	return nil
}

func (m *mockStore) RunInReadTransaction(_ context.Context, fn func(tx store.Store) error) error {
	m.readTxCount++
	return fn(m)
}

func (m *mockStore) Close() error {
	m.closed = true
	return nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []any
	err    error
	closed bool
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return nil
}
