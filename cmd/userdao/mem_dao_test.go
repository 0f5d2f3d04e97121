package main

import (
	"context"
	"fmt"

	"github.com/exparity/userdao/internal/model"
	"github.com/exparity/userdao/internal/store"
)

// memDAO is an in-memory dao.UserDAO that stores copies of what it is given.
type memDAO struct {
	users  map[int64]*model.User
	nextID int64

	// mutate, when set, is applied to every loaded copy.
	mutate func(*model.User)
	// sameInstance makes GetByID return the saved pointer.
	sameInstance bool
	saved        map[int64]*model.User
}

func newMemDAO() *memDAO {
	return &memDAO{users: make(map[int64]*model.User), saved: make(map[int64]*model.User)}
}

func copyUser(u *model.User) *model.User {
	cp := *u
	cp.Comments = make([]*model.Comment, 0, len(u.Comments))
	for _, c := range u.Comments {
		cc := *c
		cp.Comments = append(cp.Comments, &cc)
	}
	return &cp
}

func (m *memDAO) Save(_ context.Context, u *model.User) (*model.User, error) {
	if u == nil {
		return nil, store.ErrNilUser
	}
	m.nextID++
	u.ID = m.nextID
	for i, c := range u.Comments {
		c.ID = m.nextID*100 + int64(i)
	}
	m.users[u.ID] = copyUser(u)
	m.saved[u.ID] = u
	return u, nil
}

func (m *memDAO) GetByID(_ context.Context, id int64) (*model.User, error) {
	if m.sameInstance {
		if u, ok := m.saved[id]; ok {
			return u, nil
		}
	}
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("get user %d: %w", id, store.ErrNotFound)
	}
	cp := copyUser(u)
	if m.mutate != nil {
		m.mutate(cp)
	}
	return cp, nil
}
