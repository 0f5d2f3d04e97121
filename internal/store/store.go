package store

import (
	"context"

	"github.com/exparity/userdao/internal/model"
)

// Store defines the persistence interface for users and their comments.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error) // includes comments
	ListUsers(ctx context.Context) ([]*model.User, error)       // ascending id, includes comments

	// Comments
	AddComment(ctx context.Context, userID int64, position int, comment *model.Comment) error
	GetComments(ctx context.Context, userID int64) ([]*model.Comment, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error
	RunInReadTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
