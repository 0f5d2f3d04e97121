// Package dao is the persistence gateway for users and their comments.
package dao

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/exparity/userdao/internal/config"
	"github.com/exparity/userdao/internal/events"
	"github.com/exparity/userdao/internal/idgen"
	"github.com/exparity/userdao/internal/model"
	"github.com/exparity/userdao/internal/store"
	"github.com/exparity/userdao/internal/store/postgres"
)

// UserDAO saves and loads users together with their comments.
type UserDAO interface {
	Save(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Gateway implements UserDAO on top of a store.Store. Every call runs in
// exactly one transaction.
type Gateway struct {
	store     store.Store
	publisher events.Publisher
	logger    *slog.Logger
}

var _ UserDAO = (*Gateway)(nil)

// Option configures a Gateway.
type Option func(*Gateway)

// WithPublisher sets the publisher notified after each committed save.
func WithPublisher(p events.Publisher) Option {
	return func(g *Gateway) { g.publisher = p }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// New returns a gateway over s. The gateway takes ownership of s and of the
// publisher; both are released by Close.
func New(s store.Store, opts ...Option) *Gateway {
	g := newGateway(s, opts)
	if g.publisher == nil {
		g.publisher = events.NoopPublisher{}
	}
	return g
}

func newGateway(s store.Store, opts []Option) *Gateway {
	g := &Gateway{store: s}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Open loads the configuration at path (config.DefaultPath when empty) and
// connects a gateway to the database it names.
func Open(ctx context.Context, path string, opts ...Option) (*Gateway, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return OpenConfig(ctx, cfg, opts...)
}

// OpenConfig connects a gateway using an already loaded configuration.
// Events go to NATS when cfg.NATSURL is set and no publisher option was given.
func OpenConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Gateway, error) {
	s, err := postgres.New(ctx, cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime.Duration,
	})
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}

	g := newGateway(s, opts)
	if g.publisher == nil {
		if cfg.NATSURL == "" {
			g.publisher = events.NoopPublisher{}
		} else {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				s.Close()
				return nil, fmt.Errorf("connect nats: %w", err)
			}
			g.publisher = pub
		}
	}
	return g, nil
}

// Save inserts user and its comments in one transaction and returns the same
// pointer with ids assigned. On failure the transaction is rolled back, the
// ids are restored to their values before the call and the error is a
// *store.SaveError.
func (g *Gateway) Save(ctx context.Context, user *model.User) (*model.User, error) {
	if user == nil {
		return nil, store.ErrNilUser
	}
	op := idgen.OperationID()
	log := g.logger.With("op", op)
	prev := snapshotIDs(user)

	err := g.store.RunInTransaction(ctx, func(tx store.Store) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		for i, c := range user.Comments {
			if c == nil {
				return fmt.Errorf("comment %d is nil", i)
			}
			if err := tx.AddComment(ctx, user.ID, i, c); err != nil {
				return fmt.Errorf("insert comment %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		prev.restore(user)
		var saveErr *store.SaveError
		if !errors.As(err, &saveErr) {
			saveErr = &store.SaveError{Kind: store.KindUnknown, Err: err}
		}
		log.Error("save failed", "kind", saveErr.Kind.String(), "err", saveErr.Err)
		return user, saveErr
	}

	log.Info("user saved", "user_id", user.ID, "comments", len(user.Comments))
	if err := g.publisher.Publish(ctx, events.TopicUserSaved, events.UserSaved{
		Op:   op,
		User: user,
	}); err != nil {
		log.Warn("failed to publish event", "topic", events.TopicUserSaved, "user_id", user.ID, "err", err)
	}
	return user, nil
}

// GetByID loads the user with the given id and all of its comments inside a
// read-only transaction. Unknown ids yield an error wrapping store.ErrNotFound.
func (g *Gateway) GetByID(ctx context.Context, id int64) (*model.User, error) {
	log := g.logger.With("op", idgen.OperationID())

	var user *model.User
	err := g.store.RunInReadTransaction(ctx, func(tx store.Store) error {
		u, err := tx.GetUser(ctx, id)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("user not found", "user_id", id)
		} else {
			log.Error("get user failed", "user_id", id, "err", err)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	log.Debug("user loaded", "user_id", id, "comments", len(user.Comments))
	return user, nil
}

// ListUsers loads every user with comments, ordered by id.
func (g *Gateway) ListUsers(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := g.store.RunInReadTransaction(ctx, func(tx store.Store) error {
		var err error
		users, err = tx.ListUsers(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Close releases the publisher and the store.
func (g *Gateway) Close() error {
	return errors.Join(g.publisher.Close(), g.store.Close())
}

// savedIDs remembers the ids a user graph carried before a save attempt.
type savedIDs struct {
	user     int64
	comments []int64
}

func snapshotIDs(u *model.User) savedIDs {
	s := savedIDs{user: u.ID, comments: make([]int64, len(u.Comments))}
	for i, c := range u.Comments {
		if c != nil {
			s.comments[i] = c.ID
		}
	}
	return s
}

func (s savedIDs) restore(u *model.User) {
	u.ID = s.user
	for i, c := range u.Comments {
		if c != nil && i < len(s.comments) {
			c.ID = s.comments[i]
		}
	}
}
