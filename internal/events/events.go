package events

import (
	"context"

	"github.com/exparity/userdao/internal/model"
)

// Event topic constants
const (
	TopicUserSaved = "userdao.user.saved"

	// TopicAll matches every userdao event.
	TopicAll = "userdao.>"
)

// UserSaved is published after a save has committed.
type UserSaved struct {
	Op   string      `json:"op"`
	User *model.User `json:"user"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
