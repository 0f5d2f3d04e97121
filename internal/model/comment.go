package model

import "time"

// Comment is a comment owned by exactly one User.
type Comment struct {
	ID        int64     `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
}
