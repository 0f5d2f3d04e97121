// Package model holds the user and comment entities.
package model

import "time"

// User is a persisted user and the comments it owns.
// ID is zero until the user has been saved.
type User struct {
	ID        int64      `json:"id,omitempty"`
	CreateTs  time.Time  `json:"create_ts"`
	Username  string     `json:"username"`
	FirstName string     `json:"first_name"`
	Surname   string     `json:"surname"`
	Comments  []*Comment `json:"comments"`
}
