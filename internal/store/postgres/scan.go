package postgres

import (
	"database/sql"
	"time"

	"github.com/exparity/userdao/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanUser scans a single row into a model.User.
// The row must contain columns in the order defined by userColumns.
// Comments start out empty, never nil.
func scanUser(row scannable) (*model.User, error) {
	var u model.User
	var createTs sql.NullTime

	err := row.Scan(
		&u.ID,
		&createTs,
		&u.Username,
		&u.FirstName,
		&u.Surname,
	)
	if err != nil {
		return nil, err
	}

	if createTs.Valid {
		u.CreateTs = createTs.Time
	}
	u.Comments = []*model.Comment{}

	return &u, nil
}

// scanUsers scans multiple rows into a slice of model.User pointers.
func scanUsers(rows *sql.Rows) ([]*model.User, error) {
	users := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// scanComment scans a single row into a model.Comment.
// The row must contain columns in the order defined by commentColumns.
func scanComment(row scannable) (*model.Comment, error) {
	var c model.Comment
	var postedAt sql.NullTime
	err := row.Scan(
		&c.ID,
		&postedAt,
		&c.Title,
		&c.Text,
	)
	if err != nil {
		return nil, err
	}
	if postedAt.Valid {
		c.Timestamp = postedAt.Time
	}
	return &c, nil
}

// scanCommentWithOwner scans a row that has a leading user_id column
// followed by the standard comment columns. Used by queryListUsers.
func scanCommentWithOwner(row scannable) (int64, *model.Comment, error) {
	var userID int64
	var c model.Comment
	var postedAt sql.NullTime
	err := row.Scan(
		&userID,
		&c.ID,
		&postedAt,
		&c.Title,
		&c.Text,
	)
	if err != nil {
		return 0, nil, err
	}
	if postedAt.Valid {
		c.Timestamp = postedAt.Time
	}
	return userID, &c, nil
}

// scanComments scans multiple rows into a slice of model.Comment pointers.
// An empty result is an empty slice, not nil.
func scanComments(rows *sql.Rows) ([]*model.Comment, error) {
	comments := []*model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// nullTime converts a time.Time to a sql.NullTime; the zero time is null.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
