package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/exparity/userdao/internal/model"
	"github.com/exparity/userdao/internal/store"
)

// userColumns is the column list used for SELECT statements on the users table.
const userColumns = `id, create_ts, username, first_name, surname`

// commentColumns is the column list used for SELECT statements on the user_comments table.
const commentColumns = `id, posted_at, title, text`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateUser(ctx context.Context, db executor, u *model.User) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO users (create_ts, username, first_name, surname)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		nullTime(u.CreateTs),
		u.Username,
		u.FirstName,
		u.Surname,
	).Scan(&u.ID)
}

func queryGetUser(ctx context.Context, db executor, id int64) (*model.User, error) {
	row := db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	// Comments are always fetched with the user.
	comments, err := queryGetComments(ctx, db, id)
	if err != nil {
		return nil, err
	}
	u.Comments = comments

	return u, nil
}

func queryListUsers(ctx context.Context, db executor) ([]*model.User, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	if len(users) == 0 {
		return users, nil
	}

	// Fetch all comments in one query (not per-user N+1).
	commentRows, err := db.QueryContext(ctx, `
		SELECT user_id, `+commentColumns+`
		FROM user_comments
		ORDER BY user_id ASC, position ASC`)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer commentRows.Close()

	byUser := make(map[int64][]*model.Comment)
	for commentRows.Next() {
		userID, c, err := scanCommentWithOwner(commentRows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		byUser[userID] = append(byUser[userID], c)
	}
	if err := commentRows.Err(); err != nil {
		return nil, fmt.Errorf("comment rows: %w", err)
	}

	for _, u := range users {
		if comments, ok := byUser[u.ID]; ok {
			u.Comments = comments
		}
	}

	return users, nil
}

func queryAddComment(ctx context.Context, db executor, userID int64, position int, c *model.Comment) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO user_comments (user_id, position, posted_at, title, text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		userID, position, nullTime(c.Timestamp), c.Title, c.Text,
	).Scan(&c.ID)
}

func queryGetComments(ctx context.Context, db executor, userID int64) ([]*model.Comment, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+commentColumns+`
		FROM user_comments
		WHERE user_id = $1
		ORDER BY position ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}
