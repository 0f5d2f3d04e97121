// Package export writes users as JSONL snapshots and ships them to destinations.
package export

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/exparity/userdao/internal/model"
)

// FormatVersion is written into every header record.
const FormatVersion = "1"

// Record types.
const (
	TypeHeader = "header"
	TypeUser   = "user"
)

// Source lists every stored user with its comments.
type Source interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version   string    `json:"version"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	UserCount int       `json:"user_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ExportJSONL writes a header followed by one record per user, ordered by id.
// Comments are embedded in their user record.
func ExportJSONL(ctx context.Context, src Source, w io.Writer) error {
	users, err := src.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:   FormatVersion,
		Type:      TypeHeader,
		Timestamp: time.Now().UTC(),
		UserCount: len(users),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, u := range users {
		data, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("marshal user %d: %w", u.ID, err)
		}
		if err := enc.Encode(record{Type: TypeUser, Data: data}); err != nil {
			return fmt.Errorf("encode user %d: %w", u.ID, err)
		}
	}
	return nil
}

// ReadJSONL parses a stream written by ExportJSONL and returns its users.
// The header must come first; unknown record types are skipped.
func ReadJSONL(r io.Reader) ([]*model.User, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	users := []*model.User{}
	sawHeader := false
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		if !sawHeader {
			var h header
			if err := json.Unmarshal(raw, &h); err != nil {
				return nil, fmt.Errorf("line %d: decode header: %w", line, err)
			}
			if h.Type != TypeHeader {
				return nil, fmt.Errorf("line %d: expected header record, got %q", line, h.Type)
			}
			if h.Version != FormatVersion {
				return nil, fmt.Errorf("line %d: unsupported export version %q", line, h.Version)
			}
			sawHeader = true
			continue
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: decode record: %w", line, err)
		}
		if rec.Type != TypeUser {
			continue
		}
		var u model.User
		if err := json.Unmarshal(rec.Data, &u); err != nil {
			return nil, fmt.Errorf("line %d: decode user: %w", line, err)
		}
		if u.Comments == nil {
			u.Comments = []*model.Comment{}
		}
		users = append(users, &u)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	if !sawHeader {
		return nil, fmt.Errorf("empty export: missing header")
	}
	return users, nil
}
