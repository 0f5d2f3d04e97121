// Package fixture builds randomized users for round-trip tests.
//
// Every scalar field is populated; identifiers are left at zero because the
// store assigns them.
package fixture

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/exparity/userdao/internal/model"
)

// DefaultMaxComments bounds the number of comments RandomUser generates.
const DefaultMaxComments = 5

var (
	earliest = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	latest   = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
)

// New returns a faker seeded with seed, or with a random seed when seed is 0.
func New(seed int64) *gofakeit.Faker {
	return gofakeit.New(seed)
}

// RandomUser returns an unsaved user with between 0 and DefaultMaxComments comments.
func RandomUser(f *gofakeit.Faker) *model.User {
	return RandomUserWithComments(f, f.IntRange(0, DefaultMaxComments))
}

// RandomUserWithComments returns an unsaved user with exactly n comments.
// Comments is never nil.
func RandomUserWithComments(f *gofakeit.Faker, n int) *model.User {
	u := &model.User{
		CreateTs:  randomTime(f),
		Username:  f.Username(),
		FirstName: f.FirstName(),
		Surname:   f.LastName(),
		Comments:  make([]*model.Comment, 0, max(n, 0)),
	}
	for range n {
		u.Comments = append(u.Comments, RandomComment(f))
	}
	return u
}

// RandomComment returns an unsaved comment.
func RandomComment(f *gofakeit.Faker) *model.Comment {
	return &model.Comment{
		Timestamp: randomTime(f),
		Title:     f.Sentence(f.IntRange(1, 6)),
		Text:      f.Paragraph(1, f.IntRange(1, 4), 12, " "),
	}
}

// randomTime keeps full nanosecond precision so comparisons have to
// tolerate the store truncating it.
func randomTime(f *gofakeit.Faker) time.Time {
	return f.DateRange(earliest, latest).UTC()
}
