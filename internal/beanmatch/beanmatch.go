// Package beanmatch compares object graphs field by field.
//
// Comparison walks every exported field with go-cmp; per-type overrides are
// injected as options. The default options compare time.Time values with a
// tolerance so that values round-tripped through a database still match, and
// treat nil and empty collections alike.
package beanmatch

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// DefaultTimeTolerance covers PostgreSQL's microsecond timestamp precision.
const DefaultTimeTolerance = time.Millisecond

// Option customizes a comparison.
type Option = cmp.Option

// Default returns the options used when Diff is called without any.
func Default() []Option {
	return Options(DefaultTimeTolerance)
}

// Options returns the default option set with times compared within margin.
func Options(margin time.Duration) []Option {
	return []Option{TimeTolerance(margin), cmpopts.EquateEmpty()}
}

// TimeTolerance treats two non-zero times as equal when they are within
// margin of each other, regardless of location.
func TimeTolerance(margin time.Duration) Option {
	return cmpopts.EquateApproxTime(margin)
}

// Comparer overrides equality for every value of type T.
func Comparer[T any](equal func(a, b T) bool) Option {
	return cmp.Comparer(equal)
}

// IgnoreFields skips the named fields of the struct type of typ.
func IgnoreFields(typ any, names ...string) Option {
	return cmpopts.IgnoreFields(typ, names...)
}

// Diff returns a human readable report of the differences between want and
// got, or "" when they are the same bean. With no options, Default is used.
func Diff(want, got any, opts ...Option) string {
	if len(opts) == 0 {
		opts = Default()
	}
	return cmp.Diff(want, got, opts...)
}

// Equal reports whether want and got are the same bean.
func Equal(want, got any, opts ...Option) bool {
	return Diff(want, got, opts...) == ""
}

// SameInstance reports whether a and b point at the same object.
func SameInstance[T any](a, b *T) bool {
	return a == b
}

// AssertSameBean fails t when got is not the same bean as want.
func AssertSameBean(t testing.TB, want, got any, opts ...Option) {
	t.Helper()
	if diff := Diff(want, got, opts...); diff != "" {
		t.Errorf("not the same bean (-want +got):\n%s", diff)
	}
}
