// Package idgen generates short operation ids that tie together the log
// lines of a single gateway call.
package idgen

import (
	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefix is prepended to every operation id.
const Prefix = "op-"

// Fallback is returned when the random source fails.
const Fallback = Prefix + "unknown"

const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	size     = 8
)

// OperationID returns a new random operation id such as "op-k3x9q0ab".
func OperationID() string {
	id, err := nanoid.Generate(alphabet, size)
	if err != nil {
		return Fallback
	}
	return Prefix + id
}
