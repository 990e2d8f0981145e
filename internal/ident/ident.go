package ident

import (
	"fmt"

	"github.com/gofrs/uuid"
)

// New returns an identifier of the form "<prefix>-<8 hex chars>",
// e.g. "OR-3fa85f64". Uniqueness comes from a random UUID.
func New(prefix string) string {
	u := uuid.Must(uuid.NewV4())
	return fmt.Sprintf("%s-%x", prefix, u.Bytes()[:4])
}
