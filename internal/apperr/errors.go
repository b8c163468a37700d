// Package apperr holds the sentinel errors shared by the HTTP and MCP
// surfaces.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid argument")
)

// Invalid marks err as a caller mistake. errors.Is(Invalid(err), ErrInvalid)
// holds and the message keeps err's text.
func Invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}
