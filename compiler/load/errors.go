package load

import (
	"errors"
	"fmt"
)

// ErrLoadFailed is the sentinel every loader failure wraps, so callers
// can classify loader errors without matching on messages.
var ErrLoadFailed = errors.New("load: schema load failed")

// failed wraps an error with ErrLoadFailed once; errors already
// carrying the sentinel pass through unchanged.
func failed(err error) error {
	if err == nil || errors.Is(err, ErrLoadFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrLoadFailed, err)
}
