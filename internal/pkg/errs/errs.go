package errs

import (
	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is reports whether err matches ref through its wrap chain or through a
// mark applied with Mark. Marks are invisible to the standard library's
// errors.Is, so every sentinel comparison must go through this.
func Is(err error, ref error) bool {
	return cr.Is(err, ref)
}
