// Package errs wraps cockroachdb/errors so the rest of the code never
// imports it directly.
package errs

import (
	"fmt"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches markErr as a sentinel: errors.Is on the result reports true
// for markErr and for everything already in err's chain. The message stays
// the cause's message.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &marked{cause: cr.Mark(err, markErr), mark: markErr}
}

// marked exposes the mark through the Is hook the standard library checks.
// cockroachdb's own mark lives on the cause, so cr.Is keeps working too, but
// stdlib errors.Is only walks Unwrap chains and would never see it.
type marked struct {
	cause error
	mark  error
}

func (m *marked) Error() string { return m.cause.Error() }

func (m *marked) Unwrap() error { return m.cause }

func (m *marked) Is(target error) bool { return target == m.mark }

func (m *marked) Format(s fmt.State, verb rune) { cr.FormatError(m, s, verb) }
