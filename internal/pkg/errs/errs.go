package errs

import (
	"fmt"
	"strings"

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

// Mark attaches markErr so that errors.Is(err, markErr) holds — for the
// standard library's errors.Is, not just cockroachdb's — while the
// original cause keeps its message and stack for logging.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &marked{cause: err, mark: markErr}
}

type marked struct {
	cause error
	mark  error
}

func (m *marked) Error() string { return m.cause.Error() }

// Unwrap exposes both branches, so errors.Is finds the mark as well as
// anything wrapped inside the cause.
func (m *marked) Unwrap() []error { return []error{m.cause, m.mark} }

// Format delegates verbose formatting to the cause so %+v still prints
// the cockroachdb stack trace.
func (m *marked) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%+v\nmarked as: %v", m.cause, m.mark)
		return
	}
	fmt.Fprint(s, m.Error())
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
