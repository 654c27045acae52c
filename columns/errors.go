package columns

import (
	"errors"
	"fmt"
	"strings"
)

// Kinds of FormatError. Use errors.Is against these.
var (
	ErrInsufficientColumns = errors.New("insufficient columns")
	ErrAmbiguousColumns    = errors.New("ambiguous columns")
	ErrConflictingColumns  = errors.New("conflicting columns")
	ErrMissingColumns      = errors.New("declared columns are missing")
)

// FormatError reports that a set of column declarations cannot be used to
// harmonize a file. It is always fatal to a run.
type FormatError struct {
	Kind   error
	Roles  []Role
	Detail string
}

func (e *FormatError) Error() string {
	names := make([]string, 0, len(e.Roles))
	for _, r := range e.Roles {
		names = append(names, r.String())
	}

	msg := e.Kind.Error()
	if len(names) > 0 {
		msg = fmt.Sprintf("%s [%s]", msg, strings.Join(names, ", "))
	}
	if e.Detail != "" {
		msg = msg + ": " + e.Detail
	}

	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Kind
}

// IsFormatError reports whether err is, or wraps, a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
