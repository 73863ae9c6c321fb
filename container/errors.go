package container

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel kinds for errors.Is checks. The concrete error types below carry
// the identifier detail; use errors.As to get at it.
var (
	// ErrNotFound marks resolution of an identifier with no recipe.
	ErrNotFound = errors.New("container: identifier not found")
	// ErrRecursion marks a recipe that depends on its own resolution.
	ErrRecursion = errors.New("container: recursive dependency")
	// ErrNilContainer is returned when an instance factory produces nil.
	ErrNilContainer = errors.New("container: factory returned nil container")
)

// NotFoundError is returned by Get and Make when neither the configuration
// nor the extension overlay declares the identifier.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "container: nothing declared for identifier " + strconv.Quote(e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// RecursiveDependencyError is returned when resolving an identifier that is
// already being resolved further up the stack. Chain holds the in-flight
// identifiers from the outermost resolution down to the repeat offender.
type RecursiveDependencyError struct {
	ID    string
	Chain []string
}

func (e *RecursiveDependencyError) Error() string {
	var b strings.Builder
	b.WriteString("container: recursive dependency: ")
	for _, id := range e.Chain {
		b.WriteString(strconv.Quote(id))
		b.WriteString(" -> ")
	}
	b.WriteString(strconv.Quote(e.ID))
	return b.String()
}

func (e *RecursiveDependencyError) Unwrap() error { return ErrRecursion }

// BuildError is returned when a recipe was found but could not produce a
// value: its factory returned an error or panicked, its shape was not
// recognized, its type name had no registered constructor, or the
// process-wide slot had no way to manufacture a default container.
type BuildError struct {
	ID    string
	Cause error

	code int
}

func newBuildError(id string, cause error) *BuildError {
	return &BuildError{ID: id, Cause: cause, code: errorCode(cause)}
}

func (e *BuildError) Error() string {
	msg := "container: build failed"
	if e.ID != "" {
		msg = "container: building " + strconv.Quote(e.ID) + " failed"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Code reports the code of the underlying failure, or zero when the cause
// chain carries none. Codes survive nested wrapping: a BuildError wrapping
// a BuildError reports the innermost cause's code.
func (e *BuildError) Code() int { return e.code }

func (e *BuildError) Unwrap() error { return e.Cause }

// WrongTypeError is returned by the generic accessors when an identifier
// resolves to a value of an unexpected type.
type WrongTypeError struct {
	ID   string
	Want string
	Got  string
}

func (e *WrongTypeError) Error() string {
	return "container: identifier " + strconv.Quote(e.ID) + " holds " + e.Got + ", not " + e.Want
}

// errorCode pulls a numeric code out of err's chain, recognizing any error
// type that exposes Code() int.
func errorCode(err error) int {
	var c interface{ Code() int }
	if errors.As(err, &c) {
		return c.Code()
	}
	return 0
}
