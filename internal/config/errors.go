package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIO is matched by errors that come from reading the configuration file.
	ErrIO = errors.New("configuration file unreadable")
	// ErrParse is matched by errors for content that is not well-formed YAML
	// or does not fit the configuration schema.
	ErrParse = errors.New("configuration file malformed")
	// ErrValidation is matched by errors for a parsed configuration that breaks
	// a required invariant.
	ErrValidation = errors.New("invalid configuration")
	// ErrNotFound is matched by errors for a topic, image size or format key
	// that the configuration does not declare.
	ErrNotFound = errors.New("not found in configuration")
)

// Kind classifies an Error.
type Kind int

const (
	KindIO Kind = iota + 1
	KindParse
	KindValidation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindIO:
		return ErrIO
	case KindParse:
		return ErrParse
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// Error is the single error type produced by the loader and the views.
// Use errors.Is with ErrIO, ErrParse, ErrValidation or ErrNotFound to branch
// on the kind, and errors.As to reach the path and field.
type Error struct {
	Kind Kind
	// Path is the configuration file, when known.
	Path string
	// Field is the dotted YAML field for validation errors, or the
	// collection a NotFound key was looked up in ("topic", "image size").
	Field string
	// Key is the requested key for NotFound errors.
	Key string
	// Line and Column locate a parse error; zero when the parser gave none.
	Line   int
	Column int
	// Msg describes the problem.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("config: ")
	switch e.Kind {
	case KindIO:
		fmt.Fprintf(&b, "read %s", e.Path)
	case KindParse:
		fmt.Fprintf(&b, "parse %s", e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
			if e.Column > 0 {
				fmt.Fprintf(&b, ":%d", e.Column)
			}
		}
	case KindValidation:
		if e.Path != "" {
			fmt.Fprintf(&b, "%s: ", e.Path)
		}
		fmt.Fprintf(&b, "invalid %s", e.Field)
	case KindNotFound:
		fmt.Fprintf(&b, "%s %q not found", e.Field, e.Key)
	default:
		b.WriteString("error")
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func ioError(path string, err error) *Error {
	return &Error{Kind: KindIO, Path: path, Err: err}
}

func parseError(path string, line, col int, msg string) *Error {
	return &Error{Kind: KindParse, Path: path, Line: line, Column: col, Msg: msg}
}

func validationError(field, format string, a ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: fmt.Sprintf(format, a...)}
}

// NotFound returns a KindNotFound error for key in the named collection.
func NotFound(collection, key string) *Error {
	return &Error{Kind: KindNotFound, Field: collection, Key: key}
}
