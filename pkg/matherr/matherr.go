// Package matherr provides the structured error type returned by the region
// packages. An error carries a machine-checkable Kind, a chain of localizable
// messages built from patterns plus arguments, and free-form key/value
// context attached by callers.
package matherr

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSeparator joins chained messages in Error.
const DefaultSeparator = ": "

// Kind classifies an error.
type Kind int

const (
	KindInternal          Kind = iota // broken invariant
	KindInvalidArgument               // caller supplied unusable input
	KindDimensionMismatch             // operands live in different spaces
	KindUndefinedMetric               // metric query has no defined value
	KindEvaluation                    // region expression failed to evaluate
)

func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindInvalidArgument:
		return "invalid argument"
	case KindDimensionMismatch:
		return "dimension mismatch"
	case KindUndefinedMetric:
		return "undefined metric"
	case KindEvaluation:
		return "evaluation"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrInternal          = &Error{kind: KindInternal}
	ErrInvalidArgument   = &Error{kind: KindInvalidArgument}
	ErrDimensionMismatch = &Error{kind: KindDimensionMismatch}
	ErrUndefinedMetric   = &Error{kind: KindUndefinedMetric}
	ErrEvaluation        = &Error{kind: KindEvaluation}
)

type part struct {
	pattern Pattern
	args    []any
}

// Error is a chained, localizable error.
type Error struct {
	kind    Kind
	parts   []part
	keys    []string
	context map[string]any
	cause   error
}

// New returns an error of the given kind whose first message is built from
// pattern and args.
func New(kind Kind, pattern Pattern, args ...any) *Error {
	e := &Error{kind: kind}
	return e.AddMessage(pattern, args...)
}

// Wrap is like New but records cause for errors.Unwrap.
func Wrap(cause error, kind Kind, pattern Pattern, args ...any) *Error {
	e := New(kind, pattern, args...)
	e.cause = cause
	return e
}

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// AddMessage appends a message to the chain and returns e.
func (e *Error) AddMessage(pattern Pattern, args ...any) *Error {
	e.parts = append(e.parts, part{pattern: pattern, args: args})
	return e
}

// SetContext attaches a value under key, replacing any previous value.
func (e *Error) SetContext(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	if _, ok := e.context[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.context[key] = value
	return e
}

// Context returns the value stored under key, or nil.
func (e *Error) Context(key string) any {
	return e.context[key]
}

// ContextKeys returns the context keys in insertion order.
func (e *Error) ContextKeys() []string {
	keys := make([]string, len(e.keys))
	copy(keys, e.keys)
	return keys
}

// Message renders the message chain in the given language, joined by sep.
func (e *Error) Message(tag language.Tag, sep string) string {
	p := message.NewPrinter(tag)
	msgs := make([]string, 0, len(e.parts))
	for _, pt := range e.parts {
		msgs = append(msgs, p.Sprintf(string(pt.pattern), pt.args...))
	}
	return strings.Join(msgs, sep)
}

func (e *Error) Error() string {
	msg := e.Message(language.AmericanEnglish, DefaultSeparator)
	if msg == "" {
		return e.kind.String()
	}
	return msg
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.kind == e.kind
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}
