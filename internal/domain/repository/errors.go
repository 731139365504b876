package repository

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure reported by the data store.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindConflict
	KindInvalid
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	default:
		return "internal"
	}
}

// Error is the single error shape every repository implementation returns.
// RawCode carries the store's own code (a SQLSTATE for Postgres) when there is one.
type Error struct {
	Kind    ErrorKind
	Message string
	RawCode string
	Err     error
}

func (e *Error) Error() string {
	if e.RawCode != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.RawCode)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on kind using the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

var (
	ErrNotFound = &Error{Kind: KindNotFound}
	ErrConflict = &Error{Kind: KindConflict}
	ErrInvalid  = &Error{Kind: KindInvalid}
)

// NotFound builds a not-found error for the given entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Conflict builds a uniqueness violation error.
func Conflict(msg, rawCode string) *Error {
	return &Error{Kind: KindConflict, Message: msg, RawCode: rawCode}
}

// KindOf returns the kind of err, KindInternal when err is not a repository error.
func KindOf(err error) ErrorKind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindInternal
}
