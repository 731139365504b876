package application

import (
	"errors"
	"fmt"

	repo "github.com/oksasatya/votiy-api/internal/domain/repository"
)

// ErrorKind tells the transport layer which status to answer with.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is returned by every service method that fails.
type Error struct {
	Kind    ErrorKind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid email or password"}
	ErrWrongPassword      = &Error{Kind: KindUnauthorized, Message: "Current password is incorrect"}
	ErrEmailTaken         = &Error{Kind: KindConflict, Message: "User already exists with this email"}
	ErrAlreadyVoted       = &Error{Kind: KindConflict, Message: "User has already voted on this poll"}
	ErrNotPollOwner       = &Error{Kind: KindForbidden, Message: "You can only modify your own polls"}
	ErrNotAccountOwner    = &Error{Kind: KindForbidden, Message: "You can only modify your own account"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrPollNotFound       = &Error{Kind: KindNotFound, Message: "Poll not found"}
	ErrOptionNotFound     = &Error{Kind: KindNotFound, Message: "Poll option not found"}
	ErrVoteNotFound       = &Error{Kind: KindNotFound, Message: "Poll vote not found"}
)

func validationError(msg string, details any) *Error {
	return &Error{Kind: KindValidation, Message: msg, Details: details}
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// fromStore maps a gateway failure to an application error. notFound is
// returned for missing rows; internal failures keep the store's message.
func fromStore(err error, notFound *Error) error {
	if err == nil {
		return nil
	}
	var re *repo.Error
	if !errors.As(err, &re) {
		return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
	}
	switch re.Kind {
	case repo.KindNotFound:
		if notFound != nil {
			return notFound
		}
		return &Error{Kind: KindNotFound, Message: re.Message, Err: err}
	case repo.KindConflict:
		return &Error{Kind: KindConflict, Message: re.Message, Err: err}
	case repo.KindInvalid:
		return &Error{Kind: KindValidation, Message: re.Message, Err: err}
	default:
		return &Error{Kind: KindInternal, Message: re.Message, Err: err}
	}
}
