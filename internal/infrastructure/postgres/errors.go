package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/votiy-api/internal/domain/repository"
)

// SQLSTATE codes the gateway distinguishes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
	codeInvalidDatetime     = "22007"
	codeNumericOutOfRange   = "22003"
)

// translate replaces driver errors with a repository.Error. entity names the
// row type for not-found messages.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	var re *repository.Error
	if errors.As(err, &re) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		e := repository.NotFound(entity)
		e.Err = err
		return e
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		out := &repository.Error{Kind: repository.KindInternal, Message: pgErr.Message, RawCode: pgErr.Code, Err: err}
		switch pgErr.Code {
		case codeUniqueViolation:
			out.Kind = repository.KindConflict
		case codeForeignKeyViolation, codeNotNullViolation, codeCheckViolation,
			codeInvalidText, codeInvalidDatetime, codeNumericOutOfRange:
			out.Kind = repository.KindInvalid
		}
		return out
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &repository.Error{Kind: repository.KindInternal, Message: "request cancelled", Err: err}
	}
	return &repository.Error{Kind: repository.KindInternal, Message: err.Error(), Err: err}
}
