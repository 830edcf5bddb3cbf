package database

import (
	"errors"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
	pgNumericOutOfRange   = "22003"
)

// TranslateError maps driver constraint errors onto apperror sentinels.
// Errors it does not recognise are returned unchanged.
func TranslateError(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.Conflict(conflictMsg)
		case pgForeignKeyViolation:
			return apperror.NotFound("referenced entity")
		case pgCheckViolation:
			return apperror.Invalid(pgErr.Message)
		case pgInvalidText:
			// A malformed key cannot match any row.
			return apperror.NotFound("entity")
		case pgNumericOutOfRange:
			return apperror.Invalid("numeric value out of range")
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return apperror.Conflict(conflictMsg)
		case sqlite3.ErrConstraintForeignKey:
			return apperror.NotFound("referenced entity")
		case sqlite3.ErrConstraintCheck:
			return apperror.Invalid(liteErr.Error())
		}
	}
	return err
}
