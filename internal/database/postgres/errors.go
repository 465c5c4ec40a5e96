package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/koustreak/sqlbridge/internal/errs"
)

// PostgreSQL SQLSTATE error codes (read-relevant only).
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgErrConnectionFailure = "08006"
	pgErrInsufficientPrivs = "42501"
	pgErrSyntaxError       = "42601"
	pgErrUndefinedTable    = "42P01"
	pgErrUndefinedColumn   = "42703"
	pgErrQueryCanceled     = "57014"
)

// mapError translates pgx errors into *errs.Error.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrConnectionFailure:
			return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
		case pgErrInsufficientPrivs:
			return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
		case pgErrQueryCanceled:
			return errs.Wrap(errs.ErrKindTimeout, msg, err)
		case pgErrSyntaxError, pgErrUndefinedTable, pgErrUndefinedColumn:
			return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
		}
		return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
	}

	return errs.Wrap(errs.ErrKindUnknown, msg, err)
}
