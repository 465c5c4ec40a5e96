package mysql

import (
	"context"
	"database/sql"
	"errors"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/koustreak/sqlbridge/internal/errs"
)

// MySQL error numbers.
// Full list: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errAccessDenied      = 1045
	errUnknownDatabase   = 1049
	errBadFieldError     = 1054
	errTableAccessDenied = 1142
	errConnRefused       = 2003
)

// mapError translates go-sql-driver/mysql errors into *errs.Error.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case errAccessDenied, errConnRefused, errUnknownDatabase:
			return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
		case errTableAccessDenied:
			return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
		case errBadFieldError:
			return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
		}
		return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
	}

	return errs.Wrap(errs.ErrKindUnknown, msg, err)
}
