package dbutil

import (
	"context"

	"github.com/KeshavWanjale/usercrud/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes the store cares about.
const (
	DuplicateKeyErrorCode = "23505"
	NotNullErrorCode      = "23502"
	QueryCanceledCode     = "57014"
)

// WrapError maps a gorm or driver error onto an *errors.Error. Errors that
// are already *errors.Error pass through untouched; anything unrecognised
// becomes an internal error wrapping the original.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*errors.Error); ok {
		return e
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.NotFound.Wrap(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Conflict.Explain("duplication of key").Wrap(err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errors.Unavailable.Explain("database call interrupted").Wrap(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case DuplicateKeyErrorCode:
			return errors.Conflict.Explain("duplication of key").Wrap(err)
		case NotNullErrorCode:
			return errors.Invalid.Explain("missing value for %s", pgErr.ColumnName).Wrap(err)
		case QueryCanceledCode:
			return errors.Unavailable.Explain("database call interrupted").Wrap(err)
		}
	}

	return errors.Wrap(err)
}
