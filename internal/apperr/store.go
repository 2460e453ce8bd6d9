package apperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// StoreErrorKind classifies a store-layer failure so handlers can map it to the
// HTTP taxonomy exhaustively instead of probing driver errors ad hoc.
type StoreErrorKind int

const (
	StoreOther StoreErrorKind = iota
	StoreNotFound
	StoreUniqueViolation
	StoreForeignKeyViolation
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func ClassifyStore(err error) StoreErrorKind {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StoreNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return StoreUniqueViolation
		case pgForeignKeyViolation:
			return StoreForeignKeyViolation
		}
	}
	return StoreOther
}
