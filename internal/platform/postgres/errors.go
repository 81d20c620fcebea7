package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// SQLSTATE codes translated by MapError.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
	stringTooLongCode       = "22001"
	invalidTextCode         = "22P02"
)

// MapError translates a driver error into the store taxonomy. The driver
// error stays in the message for logs; callers match on the store sentinel.
// Errors without a mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %s: %v", store.ErrDuplicate, violatedObject(pgErr), err)
	case foreignKeyViolationCode, checkViolationCode, notNullViolationCode,
		stringTooLongCode, invalidTextCode:
		return fmt.Errorf("%w: %s: %v", store.ErrInvalidEntity, violatedObject(pgErr), err)
	default:
		return err
	}
}

// violatedObject names the constraint, column or table a PgError refers to.
func violatedObject(pgErr *pgconn.PgError) string {
	switch {
	case pgErr.ConstraintName != "":
		return pgErr.ConstraintName
	case pgErr.ColumnName != "":
		return pgErr.ColumnName
	case pgErr.TableName != "":
		return pgErr.TableName
	default:
		return "sqlstate " + pgErr.Code
	}
}

// IsUniqueViolation reports whether err is a unique constraint violation.
// CreateIfAbsent uses it to treat a racing insert as an existing account.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CheckRowsAffected returns notFound when an ownership-predicated UPDATE or
// DELETE matched no row.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
