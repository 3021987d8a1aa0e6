package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const uniqueViolationErrCode = "23505"

const (
	shortCodeUniqueConstraint = "qr_codes_short_code_key"
	filenameUniqueConstraint  = "qr_codes_filename_key"
)

// uniqueViolationConstraint returns the name of the violated unique constraint,
// or an empty string if err is not a unique violation.
func uniqueViolationConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolationErrCode {
		return pgErr.ConstraintName
	}
	return ""
}
