package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation: pgx (driver gorm) atau lib/pq, fallback cek pesan (sqlite/dev).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique constraint")
}
