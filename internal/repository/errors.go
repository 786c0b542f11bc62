// Package repository содержит общие помощники для слоев доступа к данным.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Код unique_violation из приложения A к документации PostgreSQL.
const PgErrUniqueViolation = "23505"

// IsPgErrorWithCode проверяет, что err — ошибка PostgreSQL с заданным SQLSTATE.
func IsPgErrorWithCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == code
}
