package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern escapa comodines de LIKE y envuelve el término en %...%.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// prefixPattern escapa comodines de LIKE y deja el término como prefijo.
func prefixPattern(term string) string {
	return likeEscaper.Replace(term) + "%"
}
