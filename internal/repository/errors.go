package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound indica que la fila no existe.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indica una violacion de unicidad.
	ErrDuplicate = errors.New("repository: duplicate")
)

const (
	pgUniqueViolation      = "23505"
	pgInvalidTextRepresent = "22P02"
)

// mapError traduce errores de pgx a errores del repositorio.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgInvalidTextRepresent:
			// Un id con formato invalido no identifica ninguna fila.
			return ErrNotFound
		}
	}
	return err
}
