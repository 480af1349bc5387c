package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/models"
)

type UsuariRepo struct {
	DB DBTX
}

const createUsuari = `-- name: CreateUsuari
INSERT INTO usuaris (nom)
VALUES ($1)
RETURNING id, created_at, nom
`

func (r *UsuariRepo) CreateUsuari(ctx context.Context, nom string) (models.Usuari, error) {
	rows, _ := r.DB.Query(ctx, createUsuari, nom)
	u, err := pgx.CollectOneRow(rows, rowToUsuari)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return u, apperrors.ErrUsuariAlreadyExists
		}

		return u, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

const renameUsuari = `-- name: RenameUsuari
UPDATE usuaris SET nom = $2
WHERE id = $1
RETURNING id, created_at, nom
`

func (r *UsuariRepo) RenameUsuari(ctx context.Context, id int64, nom string) (models.Usuari, error) {
	rows, _ := r.DB.Query(ctx, renameUsuari, id, nom)
	u, err := pgx.CollectOneRow(rows, rowToUsuari)

	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, pgx.ErrNoRows):
		return u, apperrors.ErrUsuariNotFound
	case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation:
		return u, apperrors.ErrUsuariAlreadyExists
	default:
		return u, fmt.Errorf("db error: %w", err)
	}
}

const getUsuari = `-- name: GetUsuari
SELECT id, created_at, nom FROM usuaris
WHERE id = $1
`

func (r *UsuariRepo) GetUsuari(ctx context.Context, id int64) (models.Usuari, error) {
	rows, _ := r.DB.Query(ctx, getUsuari, id)
	u, err := pgx.CollectOneRow(rows, rowToUsuari)

	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, pgx.ErrNoRows):
		return u, apperrors.ErrUsuariNotFound
	default:
		return u, fmt.Errorf("db error: %w", err)
	}
}

const listUsuaris = `-- name: ListUsuaris
SELECT id, created_at, nom FROM usuaris
ORDER BY nom
LIMIT $1 OFFSET $2
`

func (r *UsuariRepo) ListUsuaris(ctx context.Context, page models.PageRequest) (models.Page[models.Usuari], error) {
	result := models.Page[models.Usuari]{PageRequest: page}

	total, err := count(ctx, r.DB, `SELECT count(*) FROM usuaris`)
	if err != nil {
		return result, err
	}
	result.Total = total

	rows, _ := r.DB.Query(ctx, listUsuaris, page.Size, page.Offset())
	result.Items, err = pgx.CollectRows(rows, rowToUsuari)
	if err != nil {
		return result, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func rowToUsuari(row pgx.CollectableRow) (models.Usuari, error) {
	var u models.Usuari
	err := row.Scan(&u.ID, &u.CreatedAt, &u.Nom)
	return u, err
}
