package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/models"
)

type UsuarisProcesRepo struct {
	DB DBTX
}

const seedUsuarisProces = `-- name: SeedUsuarisProces
INSERT INTO usuaris_proces (diners, pagat, data_pagament, proces_id, usuaris_id, usuaris_nom)
SELECT $2, FALSE, NULL, $1, u.id, u.nom FROM usuaris u
ORDER BY u.id
`

func (r *UsuarisProcesRepo) SeedUsuarisProces(ctx context.Context, proces models.Proces) (int64, error) {
	tag, err := r.DB.Exec(ctx, seedUsuarisProces, proces.ID, proces.Diners)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return tag.RowsAffected(), nil
}

const getUsuarisProces = `-- name: GetUsuarisProces
SELECT id, diners, pagat, data_pagament, proces_id, usuaris_id, usuaris_nom FROM usuaris_proces
WHERE id = $1
`

func (r *UsuarisProcesRepo) GetUsuarisProces(ctx context.Context, id int64, lock bool) (models.UsuarisProces, error) {
	query := getUsuarisProces
	if lock {
		query += "FOR UPDATE"
	}

	rows, _ := r.DB.Query(ctx, query, id)
	up, err := pgx.CollectOneRow(rows, rowToUsuarisProces)

	switch {
	case err == nil:
		return up, nil
	case errors.Is(err, pgx.ErrNoRows):
		return up, apperrors.ErrUsuarisProcesNotFound
	default:
		return up, fmt.Errorf("db error: %w", err)
	}
}

const listByProces = `-- name: ListByProces
SELECT id, diners, pagat, data_pagament, proces_id, usuaris_id, usuaris_nom FROM usuaris_proces
WHERE proces_id = $1
ORDER BY usuaris_nom, id
`

func (r *UsuarisProcesRepo) ListByProces(ctx context.Context, procesID int64) ([]models.UsuarisProces, error) {
	rows, _ := r.DB.Query(ctx, listByProces, procesID)
	lines, err := pgx.CollectRows(rows, rowToUsuarisProces)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return lines, nil
}

const listUnpaid = `-- name: ListUnpaid
SELECT id, diners, pagat, data_pagament, proces_id, usuaris_id, usuaris_nom FROM usuaris_proces
WHERE proces_id = $1 AND NOT pagat
ORDER BY usuaris_nom, id
`

func (r *UsuarisProcesRepo) ListUnpaid(ctx context.Context, procesID int64) ([]models.UsuarisProces, error) {
	rows, _ := r.DB.Query(ctx, listUnpaid, procesID)
	lines, err := pgx.CollectRows(rows, rowToUsuarisProces)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return lines, nil
}

// COALESCE keeps the first payment time if the line is paid already
const markPaid = `-- name: MarkPaid
UPDATE usuaris_proces SET pagat = TRUE, data_pagament = COALESCE(data_pagament, $2)
WHERE id = $1
RETURNING id, diners, pagat, data_pagament, proces_id, usuaris_id, usuaris_nom
`

func (r *UsuarisProcesRepo) MarkPaid(ctx context.Context, id int64, paidAt time.Time) (models.UsuarisProces, error) {
	rows, _ := r.DB.Query(ctx, markPaid, id, paidAt)
	up, err := pgx.CollectOneRow(rows, rowToUsuarisProces)

	switch {
	case err == nil:
		return up, nil
	case errors.Is(err, pgx.ErrNoRows):
		return up, apperrors.ErrUsuarisProcesNotFound
	default:
		return up, fmt.Errorf("db error: %w", err)
	}
}

func (r *UsuarisProcesRepo) RenameUsuari(ctx context.Context, usuariID int64, nom string) error {
	_, err := r.DB.Exec(ctx, `UPDATE usuaris_proces SET usuaris_nom = $2 WHERE usuaris_id = $1`, usuariID, nom)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func rowToUsuarisProces(row pgx.CollectableRow) (models.UsuarisProces, error) {
	var up models.UsuarisProces
	err := row.Scan(&up.ID, &up.Diners, &up.Pagat, &up.DataPagament, &up.ProcesID, &up.UsuarisID, &up.UsuarisNom)
	return up, err
}
