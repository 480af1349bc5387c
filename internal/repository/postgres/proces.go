package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/models"
)

// Advisory lock key for proces lifecycle changes ('proc' in ascii)
const procesLifecycleLockKey int64 = 0x70726f63

type ProcesRepo struct {
	DB DBTX
}

func (r *ProcesRepo) LockLifecycle(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, procesLifecycleLockKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const createProces = `-- name: CreateProces
INSERT INTO proces (actiu, data_inici, data_fi, quantitat_id, diners)
VALUES (TRUE, $1, NULL, $2, $3)
RETURNING id, actiu, data_inici, data_fi, quantitat_id, diners
`

func (r *ProcesRepo) CreateProces(ctx context.Context, q models.Quantitat, startedAt time.Time) (models.Proces, error) {
	rows, _ := r.DB.Query(ctx, createProces, startedAt, q.ID, q.Diners)
	p, err := pgx.CollectOneRow(rows, rowToProces)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return p, apperrors.ErrProcesAlreadyActive
		}
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return p, apperrors.ErrNoQuantitatConfigured
		}

		return p, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

const getActiveProces = `-- name: GetActiveProces
SELECT id, actiu, data_inici, data_fi, quantitat_id, diners FROM proces
WHERE actiu
`

func (r *ProcesRepo) GetActiveProces(ctx context.Context, lock bool) (models.Proces, error) {
	query := getActiveProces
	if lock {
		query += "FOR UPDATE"
	}

	rows, _ := r.DB.Query(ctx, query)
	p, err := pgx.CollectOneRow(rows, rowToProces)

	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, pgx.ErrNoRows):
		return p, apperrors.ErrNoActiveProces
	default:
		return p, fmt.Errorf("db error: %w", err)
	}
}

const getProces = `-- name: GetProces
SELECT id, actiu, data_inici, data_fi, quantitat_id, diners FROM proces
WHERE id = $1
`

func (r *ProcesRepo) GetProces(ctx context.Context, id int64, lock bool) (models.Proces, error) {
	query := getProces
	if lock {
		query += "FOR UPDATE"
	}

	rows, _ := r.DB.Query(ctx, query, id)
	p, err := pgx.CollectOneRow(rows, rowToProces)

	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, pgx.ErrNoRows):
		return p, apperrors.ErrProcesNotFound
	default:
		return p, fmt.Errorf("db error: %w", err)
	}
}

// Only active proces may be terminated, terminated state is final
const terminateProces = `-- name: TerminateProces
UPDATE proces SET actiu = FALSE, data_fi = $2
WHERE id = $1 AND actiu
RETURNING id, actiu, data_inici, data_fi, quantitat_id, diners
`

func (r *ProcesRepo) TerminateProces(ctx context.Context, id int64, finishedAt time.Time) (models.Proces, error) {
	rows, _ := r.DB.Query(ctx, terminateProces, id, finishedAt)
	p, err := pgx.CollectOneRow(rows, rowToProces)

	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, pgx.ErrNoRows):
		return p, apperrors.ErrNoActiveProces
	default:
		return p, fmt.Errorf("db error: %w", err)
	}
}

const listProces = `-- name: ListProces
SELECT id, actiu, data_inici, data_fi, quantitat_id, diners FROM proces
ORDER BY id DESC
LIMIT $1 OFFSET $2
`

func (r *ProcesRepo) ListProces(ctx context.Context, page models.PageRequest) (models.Page[models.Proces], error) {
	result := models.Page[models.Proces]{PageRequest: page}

	total, err := count(ctx, r.DB, `SELECT count(*) FROM proces`)
	if err != nil {
		return result, err
	}
	result.Total = total

	rows, _ := r.DB.Query(ctx, listProces, page.Size, page.Offset())
	result.Items, err = pgx.CollectRows(rows, rowToProces)
	if err != nil {
		return result, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func rowToProces(row pgx.CollectableRow) (models.Proces, error) {
	var p models.Proces
	err := row.Scan(&p.ID, &p.Actiu, &p.DataInici, &p.DataFi, &p.QuantitatID, &p.Diners)
	return p, err
}
