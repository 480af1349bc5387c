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
	"github.com/dualion/controldiners/internal/repository"
)

type QuantitatRepo struct {
	DB DBTX
}

const createQuantitat = `-- name: CreateQuantitat
INSERT INTO quantitats (diners, data_inici, data_fi)
VALUES ($1, $2, $3)
RETURNING id, diners, data_inici, data_fi
`

func (r *QuantitatRepo) CreateQuantitat(ctx context.Context, arg repository.QuantitatParams) (models.Quantitat, error) {
	rows, _ := r.DB.Query(ctx, createQuantitat, arg.Diners, arg.DataInici, arg.DataFi)
	q, err := pgx.CollectOneRow(rows, rowToQuantitat)

	if err != nil {
		return q, checkQuantitatErr(err)
	}

	return q, nil
}

const updateQuantitat = `-- name: UpdateQuantitat
UPDATE quantitats SET diners = $2, data_inici = $3, data_fi = $4
WHERE id = $1
RETURNING id, diners, data_inici, data_fi
`

func (r *QuantitatRepo) UpdateQuantitat(ctx context.Context, id int64, arg repository.QuantitatParams) (models.Quantitat, error) {
	rows, _ := r.DB.Query(ctx, updateQuantitat, id, arg.Diners, arg.DataInici, arg.DataFi)
	q, err := pgx.CollectOneRow(rows, rowToQuantitat)

	switch {
	case err == nil:
		return q, nil
	case errors.Is(err, pgx.ErrNoRows):
		return q, apperrors.ErrQuantitatNotFound
	default:
		return q, checkQuantitatErr(err)
	}
}

const getQuantitat = `-- name: GetQuantitat
SELECT id, diners, data_inici, data_fi FROM quantitats
WHERE id = $1
`

func (r *QuantitatRepo) GetQuantitat(ctx context.Context, id int64) (models.Quantitat, error) {
	rows, _ := r.DB.Query(ctx, getQuantitat, id)
	q, err := pgx.CollectOneRow(rows, rowToQuantitat)

	switch {
	case err == nil:
		return q, nil
	case errors.Is(err, pgx.ErrNoRows):
		return q, apperrors.ErrQuantitatNotFound
	default:
		return q, fmt.Errorf("db error: %w", err)
	}
}

// The latest started quantitat which is not finished at the moment
const getCurrentQuantitat = `-- name: GetCurrentQuantitat
SELECT id, diners, data_inici, data_fi FROM quantitats
WHERE data_inici <= $1 AND (data_fi IS NULL OR data_fi > $1)
ORDER BY data_inici DESC, id DESC
LIMIT 1
`

func (r *QuantitatRepo) GetCurrentQuantitat(ctx context.Context, at time.Time) (models.Quantitat, error) {
	rows, _ := r.DB.Query(ctx, getCurrentQuantitat, at)
	q, err := pgx.CollectOneRow(rows, rowToQuantitat)

	switch {
	case err == nil:
		return q, nil
	case errors.Is(err, pgx.ErrNoRows):
		return q, apperrors.ErrNoQuantitatConfigured
	default:
		return q, fmt.Errorf("db error: %w", err)
	}
}

func (r *QuantitatRepo) DeleteQuantitat(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM quantitats WHERE id = $1`, id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return apperrors.ErrQuantitatInUse
		}
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrQuantitatNotFound
	}

	return nil
}

const listQuantitats = `-- name: ListQuantitats
SELECT id, diners, data_inici, data_fi FROM quantitats
ORDER BY data_inici DESC, id DESC
LIMIT $1 OFFSET $2
`

func (r *QuantitatRepo) ListQuantitats(ctx context.Context, page models.PageRequest) (models.Page[models.Quantitat], error) {
	result := models.Page[models.Quantitat]{PageRequest: page}

	total, err := count(ctx, r.DB, `SELECT count(*) FROM quantitats`)
	if err != nil {
		return result, err
	}
	result.Total = total

	rows, _ := r.DB.Query(ctx, listQuantitats, page.Size, page.Offset())
	result.Items, err = pgx.CollectRows(rows, rowToQuantitat)
	if err != nil {
		return result, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Constraint that forbids quantitat ending before it starts
const quantitatPeriodCheck = "quantitats_period_check"

func checkQuantitatErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("db error: %w", err)
	}

	switch {
	case pgErr.Code == pgerrcode.CheckViolation && pgErr.ConstraintName == quantitatPeriodCheck:
		return apperrors.ErrQuantitatInvalidPeriod
	case pgErr.Code == pgerrcode.NumericValueOutOfRange:
		return apperrors.ErrQuantitatOutOfRange
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

func rowToQuantitat(row pgx.CollectableRow) (models.Quantitat, error) {
	var q models.Quantitat
	err := row.Scan(&q.ID, &q.Diners, &q.DataInici, &q.DataFi)
	return q, err
}
