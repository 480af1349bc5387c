package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dualion/controldiners/internal/models"
)

type ProcesRepo interface {
	// Take the lock that serializes proces lifecycle changes
	// Held until the surrounding transaction ends, so it must be called inside Storage.InTx
	LockLifecycle(ctx context.Context) error

	// Create active proces seeded with quantitat
	// If there is an active proces already has to return apperrors.ErrProcesAlreadyActive
	CreateProces(ctx context.Context, q models.Quantitat, startedAt time.Time) (models.Proces, error)

	// Get the active proces
	// If lock is true the row is locked until the transaction ends
	// If there is no active proces must return apperrors.ErrNoActiveProces
	GetActiveProces(ctx context.Context, lock bool) (models.Proces, error)

	// Get proces by its id
	// If lock is true the row is locked until the transaction ends
	// If not found must return apperrors.ErrProcesNotFound
	GetProces(ctx context.Context, id int64, lock bool) (models.Proces, error)

	// Set active proces terminated (actiu=false, data_fi=finishedAt)
	// If the proces is not active must return apperrors.ErrNoActiveProces
	TerminateProces(ctx context.Context, id int64, finishedAt time.Time) (models.Proces, error)

	ListProces(ctx context.Context, page models.PageRequest) (models.Page[models.Proces], error)
}

type QuantitatParams struct {
	Diners    decimal.Decimal
	DataInici time.Time
	DataFi    *time.Time
}

type QuantitatRepo interface {
	CreateQuantitat(ctx context.Context, arg QuantitatParams) (models.Quantitat, error)

	// Update quantitat
	// If not found must return apperrors.ErrQuantitatNotFound
	UpdateQuantitat(ctx context.Context, id int64, arg QuantitatParams) (models.Quantitat, error)

	// Get quantitat by its id
	// If not found must return apperrors.ErrQuantitatNotFound
	GetQuantitat(ctx context.Context, id int64) (models.Quantitat, error)

	// Get the quantitat in effect at the moment
	// If there is none must return apperrors.ErrNoQuantitatConfigured
	GetCurrentQuantitat(ctx context.Context, at time.Time) (models.Quantitat, error)

	// Delete quantitat
	// If not found must return apperrors.ErrQuantitatNotFound
	// If some proces references it must return apperrors.ErrQuantitatInUse
	DeleteQuantitat(ctx context.Context, id int64) error

	ListQuantitats(ctx context.Context, page models.PageRequest) (models.Page[models.Quantitat], error)
}

type UsuariRepo interface {
	// Create usuari
	// If usuari with the name exists already has to return apperrors.ErrUsuariAlreadyExists
	CreateUsuari(ctx context.Context, nom string) (models.Usuari, error)

	// Rename usuari
	// If not found must return apperrors.ErrUsuariNotFound
	// If the name is taken must return apperrors.ErrUsuariAlreadyExists
	RenameUsuari(ctx context.Context, id int64, nom string) (models.Usuari, error)

	// If not found must return apperrors.ErrUsuariNotFound
	GetUsuari(ctx context.Context, id int64) (models.Usuari, error)

	ListUsuaris(ctx context.Context, page models.PageRequest) (models.Page[models.Usuari], error)
}

type UsuarisProcesRepo interface {
	// Create one line per known usuari for the proces, all owing proces.Diners
	// Returns the number of created lines
	SeedUsuarisProces(ctx context.Context, proces models.Proces) (int64, error)

	// If not found must return apperrors.ErrUsuarisProcesNotFound
	// If lock is true the row is locked until the transaction ends
	GetUsuarisProces(ctx context.Context, id int64, lock bool) (models.UsuarisProces, error)

	// List lines of the proces ordered by user name
	ListByProces(ctx context.Context, procesID int64) ([]models.UsuarisProces, error)

	// List lines of the proces which are not paid yet ordered by user name
	ListUnpaid(ctx context.Context, procesID int64) ([]models.UsuarisProces, error)

	// Mark line paid at the moment
	// If the line is paid already must not overwrite the existing 'data_pagament'
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) (models.UsuarisProces, error)

	// Refresh denormalized user name on every line of the usuari
	RenameUsuari(ctx context.Context, usuariID int64, nom string) error
}

// Storage gives access to every repository over the same connection
// Repositories returned by the storage passed to InTx share one transaction
type Storage interface {
	Proces() ProcesRepo
	Quantitat() QuantitatRepo
	Usuari() UsuariRepo
	UsuarisProces() UsuarisProcesRepo

	// Run fn in transaction: commit if fn returns nil, rollback otherwise
	InTx(ctx context.Context, fn func(Storage) error) error
}
