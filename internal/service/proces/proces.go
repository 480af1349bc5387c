package proces

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/models"
	"github.com/dualion/controldiners/internal/repository"
)

// UnpaidUsersError is returned when the active proces can't be terminated
// It matches apperrors.ErrUnpaidUsers with errors.Is
type UnpaidUsersError struct {
	Unpaid []models.UsuarisProces
}

func (e *UnpaidUsersError) Error() string {
	names := make([]string, 0, len(e.Unpaid))
	for _, up := range e.Unpaid {
		names = append(names, up.UsuarisNom)
	}
	return fmt.Sprintf("%s: %d (%s)", apperrors.ErrUnpaidUsers, len(e.Unpaid), strings.Join(names, ", "))
}

func (e *UnpaidUsersError) Unwrap() error {
	return apperrors.ErrUnpaidUsers
}

// ProcesService manages proces lifecycle
// It guarantees there is never more than one active proces
type ProcesService struct {
	storage repository.Storage

	// Clock, replaced in tests
	now func() time.Time
}

func NewService(storage repository.Storage) *ProcesService {
	return &ProcesService{
		storage: storage,
		now:     time.Now,
	}
}

// Create starts new active proces seeded with the current quantitat
// Every known usuari gets a ledger line owing the quantitat value
// Has to return apperrors.ErrProcesAlreadyActive if there is an active proces
// Has to return apperrors.ErrNoQuantitatConfigured if no quantitat is in effect
func (s *ProcesService) Create(ctx context.Context) (models.Proces, error) {
	var p models.Proces

	err := s.storage.InTx(ctx, func(tx repository.Storage) error {
		err := tx.Proces().LockLifecycle(ctx)
		if err != nil {
			return err
		}

		_, err = tx.Proces().GetActiveProces(ctx, false)
		switch {
		case err == nil:
			return apperrors.ErrProcesAlreadyActive
		case !errors.Is(err, apperrors.ErrNoActiveProces):
			return err
		}

		now := s.now()
		q, err := tx.Quantitat().GetCurrentQuantitat(ctx, now)
		if err != nil {
			return err
		}

		p, err = tx.Proces().CreateProces(ctx, q, now)
		if err != nil {
			return err
		}

		_, err = tx.UsuarisProces().SeedUsuarisProces(ctx, p)
		return err
	})

	return p, err
}

// Terminate finishes the active proces
// Has to return apperrors.ErrNoActiveProces if there is no active proces
// Has to return *UnpaidUsersError if some usuari has not paid yet
func (s *ProcesService) Terminate(ctx context.Context) (models.Proces, error) {
	var p models.Proces

	err := s.storage.InTx(ctx, func(tx repository.Storage) error {
		err := tx.Proces().LockLifecycle(ctx)
		if err != nil {
			return err
		}

		active, err := tx.Proces().GetActiveProces(ctx, true)
		if err != nil {
			return err
		}

		unpaid, err := tx.UsuarisProces().ListUnpaid(ctx, active.ID)
		if err != nil {
			return err
		}
		if len(unpaid) > 0 {
			return &UnpaidUsersError{Unpaid: unpaid}
		}

		p, err = tx.Proces().TerminateProces(ctx, active.ID, s.now())
		return err
	})

	return p, err
}

// FindActive reports whether there is an active proces
func (s *ProcesService) FindActive(ctx context.Context) (bool, error) {
	_, err := s.storage.Proces().GetActiveProces(ctx, false)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrNoActiveProces):
		return false, nil
	default:
		return false, err
	}
}

func (s *ProcesService) FindAll(ctx context.Context, page models.PageRequest) (models.Page[models.Proces], error) {
	return s.storage.Proces().ListProces(ctx, page)
}

// FindOne returns apperrors.ErrProcesNotFound if there is no such proces
func (s *ProcesService) FindOne(ctx context.Context, id int64) (models.Proces, error) {
	return s.storage.Proces().GetProces(ctx, id, false)
}
