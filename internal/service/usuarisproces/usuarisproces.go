package usuarisproces

import (
	"context"
	"time"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/models"
	"github.com/dualion/controldiners/internal/repository"
)

// UsuarisProcesService handles usuari payments inside a proces
type UsuarisProcesService struct {
	storage repository.Storage

	now func() time.Time
}

func NewService(storage repository.Storage) *UsuarisProcesService {
	return &UsuarisProcesService{
		storage: storage,
		now:     time.Now,
	}
}

// ListByProces returns apperrors.ErrProcesNotFound for unknown proces
func (s *UsuarisProcesService) ListByProces(ctx context.Context, procesID int64) ([]models.UsuarisProces, error) {
	_, err := s.storage.Proces().GetProces(ctx, procesID, false)
	if err != nil {
		return nil, err
	}

	return s.storage.UsuarisProces().ListByProces(ctx, procesID)
}

func (s *UsuarisProcesService) FindOne(ctx context.Context, id int64) (models.UsuarisProces, error) {
	return s.storage.UsuarisProces().GetUsuarisProces(ctx, id, false)
}

// MarkPaid registers the usuari payment
// Payments are accepted while the proces is active only (apperrors.ErrProcesInactive otherwise)
// Paying twice is not an error, the first payment time is kept
func (s *UsuarisProcesService) MarkPaid(ctx context.Context, id int64) (models.UsuarisProces, error) {
	var up models.UsuarisProces

	err := s.storage.InTx(ctx, func(tx repository.Storage) error {
		line, err := tx.UsuarisProces().GetUsuarisProces(ctx, id, true)
		if err != nil {
			return err
		}

		// Lock the proces too: terminate must not slip between the check and the update
		p, err := tx.Proces().GetProces(ctx, line.ProcesID, true)
		if err != nil {
			return err
		}
		if !p.Actiu {
			return apperrors.ErrProcesInactive
		}

		up, err = tx.UsuarisProces().MarkPaid(ctx, id, s.now())
		return err
	})

	return up, err
}
