package quantitat

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/models"
	"github.com/dualion/controldiners/internal/repository"
)

var (
	ErrNotPositive     = errors.New("quantitat diners must be positive")
	ErrTooManyDecimals = errors.New("quantitat diners must have at most 2 decimal places")
)

// Diners are stored as NUMERIC(12,2)
const dinersPlaces = 2

var maxDiners = decimal.New(1, 10)

// Params to create or update quantitat
// Zero DataInici means 'from now' on create and 'keep stored' on update
type Params struct {
	Diners    decimal.Decimal
	DataInici time.Time
	DataFi    *time.Time
}

type QuantitatService struct {
	quantitatRepo repository.QuantitatRepo

	now func() time.Time
}

func NewService(quantitatRepo repository.QuantitatRepo) *QuantitatService {
	return &QuantitatService{
		quantitatRepo: quantitatRepo,
		now:           time.Now,
	}
}

func (s *QuantitatService) Create(ctx context.Context, p Params) (models.Quantitat, error) {
	arg, err := s.toRepoParams(p)
	if err != nil {
		return models.Quantitat{}, err
	}

	return s.quantitatRepo.CreateQuantitat(ctx, arg)
}

// Update returns apperrors.ErrQuantitatNotFound if there is no such quantitat
func (s *QuantitatService) Update(ctx context.Context, id int64, p Params) (models.Quantitat, error) {
	if err := validateDiners(p.Diners); err != nil {
		return models.Quantitat{}, err
	}

	if p.DataInici.IsZero() {
		stored, err := s.quantitatRepo.GetQuantitat(ctx, id)
		if err != nil {
			return models.Quantitat{}, err
		}
		p.DataInici = stored.DataInici
	}

	arg, err := s.toRepoParams(p)
	if err != nil {
		return models.Quantitat{}, err
	}

	return s.quantitatRepo.UpdateQuantitat(ctx, id, arg)
}

func (s *QuantitatService) FindAll(ctx context.Context, page models.PageRequest) (models.Page[models.Quantitat], error) {
	return s.quantitatRepo.ListQuantitats(ctx, page)
}

func (s *QuantitatService) FindOne(ctx context.Context, id int64) (models.Quantitat, error) {
	return s.quantitatRepo.GetQuantitat(ctx, id)
}

// Delete returns apperrors.ErrQuantitatInUse if some proces was seeded with the quantitat
func (s *QuantitatService) Delete(ctx context.Context, id int64) error {
	return s.quantitatRepo.DeleteQuantitat(ctx, id)
}

// Current returns the quantitat a new proces would be seeded with
func (s *QuantitatService) Current(ctx context.Context) (models.Quantitat, error) {
	return s.quantitatRepo.GetCurrentQuantitat(ctx, s.now())
}

func (s *QuantitatService) toRepoParams(p Params) (repository.QuantitatParams, error) {
	arg := repository.QuantitatParams{
		Diners:    p.Diners,
		DataInici: p.DataInici,
		DataFi:    p.DataFi,
	}

	if err := validateDiners(arg.Diners); err != nil {
		return arg, err
	}

	if arg.DataInici.IsZero() {
		arg.DataInici = s.now()
	}

	if arg.DataFi != nil && !arg.DataFi.After(arg.DataInici) {
		return arg, apperrors.ErrQuantitatInvalidPeriod
	}

	return arg, nil
}

func validateDiners(d decimal.Decimal) error {
	switch {
	case !d.IsPositive():
		return ErrNotPositive
	case d.GreaterThanOrEqual(maxDiners):
		return apperrors.ErrQuantitatOutOfRange
	case !d.Equal(d.Truncate(dinersPlaces)):
		return ErrTooManyDecimals
	default:
		return nil
	}
}
