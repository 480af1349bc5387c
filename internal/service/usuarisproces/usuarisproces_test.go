package usuarisproces

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/models"
	"github.com/dualion/controldiners/internal/repository"
	"github.com/dualion/controldiners/internal/repository/postgres"
	"github.com/dualion/controldiners/internal/testutil"
)

func TestUsuarisProces(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Create service within transaction with an active proces for two usuaris
	inTx := func(t *testing.T, fn func(s *UsuarisProcesService, storage repository.Storage, p models.Proces, lines []models.UsuarisProces)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			storage := postgres.NewStorage(tx)

			q, err := storage.Quantitat().CreateQuantitat(t.Context(), repository.QuantitatParams{
				Diners:    testutil.Decimal(t, "8.5"),
				DataInici: time.Now().Add(-time.Hour),
			})
			require.NoError(t, err)
			for _, nom := range []string{"anna", "bernat"} {
				_, err := storage.Usuari().CreateUsuari(t.Context(), nom)
				require.NoError(t, err)
			}
			p, err := storage.Proces().CreateProces(t.Context(), q, time.Now())
			require.NoError(t, err)
			_, err = storage.UsuarisProces().SeedUsuarisProces(t.Context(), p)
			require.NoError(t, err)
			lines, err := storage.UsuarisProces().ListByProces(t.Context(), p.ID)
			require.NoError(t, err)

			fn(NewService(storage), storage, p, lines)
		})
	}

	t.Run("ListByProces", func(t *testing.T) {
		inTx(t, func(s *UsuarisProcesService, _ repository.Storage, p models.Proces, _ []models.UsuarisProces) {
			lines, err := s.ListByProces(t.Context(), p.ID)
			require.NoError(t, err)
			require.Len(t, lines, 2)

			_, err = s.ListByProces(t.Context(), p.ID+1000)
			require.ErrorIs(t, err, apperrors.ErrProcesNotFound)
		})
	})

	t.Run("FindOne", func(t *testing.T) {
		inTx(t, func(s *UsuarisProcesService, _ repository.Storage, _ models.Proces, lines []models.UsuarisProces) {
			got, err := s.FindOne(t.Context(), lines[0].ID)
			require.NoError(t, err)
			require.Equal(t, lines[0], got)

			_, err = s.FindOne(t.Context(), lines[1].ID+1000)
			require.ErrorIs(t, err, apperrors.ErrUsuarisProcesNotFound)
		})
	})

	t.Run("MarkPaid", func(t *testing.T) {
		t.Run("pay ok", func(t *testing.T) {
			inTx(t, func(s *UsuarisProcesService, _ repository.Storage, _ models.Proces, lines []models.UsuarisProces) {
				paidAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
				s.now = func() time.Time { return paidAt }

				up, err := s.MarkPaid(t.Context(), lines[0].ID)

				require.NoError(t, err)
				require.True(t, up.Pagat)
				require.NotNil(t, up.DataPagament)
				require.True(t, paidAt.Equal(*up.DataPagament))
			})
		})

		t.Run("pay twice keeps first payment", func(t *testing.T) {
			inTx(t, func(s *UsuarisProcesService, _ repository.Storage, _ models.Proces, lines []models.UsuarisProces) {
				first, err := s.MarkPaid(t.Context(), lines[0].ID)
				require.NoError(t, err)

				second, err := s.MarkPaid(t.Context(), lines[0].ID)

				require.NoError(t, err)
				require.True(t, first.DataPagament.Equal(*second.DataPagament))
			})
		})

		t.Run("terminated proces fail", func(t *testing.T) {
			inTx(t, func(s *UsuarisProcesService, storage repository.Storage, p models.Proces, lines []models.UsuarisProces) {
				_, err := storage.Proces().TerminateProces(t.Context(), p.ID, time.Now())
				require.NoError(t, err)

				_, err = s.MarkPaid(t.Context(), lines[0].ID)

				require.ErrorIs(t, err, apperrors.ErrProcesInactive)
			})
		})

		t.Run("not found", func(t *testing.T) {
			inTx(t, func(s *UsuarisProcesService, _ repository.Storage, _ models.Proces, lines []models.UsuarisProces) {
				_, err := s.MarkPaid(t.Context(), lines[1].ID+1000)

				require.ErrorIs(t, err, apperrors.ErrUsuarisProcesNotFound)
			})
		})
	})
}
