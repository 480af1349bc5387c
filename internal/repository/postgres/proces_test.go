package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/dualion/controldiners/internal/apperrors"
	"github.com/dualion/controldiners/internal/models"
	"github.com/dualion/controldiners/internal/repository"
	"github.com/dualion/controldiners/internal/testutil"
)

func TestProces(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Create storage on transaction with quantitat and two users
	// May be called several times (aka transaction in transaction)
	withTx := func(t *testing.T, db DBTX, fn func(pgx.Tx, repository.Storage, models.Quantitat)) {
		testutil.WithTx(db, t, func(tx pgx.Tx) {
			s := NewStorage(tx)

			q, err := s.Quantitat().CreateQuantitat(t.Context(), repository.QuantitatParams{
				Diners:    testutil.Decimal(t, "10.00"),
				DataInici: time.Now().Add(-time.Hour),
			})
			require.NoError(t, err)
			_, err = s.Usuari().CreateUsuari(t.Context(), "anna")
			require.NoError(t, err)
			_, err = s.Usuari().CreateUsuari(t.Context(), "bernat")
			require.NoError(t, err)

			fn(tx, s, q)
		})
	}

	t.Run("CreateProces", func(t *testing.T) {
		t.Run("create ok", func(t *testing.T) {
			withTx(t, pg.Pool, func(_ pgx.Tx, s repository.Storage, q models.Quantitat) {
				p, err := s.Proces().CreateProces(t.Context(), q, time.Now())

				require.NoError(t, err, "proces has to be created ok")
				require.NotZero(t, p.ID)
				require.True(t, p.Actiu, "new proces must be active")
				require.Nil(t, p.DataFi, "new proces must not be finished")
				require.Equal(t, q.ID, p.QuantitatID)
				require.True(t, q.Diners.Equal(p.Diners), "proces must copy quantitat value")
				require.WithinDuration(t, time.Now(), p.DataInici, time.Second)
			})
		})

		t.Run("second active fail", func(t *testing.T) {
			withTx(t, pg.Pool, func(tx pgx.Tx, s repository.Storage, q models.Quantitat) {
				_, err := s.Proces().CreateProces(t.Context(), q, time.Now())
				require.NoError(t, err)

				// The failed insert aborts the transaction, so run it inside a savepoint
				testutil.WithTx(tx, t, func(ttx pgx.Tx) {
					_, err = NewStorage(ttx).Proces().CreateProces(t.Context(), q, time.Now())
				})

				require.ErrorIs(t, err, apperrors.ErrProcesAlreadyActive, "unique index must forbid second active proces")
			})
		})

		t.Run("create after terminated ok", func(t *testing.T) {
			withTx(t, pg.Pool, func(_ pgx.Tx, s repository.Storage, q models.Quantitat) {
				first, err := s.Proces().CreateProces(t.Context(), q, time.Now())
				require.NoError(t, err)
				_, err = s.Proces().TerminateProces(t.Context(), first.ID, time.Now())
				require.NoError(t, err)

				second, err := s.Proces().CreateProces(t.Context(), q, time.Now())

				require.NoError(t, err, "terminated proces must not block new one")
				require.NotEqual(t, first.ID, second.ID)
			})
		})
	})

	t.Run("GetActiveProces", func(t *testing.T) {
		t.Run("no active", func(t *testing.T) {
			withTx(t, pg.Pool, func(_ pgx.Tx, s repository.Storage, _ models.Quantitat) {
				_, err := s.Proces().GetActiveProces(t.Context(), false)

				require.ErrorIs(t, err, apperrors.ErrNoActiveProces)
			})
		})

		t.Run("active with lock", func(t *testing.T) {
			withTx(t, pg.Pool, func(_ pgx.Tx, s repository.Storage, q models.Quantitat) {
				created, err := s.Proces().CreateProces(t.Context(), q, time.Now())
				require.NoError(t, err)

				got, err := s.Proces().GetActiveProces(t.Context(), true)

				require.NoError(t, err)
				require.Equal(t, created.ID, got.ID)
			})
		})
	})

	t.Run("TerminateProces", func(t *testing.T) {
		t.Run("terminate ok", func(t *testing.T) {
			withTx(t, pg.Pool, func(_ pgx.Tx, s repository.Storage, q models.Quantitat) {
				created, err := s.Proces().CreateProces(t.Context(), q, time.Now())
				require.NoError(t, err)

				p, err := s.Proces().TerminateProces(t.Context(), created.ID, time.Now())

				require.NoError(t, err)
				require.False(t, p.Actiu)
				require.NotNil(t, p.DataFi)
				require.WithinDuration(t, time.Now(), *p.DataFi, time.Second)
			})
		})

		t.Run("terminate twice fail", func(t *testing.T) {
			withTx(t, pg.Pool, func(_ pgx.Tx, s repository.Storage, q models.Quantitat) {
				created, err := s.Proces().CreateProces(t.Context(), q, time.Now())
				require.NoError(t, err)
				_, err = s.Proces().TerminateProces(t.Context(), created.ID, time.Now())
				require.NoError(t, err)

				_, err = s.Proces().TerminateProces(t.Context(), created.ID, time.Now())

				require.ErrorIs(t, err, apperrors.ErrNoActiveProces, "terminated state is final")
			})
		})
	})

	t.Run("GetProces", func(t *testing.T) {
		withTx(t, pg.Pool, func(_ pgx.Tx, s repository.Storage, q models.Quantitat) {
			created, err := s.Proces().CreateProces(t.Context(), q, time.Now())
			require.NoError(t, err)

			got, err := s.Proces().GetProces(t.Context(), created.ID, false)
			require.NoError(t, err)
			require.Equal(t, created.ID, got.ID)
			require.True(t, created.DataInici.Equal(got.DataInici))

			_, err = s.Proces().GetProces(t.Context(), created.ID+1000, false)
			require.ErrorIs(t, err, apperrors.ErrProcesNotFound)
		})
	})

	t.Run("ListProces", func(t *testing.T) {
		withTx(t, pg.Pool, func(_ pgx.Tx, s repository.Storage, q models.Quantitat) {
			ids := make([]int64, 0, 3)
			for range 3 {
				p, err := s.Proces().CreateProces(t.Context(), q, time.Now())
				require.NoError(t, err)
				_, err = s.Proces().TerminateProces(t.Context(), p.ID, time.Now())
				require.NoError(t, err)
				ids = append(ids, p.ID)
			}

			page, err := s.Proces().ListProces(t.Context(), models.PageRequest{Page: 0, Size: 2})

			require.NoError(t, err)
			require.Equal(t, int64(3), page.Total)
			require.Len(t, page.Items, 2)
			require.Equal(t, ids[2], page.Items[0].ID, "newest proces goes first")
			require.Equal(t, ids[1], page.Items[1].ID)

			page, err = s.Proces().ListProces(t.Context(), models.PageRequest{Page: 1, Size: 2})

			require.NoError(t, err)
			require.Len(t, page.Items, 1)
			require.Equal(t, ids[0], page.Items[0].ID)
		})
	})

	t.Run("InTx", func(t *testing.T) {
		t.Run("rollback on error", func(t *testing.T) {
			withTx(t, pg.Pool, func(_ pgx.Tx, s repository.Storage, q models.Quantitat) {
				errStop := errors.New("stop")

				err := s.InTx(t.Context(), func(txs repository.Storage) error {
					_, err := txs.Proces().CreateProces(t.Context(), q, time.Now())
					require.NoError(t, err)
					return errStop
				})
				require.ErrorIs(t, err, errStop)

				_, err = s.Proces().GetActiveProces(t.Context(), false)
				require.ErrorIs(t, err, apperrors.ErrNoActiveProces, "proces must be rolled back")
			})
		})

		t.Run("commit on success", func(t *testing.T) {
			withTx(t, pg.Pool, func(_ pgx.Tx, s repository.Storage, q models.Quantitat) {
				err := s.InTx(t.Context(), func(txs repository.Storage) error {
					_, err := txs.Proces().CreateProces(t.Context(), q, time.Now())
					return err
				})
				require.NoError(t, err)

				_, err = s.Proces().GetActiveProces(t.Context(), false)
				require.NoError(t, err, "proces must be committed")
			})
		})
	})
}
