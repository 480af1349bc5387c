package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dualion/controldiners/internal/repository"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
// Begin on pgx.Tx starts a savepoint, so InTx nests safely
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Storage struct {
	db DBTX
}

func NewStorage(db DBTX) repository.Storage {
	return &Storage{db: db}
}

func (s *Storage) Proces() repository.ProcesRepo {
	return &ProcesRepo{DB: s.db}
}

func (s *Storage) Quantitat() repository.QuantitatRepo {
	return &QuantitatRepo{DB: s.db}
}

func (s *Storage) Usuari() repository.UsuariRepo {
	return &UsuariRepo{DB: s.db}
}

func (s *Storage) UsuarisProces() repository.UsuarisProcesRepo {
	return &UsuarisProcesRepo{DB: s.db}
}

func (s *Storage) InTx(ctx context.Context, fn func(repository.Storage) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db tx error: %w", err)
	}

	defer func() {
		switch err {
		case nil:
			err = tx.Commit(ctx)
		default:
			_ = tx.Rollback(ctx)
		}
	}()

	err = fn(NewStorage(tx))

	return err
}

// count total rows for pagination
func count(ctx context.Context, db DBTX, query string) (int64, error) {
	var total int64
	err := db.QueryRow(ctx, query).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}
