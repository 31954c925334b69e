package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./transactor.go -destination=./mocks/transactor_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Transactor runs fn inside one write transaction. The transaction is committed
// when fn returns nil and rolled back otherwise, including on panic.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
}

type transactorImpl struct {
	db *Connection
}

func NewTransactor(db *Connection) Transactor {
	return &transactorImpl{db: db}
}

func (t *transactorImpl) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	if t.db == nil || t.db.Write == nil {
		return ErrNoConnection
	}

	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
