package io

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/viant/sqlmerge/metadata/info"
)

//Transaction represents a transaction, Global transactions are owned by the caller
type Transaction struct {
	*sql.Tx
	Global bool
}

//TransactionFor returns caller supplied transaction or begins a new one
func TransactionFor(ctx context.Context, dialect *info.Dialect, db interface{}, tx *sql.Tx) (*Transaction, error) {
	if tx != nil {
		return &Transaction{Tx: tx, Global: true}, nil
	}
	if dialect != nil && !dialect.Transactional {
		return nil, nil
	}
	beginner, ok := db.(Beginner)
	if !ok {
		return nil, fmt.Errorf("unable to begin transaction with %T", db)
	}
	tx, err := beginner.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Transaction{Tx: tx}, nil
}

func (t *Transaction) Rollback() error {
	if t.Global {
		return nil
	}
	return t.Tx.Rollback()
}

func (t *Transaction) RollbackWithErr(err error) error {
	if t.Global {
		return err
	}
	if trErr := t.Tx.Rollback(); trErr != nil {
		return fmt.Errorf("failed to rollback: %w, %v", err, trErr)
	}
	return err
}

func (t *Transaction) Commit() error {
	if t.Global {
		return nil
	}
	return t.Tx.Commit()
}
