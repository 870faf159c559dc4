package load

import (
	"context"
	"database/sql"
	"fmt"
	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/loption"
	"github.com/viant/sqlmerge/metadata/info"
)

// Session represents SQL Server bulk copy session
type Session struct {
	*io.Transaction
	dialect *info.Dialect
}

type result int64

func (r result) LastInsertId() (int64, error) { return 0, nil }

func (r result) RowsAffected() (int64, error) { return int64(r), nil }

// NewSession returns new session
func NewSession(dialect *info.Dialect) io.Session {
	return &Session{
		dialect: dialect,
	}
}

// Exec copies data into table with bulk copy (INSERT BULK), data is either io.Rows or a collection of records
func (s *Session) Exec(ctx context.Context, data interface{}, db io.Executor, tableName string, options ...loption.Option) (sql.Result, error) {
	opts := loption.NewOptions(options...)
	bulkOptions, err := opts.BulkOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid bulk options: %w", err)
	}
	rows, err := io.RowsOf(data, opts.GetCommonOptions().Tag())
	if err != nil {
		return nil, err
	}
	if !opts.GetStreaming() {
		if rows, err = io.Materialize(rows); err != nil {
			return nil, err
		}
	}
	if rows.Len() == 0 {
		return result(0), nil
	}
	if timeout := opts.GetTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err = s.begin(ctx, db, opts); err != nil {
		return nil, err
	}
	var executor = db
	if s.Transaction != nil {
		executor = s.Transaction.Tx
	}
	copied, err := s.copy(ctx, executor, rows, tableName, bulkOptions, opts)
	if err = s.end(err); err != nil {
		return nil, err
	}
	return result(copied), nil
}

func (s *Session) copy(ctx context.Context, executor io.Executor, rows io.Rows, tableName string, bulkOptions mssql.BulkOptions, opts *loption.Options) (int64, error) {
	stmt, err := executor.PrepareContext(ctx, mssql.CopyIn(tableName, bulkOptions, rows.Columns()...))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare bulk copy into %v: %w", tableName, err)
	}
	defer stmt.Close()
	var args = make([]interface{}, 0, len(rows.Columns()))
	for i := 0; i < rows.Len(); i++ {
		if args, err = rows.Row(i, args[:0]); err != nil {
			return 0, err
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to copy row %v into %v: %w", i, tableName, err)
		}
		opts.Notify(i+1, false)
	}
	res, err := stmt.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to flush bulk copy into %v: %w", tableName, err)
	}
	copied, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	opts.Notify(rows.Len(), true)
	return copied, nil
}

func (s *Session) begin(ctx context.Context, db io.Executor, opts *loption.Options) error {
	tx := opts.GetTransaction()
	if tx == nil {
		tx = opts.GetCommonOptions().Tx()
	}
	if tx == nil {
		tx, _ = db.(*sql.Tx)
	}
	var err error
	s.Transaction, err = io.TransactionFor(ctx, s.dialect, db, tx)
	return err
}

func (s *Session) end(err error) error {
	if s.Transaction == nil {
		return err
	}
	if err != nil {
		return s.Transaction.RollbackWithErr(err)
	}
	return s.Transaction.Commit()
}
