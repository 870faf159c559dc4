package merge

import (
	"context"
	"database/sql"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/io/config"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/moption"
	"github.com/viant/sqlmerge/option"
)

type (
	// Service represents merge service
	Service struct {
		dialect   *info.Dialect
		tableName string
		db        *sql.DB
	}

	//Outcome represents asynchronous merge outcome
	Outcome struct {
		Result info.MergeResult
		Err    error
	}
)

// New creates instance of Service, dialect is taken from options or detected with db
func New(ctx context.Context, db *sql.DB, table string, options ...option.Option) (*Service, error) {
	dialect, err := config.Dialect(ctx, db, options...)
	if err != nil {
		return nil, err
	}
	return &Service{
		tableName: table,
		db:        db,
		dialect:   dialect,
	}, nil
}

// Exec merges records into the service table
func (s *Service) Exec(ctx context.Context, any interface{}, mConfig info.MergeConfig, options ...moption.Option) (info.MergeResult, error) {
	executor, err := s.executor(mConfig)
	if err != nil {
		return nil, err
	}
	return executor.Exec(ctx, any, s.db, s.tableName, options...)
}

// ExecAsync merges records on a separate goroutine, configuration errors are returned before any I/O
func (s *Service) ExecAsync(ctx context.Context, any interface{}, mConfig info.MergeConfig, options ...moption.Option) (<-chan *Outcome, error) {
	executor, err := s.executor(mConfig)
	if err != nil {
		return nil, err
	}
	result := make(chan *Outcome, 1)
	go func() {
		defer close(result)
		outcome := &Outcome{}
		outcome.Result, outcome.Err = executor.Exec(ctx, any, s.db, s.tableName, options...)
		result <- outcome
	}()
	return result, nil
}

func (s *Service) executor(mConfig info.MergeConfig) (io.MergeExecutor, error) {
	if mConfig == nil {
		return nil, errx.Config("merge", "config was nil")
	}
	if err := mConfig.Validate(); err != nil {
		return nil, err
	}
	return config.MergeExecutor(s.dialect, mConfig)
}
