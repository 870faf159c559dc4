package merge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/metadata"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/metadata/product/sqlserver/merge/config"
	"github.com/viant/sqlmerge/metadata/product/sqlserver/merge/metric"
	"github.com/viant/sqlmerge/metadata/sink"
	"github.com/viant/sqlmerge/moption"
	"log"
	"time"
)

var showSQL bool

//ShowSQL enables generated SQL logging
func ShowSQL(b bool) {
	showSQL = b
}

type (
	// Executor represents SQL Server merge executor
	Executor struct {
		dialect *info.Dialect
		config  *config.Config
		meta    *metadata.Service
	}

	//session represents state of a single Exec call
	session struct {
		*Executor
		*io.Transaction
		config   *config.Config
		db       io.Executor
		opts     *moption.Options
		metric   *metric.Metric
		state    State
		timeout  time.Duration
		builder  *builder
		target   string
		records  *records
		columns  []*sink.Column
		identity *sink.Column
		indexes  []*sink.Index
		disabled []*sink.Index

		identityInsert bool
		staged         bool
	}

	records struct {
		valueAt io.ValueAccessor
		size    int
		mapper  *io.Mapper
	}
)

// NewMergeExecutor returns new SQL Server merge executor
func NewMergeExecutor(dialect *info.Dialect, cfg info.MergeConfig) (io.MergeExecutor, error) {
	mConfig, ok := cfg.(*config.Config)
	if !ok {
		return nil, fmt.Errorf("newmergeexecutor: unexpected config type, expected %T got %T", mConfig, cfg)
	}
	return &Executor{
		dialect: dialect,
		config:  mConfig,
		meta:    metadata.New(),
	}, nil
}

// Exec merges data into database table
func (e *Executor) Exec(ctx context.Context, data interface{}, db *sql.DB, tableName string, options ...moption.Option) (info.MergeResult, error) {
	s := &session{
		Executor: e,
		config:   e.config,
		opts:     moption.NewOptions(options...),
		metric:   metric.New(tableName),
	}
	s.timeout = s.opts.GetCommandTimeout()
	err := s.exec(ctx, data, db, tableName)
	return s.metric, err
}

func (s *session) exec(ctx context.Context, data interface{}, db *sql.DB, tableName string) (err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			s.state = StateFailed
		}
		s.metric.State = s.state.String()
		s.metric.Err = err
		s.metric.ElapsedTime = time.Since(start)
		s.metric.Reportf("# TOTAL TIME: %s, STATE: %s", s.metric.ElapsedTime, s.state)
		for _, reporter := range s.opts.GetReporters() {
			reporter.ReportMerge(s.metric, err)
		}
	}()
	if err = s.config.Validate(); err != nil {
		return err
	}
	s.state = StateValidated
	if s.records, err = s.recordsOf(data); err != nil {
		return err
	}
	s.metric.InSrcCnt = s.records.size
	if s.records.size == 0 {
		s.state = StateDone
		return nil
	}
	release, err := s.connect(ctx, db)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := release(); cErr != nil && err == nil {
			err = cErr
		}
	}()
	err = s.run(ctx, tableName)
	err = s.cleanup(ctx, err)
	var identities []identityValue
	if err == nil && s.identity != nil {
		identities, err = s.readIdentities(ctx)
		err = s.cleanupOutput(ctx, err)
	}
	if err = s.end(err); err != nil {
		return err
	}
	if s.identity != nil {
		if err = s.assignIdentities(identities); err != nil {
			return err
		}
		s.state = StateIdentitySynced
	}
	s.state = StateDone
	return nil
}

func (s *session) run(ctx context.Context, tableName string) error {
	if err := s.probe(ctx, tableName); err != nil {
		return err
	}
	if err := s.stage(ctx); err != nil {
		return err
	}
	s.state = StateStagingBuilt
	if len(s.indexes) > 0 {
		if err := s.disableIndexes(ctx); err != nil {
			return s.withRebuild(ctx, err)
		}
		s.state = StateIndexesDisabled
	}
	if s.identity != nil {
		if err := s.createOutput(ctx); err != nil {
			return s.withRebuild(ctx, err)
		}
	}
	s.state = StateMerging
	if err := s.merge(ctx); err != nil {
		return s.withRebuild(ctx, err)
	}
	if len(s.disabled) > 0 {
		if err := s.rebuildIndexes(ctx); err != nil {
			return err
		}
		s.state = StateIndexesRebuilt
	}
	return nil
}

//withRebuild rebuilds disabled indexes after a failure
func (s *session) withRebuild(ctx context.Context, err error) error {
	if rErr := s.rebuildIndexes(ctx); rErr != nil {
		return errors.Join(err, rErr)
	}
	return err
}

func (s *session) recordsOf(data interface{}) (*records, error) {
	valueAt, size, err := io.Values(data)
	if err != nil {
		return nil, errx.New(errx.ErrConfig, "records", s.metric.Table, err)
	}
	result := &records{valueAt: valueAt, size: size}
	if size == 0 {
		return result, nil
	}
	sample := valueAt(0)
	if result.mapper, err = io.NewMapper(sample, s.config.Fields(), s.config.Tag); err != nil {
		return nil, err
	}
	if s.config.Identity.RoundTrip() && !io.IsAddressable(sample) {
		return nil, errx.Config("records", fmt.Sprintf("identity can not be assigned to %T records", sample), s.config.Identity.Field)
	}
	return result, nil
}

//connect returns executor for caller transaction, caller connection or a dedicated pool connection
func (s *session) connect(ctx context.Context, db *sql.DB) (func() error, error) {
	noop := func() error { return nil }
	if tx := s.opts.GetTransaction(); tx != nil {
		s.Transaction = &io.Transaction{Tx: tx, Global: true}
		s.db = tx
		return noop, nil
	}
	var err error
	release := noop
	conn := s.opts.GetConn()
	if conn == nil {
		if db == nil {
			return nil, errx.Config("connect", "db, connection or transaction was not supplied")
		}
		if conn, err = db.Conn(ctx); err != nil {
			return nil, fmt.Errorf("failed to open connection: %w", err)
		}
		release = conn.Close
	}
	if s.Transaction, err = io.TransactionFor(ctx, s.dialect, conn, nil); err != nil {
		_ = release()
		return nil, err
	}
	s.db = conn
	if s.Transaction != nil {
		s.db = s.Transaction.Tx
	}
	return release, nil
}

func (s *session) end(err error) error {
	if s.Transaction == nil {
		return err
	}
	if err != nil {
		return s.Transaction.RollbackWithErr(err)
	}
	return s.Transaction.Commit()
}

func (s *session) merge(ctx context.Context) error {
	start := time.Now()
	var affected int64
	defer func() {
		s.metric.MergeTime = time.Since(start)
		s.metric.AffectedCnt = int(affected)
		s.metric.Reportf("### MERGING TIME %s, AFFECTED %d OF %d RECORDS", s.metric.MergeTime, affected, s.records.size)
	}()
	stmt := s.builder.Merge(s.identityInsert)
	var err error
	if affected, err = s.execSQL(ctx, stmt.SQL, stmt.Args...); err != nil {
		return translate("merge", s.target, err, s.identityColumns()...)
	}
	s.staged = false
	return nil
}

func (s *session) identityColumns() []string {
	if s.config.Identity == nil {
		return nil
	}
	return []string{s.config.Identity.Column}
}

//command returns context with per command timeout
func (s *session) command(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

func (s *session) execSQL(ctx context.Context, SQL string, args ...interface{}) (int64, error) {
	ctx, cancel := s.command(ctx)
	defer cancel()
	if showSQL {
		log.Printf("[%v] %s %v", s.metric.ID, SQL, args)
	}
	result, err := s.db.ExecContext(ctx, SQL, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
