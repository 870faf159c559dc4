package merge

import (
	"context"
	"fmt"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/loption"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/metadata/registry"
	"github.com/viant/sqlmerge/metadata/sink"
	"github.com/viant/sqlmerge/option"
	"strings"
	"time"
)

//tableName represents parsed target table name
type tableName struct {
	catalog string
	schema  string
	name    string
}

func parseTableName(name string) *tableName {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") {
			part = strings.ReplaceAll(part[1:len(part)-1], "]]", "]")
		}
		parts[i] = part
	}
	result := &tableName{name: parts[len(parts)-1]}
	switch len(parts) {
	case 2:
		result.schema = parts[0]
	case 3:
		result.catalog, result.schema = parts[0], parts[1]
	}
	return result
}

//probe reads target table schema, validates configured columns and selects indexes to disable
func (s *session) probe(ctx context.Context, name string) error {
	start := time.Now()
	defer func() {
		s.metric.ProbeTime = time.Since(start)
		s.metric.Reportf("### PROBING TIME %s, COLUMNS %d", s.metric.ProbeTime, len(s.columns))
	}()
	table := parseTableName(name)
	if table.schema == "" {
		table.schema = s.config.Schema
	}
	if table.catalog == "" {
		current := sink.Schema{}
		if err := s.info(ctx, info.KindCurrentSchema, &current); err != nil {
			return err
		}
		table.catalog = current.Catalog
	}
	if table.schema == "" {
		table.schema = s.dialect.DefaultSchema
	}
	s.target = targetName(s.dialect, table.catalog, table.schema, table.name)
	s.metric.Table = s.target
	var columns []*sink.Column
	if err := s.info(ctx, info.KindTable, &columns, option.NewArgs(table.catalog, table.schema, table.name)); err != nil {
		return err
	}
	if err := s.matchColumns(columns); err != nil {
		return err
	}
	s.builder = newBuilder(s.dialect, s.config, s.target)
	if !s.config.DisableAllIndexes && len(s.config.DisableIndexes) == 0 {
		return nil
	}
	var indexes []*sink.Index
	if err := s.info(ctx, info.KindIndexes, &indexes, option.NewArgs("", table.schema, table.name)); err != nil {
		return err
	}
	return s.matchIndexes(indexes)
}

func (s *session) info(ctx context.Context, kind info.Kind, dest interface{}, options ...option.Option) error {
	ctx, cancel := s.command(ctx)
	defer cancel()
	options = append(options, s.dialect)
	return s.meta.Info(ctx, s.db, kind, dest, options...)
}

func (s *session) matchColumns(columns []*sink.Column) error {
	byName := make(map[string]*sink.Column, len(columns))
	for _, column := range columns {
		byName[strings.ToLower(column.Name)] = column
	}
	var missing []string
	names := make(map[string]string, len(s.config.Columns))
	for _, column := range s.config.Columns {
		probed, ok := byName[strings.ToLower(column.Name)]
		if !ok {
			missing = append(missing, column.Name)
			continue
		}
		names[strings.ToLower(column.Name)] = probed.Name
		if probed.IsIdentity() && !s.config.IsIdentity(probed.Name) {
			return errx.Identity("probe", s.target, fmt.Errorf("identity column %v was not declared", probed.Name), probed.Name)
		}
		s.columns = append(s.columns, probed)
		if !s.config.IsIdentity(probed.Name) {
			continue
		}
		if s.config.Identity.RoundTrip() {
			s.identity = probed
		}
		s.identityInsert = s.config.Identity.Preset() && probed.IsIdentity()
	}
	if len(missing) > 0 {
		return errx.MissingColumn("probe", s.target, missing)
	}
	s.config = s.config.WithColumnNames(names)
	return nil
}

//stage creates staging table and bulk loads records into it
func (s *session) stage(ctx context.Context) error {
	start := time.Now()
	var loaded int64
	defer func() {
		s.metric.StageTime = time.Since(start)
		s.metric.StagedCnt = int(loaded)
		s.metric.Reportf("### STAGING TIME %s FOR %d OF %d RECORDS", s.metric.StageTime, loaded, s.records.size)
	}()
	roundTrip := s.identity != nil
	s.staged = true
	if _, err := s.execSQL(ctx, s.builder.DropIfExists(stagingTable)); err != nil {
		return err
	}
	if _, err := s.execSQL(ctx, s.builder.CreateStaging(s.columns, roundTrip)); err != nil {
		return fmt.Errorf("failed to create staging table for %v: %w", s.target, err)
	}
	loader := registry.MatchLoadSession(s.dialect)
	if loader == nil {
		return fmt.Errorf("unsupported bulk load for: %v", s.dialect.Name)
	}
	sequence := ""
	if roundTrip {
		sequence = rowSequence
	}
	rows := io.NewRecordRows(s.config.ColumnNames(), s.records.mapper, s.records.valueAt, s.records.size, sequence)
	result, err := loader.Exec(ctx, rows, s.db, stagingTable, s.loadOptions()...)
	if err != nil {
		return fmt.Errorf("failed to load staging table for %v: %w", s.target, err)
	}
	if loaded, err = result.RowsAffected(); err != nil {
		return err
	}
	if int(loaded) != s.records.size {
		return fmt.Errorf("loaded only %d of %d records into staging table for %v", loaded, s.records.size, s.target)
	}
	return nil
}

func (s *session) loadOptions() []loption.Option {
	var result []loption.Option
	if s.timeout > 0 {
		result = append(result, loption.WithTimeout(s.timeout))
	}
	result = append(result, s.opts.GetLoadOptions()...)
	if s.Transaction != nil && s.Transaction.Tx != nil {
		result = append(result, loption.WithTransaction(s.Transaction.Tx))
	}
	return result
}

func (s *session) createOutput(ctx context.Context) error {
	if _, err := s.execSQL(ctx, s.builder.DropIfExists(outputTable)); err != nil {
		return err
	}
	if _, err := s.execSQL(ctx, s.builder.CreateOutput(s.identity)); err != nil {
		return fmt.Errorf("failed to create identity output table for %v: %w", s.target, err)
	}
	return nil
}

//cleanup drops staging tables left by a failed merge, cleanup failures are reported but the original error is returned
func (s *session) cleanup(ctx context.Context, err error) error {
	if err == nil || s.builder == nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)
	var SQLs []string
	if s.staged {
		SQLs = append(SQLs, s.builder.DropIfExists(stagingTable))
	}
	if s.identity != nil {
		SQLs = append(SQLs, s.builder.DropIfExists(outputTable))
	}
	if s.identityInsert {
		SQLs = append(SQLs, s.builder.IdentityInsert(false))
	}
	for _, SQL := range SQLs {
		if _, cErr := s.execSQL(ctx, SQL); cErr != nil {
			s.metric.Reportf("### CLEANUP FAILED %s: %v", SQL, cErr)
		}
	}
	return err
}

//cleanupOutput drops identity output table
func (s *session) cleanupOutput(ctx context.Context, err error) error {
	_, dErr := s.execSQL(context.WithoutCancel(ctx), s.builder.DropIfExists(outputTable))
	if err != nil {
		return err
	}
	return dErr
}
