package load

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/io/config"
	"github.com/viant/sqlmerge/loption"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/option"
)

// Service represents bulk load service
type Service struct {
	dialect   *info.Dialect
	tableName string
	db        *sql.DB
}

// New creates instance of Service
func New(ctx context.Context, db *sql.DB, tableName string, options ...option.Option) (*Service, error) {
	dialect, err := config.Dialect(ctx, db, options...)
	if err != nil {
		return nil, err
	}
	return &Service{
		tableName: tableName,
		db:        db,
		dialect:   dialect,
	}, nil
}

// Exec bulk loads records or io.Rows into the service table, it returns number of copied rows
func (s *Service) Exec(ctx context.Context, any interface{}, options ...loption.Option) (int, error) {
	session := config.LoadSession(s.dialect)
	if session == nil {
		return 0, fmt.Errorf("failed to lookup load session for dialect %v", s.dialect.Name)
	}
	var db io.Executor = s.db
	if tx := loption.NewOptions(options...).GetTransaction(); tx != nil {
		db = tx
	}
	exec, err := session.Exec(ctx, any, db, s.tableName, options...)
	if err != nil {
		return 0, err
	}
	affected, err := exec.RowsAffected()
	return int(affected), err
}
