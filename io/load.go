package io

import (
	"context"
	"database/sql"
	"github.com/viant/sqlmerge/loption"
	"github.com/viant/sqlmerge/metadata/info"
)

//SessionResolver returns new Session configured with given Dialect
type SessionResolver = func(dialect *info.Dialect) Session

//Session represents bulk load session e.g. SQL Server bulk copy
type Session interface {
	Exec(ctx context.Context, data interface{}, db Executor, tableName string, options ...loption.Option) (sql.Result, error)
}
