package config

import (
	"context"
	"database/sql"
	"github.com/viant/sqlmerge/metadata"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/metadata/sink"
	"github.com/viant/sqlmerge/option"
)

//Session retrieve basic data from the database connection
func Session(ctx context.Context, db *sql.DB, options ...option.Option) (*sink.Session, error) {
	meta := metadata.New()
	session := new(sink.Session)
	err := meta.Info(ctx, db, info.KindSession, session, options...)
	return session, err
}
