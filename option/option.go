package option

import (
	"database/sql"
	"github.com/viant/sqlmerge/metadata/database"
	"github.com/viant/sqlmerge/metadata/info"
	"time"
	"unsafe"
)

const (
	//TagSqlx defines sqlx annotation
	TagSqlx = "sqlx"
)

//Option represents generic option
type Option interface{}

//Options represents generic options
type Options []Option

//Tag represent a annotation tag name
type Tag string

//CommandTimeout represents per command timeout
type CommandTimeout time.Duration

//Tag returns annotation tag, default sqlx
func (o Options) Tag() string {
	for _, candidate := range o {
		if tagOpt, ok := candidate.(Tag); ok {
			return string(tagOpt)
		}
	}
	return TagSqlx
}

//Dialect returns dialect
func (o Options) Dialect() *info.Dialect {
	for _, candidate := range o {
		if dialect, ok := candidate.(*info.Dialect); ok {
			return dialect
		}
	}
	return nil
}

//Product returns product
func (o Options) Product() *database.Product {
	for _, candidate := range o {
		if dialect, ok := candidate.(*info.Dialect); ok {
			return &dialect.Product
		}
		if product, ok := candidate.(*database.Product); ok {
			return product
		}
	}
	return nil
}

//Tx returns *sql.Tx or nil
func (o Options) Tx() *sql.Tx {
	for _, candidate := range o {
		if v, ok := candidate.(*sql.Tx); ok {
			return v
		}
	}
	return nil
}

//Conn returns *sql.Conn or nil
func (o Options) Conn() *sql.Conn {
	for _, candidate := range o {
		if v, ok := candidate.(*sql.Conn); ok {
			return v
		}
	}
	return nil
}

//CommandTimeout returns command timeout or zero
func (o Options) CommandTimeout() time.Duration {
	for _, candidate := range o {
		if v, ok := candidate.(CommandTimeout); ok {
			return time.Duration(v)
		}
	}
	return 0
}

//Args returns metadata query arguments
func (o Options) Args() *Args {
	for _, candidate := range o {
		if value, ok := candidate.(*Args); ok {
			return value
		}
	}
	return nil
}

func (o Options) Interfaces() []interface{} {
	return *(*[]interface{})(unsafe.Pointer(&o))
}

//AsOptions case slice of interface to Options
func AsOptions(options []interface{}) Options {
	return *(*Options)(unsafe.Pointer(&options))
}
