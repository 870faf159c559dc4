package moption

import (
	"database/sql"
	"github.com/viant/sqlmerge/loption"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/option"
	"time"
)

type (
	//Options represents merge options
	Options struct {
		tx             *sql.Tx
		conn           *sql.Conn
		commandTimeout time.Duration
		loadOptions    []loption.Option
		reporters      []info.MergeReporter
		commonOptions  option.Options
	}

	//Option represents merge option
	Option func(o *Options)
)

//NewOptions creates merge options
func NewOptions(options ...Option) *Options {
	ret := &Options{}
	for _, item := range options {
		item(ret)
	}
	return ret
}

//WithTransaction sets caller owned transaction, commit and rollback are left to the caller
func WithTransaction(tx *sql.Tx) Option {
	return func(o *Options) {
		o.tx = tx
	}
}

//WithConn sets caller owned connection
func WithConn(conn *sql.Conn) Option {
	return func(o *Options) {
		o.conn = conn
	}
}

//WithCommandTimeout sets timeout applied to every issued command
func WithCommandTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.commandTimeout = timeout
	}
}

//WithLoadOptions sets staging bulk load options
func WithLoadOptions(loadOptionSlice []loption.Option) Option {
	return func(o *Options) {
		o.loadOptions = loadOptionSlice
	}
}

//WithReporter adds merge reporter
func WithReporter(reporter info.MergeReporter) Option {
	return func(o *Options) {
		o.reporters = append(o.reporters, reporter)
	}
}

//WithCommonOptions sets common options
func WithCommonOptions(commonOptions option.Options) Option {
	return func(o *Options) {
		o.commonOptions = commonOptions
	}
}

//Apply applies options
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

func (o *Options) GetTransaction() *sql.Tx {
	if o.tx != nil {
		return o.tx
	}
	return o.commonOptions.Tx()
}

func (o *Options) GetConn() *sql.Conn {
	if o.conn != nil {
		return o.conn
	}
	return o.commonOptions.Conn()
}

func (o *Options) GetCommandTimeout() time.Duration {
	if o.commandTimeout > 0 {
		return o.commandTimeout
	}
	return o.commonOptions.CommandTimeout()
}

func (o *Options) GetLoadOptions() []loption.Option {
	return o.loadOptions
}

func (o *Options) GetReporters() []info.MergeReporter {
	return o.reporters
}

func (o *Options) GetCommonOptions() option.Options {
	return o.commonOptions
}
