package loption

import (
	"database/sql"
	"encoding/json"
	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/viant/sqlmerge/option"
	"time"
)

type (
	//Options represents bulk load options
	Options struct {
		tx            *sql.Tx
		hint          string
		batchSize     int
		timeout       time.Duration
		notifyAfter   int
		onCopied      []func(copied int)
		streaming     bool
		bulkOptions   *mssql.BulkOptions
		commonOptions option.Options
	}

	//Option represents bulk load option
	Option func(o *Options)
)

//NewOptions creates load options
func NewOptions(options ...Option) *Options {
	ret := &Options{}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

//WithTransaction sets caller owned transaction
func WithTransaction(tx *sql.Tx) Option {
	return func(o *Options) {
		o.tx = tx
	}
}

//WithHint sets provider copy options as JSON, i.e. {"KeepNulls":true,"Tablock":true}
func WithHint(hint string) Option {
	return func(o *Options) {
		o.hint = hint
	}
}

//WithBatchSize sets number of rows sent per batch
func WithBatchSize(size int) Option {
	return func(o *Options) {
		o.batchSize = size
	}
}

//WithTimeout sets bulk load timeout
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.timeout = timeout
	}
}

//WithNotifyAfter sets rows copied notification interval and callbacks
func WithNotifyAfter(rows int, callbacks ...func(copied int)) Option {
	return func(o *Options) {
		o.notifyAfter = rows
		o.onCopied = append(o.onCopied, callbacks...)
	}
}

//WithStreaming enables streaming rows directly from records
func WithStreaming(streaming bool) Option {
	return func(o *Options) {
		o.streaming = streaming
	}
}

//WithBulkOptions sets provider copy options
func WithBulkOptions(bulkOptions mssql.BulkOptions) Option {
	return func(o *Options) {
		o.bulkOptions = &bulkOptions
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
	return o.tx
}

func (o *Options) GetHint() string {
	return o.hint
}

func (o *Options) GetBatchSize() int {
	return o.batchSize
}

func (o *Options) GetTimeout() time.Duration {
	return o.timeout
}

func (o *Options) GetNotifyAfter() int {
	return o.notifyAfter
}

func (o *Options) GetStreaming() bool {
	return o.streaming
}

func (o *Options) GetCommonOptions() option.Options {
	return o.commonOptions
}

//Notify calls rows copied callbacks on every notification interval, and once at the end for the remainder
func (o *Options) Notify(copied int, final bool) {
	if len(o.onCopied) == 0 || o.notifyAfter <= 0 || copied == 0 {
		return
	}
	if onInterval := copied%o.notifyAfter == 0; onInterval == final {
		return
	}
	for _, fn := range o.onCopied {
		fn(copied)
	}
}

//BulkOptions returns provider copy options, hint is applied first, then explicit options and batch size
func (o *Options) BulkOptions() (mssql.BulkOptions, error) {
	var result mssql.BulkOptions
	if o.hint != "" {
		if err := json.Unmarshal([]byte(o.hint), &result); err != nil {
			return result, err
		}
	}
	if o.bulkOptions != nil {
		result = *o.bulkOptions
	}
	if o.batchSize > 0 {
		result.RowsPerBatch = o.batchSize
	}
	return result, nil
}
