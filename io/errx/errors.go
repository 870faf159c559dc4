package errx

import (
	"errors"
	"strings"
)

var (
	// ErrConfig indicates invalid merge configuration, raised before any database I/O.
	ErrConfig = errors.New("invalid configuration")

	// ErrIdentity indicates identity column misconfiguration, i.e. an identity column
	// was written without being declared, or an identity value could not be assigned.
	ErrIdentity = errors.New("identity misconfiguration")

	// ErrMissingColumn indicates a configured column is absent from the probed table schema.
	ErrMissingColumn = errors.New("missing column")
)

// Error carries structured context while remaining compatible with errors.Is().
type Error struct {
	Kind    error
	Op      string
	Table   string
	Columns []string
	Detail  string
	Cause   error
}

func (e *Error) Error() string {
	sb := &strings.Builder{}
	sb.WriteString("sqlmerge")
	if e.Op != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Op)
	}
	sb.WriteString(": ")
	if e.Kind != nil {
		sb.WriteString(e.Kind.Error())
	} else {
		sb.WriteString("error")
	}
	if e.Table != "" {
		sb.WriteString(" table=")
		sb.WriteString(e.Table)
	}
	if len(e.Columns) > 0 {
		sb.WriteString(" columns=[")
		sb.WriteString(strings.Join(e.Columns, ","))
		sb.WriteString("]")
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if e.Kind != nil && target == e.Kind {
		return true
	}
	if e.Cause != nil {
		return errors.Is(e.Cause, target)
	}
	return false
}

// Config returns configuration error
func Config(op, detail string, columns ...string) error {
	return &Error{Kind: ErrConfig, Op: op, Detail: detail, Columns: columns}
}

// Identity returns identity misconfiguration error
func Identity(op, table string, cause error, columns ...string) error {
	return &Error{Kind: ErrIdentity, Op: op, Table: table, Columns: columns, Cause: cause}
}

// MissingColumn returns missing column error
func MissingColumn(op, table string, columns []string) error {
	return &Error{Kind: ErrMissingColumn, Op: op, Table: table, Columns: columns}
}

// New returns an error of the supplied kind
func New(kind error, op, table string, cause error) error {
	return &Error{Kind: kind, Op: op, Table: table, Cause: cause}
}

func IsConfig(err error) bool { return errors.Is(err, ErrConfig) }

func IsIdentity(err error) bool { return errors.Is(err, ErrIdentity) }

func IsMissingColumn(err error) bool { return errors.Is(err, ErrMissingColumn) }
