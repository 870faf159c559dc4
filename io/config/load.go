package config

import (
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/metadata/registry"
)

// LoadSession Returns new session for specified Dialect
func LoadSession(dialect *info.Dialect) io.Session {
	return registry.MatchLoadSession(dialect)
}
