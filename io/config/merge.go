package config

import (
	"fmt"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/metadata/registry"
)

// MergeExecutor returns new merge executor for specified dialect
func MergeExecutor(dialect *info.Dialect, config info.MergeConfig) (io.MergeExecutor, error) {
	if !dialect.CanMerge {
		return nil, fmt.Errorf("merge is not supported for: %v", dialect.Name)
	}
	return registry.LookupMergeExecutor(dialect, config)
}
