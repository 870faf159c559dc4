package merge

import (
	"github.com/viant/sqlmerge/metadata/product/sqlserver"
	_ "github.com/viant/sqlmerge/metadata/product/sqlserver/load"
	"github.com/viant/sqlmerge/metadata/registry"
)

func init() {
	registry.RegisterMergeExecutorResolver(NewMergeExecutor, sqlserver.SQLServer().Name)
}
