package load

import (
	"github.com/viant/sqlmerge/metadata/product/sqlserver"
	"github.com/viant/sqlmerge/metadata/registry"
)

func init() {
	registry.RegisterLoad(NewSession, sqlserver.SQLServer().Name)
}
