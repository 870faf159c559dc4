package config

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/viant/sqlmerge/metadata"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/metadata/registry"
	"github.com/viant/sqlmerge/option"
)

//Dialect returns a dialect for supplied dialect or product option, it detects product otherwise
func Dialect(ctx context.Context, db *sql.DB, opts ...option.Option) (*info.Dialect, error) {
	options := option.Options(opts)
	if dialect := options.Dialect(); dialect != nil {
		return dialect, nil
	}
	product := options.Product()
	if product == nil {
		if db == nil {
			return nil, fmt.Errorf("missing product option")
		}
		var err error
		meta := metadata.New()
		product, err = meta.DetectProduct(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("missing product option: %T %v", db, err)
		}
	}
	dialect := registry.LookupDialect(product)
	if dialect == nil {
		return nil, fmt.Errorf("failed to detect dialect for product: %v", product.Name)
	}
	return dialect, nil
}
