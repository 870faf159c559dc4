package registry

import (
	"fmt"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/metadata/database"
	"github.com/viant/sqlmerge/metadata/info"
	"sort"
	"strings"
	"sync"
)

var _registry = &registry{
	queries:  make(map[string][]info.Queries),
	products: make(map[string]*database.Product),
	dialects: make(map[string]info.Dialects),
	loads:    make(map[string]io.SessionResolver),
	mergers:  make(map[string]io.MergeExecutorResolver),
}

//Register register query info
func Register(queries ...*info.Query) error {
	return _registry.Register(queries...)
}

//RegisterLoad register load session provider
func RegisterLoad(load io.SessionResolver, productName string) {
	_registry.mux.Lock()
	defer _registry.mux.Unlock()
	_registry.loads[productName] = load
}

//MatchLoadSession returns load Session for Dialect
func MatchLoadSession(dialect *info.Dialect) io.Session {
	resolver, ok := _registry.loads[dialect.Product.Name]
	if !ok {
		return nil
	}
	return resolver(dialect)
}

//RegisterMergeExecutorResolver register merge executor provider
func RegisterMergeExecutorResolver(resolver io.MergeExecutorResolver, productName string) {
	_registry.mux.Lock()
	defer _registry.mux.Unlock()
	_registry.mergers[productName] = resolver
}

//LookupMergeExecutor returns merge executor for dialect
func LookupMergeExecutor(dialect *info.Dialect, config info.MergeConfig) (io.MergeExecutor, error) {
	resolver, ok := _registry.mergers[dialect.Product.Name]
	if !ok {
		return nil, fmt.Errorf("merge is not supported for: %v", dialect.Product.Name)
	}
	return resolver(dialect, config)
}

//RegisterDialect register dialect
func RegisterDialect(dialect *info.Dialect) {
	_registry.RegisterDialect(dialect)
}

//Lookup lookups queries
func Lookup(product string, kind info.Kind) info.Queries {
	return _registry.Lookup(product, kind)
}

//Products access products registry
func Products() map[string]*database.Product {
	return _registry.products
}

//LookupDialect lookups dialect
func LookupDialect(product *database.Product) *info.Dialect {
	return _registry.LookupDialect(product)
}

type registry struct {
	mux      sync.Mutex
	queries  map[string][]info.Queries
	products map[string]*database.Product
	dialects map[string]info.Dialects
	loads    map[string]io.SessionResolver
	mergers  map[string]io.MergeExecutorResolver
}

func (r *registry) LookupDialect(product *database.Product) *info.Dialect {
	dialects, ok := r.dialects[product.Name]
	if !ok || len(dialects) == 0 {
		return nil
	}
	result := dialects[0]
	for _, candidate := range dialects {
		if product.Equal(&candidate.Product) {
			return candidate
		}
		if candidate.Major <= product.Major {
			result = candidate
		}
	}
	return result
}

func (r *registry) RegisterDialect(dialect *info.Dialect) {
	r.mux.Lock()
	defer r.mux.Unlock()
	dialects := r.dialects[dialect.Name]
	for _, item := range dialects {
		if item.Product.Equal(&dialect.Product) {
			return
		}
	}
	r.dialects[dialect.Name] = append(dialects, dialect)
	sort.Sort(r.dialects[dialect.Name])
}

func (r *registry) Lookup(product string, kind info.Kind) info.Queries {
	byKind, ok := r.queries[product]
	if !ok {
		return nil
	}
	return byKind[kind]
}

func (r *registry) Register(queries ...*info.Query) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	for i, query := range queries {
		if err := query.Criteria.Validate(query.Kind); err != nil {
			return err
		}
		if _, ok := r.queries[query.Product.Name]; !ok {
			r.queries[query.Product.Name] = make([]info.Queries, info.KindReserved+1)
		}
		if _, ok := r.products[strings.ToLower(query.Product.Name)]; !ok || query.Kind == info.KindVersion {
			r.products[strings.ToLower(query.Product.Name)] = &query.Product
		}
		r.queries[query.Product.Name][query.Kind] = append(r.queries[query.Product.Name][query.Kind], queries[i])
		sort.Sort(r.queries[query.Product.Name][query.Kind])
	}
	return nil
}
