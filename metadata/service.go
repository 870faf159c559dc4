package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/metadata/database"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/metadata/registry"
	"github.com/viant/sqlmerge/option"
	"strings"
	"sync"
)

type (
	//Sink represents metadata destination: *string, *[]string, *struct or *[]struct
	Sink interface{}

	//Service represents metadata service
	Service struct {
		dialect *info.Dialect
		mux     sync.Mutex
		recent
	}

	recent struct {
		db      *sql.DB
		product *database.Product
	}
)

//DetectProduct detect product for supplied *sql.DB
func (s *Service) DetectProduct(ctx context.Context, db *sql.DB) (*database.Product, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if product := s.recent.match(db); product != nil {
		s.dialect = registry.LookupDialect(product)
		return product, nil
	}
	product, err := s.matchProduct(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to detect product: %w", err)
	}
	s.recent.db = db
	s.recent.product = product
	s.dialect = registry.LookupDialect(product)
	return product, nil
}

//Info execute the metadata kind corresponding Query, result are passed to sink
func (s *Service) Info(ctx context.Context, db io.Executor, kind info.Kind, sink Sink, options ...option.Option) error {
	product := option.Options(options).Product()
	if product == nil {
		aDB, ok := db.(*sql.DB)
		if !ok {
			return fmt.Errorf("missing product option for %T", db)
		}
		var err error
		if product, err = s.DetectProduct(ctx, aDB); err != nil {
			return err
		}
	}
	queries := registry.Lookup(product.Name, kind)
	if len(queries) == 0 {
		return fmt.Errorf("unsupported kind: %s for: %s", kind, product.Name)
	}
	query := queries.Match(product)
	if query == nil {
		return fmt.Errorf("unsupported kind: %s, for: %sv%v", kind, product.Name, product.Major)
	}
	dialect := option.Options(options).Dialect()
	if dialect == nil {
		dialect = registry.LookupDialect(product)
	}
	return s.runQuery(ctx, db, dialect, query, sink, options...)
}

func (s *Service) matchProduct(ctx context.Context, db *sql.DB) (*database.Product, error) {
	product := registry.MatchProduct(db)
	if product == nil {
		return nil, fmt.Errorf("unsupported driver: %T", db.Driver())
	}
	versionQueries := registry.Lookup(product.Name, info.KindVersion)
	if len(versionQueries) == 0 {
		return product, nil
	}
	var version string
	if err := s.runQuery(ctx, db, registry.LookupDialect(product), versionQueries[0], &version); err != nil {
		return nil, err
	}
	detected, err := database.Parse([]byte(version))
	if err != nil {
		return nil, fmt.Errorf("failed to parse version %q: %w", version, err)
	}
	product.Major = detected.Major
	product.Minor = detected.Minor
	product.Release = detected.Release
	return product, nil
}

func (s *Service) runQuery(ctx context.Context, db io.Executor, dialect *info.Dialect, query *info.Query, sink Sink, options ...option.Option) error {
	args := option.Options(options).Args()
	placeholderGetter := func() string {
		return "?"
	}
	if dialect != nil {
		placeholderGetter = dialect.PlaceholderGetter()
	}
	SQL, params, err := prepareSQL(query, placeholderGetter, args)
	if err != nil {
		return err
	}
	rows, err := db.QueryContext(ctx, SQL, params...)
	if err != nil {
		return fmt.Errorf("failed to query %v: %w", query.Kind, err)
	}
	defer rows.Close()
	switch value := sink.(type) {
	case *string:
		err = fetchToString(rows, value)
	case *[]string:
		err = fetchToStrings(rows, value)
	default:
		err = fetchStruct(rows, value)
	}
	if err != nil {
		return err
	}
	return rows.Err()
}

func prepareSQL(query *info.Query, placeholderGetter func() string, argsOpt *option.Args) (string, []interface{}, error) {
	args := argsOpt.Unwrap()
	var filterArgs = make([]interface{}, 0)
	if len(args) == 0 && query.Criteria.Supported() == 0 {
		return strings.Replace(query.SQL, "$WHERE", "", 1), filterArgs, nil
	}
	criteria := query.Kind.Criteria()
	if len(criteria) < len(args) {
		return "", filterArgs, fmt.Errorf("invalid arguments, len(criteria) < len(args) (%d < %d), expected: %v, but had: %v", len(criteria), len(args), criteria, args)
	}
	var criteriaValues = make([]string, 0)
	for i := range args {
		if i >= len(query.Criteria) {
			break
		}
		column := query.Criteria[i].Column
		if column == "" || args[i] == "" {
			continue
		}
		criteriaValues = append(criteriaValues, column+" = "+placeholderGetter())
		filterArgs = append(filterArgs, args[i])
	}
	SQL := query.SQL
	if len(criteriaValues) == 0 {
		return strings.Replace(SQL, "$WHERE", "", 1), filterArgs, nil
	}
	clause := strings.Join(criteriaValues, " AND ")
	if strings.Contains(SQL, "$WHERE") {
		return strings.Replace(SQL, "$WHERE", " WHERE "+clause+" ", 1), filterArgs, nil
	} else if strings.Contains(strings.ToLower(SQL), "where ") {
		return SQL + " AND " + clause, filterArgs, nil
	}
	return SQL + " WHERE " + clause, filterArgs, nil
}

//match checks if the db matched previously match product
func (r *recent) match(db *sql.DB) *database.Product {
	if r.db == db {
		return r.product
	}
	return nil
}

//New creates new metadata service
func New() *Service {
	return &Service{}
}
