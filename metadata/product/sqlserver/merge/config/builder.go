package config

import (
	"database/sql"
	"fmt"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/option"
	"strings"
)

type (
	//Builder builds merge Config, field names are resolved to target columns once, in Build
	Builder struct {
		tag                  string
		schema               string
		fields               []string
		sample               interface{}
		mappings             map[string]string
		matchOn              []string
		excluded             []string
		collations           map[string]string
		identity             *Identity
		deleteWhenNotMatched bool
		predicates           []predicate
		disableIndexes       []string
		disableAllIndexes    bool
		err                  error
	}

	predicate struct {
		Predicate
		kind Kind
	}
)

//NewBuilder creates a config builder
func NewBuilder() *Builder {
	return &Builder{tag: option.TagSqlx, mappings: map[string]string{}, collations: map[string]string{}}
}

//WithTag sets struct tag name used to resolve column names
func (b *Builder) WithTag(tag string) *Builder {
	b.tag = tag
	return b
}

//WithSchema sets target table schema
func (b *Builder) WithSchema(schema string) *Builder {
	b.schema = schema
	return b
}

//AddColumns adds record fields to merge
func (b *Builder) AddColumns(fields ...string) *Builder {
	for _, field := range fields {
		if strings.TrimSpace(field) == "" {
			b.setError(errx.Config("add column", "column was empty"))
			continue
		}
		b.fields = append(b.fields, field)
	}
	return b
}

//AllColumns adds all mappable fields of sample record, autoincrement tagged field is declared identity
func (b *Builder) AllColumns(sample interface{}) *Builder {
	b.sample = sample
	return b
}

//MapColumn maps record field to target column
func (b *Builder) MapColumn(field, column string) *Builder {
	b.mappings[field] = column
	return b
}

//MatchTargetOn sets match key fields
func (b *Builder) MatchTargetOn(fields ...string) *Builder {
	b.matchOn = append(b.matchOn, fields...)
	return b
}

//ExcludeColumnFromUpdate excludes fields from WHEN MATCHED THEN UPDATE
func (b *Builder) ExcludeColumnFromUpdate(fields ...string) *Builder {
	b.excluded = append(b.excluded, fields...)
	return b
}

//SetCollationOnColumn sets collation used when comparing field column
func (b *Builder) SetCollationOnColumn(field, collation string) *Builder {
	b.collations[field] = collation
	return b
}

//SetIdentityColumn declares identity field
func (b *Builder) SetIdentityColumn(field string, direction Direction) *Builder {
	b.identity = &Identity{Field: field, Direction: direction}
	return b
}

//DeleteWhenNotMatched enables WHEN NOT MATCHED BY SOURCE THEN DELETE
func (b *Builder) DeleteWhenNotMatched(flag bool) *Builder {
	b.deleteWhenNotMatched = flag
	return b
}

//UpdateWhen adds predicate gating updates
func (b *Builder) UpdateWhen(p Predicate) *Builder {
	b.predicates = append(b.predicates, predicate{Predicate: p, kind: KindUpdate})
	return b
}

//DeleteWhen adds predicate gating deletes
func (b *Builder) DeleteWhen(p Predicate) *Builder {
	b.predicates = append(b.predicates, predicate{Predicate: p, kind: KindDelete})
	return b
}

//DisableIndexes disables named non clustered indexes for the merge duration
func (b *Builder) DisableIndexes(names ...string) *Builder {
	b.disableIndexes = append(b.disableIndexes, names...)
	return b
}

//DisableAllIndexes disables all non clustered indexes for the merge duration
func (b *Builder) DisableAllIndexes() *Builder {
	b.disableAllIndexes = true
	return b
}

//Build resolves column mappings and returns validated config
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	mappings := make(map[string]string)
	var fields = append([]string{}, b.fields...)
	identity := b.identity
	if b.sample != nil {
		structColumns, err := io.StructColumns(b.sample, b.tag)
		if err != nil {
			return nil, err
		}
		for _, column := range structColumns {
			fields = appendUnique(fields, column.Field)
			mappings[column.Field] = column.Column
			if column.Identity && identity == nil {
				identity = &Identity{Field: column.Field, Direction: IdentityInputOutput}
			}
		}
	}
	for field, column := range b.mappings {
		mappings[field] = column
	}
	columnOf := func(field string) string {
		if column, ok := mappings[field]; ok {
			return column
		}
		return field
	}
	cfg := &Config{
		Tag:                  b.tag,
		Schema:               b.schema,
		DeleteWhenNotMatched: b.deleteWhenNotMatched,
		DisableAllIndexes:    b.disableAllIndexes,
		Collations:           map[string]string{},
	}
	if len(b.disableIndexes) > 0 {
		cfg.DisableIndexes = append([]string{}, b.disableIndexes...)
	}
	for _, field := range fields {
		cfg.Columns = append(cfg.Columns, Column{Field: field, Name: columnOf(field)})
	}
	//column references use the column set spelling
	columnRef := func(field string) string {
		column := columnOf(field)
		for _, candidate := range cfg.Columns {
			if strings.EqualFold(candidate.Name, column) {
				return candidate.Name
			}
		}
		return column
	}
	for _, field := range b.matchOn {
		cfg.MatchOn = append(cfg.MatchOn, columnRef(field))
	}
	for _, field := range b.excluded {
		cfg.ExcludeFromUpdate = append(cfg.ExcludeFromUpdate, columnRef(field))
	}
	for field, collation := range b.collations {
		column := columnRef(field)
		if prev, ok := cfg.Collations[column]; ok && prev != collation {
			return nil, errx.Config("build", fmt.Sprintf("conflicting collations: %v, %v", prev, collation), column)
		}
		cfg.Collations[column] = collation
	}
	if identity != nil {
		cfg.Identity = &Identity{Field: identity.Field, Column: columnRef(identity.Field), Direction: identity.Direction}
	}
	var params []sql.NamedArg
	for i, item := range b.predicates {
		mapped := item.Predicate
		mapped.Column = columnRef(item.Column)
		if err := AddPredicate(mapped, item.kind, &cfg.Conditions, &params, i+1, ParamPrefix); err != nil {
			return nil, err
		}
	}
	cfg.Parameters = params
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (b *Builder) setError(err error) {
	if b.err == nil {
		b.err = err
	}
}

func appendUnique(fields []string, field string) []string {
	for _, candidate := range fields {
		if candidate == field {
			return fields
		}
	}
	return append(fields, field)
}
