package merge

import (
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/metadata/product/sqlserver/merge/config"
	"github.com/viant/sqlmerge/metadata/sink"
	"strings"
)

const (
	stagingTable = "#TmpTable"
	outputTable  = "#TmpOutput"
	rowSequence  = "MergeRowSeq"
	targetAlias  = "Target"
	sourceAlias  = "Source"
)

//Statement represents SQL with bound parameters
type Statement struct {
	SQL  string
	Args []interface{}
}

//builder composes merge batch for a config
type builder struct {
	dialect *info.Dialect
	config  *config.Config
	target  string
}

func newBuilder(dialect *info.Dialect, cfg *config.Config, target string) *builder {
	return &builder{dialect: dialect, config: cfg, target: target}
}

func (b *builder) quote(name string) string {
	return b.dialect.Quote(name)
}

//Merge returns merge batch: MERGE statement followed by staging table drop
func (b *builder) Merge(identityInsert bool) *Statement {
	sb := &strings.Builder{}
	if identityInsert {
		sb.WriteString("SET IDENTITY_INSERT " + b.target + " ON;\n")
	}
	sb.WriteString("MERGE INTO ")
	sb.WriteString(b.target)
	sb.WriteString(" WITH (HOLDLOCK) AS " + targetAlias + " USING " + stagingTable + " AS " + sourceAlias)
	sb.WriteString(" ON ")
	b.appendJoin(sb)
	if updateColumns := b.config.UpdateColumns(); len(updateColumns) > 0 {
		sb.WriteString("\nWHEN MATCHED")
		b.appendConditions(sb, config.KindUpdate)
		sb.WriteString(" THEN UPDATE SET ")
		for i, column := range updateColumns {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(b.columnRef(targetAlias, column) + " = " + b.columnRef(sourceAlias, column))
		}
	}
	sb.WriteString("\nWHEN NOT MATCHED BY TARGET THEN INSERT ")
	b.appendInsert(sb)
	if b.config.DeleteWhenNotMatched {
		sb.WriteString("\nWHEN NOT MATCHED BY SOURCE")
		b.appendConditions(sb, config.KindDelete)
		sb.WriteString(" THEN DELETE")
	}
	if b.config.Identity.RoundTrip() {
		identity := b.config.Identity.Column
		sb.WriteString("\nOUTPUT " + b.columnRef(sourceAlias, rowSequence) + ", " + b.columnRef("inserted", identity))
		sb.WriteString(" INTO " + outputTable + " (" + b.quote(rowSequence) + ", " + b.quote(identity) + ")")
	}
	sb.WriteString(";\nDROP TABLE " + stagingTable + ";")
	if identityInsert {
		sb.WriteString("\nSET IDENTITY_INSERT " + b.target + " OFF;")
	}
	var args = make([]interface{}, len(b.config.Parameters))
	for i := range b.config.Parameters {
		args[i] = b.config.Parameters[i]
	}
	return &Statement{SQL: sb.String(), Args: args}
}

func (b *builder) appendJoin(sb *strings.Builder) {
	for i, column := range b.config.MatchOn {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(b.columnRef(targetAlias, column) + " = " + b.columnRef(sourceAlias, column))
		b.appendCollation(sb, column)
	}
}

func (b *builder) appendConditions(sb *strings.Builder, kind config.Kind) {
	for _, condition := range b.config.ConditionsOf(kind) {
		sb.WriteString(" AND ")
		sb.WriteString(b.columnRef(targetAlias, condition.Column))
		sb.WriteString(" ")
		sb.WriteString(string(condition.Operator))
		if condition.Operator.IsNullCheck() {
			continue
		}
		sb.WriteString(" @" + condition.Param)
		b.appendCollation(sb, condition.Column)
	}
}

func (b *builder) appendInsert(sb *strings.Builder) {
	columns := b.config.InsertColumns()
	if len(columns) == 0 {
		sb.WriteString("DEFAULT VALUES")
		return
	}
	sb.WriteString("(")
	for i, column := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.quote(column))
	}
	sb.WriteString(") VALUES (")
	for i, column := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.columnRef(sourceAlias, column))
	}
	sb.WriteString(")")
}

func (b *builder) appendCollation(sb *strings.Builder, column string) {
	if collation := b.config.Collation(column); collation != "" {
		sb.WriteString(" COLLATE " + collation)
	}
}

func (b *builder) columnRef(alias, column string) string {
	return alias + "." + b.quote(column)
}

//CreateStaging returns staging table DDL, column types follow probed target columns
func (b *builder) CreateStaging(columns []*sink.Column, withSequence bool) string {
	sb := &strings.Builder{}
	sb.WriteString("CREATE TABLE " + stagingTable + " (")
	for i, column := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		b.appendColumnDef(sb, column)
	}
	if withSequence {
		sb.WriteString(", " + b.quote(rowSequence) + " INT NOT NULL")
	}
	sb.WriteString(")")
	return sb.String()
}

//CreateOutput returns identity output table DDL
func (b *builder) CreateOutput(identity *sink.Column) string {
	return "CREATE TABLE " + outputTable + " (" + b.quote(rowSequence) + " INT NULL, " + b.quote(identity.Name) + " " + identity.DDLType() + " NULL)"
}

//SelectOutput returns identity output query ordered by row sequence
func (b *builder) SelectOutput(identity string) string {
	sequence := b.quote(rowSequence)
	column := b.quote(identity)
	return "SELECT " + sequence + ", " + column + " FROM " + outputTable +
		" WHERE " + sequence + " IS NOT NULL AND " + column + " IS NOT NULL ORDER BY " + sequence
}

//DropIfExists returns temp table drop statement
func (b *builder) DropIfExists(table string) string {
	return "IF OBJECT_ID('tempdb.." + table + "') IS NOT NULL DROP TABLE " + table
}

//IdentityInsert returns SET IDENTITY_INSERT statement
func (b *builder) IdentityInsert(on bool) string {
	if on {
		return "SET IDENTITY_INSERT " + b.target + " ON"
	}
	return "SET IDENTITY_INSERT " + b.target + " OFF"
}

//AlterIndex returns index DISABLE/REBUILD statement
func (b *builder) AlterIndex(index, action string) string {
	return "ALTER INDEX " + b.quote(index) + " ON " + b.target + " " + action
}

func (b *builder) appendColumnDef(sb *strings.Builder, column *sink.Column) {
	sb.WriteString(b.quote(column.Name))
	sb.WriteString(" ")
	sb.WriteString(column.DDLType())
	if column.Collation != nil && *column.Collation != "" {
		sb.WriteString(" COLLATE " + *column.Collation)
	}
	sb.WriteString(" NULL")
}

//targetName returns fully qualified table name
func targetName(dialect *info.Dialect, catalog, schema, table string) string {
	var parts []string
	if catalog != "" {
		parts = append(parts, dialect.Quote(catalog))
	}
	if schema != "" {
		parts = append(parts, dialect.Quote(schema))
	}
	parts = append(parts, dialect.Quote(table))
	return strings.Join(parts, ".")
}
