package sqlserver

import (
	"github.com/viant/sqlmerge/metadata/database"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/metadata/registry"
	"log"
)

const (
	product           = "Microsoft SQL Server"
	placeholderPrefix = "@p"
)

var sqlServer = database.Product{
	Name:      product,
	DriverPkg: "mssql",
}

//SQLServer returns SQL Server product
func SQLServer() *database.Product {
	return &sqlServer
}

//Dialect returns SQL Server dialect
func Dialect() *info.Dialect {
	return dialect
}

var dialect = &info.Dialect{
	Product:             sqlServer,
	Placeholder:         placeholderPrefix,
	PlaceholderResolver: &PlaceholderGenerator{},
	Transactional:       true,
	CanMerge:            true,
	QuoteCharacter:      '[',
	DefaultSchema:       "dbo",
}

func init() {
	err := registry.Register(
		info.NewQuery(info.KindVersion, "SELECT '"+product+" - ' + CAST(SERVERPROPERTY('ProductVersion') AS NVARCHAR(128))", sqlServer),
		info.NewQuery(info.KindCurrentSchema, "SELECT DB_NAME() AS CATALOG_NAME, SCHEMA_NAME() AS SCHEMA_NAME", sqlServer),
		info.NewQuery(info.KindSession, `SELECT CAST(@@SPID AS NVARCHAR(16)) AS PID,
SUSER_SNAME() AS USER_NAME,
DB_NAME() AS CATALOG_NAME,
SCHEMA_NAME() AS SCHEMA_NAME,
APP_NAME() AS APP_NAME`, sqlServer),
		info.NewQuery(info.KindTable, `SELECT c.TABLE_CATALOG,
c.TABLE_SCHEMA,
c.TABLE_NAME,
c.COLUMN_NAME,
c.ORDINAL_POSITION,
c.DATA_TYPE,
c.CHARACTER_MAXIMUM_LENGTH,
CAST(c.NUMERIC_PRECISION AS INT) AS NUMERIC_PRECISION,
c.NUMERIC_SCALE,
c.DATETIME_PRECISION,
c.IS_NULLABLE,
c.COLLATION_NAME,
CAST(COLUMNPROPERTY(OBJECT_ID(QUOTENAME(c.TABLE_SCHEMA) + '.' + QUOTENAME(c.TABLE_NAME)), c.COLUMN_NAME, 'IsIdentity') AS BIT) AS IS_AUTOINCREMENT
FROM INFORMATION_SCHEMA.COLUMNS c $WHERE
ORDER BY c.ORDINAL_POSITION`, sqlServer,
			info.NewCriterion(info.Catalog, "c.TABLE_CATALOG"),
			info.NewCriterion(info.Schema, "c.TABLE_SCHEMA"),
			info.NewCriterion(info.Table, "c.TABLE_NAME"),
		),
		info.NewQuery(info.KindIndexes, `SELECT * FROM (SELECT DB_NAME() AS TABLE_CATALOG,
s.name AS TABLE_SCHEMA,
t.name AS TABLE_NAME,
i.name AS INDEX_NAME,
i.type_desc AS INDEX_TYPE,
i.is_unique AS INDEX_UNIQUE,
i.is_disabled AS INDEX_DISABLED
FROM sys.indexes i
JOIN sys.tables t ON i.object_id = t.object_id
JOIN sys.schemas s ON t.schema_id = s.schema_id
WHERE i.name IS NOT NULL) x $WHERE
ORDER BY INDEX_NAME`, sqlServer,
			info.NewCriterion(info.Catalog, "TABLE_CATALOG"),
			info.NewCriterion(info.Schema, "TABLE_SCHEMA"),
			info.NewCriterion(info.Table, "TABLE_NAME"),
		),
	)
	if err != nil {
		log.Printf("failed to register %v queries: %v", product, err)
	}
	registry.RegisterDialect(dialect)
}
