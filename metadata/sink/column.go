package sink

import (
	"strconv"
	"strings"
	"unicode"
)

//Column represents column metadata
type Column struct {
	Catalog         string  `sqlx:"TABLE_CATALOG"`
	Schema          string  `sqlx:"TABLE_SCHEMA"`
	Table           string  `sqlx:"TABLE_NAME"`
	Name            string  `sqlx:"COLUMN_NAME"`
	Position        int     `sqlx:"ORDINAL_POSITION"`
	Type            string  `sqlx:"DATA_TYPE"`
	Length          *int64  `sqlx:"CHARACTER_MAXIMUM_LENGTH"`
	Precision       *int64  `sqlx:"NUMERIC_PRECISION"`
	Scale           *int64  `sqlx:"NUMERIC_SCALE"`
	DateTimeScale   *int64  `sqlx:"DATETIME_PRECISION"`
	Nullable        string  `sqlx:"IS_NULLABLE"`
	Collation       *string `sqlx:"COLLATION_NAME"`
	IsAutoincrement *bool   `sqlx:"IS_AUTOINCREMENT"`
}

//IsNullable returns true if column is nullable
func (c *Column) IsNullable() bool {
	if c.Nullable == "" {
		return false
	}
	switch unicode.ToLower(rune(c.Nullable[0])) {
	case rune('y'), rune('t'), rune('1'):
		return true
	}
	return false
}

//IsIdentity returns true for identity column
func (c *Column) IsIdentity() bool {
	return c.IsAutoincrement != nil && *c.IsAutoincrement
}

//DDLType returns column type definition i.e. nvarchar(50), decimal(10,2), datetime2(7)
func (c *Column) DDLType() string {
	dataType := strings.ToLower(c.Type)
	switch dataType {
	case "char", "nchar", "varchar", "nvarchar", "binary", "varbinary":
		if c.Length == nil {
			return dataType
		}
		if *c.Length == -1 {
			return dataType + "(max)"
		}
		return dataType + "(" + strconv.FormatInt(*c.Length, 10) + ")"
	case "decimal", "numeric":
		if c.Precision == nil {
			return dataType
		}
		scale := int64(0)
		if c.Scale != nil {
			scale = *c.Scale
		}
		return dataType + "(" + strconv.FormatInt(*c.Precision, 10) + "," + strconv.FormatInt(scale, 10) + ")"
	case "datetime2", "datetimeoffset", "time":
		if c.DateTimeScale == nil {
			return dataType
		}
		return dataType + "(" + strconv.FormatInt(*c.DateTimeScale, 10) + ")"
	}
	return dataType
}
