package sink

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestColumn_DDLType(t *testing.T) {
	intPtr := func(i int64) *int64 { return &i }
	var useCases = []struct {
		description string
		column      Column
		expect      string
	}{
		{description: "int", column: Column{Type: "int"}, expect: "int"},
		{description: "nvarchar", column: Column{Type: "nvarchar", Length: intPtr(50)}, expect: "nvarchar(50)"},
		{description: "nvarchar max", column: Column{Type: "NVARCHAR", Length: intPtr(-1)}, expect: "nvarchar(max)"},
		{description: "decimal", column: Column{Type: "decimal", Precision: intPtr(18), Scale: intPtr(4)}, expect: "decimal(18,4)"},
		{description: "datetime2", column: Column{Type: "datetime2", DateTimeScale: intPtr(3)}, expect: "datetime2(3)"},
		{description: "datetime", column: Column{Type: "datetime", DateTimeScale: intPtr(3)}, expect: "datetime"},
	}
	for _, useCase := range useCases {
		assert.EqualValues(t, useCase.expect, useCase.column.DDLType(), useCase.description)
	}
}

func TestColumn_Flags(t *testing.T) {
	yes := true
	column := Column{Nullable: "YES", IsAutoincrement: &yes}
	assert.True(t, column.IsNullable())
	assert.True(t, column.IsIdentity())
	assert.False(t, (&Column{Nullable: "NO"}).IsNullable())
	assert.False(t, (&Column{}).IsIdentity())
}
