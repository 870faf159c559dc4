package io

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

type invoice struct {
	ID      int       `sqlx:"name=Id,autoincrement"`
	Name    string    `sqlx:"name=InvoiceName"`
	Amount  *float64
	Created time.Time
	Notes   string `sqlx:"-"`
	hidden  int
}

func TestMapper_Values(t *testing.T) {
	amount := 12.5
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	var useCases = []struct {
		description string
		record      interface{}
		fields      []string
		expect      []interface{}
	}{
		{
			description: "struct pointer with tag lookup",
			record:      &invoice{ID: 1, Name: "A", Amount: &amount, Created: now},
			fields:      []string{"ID", "InvoiceName", "Amount", "Created"},
			expect:      []interface{}{1, "A", 12.5, now},
		},
		{
			description: "struct value with nil pointer",
			record:      invoice{ID: 2, Name: "B"},
			fields:      []string{"Name", "Amount"},
			expect:      []interface{}{"B", nil},
		},
		{
			description: "map record",
			record:      map[string]interface{}{"Id": 3, "Name": "C"},
			fields:      []string{"Name", "Id", "Missing"},
			expect:      []interface{}{"C", 3, nil},
		},
	}

	for _, useCase := range useCases {
		mapper, err := NewMapper(useCase.record, useCase.fields, "sqlx")
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		actual, err := mapper.Values(useCase.record, nil)
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		assert.EqualValues(t, useCase.expect, actual, useCase.description)
	}
}

func TestNewMapper_Error(t *testing.T) {
	_, err := NewMapper(&invoice{}, []string{"Unknown"}, "sqlx")
	assert.NotNil(t, err)
	_, err = NewMapper(&invoice{}, []string{"Notes"}, "sqlx")
	assert.NotNil(t, err)
	_, err = NewMapper(1, []string{"x"}, "sqlx")
	assert.NotNil(t, err)
}

func TestMapper_Set(t *testing.T) {
	type wide struct {
		ID64 int64
		ID32 int32
		IDP  *int
		Any  interface{}
		Code string
	}
	record := &wide{}
	mapper, err := NewMapper(record, []string{"ID64", "ID32", "IDP", "Any", "Code"}, "sqlx")
	if !assert.Nil(t, err) {
		return
	}
	assert.Nil(t, mapper.Set(record, 0, int64(10)))
	assert.Nil(t, mapper.Set(record, 1, []byte("11")))
	assert.Nil(t, mapper.Set(record, 2, int64(12)))
	assert.Nil(t, mapper.Set(record, 3, int64(13)))
	assert.Nil(t, mapper.Set(record, 4, 14))
	assert.EqualValues(t, 10, record.ID64)
	assert.EqualValues(t, 11, record.ID32)
	assert.EqualValues(t, 12, *record.IDP)
	assert.EqualValues(t, int64(13), record.Any)
	assert.EqualValues(t, "14", record.Code)

	assert.NotNil(t, mapper.Set(wide{}, 0, 1))

	aMap := map[string]interface{}{}
	mapMapper, err := NewMapper(aMap, []string{"Id"}, "sqlx")
	assert.Nil(t, err)
	assert.Nil(t, mapMapper.Set(aMap, 0, int64(7)))
	assert.EqualValues(t, int64(7), aMap["Id"])
}

func TestStructColumns(t *testing.T) {
	actual, err := StructColumns(&invoice{}, "sqlx")
	assert.Nil(t, err)
	assert.EqualValues(t, []StructColumn{
		{Field: "ID", Column: "Id", Identity: true},
		{Field: "Name", Column: "InvoiceName"},
		{Field: "Amount", Column: "Amount"},
		{Field: "Created", Column: "Created"},
	}, actual)
}

func TestRowsOf(t *testing.T) {
	records := []invoice{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	rows, err := RowsOf(records, "sqlx")
	if !assert.Nil(t, err) {
		return
	}
	assert.EqualValues(t, []string{"Id", "InvoiceName", "Amount", "Created"}, rows.Columns())
	buffer, err := Materialize(rows)
	assert.Nil(t, err)
	assert.EqualValues(t, 2, buffer.Len())
	row, _ := buffer.Row(1, nil)
	assert.EqualValues(t, 2, row[0])
	assert.EqualValues(t, "B", row[1])
}

func TestRecordRows_Sequence(t *testing.T) {
	records := []*invoice{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	valueAt, size, err := Values(records)
	assert.Nil(t, err)
	mapper, err := NewMapper(valueAt(0), []string{"Name"}, "sqlx")
	assert.Nil(t, err)
	rows := NewRecordRows([]string{"InvoiceName"}, mapper, valueAt, size, "MergeRowSeq")
	assert.EqualValues(t, []string{"InvoiceName", "MergeRowSeq"}, rows.Columns())
	row, err := rows.Row(1, nil)
	assert.Nil(t, err)
	assert.EqualValues(t, []interface{}{"B", 1}, row)
}
