package io

import "fmt"

type (
	//Rows represents tabular data source
	Rows interface {
		Columns() []string
		Len() int
		//Row appends values of row at index to dest
		Row(index int, dest []interface{}) ([]interface{}, error)
	}

	//RecordRows represents records projected onto columns with a mapper
	RecordRows struct {
		columns  []string
		mapper   *Mapper
		valueAt  ValueAccessor
		size     int
		sequence bool
	}

	//Buffer represents in memory tabular data
	Buffer struct {
		columns []string
		values  [][]interface{}
	}
)

//Columns returns column names
func (r *RecordRows) Columns() []string { return r.columns }

//Len returns number of rows
func (r *RecordRows) Len() int { return r.size }

//Row appends row values to dest
func (r *RecordRows) Row(index int, dest []interface{}) ([]interface{}, error) {
	dest, err := r.mapper.Values(r.valueAt(index), dest)
	if err != nil {
		return nil, fmt.Errorf("failed to read record %v: %w", index, err)
	}
	if r.sequence {
		dest = append(dest, index)
	}
	return dest, nil
}

//NewRecordRows creates rows for records, when sequence is set, the record index is appended as the last column
func NewRecordRows(columns []string, mapper *Mapper, valueAt ValueAccessor, size int, sequence string) *RecordRows {
	result := &RecordRows{columns: columns, mapper: mapper, valueAt: valueAt, size: size}
	if sequence != "" {
		result.columns = append(append([]string{}, columns...), sequence)
		result.sequence = true
	}
	return result
}

//Columns returns column names
func (b *Buffer) Columns() []string { return b.columns }

//Len returns number of rows
func (b *Buffer) Len() int { return len(b.values) }

//Row appends row values to dest
func (b *Buffer) Row(index int, dest []interface{}) ([]interface{}, error) {
	return append(dest, b.values[index]...), nil
}

//Materialize reads all rows into memory
func Materialize(rows Rows) (*Buffer, error) {
	result := &Buffer{columns: rows.Columns(), values: make([][]interface{}, rows.Len())}
	for i := range result.values {
		row, err := rows.Row(i, make([]interface{}, 0, len(result.columns)))
		if err != nil {
			return nil, err
		}
		result.values[i] = row
	}
	return result, nil
}

//RowsOf returns rows for supplied data, records are mapped on all struct columns
func RowsOf(data interface{}, tag string) (Rows, error) {
	if rows, ok := data.(Rows); ok {
		return rows, nil
	}
	valueAt, size, err := Values(data)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return &Buffer{}, nil
	}
	structColumns, err := StructColumns(valueAt(0), tag)
	if err != nil {
		return nil, err
	}
	var fields, columns []string
	for _, column := range structColumns {
		fields = append(fields, column.Field)
		columns = append(columns, column.Column)
	}
	mapper, err := NewMapper(valueAt(0), fields, tag)
	if err != nil {
		return nil, err
	}
	return NewRecordRows(columns, mapper, valueAt, size, ""), nil
}
