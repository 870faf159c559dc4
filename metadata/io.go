package metadata

import (
	"database/sql"
	"fmt"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/option"
	"github.com/viant/xunsafe"
	"reflect"
	"strings"
)

func fetchToString(rows *sql.Rows, dest *string) error {
	if rows.Next() {
		return rows.Scan(dest)
	}
	return nil
}

func fetchToStrings(rows *sql.Rows, dest *[]string) error {
	for rows.Next() {
		item := ""
		if err := rows.Scan(&item); err != nil {
			return err
		}
		*dest = append(*dest, item)
	}
	return nil
}

func fetchStruct(rows *sql.Rows, dest Sink) error {
	valueType := reflect.TypeOf(dest)
	if valueType == nil || valueType.Kind() != reflect.Ptr {
		return fmt.Errorf("expected pointer but had: %T", dest)
	}
	targetValue := reflect.ValueOf(dest).Elem()
	isSlice := valueType.Elem().Kind() == reflect.Slice
	itemType := valueType.Elem()
	if isSlice {
		itemType = itemType.Elem()
	}
	isItemPointer := itemType.Kind() == reflect.Ptr
	if isItemPointer {
		itemType = itemType.Elem()
	}
	if itemType.Kind() != reflect.Struct {
		return fmt.Errorf("unsupported sink: %T", dest)
	}
	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	fields := columnFields(itemType, columns)
	for rows.Next() {
		item := reflect.New(itemType)
		ptr := xunsafe.AsPointer(item.Interface())
		var values = make([]interface{}, len(columns))
		for i, field := range fields {
			if field == nil {
				values[i] = new(interface{})
				continue
			}
			values[i] = field.Addr(ptr)
		}
		if err = rows.Scan(values...); err != nil {
			return fmt.Errorf("failed to scan %v: %w", itemType, err)
		}
		if !isItemPointer {
			item = item.Elem()
		}
		if !isSlice {
			targetValue.Set(item)
			return nil
		}
		targetValue.Set(reflect.Append(targetValue, item))
	}
	return nil
}

//columnFields matches result columns with struct fields by sqlx tag, or field name
func columnFields(itemType reflect.Type, columns []string) []*xunsafe.Field {
	var index = make(map[string]*xunsafe.Field)
	for i := 0; i < itemType.NumField(); i++ {
		field := itemType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		xField := xunsafe.NewField(field)
		index[strings.ToUpper(field.Name)] = xField
		tag := io.ParseTag(field.Tag.Get(option.TagSqlx))
		if tag.Transient {
			continue
		}
		for _, name := range strings.Split(tag.Column, "|") {
			if name = strings.TrimSpace(name); name != "" {
				index[strings.ToUpper(name)] = xField
			}
		}
	}
	var result = make([]*xunsafe.Field, len(columns))
	for i, column := range columns {
		result[i] = index[strings.ToUpper(column)]
	}
	return result
}
