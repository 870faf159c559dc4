package io

import (
	"fmt"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/toolbox"
	"github.com/viant/xunsafe"
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

type (
	//Mapper maps record fields into positional values and back
	Mapper struct {
		recordType reflect.Type
		isMap      bool
		accessors  []*accessor
	}

	accessor struct {
		name   string
		xField *xunsafe.Field
	}

	//StructColumn represents struct field to column mapping
	StructColumn struct {
		Field    string
		Column   string
		Identity bool
	}
)

//NewMapper creates a mapper for supplied record sample and field names
func NewMapper(record interface{}, fields []string, tag string) (*Mapper, error) {
	recordType := dereferenceType(reflect.TypeOf(record))
	if recordType == nil {
		return nil, errx.Config("map", "record was nil")
	}
	result := &Mapper{recordType: recordType}
	switch recordType.Kind() {
	case reflect.Map:
		if recordType.Key().Kind() != reflect.String || recordType.Elem().Kind() != reflect.Interface {
			return nil, errx.Config("map", fmt.Sprintf("unsupported record type: %v", recordType))
		}
		result.isMap = true
		for _, name := range fields {
			result.accessors = append(result.accessors, &accessor{name: name})
		}
	case reflect.Struct:
		for _, name := range fields {
			xField := lookupField(recordType, name, tag)
			if xField == nil {
				return nil, errx.Config("map", fmt.Sprintf("field not found on %v", recordType), name)
			}
			result.accessors = append(result.accessors, &accessor{name: name, xField: xField})
		}
	default:
		return nil, errx.Config("map", fmt.Sprintf("unsupported record type: %v", recordType))
	}
	return result, nil
}

//Fields returns mapped field names
func (m *Mapper) Fields() []string {
	var result = make([]string, len(m.accessors))
	for i, item := range m.accessors {
		result[i] = item.name
	}
	return result
}

//Values appends record values to dest
func (m *Mapper) Values(record interface{}, dest []interface{}) ([]interface{}, error) {
	if m.isMap {
		aMap, err := asMap(record)
		if err != nil {
			return nil, err
		}
		for _, item := range m.accessors {
			dest = append(dest, aMap[item.name])
		}
		return dest, nil
	}
	record, err := m.ensurePointer(record)
	if err != nil {
		return nil, err
	}
	ptr := xunsafe.AsPointer(record)
	for _, item := range m.accessors {
		dest = append(dest, indirect(item.xField.Value(ptr)))
	}
	return dest, nil
}

//Set assigns value to field at index, record has to be a pointer or a map
func (m *Mapper) Set(record interface{}, index int, value interface{}) error {
	item := m.accessors[index]
	if m.isMap {
		aMap, err := asMap(record)
		if err != nil {
			return err
		}
		aMap[item.name] = value
		return nil
	}
	if reflect.TypeOf(record).Kind() != reflect.Ptr {
		return fmt.Errorf("record %T is not addressable", record)
	}
	ptr := xunsafe.AsPointer(record)
	return assign(item.xField.Addr(ptr), value)
}

func (m *Mapper) ensurePointer(record interface{}) (interface{}, error) {
	recordType := reflect.TypeOf(record)
	if recordType == nil {
		return nil, fmt.Errorf("record was nil")
	}
	if recordType.Kind() == reflect.Ptr {
		if recordType.Elem() != m.recordType {
			return nil, fmt.Errorf("expected %v, but had %T", m.recordType, record)
		}
		return record, nil
	}
	if recordType != m.recordType {
		return nil, fmt.Errorf("expected %v, but had %T", m.recordType, record)
	}
	value := reflect.New(recordType)
	value.Elem().Set(reflect.ValueOf(record))
	return value.Interface(), nil
}

//StructColumns returns mappable struct fields
func StructColumns(record interface{}, tag string) ([]StructColumn, error) {
	recordType := dereferenceType(reflect.TypeOf(record))
	if recordType == nil || recordType.Kind() != reflect.Struct {
		return nil, errx.Config("columns", fmt.Sprintf("expected struct, but had %T", record))
	}
	var result []StructColumn
	for i := 0; i < recordType.NumField(); i++ {
		field := recordType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		aTag := ParseTag(field.Tag.Get(tag))
		if aTag.Transient {
			continue
		}
		if fieldType := dereferenceType(field.Type); fieldType.Kind() == reflect.Struct && fieldType != timeType {
			continue
		}
		column := field.Name
		if aTag.Column != "" {
			column = aTag.Column
		}
		result = append(result, StructColumn{Field: field.Name, Column: column, Identity: aTag.Autoincrement})
	}
	return result, nil
}

func lookupField(recordType reflect.Type, name, tag string) *xunsafe.Field {
	if field, ok := recordType.FieldByName(name); ok && len(field.Index) == 1 && field.PkgPath == "" {
		if ParseTag(field.Tag.Get(tag)).Transient {
			return nil
		}
		return xunsafe.NewField(field)
	}
	for i := 0; i < recordType.NumField(); i++ {
		field := recordType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		aTag := ParseTag(field.Tag.Get(tag))
		if aTag.Transient {
			continue
		}
		if strings.EqualFold(aTag.Column, name) || strings.EqualFold(field.Name, name) {
			return xunsafe.NewField(field)
		}
	}
	return nil
}

func asMap(record interface{}) (map[string]interface{}, error) {
	switch actual := record.(type) {
	case map[string]interface{}:
		return actual, nil
	case *map[string]interface{}:
		if actual == nil || *actual == nil {
			return nil, fmt.Errorf("record was nil")
		}
		return *actual, nil
	}
	return nil, fmt.Errorf("expected map[string]interface{}, but had %T", record)
}

func dereferenceType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func indirect(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	rValue := reflect.ValueOf(value)
	if rValue.Kind() != reflect.Ptr {
		return value
	}
	if rValue.IsNil() {
		return nil
	}
	return rValue.Elem().Interface()
}

func assign(dest interface{}, value interface{}) error {
	if data, ok := value.([]byte); ok {
		value = string(data)
	}
	switch actual := dest.(type) {
	case *interface{}:
		*actual = value
		return nil
	case *string:
		*actual = toolbox.AsString(value)
		return nil
	}
	number, err := toolbox.ToInt(value)
	if err != nil {
		return err
	}
	switch actual := dest.(type) {
	case *int:
		*actual = number
	case *int64:
		*actual = int64(number)
	case *int32:
		*actual = int32(number)
	case *int16:
		*actual = int16(number)
	case *uint:
		*actual = uint(number)
	case *uint64:
		*actual = uint64(number)
	case *uint32:
		*actual = uint32(number)
	case **int:
		*actual = &number
	case **int64:
		v := int64(number)
		*actual = &v
	default:
		target := reflect.ValueOf(dest).Elem()
		source := reflect.ValueOf(number)
		if !source.Type().ConvertibleTo(target.Type()) {
			return fmt.Errorf("unable to assign %T to %v", value, target.Type())
		}
		target.Set(source.Convert(target.Type()))
	}
	return nil
}

//IsAddressable returns true if record values can be assigned with Mapper.Set
func IsAddressable(record interface{}) bool {
	recordType := reflect.TypeOf(record)
	if recordType == nil {
		return false
	}
	switch recordType.Kind() {
	case reflect.Ptr:
		return true
	case reflect.Map:
		return true
	}
	return false
}
