package io

import (
	"fmt"
	"github.com/viant/xunsafe"
	"reflect"
	"unsafe"
)

//ValueAccessor represents function that returns value at given index.
type ValueAccessor = func(index int) interface{}

//Values return function to access value at position, slice of structs elements are returned as pointers
func Values(any interface{}) (ValueAccessor, int, error) {
	switch actual := any.(type) {
	case nil:
		return func(index int) interface{} { return nil }, 0, nil
	case []interface{}:
		return func(index int) interface{} {
			return actual[index]
		}, len(actual), nil
	case []map[string]interface{}:
		return func(index int) interface{} {
			return actual[index]
		}, len(actual), nil
	default:
		anyValue := reflect.ValueOf(any)
		switch anyValue.Kind() {
		case reflect.Ptr:
			deref := anyValue.Elem()
			if deref.Kind() == reflect.Slice {
				return asSliceAccessor(xunsafe.AsPointer(actual), deref.Type())
			}
			return func(index int) interface{} { return actual }, 1, nil
		case reflect.Struct, reflect.Map:
			return func(index int) interface{} { return actual }, 1, nil
		case reflect.Slice:
			return asSliceAccessor(xunsafe.AsPointer(actual), reflect.TypeOf(actual))
		}
	}
	return nil, 0, fmt.Errorf("unsupported: %T", any)
}

func asSliceAccessor(ptr unsafe.Pointer, sliceType reflect.Type) (ValueAccessor, int, error) {
	aSliceType := xunsafe.NewSlice(sliceType)
	sliceLen := aSliceType.Len(ptr)
	return func(index int) interface{} {
		return aSliceType.ValuePointerAt(ptr, index)
	}, sliceLen, nil
}
