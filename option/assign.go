package option

import (
	"reflect"
)

//Assign assigns matching options to supplied pointers, returns true if at least one was assigned
func Assign(options []Option, supplied ...interface{}) bool {
	if len(options) == 0 || len(supplied) == 0 {
		return false
	}
	var index = make(map[reflect.Type]interface{})
	for i := range supplied {
		index[reflect.TypeOf(supplied[i]).Elem()] = supplied[i]
	}
	assigned := false
	for _, candidate := range options {
		if candidate == nil {
			continue
		}
		optionValue := reflect.ValueOf(candidate)
		target, ok := index[optionValue.Type()]
		if !ok {
			for k, v := range index {
				if k.Kind() != reflect.Interface && optionValue.Type().AssignableTo(k) {
					target = v
					ok = true
					break
				}
			}
		}
		if !ok {
			continue
		}
		assigned = true
		reflect.ValueOf(target).Elem().Set(optionValue)
	}
	return assigned
}
