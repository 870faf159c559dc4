package option

import "fmt"

//Args represents metadata query arguments (catalog, schema, table ...)
type Args struct {
	items []interface{}
}

//Unwrap returns raw arguments
func (a *Args) Unwrap() []interface{} {
	if a == nil {
		return nil
	}
	return a.items
}

//StringN returns first n arguments as strings
func (a *Args) StringN(n int) ([]string, error) {
	if len(a.items) < n {
		return nil, fmt.Errorf("expected %v, but had: %v", n, len(a.items))
	}
	var result = make([]string, n)
	var ok bool
	for i := 0; i < n; i++ {
		result[i], ok = a.items[i].(string)
		if !ok {
			return nil, fmt.Errorf("expected %T, but had: %T at %v", result[i], a.items[i], i)
		}
	}
	return result, nil
}

//NewArgs creates option arguments
func NewArgs(args ...interface{}) *Args {
	return &Args{args}
}
