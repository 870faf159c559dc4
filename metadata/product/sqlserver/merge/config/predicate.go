package config

import (
	"database/sql"
	"fmt"
	"github.com/viant/sqlmerge/io/errx"
	"reflect"
	"strconv"
	"time"
)

//Operator represents predicate comparison operator
type Operator string

const (
	OpEqual          = Operator("=")
	OpNotEqual       = Operator("!=")
	OpLess           = Operator("<")
	OpLessOrEqual    = Operator("<=")
	OpGreater        = Operator(">")
	OpGreaterOrEqual = Operator(">=")
	OpIsNull         = Operator("IS NULL")
	OpIsNotNull      = Operator("IS NOT NULL")
)

//Kind represents predicate gate kind
type Kind string

const (
	//KindUpdate gates WHEN MATCHED THEN UPDATE
	KindUpdate = Kind("Update")
	//KindDelete gates WHEN NOT MATCHED BY SOURCE THEN DELETE
	KindDelete = Kind("Delete")
)

//ParamPrefix represents predicate parameter name prefix
const ParamPrefix = "Condition"

type (
	//Predicate represents comparison of target column with a constant
	Predicate struct {
		Column   string
		Operator Operator
		Value    interface{}
	}

	//Condition represents predicate bound to a parameter
	Condition struct {
		SortOrder int
		Column    string
		Operator  Operator
		Param     string
		Kind      Kind
	}
)

func Eq(column string, value interface{}) Predicate {
	return Predicate{Column: column, Operator: OpEqual, Value: value}
}

func Ne(column string, value interface{}) Predicate {
	return Predicate{Column: column, Operator: OpNotEqual, Value: value}
}

func Lt(column string, value interface{}) Predicate {
	return Predicate{Column: column, Operator: OpLess, Value: value}
}

func Le(column string, value interface{}) Predicate {
	return Predicate{Column: column, Operator: OpLessOrEqual, Value: value}
}

func Gt(column string, value interface{}) Predicate {
	return Predicate{Column: column, Operator: OpGreater, Value: value}
}

func Ge(column string, value interface{}) Predicate {
	return Predicate{Column: column, Operator: OpGreaterOrEqual, Value: value}
}

func IsNull(column string) Predicate {
	return Predicate{Column: column, Operator: OpIsNull}
}

func IsNotNull(column string) Predicate {
	return Predicate{Column: column, Operator: OpIsNotNull}
}

//IsNullCheck returns true for IS NULL and IS NOT NULL
func (o Operator) IsNullCheck() bool {
	return o == OpIsNull || o == OpIsNotNull
}

func (o Operator) isValid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual, OpIsNull, OpIsNotNull:
		return true
	}
	return false
}

//AddPredicate validates predicate and appends its condition to targets, and its bound value to params
func AddPredicate(predicate Predicate, kind Kind, targets *[]*Condition, params *[]sql.NamedArg, sortOrder int, paramPrefix string) error {
	if predicate.Column == "" {
		return errx.Config("predicate", "column was empty")
	}
	if !predicate.Operator.isValid() {
		return errx.Config("predicate", fmt.Sprintf("unsupported operator: %q", predicate.Operator), predicate.Column)
	}
	if kind != KindUpdate && kind != KindDelete {
		return errx.Config("predicate", fmt.Sprintf("unsupported kind: %q", kind), predicate.Column)
	}
	condition := &Condition{SortOrder: sortOrder, Column: predicate.Column, Operator: predicate.Operator, Kind: kind}
	if predicate.Operator.IsNullCheck() {
		*targets = append(*targets, condition)
		return nil
	}
	if isNil(predicate.Value) {
		return errx.Config("predicate", fmt.Sprintf("null comparison with %q, use IsNull or IsNotNull", predicate.Operator), predicate.Column)
	}
	if !isScalar(predicate.Value) {
		return errx.Config("predicate", fmt.Sprintf("unsupported comparison value: %T", predicate.Value), predicate.Column)
	}
	condition.Param = paramPrefix + string(kind) + strconv.Itoa(sortOrder)
	for _, param := range *params {
		if param.Name == condition.Param {
			return errx.Config("predicate", fmt.Sprintf("duplicate parameter: %v", condition.Param), predicate.Column)
		}
	}
	*targets = append(*targets, condition)
	*params = append(*params, sql.Named(condition.Param, predicate.Value))
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	rValue := reflect.ValueOf(value)
	return rValue.Kind() == reflect.Ptr && rValue.IsNil()
}

func isScalar(value interface{}) bool {
	rType := reflect.TypeOf(value)
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	switch rType.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Struct:
		return rType == timeType
	case reflect.Slice:
		return rType.Elem().Kind() == reflect.Uint8
	}
	return false
}
