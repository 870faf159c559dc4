package info

import (
	"fmt"
	"github.com/viant/sqlmerge/metadata/database"
)

type (
	//Query represents dictionary query
	Query struct {
		Kind     Kind
		SQL      string
		Criteria Criteria
		database.Product
	}

	//Criterion represents query criterion
	Criterion struct {
		Name   string
		Column string
	}

	//Criteria represents Criterion collection
	Criteria []*Criterion

	//Queries represents queries
	Queries []*Query
)

//NewQuery creates a new query
func NewQuery(kind Kind, SQL string, info database.Product, criteria ...*Criterion) *Query {
	return &Query{
		Kind:     kind,
		SQL:      SQL,
		Product:  info,
		Criteria: criteria,
	}
}

//NewCriterion creates a new criterion
func NewCriterion(name, column string) *Criterion {
	return &Criterion{Name: name, Column: column}
}

//Supported returns number of criteria backed by a column
func (c Criteria) Supported() int {
	supported := 0
	for _, item := range c {
		if item.Column != "" {
			supported++
		}
	}
	return supported
}

//Validate validates criteria kind
func (c Criteria) Validate(kind Kind) error {
	criteria := kind.Criteria()
	if len(c) != len(criteria) {
		return fmt.Errorf("invalid query '%v': expected %v criteria, but query defined %v", kind, len(criteria), len(c))
	}
	for i, item := range c {
		if item.Name != criteria[i] {
			return fmt.Errorf("invalid query criterion '%v': expected %v, but had %v", kind, criteria[i], item.Name)
		}
	}
	return nil
}

//Match returns the most recent query supported by the product version
func (q Queries) Match(product *database.Product) *Query {
	if len(q) == 0 {
		return nil
	}
	var result *Query
	for _, candidate := range q {
		if candidate.Major == 0 || candidate.Major <= product.Major {
			result = candidate
		}
	}
	return result
}

func (q Queries) Len() int      { return len(q) }
func (q Queries) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q Queries) Less(i, j int) bool {
	return 100000*q[i].Major+q[i].Minor < 100000*q[j].Major+q[j].Minor
}
