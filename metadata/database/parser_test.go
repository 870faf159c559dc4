package database

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParse(t *testing.T) {
	var useCases = []struct {
		description string
		input       string
		expect      *Product
	}{
		{
			description: "product version property",
			input:       "Microsoft SQL Server - 15.0.4261.1",
			expect:      &Product{Name: "Microsoft SQL Server", Major: 15, Minor: 0, Release: 4261},
		},
		{
			description: "legacy version banner",
			input:       "Microsoft SQL Server 2000 - 8.00.760 (Intel X86)",
			expect:      &Product{Name: "Microsoft SQL Server 2000", Major: 8, Minor: 0, Release: 760},
		},
		{
			description: "bare version",
			input:       "16.0.1000.6",
			expect:      &Product{Name: "", Major: 16, Minor: 0, Release: 1000},
		},
	}

	for _, useCase := range useCases {
		actual, err := Parse([]byte(useCase.input))
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		assert.EqualValues(t, useCase.expect, actual, useCase.description)
	}
}

func TestProduct_Equal(t *testing.T) {
	product := &Product{Name: "Microsoft SQL Server", Major: 15}
	assert.True(t, product.Equal(product.New(15, 0, 4261)))
	assert.False(t, product.Equal(product.New(16, 0, 0)))
}
