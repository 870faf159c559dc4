package loption

import (
	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestOptions_BulkOptions(t *testing.T) {
	var useCases = []struct {
		description string
		options     []Option
		expect      mssql.BulkOptions
		hasError    bool
	}{
		{
			description: "defaults",
		},
		{
			description: "hint",
			options:     []Option{WithHint(`{"KeepNulls":true,"Tablock":true}`)},
			expect:      mssql.BulkOptions{KeepNulls: true, Tablock: true},
		},
		{
			description: "explicit options with batch size",
			options:     []Option{WithBulkOptions(mssql.BulkOptions{CheckConstraints: true}), WithBatchSize(500)},
			expect:      mssql.BulkOptions{CheckConstraints: true, RowsPerBatch: 500},
		},
		{
			description: "invalid hint",
			options:     []Option{WithHint(`{`)},
			hasError:    true,
		},
	}
	for _, useCase := range useCases {
		actual, err := NewOptions(useCase.options...).BulkOptions()
		if useCase.hasError {
			assert.NotNil(t, err, useCase.description)
			continue
		}
		assert.Nil(t, err, useCase.description)
		assert.EqualValues(t, useCase.expect, actual, useCase.description)
	}
}

func TestOptions_Notify(t *testing.T) {
	var useCases = []struct {
		description string
		total       int
		expect      []int
	}{
		{description: "remainder notified at the end", total: 5, expect: []int{2, 4, 5}},
		{description: "no duplicate at the end", total: 4, expect: []int{2, 4}},
		{description: "below interval", total: 1, expect: []int{1}},
	}
	for _, useCase := range useCases {
		var notified []int
		options := NewOptions(WithNotifyAfter(2, func(copied int) {
			notified = append(notified, copied)
		}), WithTimeout(time.Second), WithStreaming(true))
		for i := 1; i <= useCase.total; i++ {
			options.Notify(i, false)
		}
		options.Notify(useCase.total, true)
		assert.EqualValues(t, useCase.expect, notified, useCase.description)
		assert.EqualValues(t, time.Second, options.GetTimeout(), useCase.description)
		assert.True(t, options.GetStreaming(), useCase.description)
	}
}
