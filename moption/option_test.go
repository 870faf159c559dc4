package moption

import (
	"github.com/stretchr/testify/assert"
	"github.com/viant/sqlmerge/loption"
	"github.com/viant/sqlmerge/option"
	"testing"
	"time"
)

func TestOptions(t *testing.T) {
	var useCases = []struct {
		description string
		options     []Option
		timeout     time.Duration
		loadOptions int
	}{
		{
			description: "defaults",
		},
		{
			description: "explicit timeout",
			options:     []Option{WithCommandTimeout(time.Minute), WithLoadOptions([]loption.Option{loption.WithBatchSize(10)})},
			timeout:     time.Minute,
			loadOptions: 1,
		},
		{
			description: "timeout from common options",
			options:     []Option{WithCommonOptions(option.Options{option.CommandTimeout(time.Second)})},
			timeout:     time.Second,
		},
	}
	for _, useCase := range useCases {
		options := NewOptions(useCase.options...)
		assert.EqualValues(t, useCase.timeout, options.GetCommandTimeout(), useCase.description)
		assert.EqualValues(t, useCase.loadOptions, len(options.GetLoadOptions()), useCase.description)
		assert.Nil(t, options.GetTransaction(), useCase.description)
		assert.Nil(t, options.GetConn(), useCase.description)
	}
}
