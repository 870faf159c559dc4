package errx

import (
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestError(t *testing.T) {
	cause := errors.New("server: 8102")
	var useCases = []struct {
		description string
		err         error
		kind        error
		expect      string
		isCause     bool
	}{
		{
			description: "config error",
			err:         Config("validate", "match key is empty"),
			kind:        ErrConfig,
			expect:      "sqlmerge validate: invalid configuration: match key is empty",
		},
		{
			description: "identity error with cause",
			err:         Identity("merge", "[db].[dbo].[invoice]", cause, "Id"),
			kind:        ErrIdentity,
			expect:      "sqlmerge merge: identity misconfiguration table=[db].[dbo].[invoice] columns=[Id]: server: 8102",
			isCause:     true,
		},
		{
			description: "missing column",
			err:         MissingColumn("stage", "invoice", []string{"Amount", "Name"}),
			kind:        ErrMissingColumn,
			expect:      "sqlmerge stage: missing column table=invoice columns=[Amount,Name]",
		},
	}
	for _, useCase := range useCases {
		assert.EqualValues(t, useCase.expect, useCase.err.Error(), useCase.description)
		wrapped := fmt.Errorf("commit: %w", useCase.err)
		assert.True(t, errors.Is(wrapped, useCase.kind), useCase.description)
		assert.Equal(t, useCase.isCause, errors.Is(wrapped, cause), useCase.description)
	}
	assert.True(t, IsConfig(Config("x", "y")))
	assert.False(t, IsIdentity(Config("x", "y")))
}
