package config

import (
	"database/sql"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestAddPredicate(t *testing.T) {
	now := time.Now()
	var useCases = []struct {
		description string
		predicate   Predicate
		kind        Kind
		sortOrder   int
		expect      *Condition
		expectParam *sql.NamedArg
		hasError    bool
	}{
		{
			description: "update comparison",
			predicate:   Gt("Amount", 10),
			kind:        KindUpdate,
			sortOrder:   1,
			expect:      &Condition{SortOrder: 1, Column: "Amount", Operator: OpGreater, Param: "ConditionUpdate1", Kind: KindUpdate},
			expectParam: &sql.NamedArg{Name: "ConditionUpdate1", Value: 10},
		},
		{
			description: "delete time comparison",
			predicate:   Le("Created", now),
			kind:        KindDelete,
			sortOrder:   3,
			expect:      &Condition{SortOrder: 3, Column: "Created", Operator: OpLessOrEqual, Param: "ConditionDelete3", Kind: KindDelete},
			expectParam: &sql.NamedArg{Name: "ConditionDelete3", Value: now},
		},
		{
			description: "null check has no parameter",
			predicate:   IsNull("Closed"),
			kind:        KindDelete,
			sortOrder:   2,
			expect:      &Condition{SortOrder: 2, Column: "Closed", Operator: OpIsNull, Kind: KindDelete},
		},
		{
			description: "null comparison target",
			predicate:   Eq("Closed", nil),
			kind:        KindUpdate,
			hasError:    true,
		},
		{
			description: "nil pointer comparison target",
			predicate:   Ne("Closed", (*int)(nil)),
			kind:        KindUpdate,
			hasError:    true,
		},
		{
			description: "non scalar value",
			predicate:   Eq("Tags", []string{"a"}),
			kind:        KindUpdate,
			hasError:    true,
		},
		{
			description: "unsupported operator",
			predicate:   Predicate{Column: "Name", Operator: "LIKE", Value: "a%"},
			kind:        KindUpdate,
			hasError:    true,
		},
		{
			description: "empty column",
			predicate:   Eq("", 1),
			kind:        KindUpdate,
			hasError:    true,
		},
	}

	for _, useCase := range useCases {
		var targets []*Condition
		var params []sql.NamedArg
		err := AddPredicate(useCase.predicate, useCase.kind, &targets, &params, useCase.sortOrder, ParamPrefix)
		if useCase.hasError {
			assert.NotNil(t, err, useCase.description)
			assert.Empty(t, targets, useCase.description)
			assert.Empty(t, params, useCase.description)
			continue
		}
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		assert.EqualValues(t, []*Condition{useCase.expect}, targets, useCase.description)
		if useCase.expectParam == nil {
			assert.Empty(t, params, useCase.description)
			continue
		}
		assert.EqualValues(t, []sql.NamedArg{*useCase.expectParam}, params, useCase.description)
	}
}

func TestAddPredicate_UniqueParameters(t *testing.T) {
	builder := NewBuilder().AddColumns("Id", "Amount").MatchTargetOn("Id").DeleteWhenNotMatched(true)
	builder.UpdateWhen(Gt("Amount", 1)).DeleteWhen(Gt("Amount", 2)).UpdateWhen(Lt("Amount", 3)).DeleteWhen(Ne("Amount", 4))
	cfg, err := builder.Build()
	if !assert.Nil(t, err) {
		return
	}
	var names = map[string]bool{}
	for _, param := range cfg.Parameters {
		assert.False(t, names[param.Name], param.Name)
		names[param.Name] = true
	}
	assert.Len(t, names, 4)
	assert.EqualValues(t, []string{"ConditionUpdate1", "ConditionDelete2", "ConditionUpdate3", "ConditionDelete4"}, []string{
		cfg.Parameters[0].Name, cfg.Parameters[1].Name, cfg.Parameters[2].Name, cfg.Parameters[3].Name,
	})

	var targets []*Condition
	params := []sql.NamedArg{sql.Named("ConditionUpdate1", 1)}
	assert.NotNil(t, AddPredicate(Eq("Amount", 1), KindUpdate, &targets, &params, 1, ParamPrefix))
}
