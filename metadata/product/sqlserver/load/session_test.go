package load_test

import (
	"context"
	"errors"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/loption"
	"github.com/viant/sqlmerge/metadata/product/sqlserver"
	"github.com/viant/sqlmerge/metadata/product/sqlserver/load"
	"testing"
)

type invoice struct {
	ID   int `sqlx:"name=Id,autoincrement"`
	Name string
	Note string `sqlx:"-"`
}

func TestSession_Exec(t *testing.T) {
	var useCases = []struct {
		description string
		data        interface{}
		options     []loption.Option
		copyErr     error
		expectRows  int64
		expectCalls []int
		hasError    bool
	}{
		{
			description: "records copied with notifications",
			data:        []*invoice{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}},
			options:     []loption.Option{loption.WithBatchSize(2)},
			expectRows:  3,
			expectCalls: []int{2, 3},
		},
		{
			description: "streamed records",
			data:        []invoice{{ID: 1, Name: "A"}},
			options:     []loption.Option{loption.WithStreaming(true)},
			expectRows:  1,
			expectCalls: []int{1},
		},
		{
			description: "copy error rolls back",
			data:        []invoice{{ID: 1, Name: "A"}},
			copyErr:     errors.New("bulk copy failed"),
			hasError:    true,
		},
	}

	for _, useCase := range useCases {
		db, mock, err := sqlmock.New()
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		valueAt, size, _ := io.Values(useCase.data)
		mock.ExpectBegin()
		prepared := mock.ExpectPrepare("INSERTBULK")
		for i := 0; i < size; i++ {
			record := valueAt(i).(*invoice)
			exec := prepared.ExpectExec().WithArgs(int64(record.ID), record.Name)
			if useCase.copyErr != nil {
				exec.WillReturnError(useCase.copyErr)
				break
			}
			exec.WillReturnResult(sqlmock.NewResult(0, 0))
		}
		if useCase.copyErr != nil {
			mock.ExpectRollback()
		} else {
			prepared.ExpectExec().WillReturnResult(sqlmock.NewResult(0, useCase.expectRows))
			mock.ExpectCommit()
		}

		var calls []int
		options := append(useCase.options, loption.WithNotifyAfter(2, func(copied int) {
			calls = append(calls, copied)
		}))
		session := load.NewSession(sqlserver.Dialect())
		res, err := session.Exec(context.Background(), useCase.data, db, "#TmpTable", options...)
		if useCase.hasError {
			assert.NotNil(t, err, useCase.description)
		} else if assert.Nil(t, err, useCase.description) {
			affected, _ := res.RowsAffected()
			assert.EqualValues(t, useCase.expectRows, affected, useCase.description)
			assert.EqualValues(t, useCase.expectCalls, calls, useCase.description)
		}
		assert.Nil(t, mock.ExpectationsWereMet(), useCase.description)
		_ = db.Close()
	}
}

func TestSession_Exec_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if !assert.Nil(t, err) {
		return
	}
	defer db.Close()
	res, err := load.NewSession(sqlserver.Dialect()).Exec(context.Background(), []*invoice{}, db, "#TmpTable")
	assert.Nil(t, err)
	affected, _ := res.RowsAffected()
	assert.EqualValues(t, 0, affected)
	assert.Nil(t, mock.ExpectationsWereMet())
}
