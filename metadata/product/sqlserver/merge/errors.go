package merge

import (
	"errors"
	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/viant/sqlmerge/io/errx"
)

//serverErrors maps SQL Server error numbers to error kinds
var serverErrors = map[int32]error{
	8102: errx.ErrIdentity, //Cannot update identity column
	544:  errx.ErrIdentity, //Cannot insert explicit value for identity column when IDENTITY_INSERT is set to OFF
}

type sqlErrorNumber interface {
	SQLErrorNumber() int32
}

//classify returns error kind for a server error, nil if error is not a known server error
func classify(err error) error {
	if err == nil {
		return nil
	}
	var serverErr mssql.Error
	if errors.As(err, &serverErr) {
		if kind, ok := serverErrors[serverErr.Number]; ok {
			return kind
		}
		for _, item := range serverErr.All {
			if kind, ok := serverErrors[item.Number]; ok {
				return kind
			}
		}
		return nil
	}
	var numbered sqlErrorNumber
	if errors.As(err, &numbered) {
		return serverErrors[numbered.SQLErrorNumber()]
	}
	return nil
}

//translate reclassifies known server errors, other errors are returned unchanged
func translate(op, table string, err error, columns ...string) error {
	switch classify(err) {
	case errx.ErrIdentity:
		return errx.Identity(op, table, err, columns...)
	}
	return err
}
