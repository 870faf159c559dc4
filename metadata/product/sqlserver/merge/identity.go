package merge

import (
	"context"
	"fmt"
	"github.com/viant/sqlmerge/io/errx"
	"time"
)

type identityValue struct {
	index int
	value interface{}
}

//readIdentities reads generated identities in row sequence order
func (s *session) readIdentities(ctx context.Context) ([]identityValue, error) {
	start := time.Now()
	defer func() {
		s.metric.IdentityTime += time.Since(start)
	}()
	ctx, cancel := s.command(ctx)
	defer cancel()
	SQL := s.builder.SelectOutput(s.identity.Name)
	rows, err := s.db.QueryContext(ctx, SQL)
	if err != nil {
		return nil, fmt.Errorf("failed to read identities for %v: %w", s.target, err)
	}
	defer rows.Close()
	var result []identityValue
	for rows.Next() {
		var sequence int64
		var value interface{}
		if err = rows.Scan(&sequence, &value); err != nil {
			return nil, err
		}
		result = append(result, identityValue{index: int(sequence), value: value})
	}
	return result, rows.Err()
}

//assignIdentities writes identities back to records at staged row positions
func (s *session) assignIdentities(values []identityValue) error {
	start := time.Now()
	defer func() {
		s.metric.IdentityTime += time.Since(start)
		s.metric.Reportf("### IDENTITY SYNC TIME %s FOR %d OF %d RECORDS", s.metric.IdentityTime, s.metric.IdentitySyncCnt, s.records.size)
	}()
	fieldIndex := s.identityFieldIndex()
	for _, item := range values {
		if item.index < 0 || item.index >= s.records.size {
			return errx.Identity("sync", s.target, fmt.Errorf("row sequence %d out of range [0,%d)", item.index, s.records.size), s.identity.Name)
		}
		if err := s.records.mapper.Set(s.records.valueAt(item.index), fieldIndex, item.value); err != nil {
			return errx.Identity("sync", s.target, err, s.identity.Name)
		}
		s.metric.IdentitySyncCnt++
	}
	return nil
}

func (s *session) identityFieldIndex() int {
	for i, column := range s.config.Columns {
		if s.config.IsIdentity(column.Name) {
			return i
		}
	}
	return -1
}
