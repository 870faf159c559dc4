package merge

import (
	"context"
	"errors"
	"fmt"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/metadata/sink"
	"strings"
	"time"
)

const (
	actionDisable = "DISABLE"
	actionRebuild = "REBUILD"
)

//matchIndexes selects non clustered, enabled indexes to disable
func (s *session) matchIndexes(indexes []*sink.Index) error {
	if s.config.DisableAllIndexes {
		for _, index := range indexes {
			if index.IsClustered() || index.Disabled {
				continue
			}
			s.indexes = append(s.indexes, index)
		}
		return nil
	}
	byName := make(map[string]*sink.Index, len(indexes))
	for _, index := range indexes {
		byName[strings.ToLower(index.Name)] = index
	}
	var missing []string
	for _, name := range s.config.DisableIndexes {
		index, ok := byName[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		if index.IsClustered() {
			return errx.Config("indexes", fmt.Sprintf("clustered index %v can not be disabled", index.Name))
		}
		if index.Disabled {
			continue
		}
		s.indexes = append(s.indexes, index)
	}
	if len(missing) > 0 {
		return errx.Config("indexes", fmt.Sprintf("indexes not found on %v: %v", s.target, strings.Join(missing, ",")))
	}
	return nil
}

func (s *session) disableIndexes(ctx context.Context) error {
	start := time.Now()
	defer func() {
		s.metric.IndexTime += time.Since(start)
		s.metric.DisabledIndexCnt = len(s.disabled)
		s.metric.Reportf("### DISABLING INDEXES TIME %s, DISABLED %d OF %d", time.Since(start), len(s.disabled), len(s.indexes))
	}()
	for _, index := range s.indexes {
		if _, err := s.execSQL(ctx, s.builder.AlterIndex(index.Name, actionDisable)); err != nil {
			return fmt.Errorf("failed to disable index %v on %v: %w", index.Name, s.target, err)
		}
		s.disabled = append(s.disabled, index)
	}
	return nil
}

//rebuildIndexes rebuilds all disabled indexes, failures do not stop remaining rebuilds
func (s *session) rebuildIndexes(ctx context.Context) error {
	if len(s.disabled) == 0 {
		return nil
	}
	start := time.Now()
	defer func() {
		s.metric.IndexTime += time.Since(start)
		s.metric.Reportf("### REBUILDING INDEXES TIME %s", time.Since(start))
	}()
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for _, index := range s.disabled {
		if _, err := s.execSQL(ctx, s.builder.AlterIndex(index.Name, actionRebuild)); err != nil {
			errs = append(errs, fmt.Errorf("failed to rebuild index %v on %v: %w", index.Name, s.target, err))
		}
	}
	s.disabled = nil
	return errors.Join(errs...)
}
