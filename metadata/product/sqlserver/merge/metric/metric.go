package metric

import (
	"fmt"
	"github.com/google/uuid"
	"strings"
	"time"
)

type Metric struct {
	ID    string
	Table string
	State string

	InSrcCnt         int
	StagedCnt        int
	AffectedCnt      int
	IdentitySyncCnt  int
	DisabledIndexCnt int

	ProbeTime    time.Duration
	StageTime    time.Duration
	IndexTime    time.Duration
	MergeTime    time.Duration
	IdentityTime time.Duration
	ElapsedTime  time.Duration

	Total Total
	Err   error
}

type Total struct {
	Report []string
}

//New creates a metric with a unique operation id
func New(table string) *Metric {
	return &Metric{ID: uuid.New().String(), Table: table}
}

//Reportf appends report line
func (m *Metric) Reportf(format string, args ...interface{}) {
	m.Total.Report = append(m.Total.Report, fmt.Sprintf("[%v] ", m.ID)+fmt.Sprintf(format, args...)+"\n")
}

// RowsAffected returns the number of rows inserted, updated or deleted by the merge statement.
func (m *Metric) RowsAffected() int {
	if m.Err != nil {
		return 0
	}
	return m.AffectedCnt
}

// StagedRows returns the number of rows bulk loaded into the staging table.
func (m *Metric) StagedRows() int {
	return m.StagedCnt
}

// IdentitiesSynced returns the number of records that received server generated identity.
func (m *Metric) IdentitiesSynced() int {
	if m.Err != nil {
		return 0
	}
	return m.IdentitySyncCnt
}

// Report returns merge report.
func (m *Metric) Report() string {
	sb := strings.Builder{}
	for _, s := range m.Total.Report {
		sb.WriteString(s)
	}
	return sb.String()
}

// StagingTime returns staging duration.
func (m *Metric) StagingTime() time.Duration {
	return m.StageTime
}

// MergingTime returns merge statement duration.
func (m *Metric) MergingTime() time.Duration {
	if m.Err != nil {
		return 0
	}
	return m.MergeTime
}

// TotalTime returns total duration.
func (m *Metric) TotalTime() time.Duration {
	return m.ElapsedTime
}

// MergedTable returns fully qualified target table, or the supplied name if the table was not resolved.
func (m *Metric) MergedTable() string {
	return m.Table
}
