package monitoring

import (
	"errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/metadata/product/sqlserver/merge/metric"
	"testing"
	"time"
)

func TestPrometheusReporter_ReportMerge(t *testing.T) {
	reporter := NewPrometheusReporter()

	succeeded := metric.New("[db].[dbo].[invoice]")
	succeeded.StagedCnt = 3
	succeeded.AffectedCnt = 3
	succeeded.IdentitySyncCnt = 2
	succeeded.StageTime = time.Millisecond
	succeeded.ElapsedTime = 5 * time.Millisecond
	reporter.ReportMerge(succeeded, nil)

	failed := metric.New("[db].[dbo].[invoice]")
	failed.Err = errx.Identity("merge", failed.Table, errors.New("8102"))
	reporter.ReportMerge(failed, failed.Err)

	assert.EqualValues(t, 1, testutil.ToFloat64(reporter.mergeTotal.WithLabelValues("[db].[dbo].[invoice]", statusSuccess)))
	assert.EqualValues(t, 1, testutil.ToFloat64(reporter.mergeTotal.WithLabelValues("[db].[dbo].[invoice]", statusFailure)))
	assert.EqualValues(t, 3, testutil.ToFloat64(reporter.rowsAffected.WithLabelValues("[db].[dbo].[invoice]")))
	assert.EqualValues(t, 2, testutil.ToFloat64(reporter.identitiesTotal.WithLabelValues("[db].[dbo].[invoice]")))
	assert.EqualValues(t, 1, testutil.ToFloat64(reporter.errorTotal.WithLabelValues("[db].[dbo].[invoice]", "identity")))
	assert.EqualValues(t, 2, testutil.CollectAndCount(reporter.mergeDuration))
}

func TestErrorType(t *testing.T) {
	var useCases = []struct {
		description string
		err         error
		expect      string
	}{
		{description: "config", err: errx.Config("validate", "no columns"), expect: "config"},
		{description: "missing column", err: errx.MissingColumn("probe", "t", []string{"x"}), expect: "missing_column"},
		{description: "server", err: errors.New("deadlock"), expect: "server"},
	}
	for _, useCase := range useCases {
		assert.EqualValues(t, useCase.expect, errorType(useCase.err), useCase.description)
	}
}
