package info

import "time"

// MergeConfig represents dialect specific merge config
type MergeConfig interface {
	Validate() error
}

// MergeResult represents merge outcome
type MergeResult interface {
	// RowsAffected returns the number of rows inserted, updated or deleted by the merge statement.
	RowsAffected() int

	// StagedRows returns the number of rows bulk loaded into the staging table.
	StagedRows() int

	// IdentitiesSynced returns the number of records that received server generated identity.
	IdentitiesSynced() int

	// Report returns merge report.
	Report() string

	// StagingTime returns staging (create + bulk load) duration.
	StagingTime() time.Duration

	// MergingTime returns merge statement duration.
	MergingTime() time.Duration

	// TotalTime returns total duration.
	TotalTime() time.Duration

	// MergedTable returns merged table name.
	MergedTable() string
}

// MergeReporter receives merge outcomes, i.e. to export metrics
type MergeReporter interface {
	ReportMerge(result MergeResult, err error)
}
