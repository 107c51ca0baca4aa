package models

import "time"

// AccountingRecord is one radacct session row. The table is produced by the
// RADIUS infrastructure; this subsystem only reads it.
type AccountingRecord struct {
	Username        string
	SessionStart    time.Time
	DurationSeconds int64
	BytesIn         int64
	BytesOut        int64
}

// UsageSummary is the per-username aggregate over radacct. Derived on every
// query, never persisted.
type UsageSummary struct {
	Username             string
	SessionCount         int64
	LastLogin            *time.Time
	TotalDurationSeconds int64
	TotalBytesIn         int64
	TotalBytesOut        int64
}

// DashboardTotals are the unfiltered process-wide counters shown next to a
// filtered stats table.
type DashboardTotals struct {
	TotalUsers     int64
	ActiveUsers24h int64
	TotalOctets    int64
}
