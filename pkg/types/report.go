package types

import (
	"errors"
	"strings"
	"time"
)

// AnalysisReport aggregates one wbcheck run
type AnalysisReport struct {
	URL              string               `json:"url" yaml:"url"`
	AnalysisDate     time.Time            `json:"analysis_date" yaml:"analysis_date"`
	SparklineCheck   *SnapshotQueryResult `json:"sparkline_check" yaml:"sparkline_check"`
	SpecificSnapshot *ClosestSnapshot     `json:"specific_snapshot" yaml:"specific_snapshot"`
}

// NewAnalysisReport starts a report for url stamped with the current time
func NewAnalysisReport(url string) *AnalysisReport {
	return &AnalysisReport{
		URL:          url,
		AnalysisDate: time.Now(),
	}
}

// Validate checks if the report has all required fields
func (r *AnalysisReport) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return errors.New("report URL is required")
	}
	if r.AnalysisDate.IsZero() {
		return errors.New("report analysis date is required")
	}
	return nil
}

// AnySnapshotFound reports whether either lookup located a capture
func (r *AnalysisReport) AnySnapshotFound() bool {
	if r.SparklineCheck != nil && r.SparklineCheck.Found {
		return true
	}
	return r.SpecificSnapshot != nil
}
