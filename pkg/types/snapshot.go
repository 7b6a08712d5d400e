package types

// UnknownValue fills closest-snapshot fields the archive left out.
const UnknownValue = "Unknown"

// SnapshotQueryResult is the outcome of a snapshot history lookup
type SnapshotQueryResult struct {
	Found          bool                   `json:"found" yaml:"found"`
	FirstTimestamp string                 `json:"first_snapshot,omitempty" yaml:"first_snapshot,omitempty"`
	FirstDate      string                 `json:"first_date,omitempty" yaml:"first_date,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"`
	Error          string                 `json:"error,omitempty" yaml:"error,omitempty"`

	// Display-only fields, shown on the console and never serialized.
	LastTimestamp string `json:"-" yaml:"-"`
	LastDate      string `json:"-" yaml:"-"`
	Count         string `json:"-" yaml:"-"`

	err error
}

// Err returns the underlying failure, nil when the lookup succeeded
func (r *SnapshotQueryResult) Err() error {
	return r.err
}

// HistoryFailure builds a not-found result carrying err
func HistoryFailure(err error) *SnapshotQueryResult {
	return &SnapshotQueryResult{
		Found: false,
		Error: err.Error(),
		err:   err,
	}
}

// ClosestSnapshot is the archived capture nearest to a requested time
type ClosestSnapshot struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	URL       string `json:"url" yaml:"url"`
	Status    string `json:"status" yaml:"status"`
}

// ClosestSnapshotResult is the outcome of a closest-snapshot lookup
type ClosestSnapshotResult struct {
	Found    bool             `json:"found" yaml:"found"`
	Snapshot *ClosestSnapshot `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// Err returns the underlying failure, nil when a snapshot was found
func (r *ClosestSnapshotResult) Err() error {
	return r.err
}

// ClosestFailure builds a not-found result carrying err
func ClosestFailure(err error) *ClosestSnapshotResult {
	return &ClosestSnapshotResult{
		Found: false,
		Error: err.Error(),
		err:   err,
	}
}
