// Package wayback queries the Internet Archive's Wayback Machine for the
// capture history of a URL and for the capture closest to a point in time.
//
// Both lookups return structured results. A failed lookup never aborts the
// caller: the result carries Found=false, a printable Error string and the
// underlying error (see the Err methods) for callers that need to tell
// network, decode and not-found failures apart.
package wayback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	wberrors "github.com/yairfalse/wbcheck/internal/errors"
	"github.com/yairfalse/wbcheck/internal/logger"
	"github.com/yairfalse/wbcheck/pkg/config"
	"github.com/yairfalse/wbcheck/pkg/types"
)

var (
	ErrNoSnapshots         = wberrors.New(wberrors.ErrorTypeNotFound, "No snapshots found")
	ErrInvalidTimestamp    = errors.New("Invalid timestamp format")
	ErrNoArchivedSnapshots = wberrors.New(wberrors.ErrorTypeNotFound, "No archived snapshots found")
)

// Client talks to the sparkline and availability endpoints
type Client struct {
	httpClient   *http.Client
	sparklineURL string
	availableURL string
	userAgent    string
	log          logger.Logger
}

// NewClient creates a client with the configured endpoints and timeout
func NewClient(cfg config.ArchiveConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sparklineURL: cfg.SparklineURL,
		availableURL: cfg.AvailableURL,
		userAgent:    cfg.UserAgent,
		log:          log,
	}
}

// QueryHistory fetches the capture history summary for target
func (c *Client) QueryHistory(ctx context.Context, target string) *types.SnapshotQueryResult {
	log := c.log.WithFields(map[string]interface{}{
		"url":      target,
		"endpoint": "sparkline",
	})

	params := url.Values{}
	params.Set("url", target)
	params.Set("collection", "web")
	params.Set("output", "json")

	data, err := c.getJSON(ctx, c.sparklineURL, params)
	if err != nil {
		log.Error("snapshot history query failed", err)
		return types.HistoryFailure(err)
	}

	if !present(data["first_ts"]) {
		log.Debug("no first_ts in sparkline response")
		return types.HistoryFailure(ErrNoSnapshots)
	}

	firstTS := stringValue(data["first_ts"])
	firstDate, err := FormatTimestampDate(firstTS)
	if err != nil {
		log.WithField("first_ts", firstTS).Warn("sparkline returned a malformed timestamp")
		return types.HistoryFailure(err)
	}

	result := &types.SnapshotQueryResult{
		Found:          true,
		FirstTimestamp: firstTS,
		FirstDate:      firstDate,
		Data:           data,
	}

	if present(data["last_ts"]) {
		result.LastTimestamp = stringValue(data["last_ts"])
		if lastDate, err := FormatTimestampDate(result.LastTimestamp); err == nil {
			result.LastDate = lastDate
		} else {
			result.LastDate = result.LastTimestamp
		}
		result.Count = types.UnknownValue
		if count, ok := data["count"]; ok && count != nil {
			result.Count = stringValue(count)
		}
	}

	log.WithField("first_date", firstDate).Debug("snapshot history found")
	return result
}

// QueryClosestSnapshot finds the capture closest to date, or to now when date is empty
func (c *Client) QueryClosestSnapshot(ctx context.Context, target, date string) *types.ClosestSnapshotResult {
	log := c.log.WithFields(map[string]interface{}{
		"url":      target,
		"endpoint": "available",
		"date":     date,
	})

	params := url.Values{}
	params.Set("url", target)
	if date != "" {
		params.Set("timestamp", date)
	}

	data, err := c.getJSON(ctx, c.availableURL, params)
	if err != nil {
		log.Error("closest snapshot query failed", err)
		return types.ClosestFailure(err)
	}

	archived, _ := data["archived_snapshots"].(map[string]interface{})
	closest, _ := archived["closest"].(map[string]interface{})
	if len(closest) == 0 {
		log.Debug("no closest snapshot in availability response")
		return types.ClosestFailure(ErrNoArchivedSnapshots)
	}

	snapshot := &types.ClosestSnapshot{
		Timestamp: fieldOrUnknown(closest, "timestamp"),
		URL:       fieldOrUnknown(closest, "url"),
		Status:    fieldOrUnknown(closest, "status"),
	}

	log.WithField("timestamp", snapshot.Timestamp).Debug("closest snapshot found")
	return &types.ClosestSnapshotResult{
		Found:    true,
		Snapshot: snapshot,
	}
}

// getJSON issues a GET and decodes a JSON object, keeping numbers exact
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values) (map[string]interface{}, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, wberrors.NetworkError(fmt.Errorf("invalid endpoint %q: %w", endpoint, err))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, wberrors.NetworkError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.log.WithField("request", u.String()).Debug("querying archive")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wberrors.NetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, wberrors.HTTPStatusError(resp.StatusCode)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var data map[string]interface{}
	if err := decoder.Decode(&data); err != nil {
		return nil, wberrors.DecodeError(err)
	}
	if data == nil {
		data = map[string]interface{}{}
	}

	return data, nil
}
