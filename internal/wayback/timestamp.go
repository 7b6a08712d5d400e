package wayback

import (
	"fmt"
	"sort"
	"strconv"

	wberrors "github.com/yairfalse/wbcheck/internal/errors"
	"github.com/yairfalse/wbcheck/pkg/types"
)

// FormatTimestampDate turns a YYYYMMDD[HHMMSS] archive timestamp into YYYY-MM-DD
func FormatTimestampDate(ts string) (string, error) {
	if len(ts) < 8 {
		return "", ErrInvalidTimestamp
	}
	d := ts[:8]
	return d[:4] + "-" + d[4:6] + "-" + d[6:8], nil
}

// ValidateDate accepts an empty date or a YYYYMMDD / YYYYMMDDHHMMSS timestamp
func ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	if len(date) != 8 && len(date) != 14 {
		return wberrors.InvalidDateError(date)
	}
	for _, r := range date {
		if r < '0' || r > '9' {
			return wberrors.InvalidDateError(date)
		}
	}
	return nil
}

// YearCount is the number of captures recorded in one year
type YearCount struct {
	Year  string
	Count int64
}

// YearlyCounts sums the monthly capture counts in a sparkline response's
// "years" object. Years are returned in ascending order.
func YearlyCounts(data map[string]interface{}) []YearCount {
	years, ok := data["years"].(map[string]interface{})
	if !ok {
		return nil
	}

	counts := make([]YearCount, 0, len(years))
	for year, months := range years {
		var total int64
		if list, ok := months.([]interface{}); ok {
			for _, m := range list {
				if n, err := strconv.ParseFloat(stringValue(m), 64); err == nil {
					total += int64(n)
				}
			}
		}
		counts = append(counts, YearCount{Year: year, Count: total})
	}

	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Year < counts[j].Year
	})
	return counts
}

// present mirrors a truthiness check on a decoded JSON value
func present(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case fmt.Stringer:
		s := val.String()
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f != 0
		}
		return s != ""
	case float64:
		return val != 0
	case map[string]interface{}:
		return len(val) > 0
	case []interface{}:
		return len(val) > 0
	default:
		return true
	}
}

// stringValue renders a decoded JSON scalar as text
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func fieldOrUnknown(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return types.UnknownValue
	}
	return stringValue(v)
}
