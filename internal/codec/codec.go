// Package codec maps domain values to the primitive column representations
// stored in SQLite and back. Every decoder is the exact inverse of its encoder.
package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
	"github.com/julianstephens/habit-tracker/internal/models"
)

// Storage tags for habit types
const (
	HabitTypeDailyTag         = "daily"
	HabitTypeAppleCalendarTag = "appleCalendar"
)

// timeLayouts are tried in order when decoding textual timestamps. The first
// one is what TimeToSQL writes; the others cover CURRENT_TIMESTAMP defaults
// and rows written by older clients.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func HabitTypeToSQL(t models.HabitType) (string, error) {
	switch t {
	case models.HabitTypeDaily:
		return HabitTypeDailyTag, nil
	case models.HabitTypeAppleCalendar:
		return HabitTypeAppleCalendarTag, nil
	default:
		return "", fmt.Errorf("%w: habit type %d", apperrors.ErrInvalidEnumValue, int(t))
	}
}

func HabitTypeFromSQL(s string) (models.HabitType, error) {
	switch s {
	case HabitTypeDailyTag:
		return models.HabitTypeDaily, nil
	case HabitTypeAppleCalendarTag:
		return models.HabitTypeAppleCalendar, nil
	default:
		return 0, fmt.Errorf("%w: habit type %q", apperrors.ErrInvalidEnumValue, s)
	}
}

// EventIDsToSQL serializes the event id list as a JSON array. A nil list is
// written as "[]" so the column never mixes NULL and empty arrays for new rows.
func EventIDsToSQL(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	// json.Marshal would silently replace invalid bytes with U+FFFD
	for i, id := range ids {
		if !utf8.ValidString(id) {
			return "", fmt.Errorf("%w: event id at position %d is not valid UTF-8", apperrors.ErrInvalidEncoding, i)
		}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("%w: event ids: %v", apperrors.ErrInvalidEncoding, err)
	}
	return string(data), nil
}

// EventIDsFromSQL decodes the eventIds column. NULL and empty text decode to
// an empty, non-nil slice.
func EventIDsFromSQL(v any) ([]string, error) {
	var text string
	switch val := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		text = val
	case []byte:
		text = string(val)
	default:
		return nil, fmt.Errorf("%w: event ids stored as %T", apperrors.ErrInvalidEncoding, v)
	}

	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(text), &ids); err != nil {
		return nil, fmt.Errorf("%w: event ids %q: %v", apperrors.ErrInvalidEncoding, text, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// TimeToSQL normalizes t to UTC and formats it with nanosecond precision.
func TimeToSQL(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// TimeFromSQL decodes a timestamp column. Text, driver time values and unix
// seconds (integer or fractional) are accepted; the result is always UTC.
func TimeFromSQL(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val.UTC(), nil
	case string:
		return parseTimeText(val)
	case []byte:
		return parseTimeText(string(val))
	case int64:
		return time.Unix(val, 0).UTC(), nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return time.Time{}, fmt.Errorf("%w: timestamp %v", apperrors.ErrInvalidEncoding, val)
		}
		sec, frac := math.Modf(val)
		return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC(), nil
	case nil:
		return time.Time{}, fmt.Errorf("%w: timestamp is NULL", apperrors.ErrInvalidEncoding)
	default:
		return time.Time{}, fmt.Errorf("%w: timestamp stored as %T", apperrors.ErrInvalidEncoding, v)
	}
}

func parseTimeText(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q", apperrors.ErrInvalidEncoding, s)
}
