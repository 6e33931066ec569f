package codec

import (
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
	"github.com/julianstephens/habit-tracker/internal/models"
)

func TestHabitTypeToSQL(t *testing.T) {
	tag, err := HabitTypeToSQL(models.HabitTypeDaily)
	require.NoError(t, err)
	assert.Equal(t, "daily", tag)

	tag, err = HabitTypeToSQL(models.HabitTypeAppleCalendar)
	require.NoError(t, err)
	assert.Equal(t, "appleCalendar", tag)

	_, err = HabitTypeToSQL(models.HabitType(0))
	assert.ErrorIs(t, err, apperrors.ErrInvalidEnumValue)
}

func TestHabitTypeFromSQL(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    models.HabitType
		wantErr bool
	}{
		{name: "daily", tag: "daily", want: models.HabitTypeDaily},
		{name: "apple calendar", tag: "appleCalendar", want: models.HabitTypeAppleCalendar},
		{name: "display name is not a storage tag", tag: "Daily", wantErr: true},
		{name: "unknown", tag: "incorrect_type", wantErr: true},
		{name: "empty", tag: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HabitTypeFromSQL(tt.tag)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidEnumValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHabitTypeRoundTrip(t *testing.T) {
	for _, ht := range models.HabitTypes {
		tag, err := HabitTypeToSQL(ht)
		require.NoError(t, err)
		got, err := HabitTypeFromSQL(tag)
		require.NoError(t, err)
		assert.Equal(t, ht, got)
	}
}

func TestEventIDsToSQL(t *testing.T) {
	text, err := EventIDsToSQL([]string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, `["1","2"]`, text)

	text, err = EventIDsToSQL(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, text)

	_, err = EventIDsToSQL([]string{"evt-1", "evt-\xff"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidEncoding)
}

func TestEventIDsFromSQL(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    []string
		wantErr bool
	}{
		{name: "json array", value: `["1", "2", "3"]`, want: []string{"1", "2", "3"}},
		{name: "bytes", value: []byte(`["a"]`), want: []string{"a"}},
		{name: "null column", value: nil, want: []string{}},
		{name: "empty text", value: "", want: []string{}},
		{name: "json null", value: "null", want: []string{}},
		{name: "empty array", value: "[]", want: []string{}},
		{name: "invalid json", value: "invalid json", wantErr: true},
		{name: "object instead of array", value: `{"a":1}`, wantErr: true},
		{name: "numeric column", value: int64(3), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EventIDsFromSQL(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidEncoding)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEventIDsRoundTrip(t *testing.T) {
	roundTrip := func(ids []string) bool {
		text, err := EventIDsToSQL(ids)
		if err != nil {
			return false
		}
		got, err := EventIDsFromSQL(text)
		if err != nil || len(got) != len(ids) {
			return false
		}
		for i := range ids {
			if got[i] != ids[i] {
				return false
			}
		}
		return true
	}

	require.NoError(t, quick.Check(roundTrip, nil))
	assert.True(t, roundTrip([]string{}))
	assert.True(t, roundTrip([]string{"", "with \"quotes\"", "ünïcode", "line\nbreak"}))
}

func TestTimeRoundTrip(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	values := []time.Time{
		time.Date(2024, 3, 1, 12, 30, 45, 123456789, time.UTC),
		time.Date(2024, 3, 1, 17, 30, 45, 1, loc),
		time.Unix(0, 0).UTC(),
		time.Now(),
	}

	for _, v := range values {
		got, err := TimeFromSQL(TimeToSQL(v))
		require.NoError(t, err)
		assert.True(t, v.Equal(got), "want %v, got %v", v, got)
		assert.Equal(t, time.UTC, got.Location())
	}
}

func TestTimeFromSQL(t *testing.T) {
	want := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{name: "rfc3339", value: "2024-05-06T07:08:09Z", want: want},
		{name: "current timestamp default", value: "2024-05-06 07:08:09", want: want},
		{name: "driver text format", value: "2024-05-06 09:08:09.5+02:00", want: want.Add(500 * time.Millisecond)},
		{name: "strftime millis", value: "2024-05-06T07:08:09.250Z", want: want.Add(250 * time.Millisecond)},
		{name: "bytes", value: []byte("2024-05-06T07:08:09Z"), want: want},
		{name: "unix seconds", value: want.Unix(), want: want},
		{name: "fractional unix seconds", value: float64(want.Unix()) + 0.5, want: want.Add(500 * time.Millisecond)},
		{name: "time value", value: want.In(time.FixedZone("X", 3600)), want: want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeFromSQL(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestTimeFromSQLInvalid(t *testing.T) {
	for _, v := range []any{nil, "yesterday", true} {
		_, err := TimeFromSQL(v)
		assert.ErrorIs(t, err, apperrors.ErrInvalidEncoding, "value %v", v)
	}
}
