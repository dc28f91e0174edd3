package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func TestParseLocalDate_Valid(t *testing.T) {
	got := ParseLocalDate("2024-01-15")
	require.NotNil(t, got)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 0, got.Hour(), "should be local midnight")
}

func TestParseLocalDate_Malformed(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2024-13-01", "15/01/2024", "2024-01-15T10:00:00Z"} {
		assert.Nil(t, ParseLocalDate(s), "input %q should parse to nil", s)
	}
}

func TestMinMaxDate(t *testing.T) {
	a := datePtr("2024-01-01")
	b := datePtr("2024-01-10")
	c := datePtr("2024-01-05")

	assert.Equal(t, a, MinDate(b, nil, a, c))
	assert.Equal(t, b, MaxDate(a, c, nil, b))
	assert.Nil(t, MinDate(nil, nil))
	assert.Nil(t, MaxDate())
}

func TestTimeRatio_BeforeStart(t *testing.T) {
	got := TimeRatio(date("2024-01-01"), date("2024-02-01"), date("2024-03-01"))
	assert.Equal(t, 0.0, got)
}

func TestTimeRatio_AfterEnd(t *testing.T) {
	got := TimeRatio(date("2024-04-01"), date("2024-02-01"), date("2024-03-01"))
	assert.Equal(t, 1.0, got)
}

func TestTimeRatio_Midway(t *testing.T) {
	got := TimeRatio(date("2024-01-11"), date("2024-01-01"), date("2024-01-21"))
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestTimeRatio_DegenerateRange(t *testing.T) {
	// end <= start is treated as not yet time-boxed.
	assert.Equal(t, 0.0, TimeRatio(date("2024-01-15"), date("2024-01-10"), date("2024-01-10")))
	assert.Equal(t, 0.0, TimeRatio(date("2024-01-15"), date("2024-01-10"), date("2024-01-05")))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 9, DaysBetween(date("2024-03-01"), date("2024-03-10")))
	assert.Equal(t, -9, DaysBetween(date("2024-03-10"), date("2024-03-01")))
	assert.Equal(t, 0, DaysBetween(date("2024-03-10"), date("2024-03-10")))
}

func TestDeriveStatus(t *testing.T) {
	start := datePtr("2024-01-01")
	end := datePtr("2024-02-01")

	assert.Equal(t, StatusPending, DeriveStatus(nil, nil))
	assert.Equal(t, StatusInProgress, DeriveStatus(start, nil))
	assert.Equal(t, StatusCompleted, DeriveStatus(start, end))
	assert.Equal(t, StatusCompleted, DeriveStatus(nil, end), "completion wins even without a start")
}
