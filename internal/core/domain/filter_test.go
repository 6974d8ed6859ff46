package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

// TestFilter_ProjectMatch tests exact project matching
func TestFilter_ProjectMatch(t *testing.T) {
	f := Filter{Project: strptr("payments")}

	assert.True(t, f.Matches(Fragment{Project: strptr("payments")}))
	assert.False(t, f.Matches(Fragment{Project: strptr("billing")}))
	// A fragment with no project never matches a set project filter.
	assert.False(t, f.Matches(Fragment{}))
}

// TestFilter_SourceType tests exact source type matching
func TestFilter_SourceType(t *testing.T) {
	st := SourceZoom
	f := Filter{SourceType: &st}

	assert.True(t, f.Matches(Fragment{SourceType: SourceZoom}))
	assert.False(t, f.Matches(Fragment{SourceType: SourceNotes}))
}

// TestFilter_TimeBoundsInclusive tests since/until inclusivity
func TestFilter_TimeBoundsInclusive(t *testing.T) {
	since := mustTime(t, "2024-01-01T00:00:00Z")
	until := mustTime(t, "2024-01-10T23:59:59Z")
	f := Filter{Since: &since, Until: &until}

	assert.True(t, f.Matches(Fragment{CapturedAt: since}))
	assert.True(t, f.Matches(Fragment{CapturedAt: until}))
	assert.False(t, f.Matches(Fragment{CapturedAt: since.Add(-time.Second)}))
	assert.False(t, f.Matches(Fragment{CapturedAt: until.Add(time.Second)}))
}

// TestParseUntil_DateOnlyIsEndOfDay tests that a bare date expands to
// 23:59:59.999 so a fragment captured late that day is still included
func TestParseUntil_DateOnlyIsEndOfDay(t *testing.T) {
	until, err := ParseUntil("2024-01-10")
	require.NoError(t, err)

	f := Filter{Until: &until}
	assert.True(t, f.Matches(Fragment{CapturedAt: mustTime(t, "2024-01-10T23:00:00Z")}))
	assert.False(t, f.Matches(Fragment{CapturedAt: mustTime(t, "2024-01-11T00:00:01Z")}))
}

// TestParseSince tests both accepted layouts
func TestParseSince(t *testing.T) {
	ts, err := ParseSince("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, 0, ts.Hour())

	ts, err = ParseSince("2024-01-10T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 12, ts.Hour())

	_, err = ParseSince("not-a-date")
	assert.ErrorIs(t, err, ErrValidation)
}

// TestFilter_Query tests free-text token matching across content,
// project and topics
func TestFilter_Query(t *testing.T) {
	frag := Fragment{
		Content: "Chose Redis for session storage",
		Project: strptr("payments"),
		Topics:  []string{"architecture", "caching"},
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"single content token", "redis", true},
		{"case insensitive", "REDIS", true},
		{"project token", "payments", true},
		{"topic token", "caching", true},
		{"all tokens must match", "redis caching", true},
		{"one miss fails", "redis kafka", false},
		{"substring match", "sess", true},
		{"empty query matches", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Filter{Query: tt.query}
			assert.Equal(t, tt.want, f.Matches(frag))
		})
	}
}

// TestFilter_CombinedAND tests that all provided fields constrain together
func TestFilter_CombinedAND(t *testing.T) {
	st := SourceQuickCapture
	since := mustTime(t, "2024-01-01T00:00:00Z")
	f := Filter{Project: strptr("payments"), SourceType: &st, Since: &since}

	match := Fragment{
		Project:    strptr("payments"),
		SourceType: SourceQuickCapture,
		CapturedAt: mustTime(t, "2024-01-05T00:00:00Z"),
	}
	assert.True(t, f.Matches(match))

	wrongType := match
	wrongType.SourceType = SourceZoom
	assert.False(t, f.Matches(wrongType))
}
