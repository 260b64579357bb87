package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu-neron/tubedash/internal/model"
)

func TestParseFilterSpec(t *testing.T) {
	spec, err := ParseFilterSpec(map[string]string{
		ParamChannel:  "Some Channel",
		ParamDuration: "301-600",
		ParamViews:    "All",
		ParamMonth:    "march",
		ParamDay:      " FRIDAY ",
		ParamWords:    "Top 20",
		"metric":      "viewCount",
	})
	require.NoError(t, err)
	assert.Equal(t, FilterSpec{
		Channel:   "Some Channel",
		Duration:  "301-600",
		Month:     "March",
		Day:       "Friday",
		WordLimit: 20,
	}, spec)
}

func TestParseFilterSpec_EmptyIsIdentity(t *testing.T) {
	spec, err := ParseFilterSpec(nil)
	require.NoError(t, err)
	assert.Equal(t, FilterSpec{}, spec)

	rows := withViews(1, 20000, 90000)
	got, err := spec.Apply(rows)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestParseFilterSpec_RejectsUnknownLabels(t *testing.T) {
	tests := []struct {
		name  string
		param string
		value string
	}{
		{"duration bucket", ParamDuration, "300-600"},
		{"view bucket", ParamViews, "1-2"},
		{"month", ParamMonth, "Smarch"},
		{"day", ParamDay, "Someday"},
		{"words", ParamWords, "Top ten"},
		{"zero words", ParamWords, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilterSpec(map[string]string{tt.param: tt.value})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.param, verr.Param)
		})
	}
}

func TestParseWordLimit(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"All", 0},
		{"Top 10", 10},
		{"top50", 50},
		{"7", 7},
	}
	for _, tt := range tests {
		got, err := ParseWordLimit(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFilterSpec_ApplyComposesWithAnd(t *testing.T) {
	friday := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	a := published("A", friday)
	a.ViewCount, a.DurationSecs = i64(60000), i64(400)
	b := published("A", friday)
	b.ViewCount, b.DurationSecs = i64(60000), i64(100)
	c := published("B", friday)
	c.ViewCount, c.DurationSecs = i64(60000), i64(400)
	d := published("A", friday.AddDate(0, 0, 1))
	d.ViewCount, d.DurationSecs = i64(60000), i64(400)

	spec := FilterSpec{Channel: "A", Duration: "301-600", Views: "50001+", Month: "March", Day: "Friday"}
	got, err := spec.Apply([]model.Video{a, b, c, d})
	require.NoError(t, err)
	assert.Equal(t, []model.Video{a}, got)
}

func TestFilterSpec_ApplyRejectsUnvalidatedValues(t *testing.T) {
	_, err := FilterSpec{Views: "lots"}.Apply(withViews(1))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
