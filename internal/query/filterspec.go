package query

import (
	"strconv"
	"strings"

	"github.com/mathieu-neron/tubedash/internal/model"
)

// Request parameter names of the filter controls.
const (
	ParamChannel  = "channel"
	ParamDuration = "duration"
	ParamViews    = "views"
	ParamMonth    = "month"
	ParamDay      = "day"
	ParamWords    = "words"
)

// WordLimitLabels are the word sampling choices offered to the UI.
var WordLimitLabels = []string{"All", "Top 10", "Top 20", "Top 50"}

// FilterSpec is one validated set of filter selections. Empty strings and a
// zero WordLimit mean "all". Filters compose with logical AND.
type FilterSpec struct {
	Channel   string `json:"channel,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Views     string `json:"views,omitempty"`
	Month     string `json:"month,omitempty"`
	Day       string `json:"day,omitempty"`
	WordLimit int    `json:"wordLimit,omitempty"`
}

// ParseFilterSpec validates raw control values. Unknown keys are ignored so
// chart options can share the same query string.
func ParseFilterSpec(params map[string]string) (FilterSpec, error) {
	var spec FilterSpec

	if ch := strings.TrimSpace(params[ParamChannel]); !isAll(ch) {
		spec.Channel = ch
	}

	if v := params[ParamDuration]; !isAll(v) {
		b, err := lookupBucket(ParamDuration, DurationSecs, v)
		if err != nil {
			return FilterSpec{}, err
		}
		spec.Duration = b.Label
	}

	if v := params[ParamViews]; !isAll(v) {
		b, err := lookupBucket(ParamViews, ViewCount, v)
		if err != nil {
			return FilterSpec{}, err
		}
		spec.Views = b.Label
	}

	if v := params[ParamMonth]; !isAll(v) {
		name, err := canonicalName(ParamMonth, model.Months, v)
		if err != nil {
			return FilterSpec{}, err
		}
		spec.Month = name
	}

	if v := params[ParamDay]; !isAll(v) {
		name, err := canonicalName(ParamDay, model.Weekdays, v)
		if err != nil {
			return FilterSpec{}, err
		}
		spec.Day = name
	}

	limit, err := ParseWordLimit(params[ParamWords])
	if err != nil {
		return FilterSpec{}, err
	}
	spec.WordLimit = limit

	return spec, nil
}

// ParseWordLimit accepts "All", "Top N" or a bare positive integer.
// It returns 0 for "All".
func ParseWordLimit(s string) (int, error) {
	if isAll(s) {
		return 0, nil
	}
	raw := strings.TrimSpace(s)
	digits := raw
	if len(digits) >= 3 && strings.EqualFold(digits[:3], "top") {
		digits = strings.TrimSpace(digits[3:])
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, invalid(ParamWords, raw, "expected All, Top N or a positive integer")
	}
	return n, nil
}

// Apply narrows rows by every selection in the filter.
func (s FilterSpec) Apply(rows []model.Video) ([]model.Video, error) {
	out := FilterByChannel(rows, s.Channel)

	var err error
	if out, err = FilterByRange(out, DurationSecs, s.Duration); err != nil {
		return nil, err
	}
	if out, err = FilterByRange(out, ViewCount, s.Views); err != nil {
		return nil, err
	}
	if out, err = FilterByCalendarField(out, Month, s.Month); err != nil {
		return nil, err
	}
	if out, err = FilterByCalendarField(out, Day, s.Day); err != nil {
		return nil, err
	}
	return out, nil
}
