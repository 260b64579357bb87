package query

import (
	"strings"

	"github.com/mathieu-neron/tubedash/internal/model"
)

// FilterByChannel keeps videos whose channel name matches name exactly.
// "all" (any case) and the empty string keep everything.
func FilterByChannel(rows []model.Video, name string) []model.Video {
	if isAll(name) {
		return keep(rows, func(model.Video) bool { return true })
	}
	return keep(rows, func(v model.Video) bool { return v.ChannelName == name })
}

// FilterByRange keeps videos whose field value falls in the named bucket.
// A video with a missing value matches no bucket.
func FilterByRange(rows []model.Video, f Field, label string) ([]model.Video, error) {
	if isAll(label) {
		if _, ok := rangeBuckets[f]; !ok {
			return nil, invalid(string(f), label, "field has no range buckets")
		}
		return keep(rows, func(model.Video) bool { return true }), nil
	}
	b, err := lookupBucket(string(f), f, label)
	if err != nil {
		return nil, err
	}
	return keep(rows, func(v model.Video) bool {
		n, ok := numeric(v, f)
		return ok && b.Contains(n)
	}), nil
}

// FilterByCalendarField keeps videos whose derived day or month equals value.
// Videos without a publish date never match a specific value.
func FilterByCalendarField(rows []model.Video, f Field, value string) ([]model.Video, error) {
	names, err := calendarNames(f)
	if err != nil {
		return nil, err
	}
	if isAll(value) {
		return keep(rows, func(model.Video) bool { return true }), nil
	}
	want, err := canonicalName(string(f), names, value)
	if err != nil {
		return nil, err
	}
	return keep(rows, func(v model.Video) bool {
		got, ok := text(v, f)
		return ok && got == want
	}), nil
}

func calendarNames(f Field) ([]string, error) {
	switch f {
	case Day:
		return model.Weekdays, nil
	case Month:
		return model.Months, nil
	}
	return nil, invalid("field", string(f), "not a calendar field")
}

func canonicalName(param string, names []string, value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, n := range names {
		if strings.EqualFold(n, value) {
			return n, nil
		}
	}
	return "", invalid(param, value, "unknown name")
}

// keep returns a new slice holding the rows accepted by pred, in order.
func keep(rows []model.Video, pred func(model.Video) bool) []model.Video {
	out := make([]model.Video, 0, len(rows))
	for _, v := range rows {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}
