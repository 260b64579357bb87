package dataset

import (
	"slices"
	"time"

	"github.com/araddon/dateparse"

	"github.com/mathieu-neron/tubedash/internal/model"
)

// DeriveTemporalFields parses each publish timestamp in UTC and fills the
// weekday and month names from it. An unparsable timestamp leaves the three
// fields nil and is reported; the row is kept. The input is not modified.
func DeriveTemporalFields(records []Record) ([]Record, []FieldParseError) {
	out := slices.Clone(records)
	var errs []FieldParseError
	for i := range out {
		r := &out[i]
		r.PublishedAt, r.Day, r.Month = nil, nil, nil

		if r.PublishedRaw == "" {
			if records[i].PublishedAt != nil {
				setPublished(r, *records[i].PublishedAt)
			}
			continue
		}
		t, err := dateparse.ParseIn(r.PublishedRaw, time.UTC)
		if err != nil {
			errs = append(errs, FieldParseError{Row: r.Row, Field: ColPublishedAt, Value: r.PublishedRaw, Err: err})
			continue
		}
		setPublished(r, t)
	}
	return out, errs
}

func setPublished(r *Record, t time.Time) {
	t = t.UTC()
	day, month := model.DayName(t), model.MonthName(t)
	r.PublishedAt, r.Day, r.Month = &t, &day, &month
}
