package dataset

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/mathieu-neron/tubedash/internal/model"
)

var (
	errNotInteger = errors.New("not a whole number")
	errNegative   = errors.New("negative count")
)

// Record is a normalized source row whose publish timestamp has not been
// interpreted yet. Row is the 1-based position of the row in the source.
type Record struct {
	model.Video
	Row          int
	PublishedRaw string
}

// Normalize converts raw rows into records. Malformed counts read as missing
// and are reported; they never fail the batch.
func Normalize(raw []RawRecord) ([]Record, []FieldParseError) {
	out := make([]Record, 0, len(raw))
	var errs []FieldParseError
	for i, r := range raw {
		rec := Record{Row: i + 1, PublishedRaw: strings.TrimSpace(r[ColPublishedAt])}

		if ch, ok := r[ColChannelName]; ok {
			rec.ChannelName = strings.TrimSpace(ch)
		} else {
			errs = append(errs, FieldParseError{Row: rec.Row, Field: ColChannelName, Err: errMissingValue})
		}
		if d, ok := r[ColDescription]; ok {
			rec.Description = &d
		}

		for _, col := range []struct {
			name string
			dst  **int64
		}{
			{ColViewCount, &rec.ViewCount},
			{ColLikeCount, &rec.LikeCount},
			{ColCommentCount, &rec.CommentCount},
			{ColDurationSecs, &rec.DurationSecs},
		} {
			s, ok := r[col.name]
			if !ok {
				continue
			}
			n, err := parseCount(s)
			if err != nil {
				errs = append(errs, FieldParseError{Row: rec.Row, Field: col.name, Value: s, Err: err})
				continue
			}
			*col.dst = &n
		}
		out = append(out, rec)
	}
	return out, errs
}

// parseCount accepts non-negative integers and whole numbers in float
// notation ("123.0"). Blank input is not an error here; callers treat it as
// missing beforehand.
func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, ferr
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return 0, errNotInteger
		}
		n = int64(f)
	}
	if n < 0 {
		return 0, errNegative
	}
	return n, nil
}
