package query

import (
	"math"
	"slices"
	"strings"
)

// Bucket is a named numeric range with an exclusive lower bound and an
// inclusive upper bound. The first bucket of a field has no lower bound and
// the last has no upper bound.
type Bucket struct {
	Label string
	Lower int64
	Upper int64
}

// Contains reports whether v falls in (Lower, Upper].
func (b Bucket) Contains(v int64) bool {
	return v > b.Lower && v <= b.Upper
}

const (
	noLower = math.MinInt64
	noUpper = math.MaxInt64
)

// rangeBuckets is the single table behind every numeric range filter.
var rangeBuckets = map[Field][]Bucket{
	DurationSecs: {
		{Label: "0-300", Lower: noLower, Upper: 300},
		{Label: "301-600", Lower: 300, Upper: 600},
		{Label: "601-900", Lower: 600, Upper: 900},
		{Label: "901-1200", Lower: 900, Upper: 1200},
		{Label: "1201+", Lower: 1200, Upper: noUpper},
	},
	ViewCount: {
		{Label: "0-10000", Lower: noLower, Upper: 10000},
		{Label: "10001-50000", Lower: 10000, Upper: 50000},
		{Label: "50001+", Lower: 50000, Upper: noUpper},
	},
}

// Buckets returns the ordered buckets defined for f, or nil if f has none.
func Buckets(f Field) []Bucket {
	return slices.Clone(rangeBuckets[f])
}

// BucketLabels returns the labels of every bucketed field.
func BucketLabels() map[string][]string {
	out := make(map[string][]string, len(rangeBuckets))
	for f, bs := range rangeBuckets {
		labels := make([]string, 0, len(bs))
		for _, b := range bs {
			labels = append(labels, b.Label)
		}
		out[string(f)] = labels
	}
	return out
}

// BucketOf returns the bucket of f containing v.
func BucketOf(f Field, v int64) (Bucket, bool) {
	for _, b := range rangeBuckets[f] {
		if b.Contains(v) {
			return b, true
		}
	}
	return Bucket{}, false
}

// lookupBucket resolves a bucket label for f.
func lookupBucket(param string, f Field, label string) (Bucket, error) {
	bs, ok := rangeBuckets[f]
	if !ok {
		return Bucket{}, invalid(param, string(f), "field has no range buckets")
	}
	label = strings.TrimSpace(label)
	for _, b := range bs {
		if b.Label == label {
			return b, nil
		}
	}
	return Bucket{}, invalid(param, label, "unknown range bucket")
}

// isAll reports whether a control value means "no restriction".
func isAll(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "all")
}
