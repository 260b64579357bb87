package query

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/mathieu-neron/tubedash/internal/model"
)

// CountColumn is the value column produced by ValueCounts.
const CountColumn = "count"

type group struct {
	key    any
	total  int64
	values []float64
}

// groupRows buckets rows by groupKey in first-seen order. Rows with a missing
// key are skipped.
func groupRows(rows []model.Video, groupKey, valueField Field) []*group {
	index := make(map[any]*group)
	var order []*group
	for _, v := range rows {
		k, ok := keyOf(v, groupKey)
		if !ok {
			continue
		}
		g, seen := index[k]
		if !seen {
			g = &group{key: k}
			index[k] = g
			order = append(order, g)
		}
		if n, ok := numeric(v, valueField); ok {
			g.total = addCount(g.total, n)
			g.values = append(g.values, float64(n))
		}
	}
	return order
}

// addCount adds two counts, saturating at the int64 bounds instead of
// wrapping.
func addCount(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}

func checkGrouping(groupKey, valueField Field) error {
	if err := requireKnown("groupKey", groupKey); err != nil {
		return err
	}
	if err := requireNumeric("valueField", valueField); err != nil {
		return err
	}
	if groupKey == valueField {
		return invalid("valueField", string(valueField), "must differ from the group key")
	}
	return nil
}

// AggregateSum totals valueField per distinct groupKey. Every group present
// in rows is reported once, in first-seen order; missing values add nothing.
func AggregateSum(rows []model.Video, groupKey, valueField Field) (model.Table, error) {
	if err := checkGrouping(groupKey, valueField); err != nil {
		return model.Table{}, err
	}
	t := model.NewTable(string(groupKey), string(valueField))
	for _, g := range groupRows(rows, groupKey, valueField) {
		t.Rows = append(t.Rows, model.Row{
			string(groupKey):   g.key,
			string(valueField): g.total,
		})
	}
	return t, nil
}

// AggregateMean averages the present values of valueField per groupKey.
// Groups without a single present value are left out.
func AggregateMean(rows []model.Video, groupKey, valueField Field) (model.Table, error) {
	if err := checkGrouping(groupKey, valueField); err != nil {
		return model.Table{}, err
	}
	t := model.NewTable(string(groupKey), string(valueField))
	for _, g := range groupRows(rows, groupKey, valueField) {
		if len(g.values) == 0 {
			continue
		}
		mean, err := stats.Mean(g.values)
		if err != nil {
			continue
		}
		t.Rows = append(t.Rows, model.Row{
			string(groupKey):   g.key,
			string(valueField): mean,
		})
	}
	return t, nil
}

// ValueCounts counts rows per distinct value of f, most frequent first.
// Ties keep first-seen order. Missing values are not counted.
func ValueCounts(rows []model.Video, f Field) (model.Table, error) {
	if err := requireKnown("field", f); err != nil {
		return model.Table{}, err
	}
	type entry struct {
		key   any
		count int
	}
	index := make(map[any]int)
	var entries []entry
	for _, v := range rows {
		k, ok := keyOf(v, f)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(entries)
			index[k] = i
			entries = append(entries, entry{key: k})
		}
		entries[i].count++
	}
	slices.SortStableFunc(entries, func(a, b entry) int { return b.count - a.count })

	t := model.NewTable(string(f), CountColumn)
	for _, e := range entries {
		t.Rows = append(t.Rows, model.Row{string(f): e.key, CountColumn: e.count})
	}
	return t, nil
}

// OrderCalendar sorts a table keyed by day or month into weekday or calendar
// order. Rows with unrecognized keys go last in their original order.
func OrderCalendar(t model.Table, f Field) (model.Table, error) {
	names, err := calendarNames(f)
	if err != nil {
		return model.Table{}, err
	}
	rank := func(r model.Row) int {
		s, _ := r[string(f)].(string)
		if i := slices.Index(names, s); i >= 0 {
			return i
		}
		return len(names)
	}
	out := model.Table{Columns: slices.Clone(t.Columns), Rows: slices.Clone(t.Rows)}
	slices.SortStableFunc(out.Rows, func(a, b model.Row) int { return rank(a) - rank(b) })
	return out, nil
}

// Summarize computes the headline totals. Missing counts add nothing; totals
// saturate at math.MaxInt64.
func Summarize(rows []model.Video) model.KPIResponse {
	var k model.KPIResponse
	for _, v := range rows {
		if n, ok := numeric(v, ViewCount); ok {
			k.TotalViews = addCount(k.TotalViews, n)
		}
		if n, ok := numeric(v, LikeCount); ok {
			k.TotalLikes = addCount(k.TotalLikes, n)
		}
		if n, ok := numeric(v, CommentCount); ok {
			k.TotalComments = addCount(k.TotalComments, n)
		}
	}
	k.TotalVideos = len(rows)
	return k
}
