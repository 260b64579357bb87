package query

import (
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/mathieu-neron/tubedash/internal/model"
)

// Histogram table columns.
const (
	BinColumn      = "bin"
	BinStartColumn = "binStart"
	BinEndColumn   = "binEnd"
)

// HistogramBuckets counts the present values of f in binCount equal-width
// bins spanning the min and max of rows. The edges are derived from rows
// alone, so filtering changes them. Bins are [start, end) except the last,
// which is closed. A constant column is centred in [v-0.5, v+0.5].
func HistogramBuckets(rows []model.Video, f Field, binCount int) (model.Table, error) {
	if err := requireNumeric("field", f); err != nil {
		return model.Table{}, err
	}
	if binCount < 1 {
		return model.Table{}, invalid("bins", strconv.Itoa(binCount), "must be at least 1")
	}

	t := model.NewTable(BinColumn, BinStartColumn, BinEndColumn, CountColumn)
	values := make([]float64, 0, len(rows))
	for _, v := range rows {
		if n, ok := numeric(v, f); ok {
			values = append(values, float64(n))
		}
	}
	if len(values) == 0 {
		return t, nil
	}

	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(binCount)

	counts := make([]int, binCount)
	for _, x := range values {
		i := int((x - lo) / width)
		if i >= binCount {
			i = binCount - 1
		}
		counts[i]++
	}

	for i, c := range counts {
		start := lo + float64(i)*width
		end := lo + float64(i+1)*width
		if i == binCount-1 {
			end = hi
		}
		t.Rows = append(t.Rows, model.Row{
			BinColumn:      formatEdge(start) + "-" + formatEdge(end),
			BinStartColumn: start,
			BinEndColumn:   end,
			CountColumn:    c,
		})
	}
	return t, nil
}

func formatEdge(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
