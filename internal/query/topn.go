package query

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/mathieu-neron/tubedash/internal/model"
)

// TopN returns the first n rows after a stable sort on sortField. Ties keep
// their original order and rows with a missing value sort last in either
// direction.
func TopN(rows []model.Video, sortField Field, n int, descending bool) ([]model.Video, error) {
	if err := requireNumeric("sortField", sortField); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, invalid("n", strconv.Itoa(n), "must not be negative")
	}

	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b model.Video) int {
		av, aok := numeric(a, sortField)
		bv, bok := numeric(b, sortField)
		switch {
		case aok && !bok:
			return -1
		case !aok && bok:
			return 1
		case !aok && !bok:
			return 0
		}
		if descending {
			return cmp.Compare(bv, av)
		}
		return cmp.Compare(av, bv)
	})

	if n < len(out) {
		out = slices.Clip(out[:n])
	}
	return out, nil
}
