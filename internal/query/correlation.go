package query

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/mathieu-neron/tubedash/internal/model"
)

// FieldColumn is the row-label column of a correlation table.
const FieldColumn = "field"

// Matrix holds pairwise Pearson coefficients. Values[i][j] correlates
// Fields[i] with Fields[j].
type Matrix struct {
	Fields []Field
	Values [][]Number
}

// At returns the coefficient for the pair (i, j).
func (m Matrix) At(i, j int) Number {
	return m.Values[i][j]
}

// Table lays the matrix out as one row per field.
func (m Matrix) Table() model.Table {
	cols := make([]string, 0, len(m.Fields)+1)
	cols = append(cols, FieldColumn)
	for _, f := range m.Fields {
		cols = append(cols, string(f))
	}
	t := model.NewTable(cols...)
	for i, f := range m.Fields {
		row := model.Row{FieldColumn: string(f)}
		for j, g := range m.Fields {
			row[string(g)] = m.Values[i][j]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// CorrelationMatrix computes pairwise Pearson correlation between numeric
// fields, using the rows where both values are present. A pair involving a
// constant column is Undefined, diagonal included.
func CorrelationMatrix(rows []model.Video, fields []Field) (Matrix, error) {
	if len(fields) == 0 {
		return Matrix{}, invalid("fields", "", "at least one field is required")
	}
	for _, f := range fields {
		if err := requireNumeric("fields", f); err != nil {
			return Matrix{}, err
		}
	}

	n := len(fields)
	m := Matrix{Fields: slices.Clone(fields), Values: make([][]Number, n)}
	for i := range m.Values {
		m.Values[i] = make([]Number, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := pearson(rows, fields[i], fields[j])
			if i == j && r.IsDefined() {
				r = Defined(1)
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

func pearson(rows []model.Video, a, b Field) Number {
	xs := make([]float64, 0, len(rows))
	ys := make([]float64, 0, len(rows))
	for _, v := range rows {
		x, xok := numeric(v, a)
		y, yok := numeric(v, b)
		if xok && yok {
			xs = append(xs, float64(x))
			ys = append(ys, float64(y))
		}
	}
	if len(xs) < 2 {
		return Undefined
	}

	sx, err := stats.StandardDeviationPopulation(xs)
	if err != nil || sx == 0 {
		return Undefined
	}
	sy, err := stats.StandardDeviationPopulation(ys)
	if err != nil || sy == 0 {
		return Undefined
	}
	cov, err := stats.CovariancePopulation(xs, ys)
	if err != nil {
		return Undefined
	}
	r := cov / (sx * sy)
	return Defined(math.Max(-1, math.Min(1, r)))
}
