package query

import (
	"github.com/mathieu-neron/tubedash/internal/model"
)

// Project returns one table row per video holding the requested columns.
// Missing values are nil.
func Project(rows []model.Video, fields ...Field) (model.Table, error) {
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		if err := requireKnown("fields", f); err != nil {
			return model.Table{}, err
		}
		cols = append(cols, string(f))
	}
	t := model.NewTable(cols...)
	for _, v := range rows {
		row := make(model.Row, len(fields))
		for _, f := range fields {
			row[string(f)] = cell(v, f)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func cell(v model.Video, f Field) any {
	k, ok := keyOf(v, f)
	if !ok {
		return nil
	}
	return k
}
