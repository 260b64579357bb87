package model

// Row is one record of a derived table: column name to scalar value.
type Row map[string]any

// Table is a derived table handed to the rendering surface. Every row carries
// the same set of columns.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) Table {
	return Table{Columns: columns, Rows: []Row{}}
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Column returns the values of one column in row order.
func (t Table) Column(name string) []any {
	out := make([]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r[name])
	}
	return out
}

// ChartRoles maps table columns onto the axes of a chart.
type ChartRoles struct {
	X     string `json:"x,omitempty"`
	Y     string `json:"y,omitempty"`
	Value string `json:"value,omitempty"`
	Label string `json:"label,omitempty"`
}

// ChartSpec is a named chart specification: the chart kind, its derived table
// and which columns play which role.
type ChartSpec struct {
	Name       string            `json:"name"`
	Kind       string            `json:"kind"`
	Title      string            `json:"title"`
	Table      Table             `json:"table"`
	Roles      ChartRoles        `json:"roles"`
	AxisLabels map[string]string `json:"axisLabels,omitempty"`
}

// KPIResponse is the API response for the headline totals.
type KPIResponse struct {
	TotalViews    int64 `json:"totalViews"`
	TotalLikes    int64 `json:"totalLikes"`
	TotalComments int64 `json:"totalComments"`
	TotalVideos   int   `json:"totalVideos"`
}

// FilterOptions lists every value a control may send.
type FilterOptions struct {
	Channels   []string            `json:"channels"`
	Buckets    map[string][]string `json:"buckets"`
	Months     []string            `json:"months"`
	Days       []string            `json:"days"`
	WordLimits []string            `json:"wordLimits"`
	Charts     []string            `json:"charts"`
}
