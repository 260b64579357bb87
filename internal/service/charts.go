package service

import (
	"github.com/mathieu-neron/tubedash/internal/model"
	"github.com/mathieu-neron/tubedash/internal/query"
)

// Chart kinds understood by the rendering surface.
const (
	KindScatter   = "scatter"
	KindBar       = "bar"
	KindHeatmap   = "heatmap"
	KindWordCloud = "wordcloud"
	KindTable     = "table"
	KindHistogram = "histogram"
)

type chartBuilder func(rows []model.Video, spec query.FilterSpec, opts ChartOptions) (model.Table, model.ChartRoles, error)

type chartDef struct {
	name   string
	kind   string
	title  string
	labels map[string]string
	build  chartBuilder
}

// charts is the catalogue in dashboard order.
var charts = []chartDef{
	{
		name:   "duration-vs-views",
		kind:   KindScatter,
		title:  "Duration vs View Count",
		labels: map[string]string{"durationSecs": "Video Duration (seconds)", "viewCount": "View Count"},
		build:  scatter(query.DurationSecs, query.ViewCount),
	},
	{
		name:  "correlation",
		kind:  KindHeatmap,
		title: "Correlation Heatmap",
		build: correlationChart,
	},
	{
		name:   "views-by-month",
		kind:   KindBar,
		title:  "Total Views by Month",
		labels: map[string]string{"month": "Month", "viewCount": "Total Views"},
		build:  calendarViews(query.Month),
	},
	{
		name:   "views-by-day",
		kind:   KindBar,
		title:  "Total Views by Day of the Week",
		labels: map[string]string{"day": "Day of the Week", "viewCount": "Total Views"},
		build:  calendarViews(query.Day),
	},
	{
		name:  "word-cloud",
		kind:  KindWordCloud,
		title: "Word Cloud for Video Descriptions",
		build: wordCloud,
	},
	{
		name:   "likes-vs-comments",
		kind:   KindScatter,
		title:  "Likes vs Comments",
		labels: map[string]string{"likeCount": "Like Count", "commentCount": "Comment Count"},
		build:  scatter(query.LikeCount, query.CommentCount),
	},
	{
		name:   "views-vs-duration",
		kind:   KindScatter,
		title:  "Views vs Duration",
		labels: map[string]string{"durationSecs": "Duration (seconds)", "viewCount": "View Count"},
		build:  scatter(query.DurationSecs, query.ViewCount),
	},
	{
		name:   "views-vs-likes",
		kind:   KindScatter,
		title:  "Views vs Likes",
		labels: map[string]string{"viewCount": "View Count", "likeCount": "Like Count"},
		build:  scatter(query.ViewCount, query.LikeCount),
	},
	{
		name:   "views-by-channel",
		kind:   KindBar,
		title:  "Total Views by Channel",
		labels: map[string]string{"channelName": "Channel", "viewCount": "Total Views"},
		build:  byChannel(query.AggregateSum),
	},
	{
		name:   "avg-views-by-channel",
		kind:   KindBar,
		title:  "Average Views per Video by Channel",
		labels: map[string]string{"channelName": "Channel", "viewCount": "Average Views"},
		build:  byChannel(query.AggregateMean),
	},
	{
		name:   "uploads-by-day",
		kind:   KindBar,
		title:  "Uploads by Day of the Week",
		labels: map[string]string{"day": "Day of the Week", "count": "Videos"},
		build:  uploadsByDay,
	},
	{
		name:  "top-videos",
		kind:  KindTable,
		title: "Top Videos",
		build: topVideos,
	},
	{
		name:   "engagement",
		kind:   KindScatter,
		title:  "Engagement Ratio vs Views",
		labels: map[string]string{"viewCount": "View Count", "engagementRatio": "(Likes + Comments) / Views"},
		build:  engagement,
	},
	{
		name:   "duration-histogram",
		kind:   KindHistogram,
		title:  "Video Duration Distribution",
		labels: map[string]string{"bin": "Duration (seconds)", "count": "Videos"},
		build:  durationHistogram,
	},
}

// ChartNames lists the catalogue in dashboard order.
func ChartNames() []string {
	names := make([]string, len(charts))
	for i, c := range charts {
		names[i] = c.name
	}
	return names
}

// ChartInfo describes one catalogue entry.
type ChartInfo struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

// Catalogue describes every chart in dashboard order.
func Catalogue() []ChartInfo {
	out := make([]ChartInfo, len(charts))
	for i, c := range charts {
		out[i] = ChartInfo{Name: c.name, Kind: c.kind, Title: c.title}
	}
	return out
}

func lookupChart(name string) (chartDef, bool) {
	for _, c := range charts {
		if c.name == name {
			return c, true
		}
	}
	return chartDef{}, false
}

func scatter(x, y query.Field) chartBuilder {
	return func(rows []model.Video, _ query.FilterSpec, _ ChartOptions) (model.Table, model.ChartRoles, error) {
		t, err := query.Project(rows, query.ChannelName, x, y)
		return t, model.ChartRoles{X: string(x), Y: string(y), Label: string(query.ChannelName)}, err
	}
}

func correlationChart(rows []model.Video, _ query.FilterSpec, opts ChartOptions) (model.Table, model.ChartRoles, error) {
	fields := query.NumericFields
	if opts.Metric != DefaultMetric {
		f, err := query.ParseField("metric", opts.Metric)
		if err != nil {
			return model.Table{}, model.ChartRoles{}, err
		}
		fields = []query.Field{f}
	}
	m, err := query.CorrelationMatrix(rows, fields)
	if err != nil {
		return model.Table{}, model.ChartRoles{}, err
	}
	return m.Table(), model.ChartRoles{Label: query.FieldColumn}, nil
}

func calendarViews(f query.Field) chartBuilder {
	return func(rows []model.Video, _ query.FilterSpec, _ ChartOptions) (model.Table, model.ChartRoles, error) {
		t, err := query.AggregateSum(rows, f, query.ViewCount)
		if err != nil {
			return model.Table{}, model.ChartRoles{}, err
		}
		t, err = query.OrderCalendar(t, f)
		return t, model.ChartRoles{X: string(f), Y: string(query.ViewCount)}, err
	}
}

func wordCloud(rows []model.Video, spec query.FilterSpec, _ ChartOptions) (model.Table, model.ChartRoles, error) {
	corpus, err := query.TokenizeText(rows, query.Description, spec.WordLimit)
	if err != nil {
		return model.Table{}, model.ChartRoles{}, err
	}
	return query.WordFrequencies(corpus, 0), model.ChartRoles{Label: query.WordColumn, Value: query.CountColumn}, nil
}

func byChannel(agg func([]model.Video, query.Field, query.Field) (model.Table, error)) chartBuilder {
	return func(rows []model.Video, _ query.FilterSpec, _ ChartOptions) (model.Table, model.ChartRoles, error) {
		t, err := agg(rows, query.ChannelName, query.ViewCount)
		return t, model.ChartRoles{X: string(query.ChannelName), Y: string(query.ViewCount)}, err
	}
}

func uploadsByDay(rows []model.Video, _ query.FilterSpec, _ ChartOptions) (model.Table, model.ChartRoles, error) {
	t, err := query.ValueCounts(rows, query.Day)
	if err != nil {
		return model.Table{}, model.ChartRoles{}, err
	}
	t, err = query.OrderCalendar(t, query.Day)
	return t, model.ChartRoles{X: string(query.Day), Y: query.CountColumn}, err
}

func topVideos(rows []model.Video, _ query.FilterSpec, opts ChartOptions) (model.Table, model.ChartRoles, error) {
	sortField, err := query.ParseField("sort", opts.Sort)
	if err != nil {
		return model.Table{}, model.ChartRoles{}, err
	}
	top, err := query.TopN(rows, sortField, opts.Top, opts.Order == "desc")
	if err != nil {
		return model.Table{}, model.ChartRoles{}, err
	}
	t, err := query.Project(top,
		query.ChannelName, query.Description,
		query.ViewCount, query.LikeCount, query.CommentCount, query.DurationSecs,
		query.Day, query.Month)
	return t, model.ChartRoles{Label: string(query.ChannelName), Value: string(sortField)}, err
}

func engagement(rows []model.Video, _ query.FilterSpec, _ ChartOptions) (model.Table, model.ChartRoles, error) {
	return query.EngagementTable(rows), model.ChartRoles{
		X:     string(query.ViewCount),
		Y:     query.EngagementColumn,
		Label: string(query.ChannelName),
	}, nil
}

func durationHistogram(rows []model.Video, _ query.FilterSpec, opts ChartOptions) (model.Table, model.ChartRoles, error) {
	t, err := query.HistogramBuckets(rows, query.DurationSecs, opts.Bins)
	return t, model.ChartRoles{X: query.BinColumn, Y: query.CountColumn}, err
}
