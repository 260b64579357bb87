package service

import (
	"cmp"
	"slices"

	"github.com/mathieu-neron/tubedash/internal/model"
	"github.com/mathieu-neron/tubedash/internal/query"
)

// Channels summarizes every channel left after filtering, most viewed first.
// Channels with equal views keep dataset order.
func (s *DashboardService) Channels(spec query.FilterSpec) ([]model.ChannelSummary, error) {
	rows, err := spec.Apply(s.ds.Videos())
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var groups [][]model.Video
	var names []string
	for _, v := range rows {
		i, seen := index[v.ChannelName]
		if !seen {
			i = len(groups)
			index[v.ChannelName] = i
			groups = append(groups, nil)
			names = append(names, v.ChannelName)
		}
		groups[i] = append(groups[i], v)
	}

	out := make([]model.ChannelSummary, 0, len(groups))
	for i, g := range groups {
		k := query.Summarize(g)
		summary := model.ChannelSummary{
			ChannelName:   names[i],
			Videos:        k.TotalVideos,
			TotalViews:    k.TotalViews,
			TotalLikes:    k.TotalLikes,
			TotalComments: k.TotalComments,
		}
		if mean, err := query.AggregateMean(g, query.ChannelName, query.ViewCount); err == nil && mean.Len() == 1 {
			if avg, ok := mean.Rows[0][string(query.ViewCount)].(float64); ok {
				summary.AvgViews = &avg
			}
		}
		out = append(out, summary)
	}
	slices.SortStableFunc(out, func(a, b model.ChannelSummary) int {
		return cmp.Compare(b.TotalViews, a.TotalViews)
	})
	return out, nil
}
