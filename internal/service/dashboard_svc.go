package service

import (
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/mathieu-neron/tubedash/internal/model"
	"github.com/mathieu-neron/tubedash/internal/query"
)

// ErrUnknownChart is returned for a chart name outside the catalogue.
var ErrUnknownChart = errors.New("unknown chart")

// DashboardService answers every dashboard request from one loaded dataset.
// The dataset is immutable, so the service is safe for concurrent use.
type DashboardService struct {
	ds       *model.Dataset
	channels map[string]bool
}

func NewDashboardService(ds *model.Dataset) *DashboardService {
	channels := make(map[string]bool)
	for _, v := range ds.Videos() {
		channels[v.ChannelName] = true
	}
	return &DashboardService{ds: ds, channels: channels}
}

// Dataset describes the loaded dataset.
func (s *DashboardService) Dataset() model.DatasetResponse {
	return model.DatasetResponse{
		Source:      s.ds.Source(),
		Fingerprint: s.ds.Fingerprint(),
		Rows:        s.ds.Len(),
		Warnings:    s.ds.Warnings(),
		LoadedAt:    s.ds.LoadedAt().Format(time.RFC3339),
	}
}

// Filters parses raw control values and checks that a named channel exists.
func (s *DashboardService) Filters(params map[string]string) (query.FilterSpec, error) {
	spec, err := query.ParseFilterSpec(params)
	if err != nil {
		return query.FilterSpec{}, err
	}
	if spec.Channel != "" && !s.channels[spec.Channel] {
		return query.FilterSpec{}, &query.ValidationError{
			Param:  query.ParamChannel,
			Value:  spec.Channel,
			Reason: "no such channel",
		}
	}
	return spec, nil
}

// Options lists every value the dashboard controls accept.
func (s *DashboardService) Options() model.FilterOptions {
	channels := make([]string, 0, len(s.channels))
	for ch := range s.channels {
		channels = append(channels, ch)
	}
	slices.Sort(channels)

	return model.FilterOptions{
		Channels:   channels,
		Buckets:    query.BucketLabels(),
		Months:     slices.Clone(model.Months),
		Days:       slices.Clone(model.Weekdays),
		WordLimits: slices.Clone(query.WordLimitLabels),
		Charts:     ChartNames(),
	}
}

// KPIs returns the headline totals for the filtered rows.
func (s *DashboardService) KPIs(spec query.FilterSpec) (model.KPIResponse, error) {
	rows, err := spec.Apply(s.ds.Videos())
	if err != nil {
		return model.KPIResponse{}, err
	}
	return query.Summarize(rows), nil
}

// Chart builds the named chart over the filtered rows.
func (s *DashboardService) Chart(name string, spec query.FilterSpec, opts ChartOptions) (model.ChartSpec, error) {
	def, ok := lookupChart(name)
	if !ok {
		return model.ChartSpec{}, ErrUnknownChart
	}
	opts, err := opts.Normalize()
	if err != nil {
		return model.ChartSpec{}, err
	}
	rows, err := spec.Apply(s.ds.Videos())
	if err != nil {
		return model.ChartSpec{}, err
	}

	table, roles, err := def.build(rows, spec, opts)
	if err != nil {
		return model.ChartSpec{}, err
	}
	return model.ChartSpec{
		Name:       def.name,
		Kind:       def.kind,
		Title:      def.title,
		Table:      table,
		Roles:      roles,
		AxisLabels: maps.Clone(def.labels),
	}, nil
}
