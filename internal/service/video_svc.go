package service

import (
	"github.com/mathieu-neron/tubedash/internal/model"
	"github.com/mathieu-neron/tubedash/internal/query"
)

// VideoPage is the API response for a video listing.
type VideoPage struct {
	Total  int           `json:"total"`
	Sort   string        `json:"sort"`
	Order  string        `json:"order"`
	Videos []model.Video `json:"videos"`
}

// Videos returns the first opts.Top filtered videos ordered by opts.Sort.
func (s *DashboardService) Videos(spec query.FilterSpec, opts ChartOptions) (VideoPage, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return VideoPage{}, err
	}
	rows, err := spec.Apply(s.ds.Videos())
	if err != nil {
		return VideoPage{}, err
	}
	sortField, err := query.ParseField("sort", opts.Sort)
	if err != nil {
		return VideoPage{}, err
	}
	top, err := query.TopN(rows, sortField, opts.Top, opts.Order == "desc")
	if err != nil {
		return VideoPage{}, err
	}
	return VideoPage{Total: len(rows), Sort: opts.Sort, Order: opts.Order, Videos: top}, nil
}

// Export returns every filtered video in dataset order.
func (s *DashboardService) Export(spec query.FilterSpec) ([]model.Video, error) {
	return spec.Apply(s.ds.Videos())
}
