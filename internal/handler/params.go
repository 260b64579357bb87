package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/tubedash/internal/middleware"
	"github.com/mathieu-neron/tubedash/internal/query"
	"github.com/mathieu-neron/tubedash/internal/service"
)

var knownParams = map[string]bool{
	query.ParamChannel: true, query.ParamDuration: true, query.ParamViews: true,
	query.ParamMonth: true, query.ParamDay: true, query.ParamWords: true,
	"top": true, "bins": true, "metric": true, "sort": true, "order": true,
}

func paramLabel(p string) string {
	if knownParams[p] {
		return p
	}
	return "other"
}

// filterSpec reads the filter controls from the query string.
func filterSpec(c fiber.Ctx, svc *service.DashboardService) (query.FilterSpec, error) {
	params := c.Queries()
	for k, v := range params {
		if msg := middleware.ValidateQueryValue(k, v); msg != "" {
			return query.FilterSpec{}, &query.ValidationError{Param: k, Value: v[:16] + "...", Reason: msg}
		}
	}
	if ch, ok := params[query.ParamChannel]; ok {
		name, msg := middleware.ValidateChannelName(ch)
		if msg != "" {
			return query.FilterSpec{}, &query.ValidationError{Param: query.ParamChannel, Value: ch, Reason: msg}
		}
		params[query.ParamChannel] = name
	}
	return svc.Filters(params)
}

// chartOptions reads the non-filter chart controls from the query string.
func chartOptions(c fiber.Ctx) (service.ChartOptions, error) {
	opts := service.ChartOptions{
		Metric: c.Query("metric"),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"top", &opts.Top},
		{"bins", &opts.Bins},
	} {
		s := c.Query(p.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return service.ChartOptions{}, &query.ValidationError{Param: p.name, Value: s, Reason: "must be an integer"}
		}
		*p.dst = n
	}
	return opts, nil
}

// respondError maps service errors onto the API error envelope.
func respondError(c fiber.Ctx, err error, what string) error {
	var verr *query.ValidationError
	switch {
	case errors.As(err, &verr):
		Metrics.ValidationErrors.WithLabelValues(paramLabel(verr.Param)).Inc()
		return middleware.InvalidParamResponse(c, verr.Param, verr.Error())
	case errors.Is(err, service.ErrUnknownChart):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Chart not found")
	}
	middleware.Logger.Error().Err(err).
		Str("request_id", middleware.RequestID(c)).
		Msg(what)
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", what)
}
