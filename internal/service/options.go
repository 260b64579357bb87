package service

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mathieu-neron/tubedash/internal/query"
)

// Chart option defaults.
const (
	DefaultTop    = 10
	DefaultBins   = 20
	DefaultMetric = "all"
	DefaultSort   = string(query.ViewCount)
	DefaultOrder  = "desc"
)

// ChartOptions are the per-chart controls that are not filters. Zero values
// take the defaults above.
type ChartOptions struct {
	Top    int    `query:"top" json:"top,omitempty" validate:"omitempty,min=1,max=1000"`
	Bins   int    `query:"bins" json:"bins,omitempty" validate:"omitempty,min=1,max=200"`
	Metric string `query:"metric" json:"metric,omitempty" validate:"omitempty,oneof=all viewCount likeCount commentCount durationSecs"`
	Sort   string `query:"sort" json:"sort,omitempty" validate:"omitempty,oneof=viewCount likeCount commentCount durationSecs"`
	Order  string `query:"order" json:"order,omitempty" validate:"omitempty,oneof=asc desc"`
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}()

// Normalize validates the options and fills in defaults. A rejected option is
// reported as a *query.ValidationError naming its query parameter.
func (o ChartOptions) Normalize() (ChartOptions, error) {
	o.Metric = strings.TrimSpace(o.Metric)
	if strings.EqualFold(o.Metric, "all") {
		o.Metric = "all"
	}
	o.Sort = strings.TrimSpace(o.Sort)
	o.Order = strings.ToLower(strings.TrimSpace(o.Order))

	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return ChartOptions{}, &query.ValidationError{
				Param:  fe.Field(),
				Value:  valueString(fe.Value()),
				Reason: describe(fe),
			}
		}
		return ChartOptions{}, err
	}

	if o.Top == 0 {
		o.Top = DefaultTop
	}
	if o.Bins == 0 {
		o.Bins = DefaultBins
	}
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	if o.Sort == "" {
		o.Sort = DefaultSort
	}
	if o.Order == "" {
		o.Order = DefaultOrder
	}
	return o, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "failed " + fe.Tag() + " check"
}

func valueString(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	}
	return ""
}
