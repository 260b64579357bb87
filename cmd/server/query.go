package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mathieu-neron/tubedash/internal/config"
	"github.com/mathieu-neron/tubedash/internal/query"
	"github.com/mathieu-neron/tubedash/internal/service"
)

// queryFlags are the dashboard controls shared by the one-shot commands.
type queryFlags struct {
	source   string
	channel  string
	duration string
	views    string
	month    string
	day      string
	words    string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "Data source (overrides DATA_SOURCE)")
	cmd.Flags().StringVar(&f.channel, query.ParamChannel, "", "Channel name")
	cmd.Flags().StringVar(&f.duration, query.ParamDuration, "", "Duration bucket: "+bucketChoices(query.DurationSecs))
	cmd.Flags().StringVar(&f.views, query.ParamViews, "", "View bucket: "+bucketChoices(query.ViewCount))
	cmd.Flags().StringVar(&f.month, query.ParamMonth, "", "Month name")
	cmd.Flags().StringVar(&f.day, query.ParamDay, "", "Day of the week")
	cmd.Flags().StringVar(&f.words, query.ParamWords, "", "Word cloud size: "+strings.Join(query.WordLimitLabels, ", "))
}

func bucketChoices(f query.Field) string {
	return strings.Join(query.BucketLabels()[string(f)], ", ")
}

func (f *queryFlags) params() map[string]string {
	params := map[string]string{}
	for k, v := range map[string]string{
		query.ParamChannel:  f.channel,
		query.ParamDuration: f.duration,
		query.ParamViews:    f.views,
		query.ParamMonth:    f.month,
		query.ParamDay:      f.day,
		query.ParamWords:    f.words,
	} {
		if v != "" {
			params[k] = v
		}
	}
	return params
}

// open loads the dataset and parses the filter flags against it. Logs go to
// stderr so stdout carries only the JSON result.
func (f *queryFlags) open(cmd *cobra.Command) (*service.DashboardService, query.FilterSpec, error) {
	cfg := config.Load()
	if f.source != "" {
		cfg.DataSource = f.source
	}
	log := newCLILogger(cmd.ErrOrStderr(), cfg.LogLevel)

	ds, err := loadDataset(cmd.Context(), cfg, log)
	if err != nil {
		return nil, query.FilterSpec{}, err
	}
	svc := service.NewDashboardService(ds)
	spec, err := svc.Filters(f.params())
	if err != nil {
		return nil, query.FilterSpec{}, err
	}
	return svc, spec, nil
}

func newCLILogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().Timestamp().Logger()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newChartCmd creates the chart subcommand.
func newChartCmd() *cobra.Command {
	var qf queryFlags
	var opts service.ChartOptions

	cmd := &cobra.Command{
		Use:   "chart <name>",
		Short: "Print one chart specification as JSON",
		Long:  "Load the dataset, apply the filter flags and print the named chart. Available charts: " + strings.Join(service.ChartNames(), ", ") + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, spec, err := qf.open(cmd)
			if err != nil {
				return err
			}
			chart, err := svc.Chart(args[0], spec, opts)
			if err != nil {
				return fmt.Errorf("chart %q: %w", args[0], err)
			}
			return writeJSON(cmd.OutOrStdout(), chart)
		},
	}

	qf.register(cmd)
	cmd.Flags().IntVar(&opts.Top, "top", 0, "Rows kept by the top-videos chart")
	cmd.Flags().IntVar(&opts.Bins, "bins", 0, "Bins of the duration histogram")
	cmd.Flags().StringVar(&opts.Metric, "metric", "", "Correlation field, or \"all\"")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort field of the top-videos chart")
	cmd.Flags().StringVar(&opts.Order, "order", "", "Sort order: asc or desc")

	return cmd
}

// newKPIsCmd creates the kpis subcommand.
func newKPIsCmd() *cobra.Command {
	var qf queryFlags

	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Print the headline totals as JSON",
		Long:  "Load the dataset, apply the filter flags and print total views, likes, comments and videos.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, spec, err := qf.open(cmd)
			if err != nil {
				return err
			}
			kpis, err := svc.KPIs(spec)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), kpis)
		},
	}

	qf.register(cmd)

	return cmd
}
