package dataset

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/tubedash/internal/model"
	"github.com/mathieu-neron/tubedash/pkg/hash"
)

const (
	DefaultMaxRetries    = 3
	DefaultRetryInterval = 2 * time.Second

	// warnings logged one by one before switching to a summary line
	loggedWarnings = 5
)

// Loader reads a Source into an immutable Dataset.
type Loader struct {
	log           zerolog.Logger
	maxRetries    int
	retryInterval time.Duration
}

// NewLoader returns a Loader making at most maxRetries attempts per load.
func NewLoader(log zerolog.Logger, maxRetries int, retryInterval time.Duration) *Loader {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if retryInterval < 0 {
		retryInterval = 0
	}
	return &Loader{log: log, maxRetries: maxRetries, retryInterval: retryInterval}
}

// Load fetches, normalizes and fingerprints the dataset. Unreachable sources
// are retried; a missing column fails immediately. Every failure is a
// *LoadError.
func (l *Loader) Load(ctx context.Context, src Source) (*model.Dataset, error) {
	start := time.Now()
	raw, err := l.fetch(ctx, src)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			if le.Source == "" {
				le.Source = src.String()
			}
			return nil, le
		}
		return nil, &LoadError{Source: src.String(), Err: err}
	}

	records, parseErrs := Normalize(raw)
	records, dateErrs := DeriveTemporalFields(records)
	warnings := append(parseErrs, dateErrs...)
	l.logWarnings(src, warnings)

	videos := make([]model.Video, len(records))
	for i, r := range records {
		videos[i] = r.Video
	}
	ds := model.NewDataset(videos, src.String(), Fingerprint(videos), len(warnings))

	l.log.Info().
		Str("source", src.String()).
		Int("rows", ds.Len()).
		Int("warnings", ds.Warnings()).
		Str("fingerprint", ds.Fingerprint()).
		Dur("duration_ms", time.Since(start)).
		Msg("dataset loaded")
	return ds, nil
}

func (l *Loader) fetch(ctx context.Context, src Source) ([]RawRecord, error) {
	var err error
	for attempt := 1; attempt <= l.maxRetries; attempt++ {
		var raw []RawRecord
		raw, err = src.Fetch(ctx)
		if err == nil {
			return raw, nil
		}
		if isPermanent(err) || ctx.Err() != nil {
			return nil, err
		}

		l.log.Warn().Err(err).
			Str("source", src.String()).
			Int("attempt", attempt).
			Int("max", l.maxRetries).
			Msg("dataset fetch failed")
		if attempt < l.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(l.retryInterval):
			}
		}
	}
	return nil, err
}

func (l *Loader) logWarnings(src Source, warnings []FieldParseError) {
	for i := range warnings {
		if i == loggedWarnings {
			break
		}
		w := &warnings[i]
		l.log.Warn().Err(w.Err).
			Int("row", w.Row).
			Str("field", w.Field).
			Str("value", w.Value).
			Msg("unparsable cell treated as missing")
	}
	if len(warnings) > loggedWarnings {
		l.log.Warn().
			Str("source", src.String()).
			Int("total", len(warnings)).
			Int("suppressed", len(warnings)-loggedWarnings).
			Msg("further unparsable cells suppressed")
	}
}

// Fingerprint is an order-sensitive digest of the normalized videos. Two loads
// of the same data yield the same fingerprint.
func Fingerprint(videos []model.Video) string {
	d := hash.NewDigest()
	for _, v := range videos {
		var published *string
		if v.PublishedAt != nil {
			s := v.PublishedAt.UTC().Format(time.RFC3339Nano)
			published = &s
		}
		d.Add(&v.ChannelName, v.Description,
			formatCount(v.ViewCount), formatCount(v.LikeCount),
			formatCount(v.CommentCount), formatCount(v.DurationSecs),
			published)
	}
	return d.Sum()
}

func formatCount(n *int64) *string {
	if n == nil {
		return nil
	}
	s := strconv.FormatInt(*n, 10)
	return &s
}
