package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/mathieu-neron/tubedash/internal/db"
	"github.com/mathieu-neron/tubedash/internal/repository"
)

// Source yields the raw rows of a dataset. Implementations read the resource
// once per call.
type Source interface {
	Fetch(ctx context.Context) ([]RawRecord, error)
	String() string
}

// FileSource reads a local CSV file.
type FileSource struct {
	Path string
}

func (s FileSource) String() string { return s.Path }

func (s FileSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, permanent(err)
		}
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

const maxRedirects = 10

// HTTPSource downloads a CSV document. Server errors and network failures are
// retryable; client errors are not. Timeout applies only when Client is nil.
type HTTPSource struct {
	URL     string
	Timeout time.Duration
	Client  *fasthttp.Client
}

// DriveURL returns the direct download URL of a shared Google Drive file.
func DriveURL(fileID string) string {
	return "https://drive.google.com/uc?export=download&id=" + url.QueryEscape(fileID)
}

func (s HTTPSource) String() string { return s.URL }

func (s HTTPSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if d, ok := ctx.Deadline(); ok {
		if until := time.Until(d); until < timeout {
			timeout = until
		}
	}
	client := s.Client
	if client == nil {
		client = &fasthttp.Client{
			Name:         "tubedash",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.URL)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := client.DoRedirects(req, resp, maxRedirects); err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	status := resp.StatusCode()
	switch {
	case status >= 500:
		return nil, fmt.Errorf("fetch: server responded %d", status)
	case status >= 400:
		return nil, permanent(fmt.Errorf("fetch: server responded %d", status))
	}
	return ReadCSV(bytes.NewReader(resp.Body()))
}

// PostgresSource reads a table once through a short-lived pool. Column names
// are the snake_case forms of RequiredColumns.
type PostgresSource struct {
	DatabaseURL string
	Table       string
	Log         zerolog.Logger
}

func (s PostgresSource) String() string { return "postgres:" + s.Table }

func (s PostgresSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	pool, err := db.NewPool(ctx, s.DatabaseURL, s.Log)
	if err != nil {
		// NewPool has already retried the connection.
		return nil, permanent(err)
	}
	defer pool.Close()

	repo := repository.NewVideoRepo(pool, s.Table)
	missing, err := repo.MissingColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("inspect columns: %w", err)
	}
	if len(missing) > 0 {
		return nil, &LoadError{Missing: missing}
	}

	rows, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("select rows: %w", err)
	}
	out := make([]RawRecord, 0, len(rows))
	for _, row := range rows {
		rec := make(RawRecord, len(RequiredColumns))
		for i, c := range RequiredColumns {
			if row[i] != nil {
				rec[c] = *row[i]
			}
		}
		out = append(out, rec)
	}
	return out, nil
}
