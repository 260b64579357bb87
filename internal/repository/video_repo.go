package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VideoColumns are the snake_case columns a video table must provide, in
// select order.
var VideoColumns = []string{
	"channel_name",
	"description",
	"view_count",
	"like_count",
	"comment_count",
	"duration_secs",
	"published_at",
}

// VideoRow is one table row with every column rendered as text. A nil field
// is a SQL NULL.
type VideoRow [7]*string

type VideoRepo struct {
	pool  *pgxpool.Pool
	table string
}

func NewVideoRepo(pool *pgxpool.Pool, table string) *VideoRepo {
	return &VideoRepo{pool: pool, table: table}
}

// MissingColumns returns the required columns absent from the table. The
// table name may be schema-qualified; otherwise the search path applies.
func (r *VideoRepo) MissingColumns(ctx context.Context) ([]string, error) {
	schema, name := splitTable(r.table)
	query := `
		SELECT column_name::text
		FROM information_schema.columns
		WHERE table_name = $1
		  AND table_schema = ANY(current_schemas(false))`
	args := []any{name}
	if schema != "" {
		query = `
		SELECT column_name::text
		FROM information_schema.columns
		WHERE table_name = $1
		  AND table_schema = $2`
		args = append(args, schema)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	present, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(present))
	for _, c := range present {
		have[c] = true
	}
	var missing []string
	for _, c := range VideoColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing, nil
}

// LoadAll reads every row of the table in physical order.
func (r *VideoRepo) LoadAll(ctx context.Context) ([]VideoRow, error) {
	rows, err := r.pool.Query(ctx, selectAllQuery(r.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VideoRow
	for rows.Next() {
		var v VideoRow
		if err := rows.Scan(&v[0], &v[1], &v[2], &v[3], &v[4], &v[5], &v[6]); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// selectAllQuery selects every video column as text from table, quoting each
// identifier.
func selectAllQuery(table string) string {
	cols := make([]string, len(VideoColumns))
	for i, c := range VideoColumns {
		cols[i] = pgx.Identifier{c}.Sanitize() + "::text"
	}
	schema, name := splitTable(table)
	ident := pgx.Identifier{name}
	if schema != "" {
		ident = pgx.Identifier{schema, name}
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + ident.Sanitize()
}

func splitTable(table string) (schema, name string) {
	if i := strings.IndexByte(table, '.'); i >= 0 {
		return table[:i], table[i+1:]
	}
	return "", table
}
