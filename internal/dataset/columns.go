package dataset

import "slices"

// Source column names.
const (
	ColChannelName  = "channelName"
	ColDescription  = "description"
	ColViewCount    = "viewCount"
	ColLikeCount    = "likeCount"
	ColCommentCount = "commentCount"
	ColDurationSecs = "durationSecs"
	ColPublishedAt  = "publishedAt"
)

// RequiredColumns must all be present in a source. Extra columns are ignored.
var RequiredColumns = []string{
	ColChannelName,
	ColDescription,
	ColViewCount,
	ColLikeCount,
	ColCommentCount,
	ColDurationSecs,
	ColPublishedAt,
}

// RawRecord is one source row keyed by column name. An absent key is a
// missing value.
type RawRecord map[string]string

func missingColumns(have func(string) bool) []string {
	var missing []string
	for _, c := range RequiredColumns {
		if !have(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

func allColumns() []string { return slices.Clone(RequiredColumns) }
