package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/mathieu-neron/tubedash/internal/model"
)

// WriteCSV writes videos with the RequiredColumns header, in a form ReadCSV
// accepts. Missing values are written as empty cells.
func WriteCSV(w io.Writer, videos []model.Video) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RequiredColumns); err != nil {
		return err
	}
	for _, v := range videos {
		published := ""
		if v.PublishedAt != nil {
			published = v.PublishedAt.UTC().Format(time.RFC3339)
		}
		if err := cw.Write([]string{
			v.ChannelName,
			deref(v.Description),
			countCell(v.ViewCount),
			countCell(v.LikeCount),
			countCell(v.CommentCount),
			countCell(v.DurationSecs),
			published,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func countCell(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
