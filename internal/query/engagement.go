package query

import (
	"github.com/mathieu-neron/tubedash/internal/model"
)

// EngagementColumn is the ratio column produced by EngagementTable.
const EngagementColumn = "engagementRatio"

// EngagementRatio is (likes + comments) / views, with missing counts read as
// zero. A video with no views is 0 when it also has no interactions and
// Undefined otherwise.
func EngagementRatio(v model.Video) Number {
	views, _ := numeric(v, ViewCount)
	likes, _ := numeric(v, LikeCount)
	comments, _ := numeric(v, CommentCount)

	interactions := likes + comments
	if views == 0 {
		if interactions == 0 {
			return Defined(0)
		}
		return Undefined
	}
	return Defined(float64(interactions) / float64(views))
}

// EngagementTable reports the engagement ratio of every row.
func EngagementTable(rows []model.Video) model.Table {
	t := model.NewTable(string(ChannelName), string(ViewCount), EngagementColumn)
	for _, v := range rows {
		t.Rows = append(t.Rows, model.Row{
			string(ChannelName): v.ChannelName,
			string(ViewCount):   cell(v, ViewCount),
			EngagementColumn:    EngagementRatio(v),
		})
	}
	return t
}
