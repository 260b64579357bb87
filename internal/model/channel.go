package model

// ChannelSummary is the API response row for one channel.
type ChannelSummary struct {
	ChannelName   string   `json:"channelName"`
	Videos        int      `json:"videos"`
	TotalViews    int64    `json:"totalViews"`
	TotalLikes    int64    `json:"totalLikes"`
	TotalComments int64    `json:"totalComments"`
	AvgViews      *float64 `json:"avgViews"`
}
