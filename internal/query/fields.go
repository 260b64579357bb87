package query

import (
	"github.com/mathieu-neron/tubedash/internal/model"
)

// Field names a column of the dataset, using the source column names.
type Field string

const (
	ChannelName  Field = "channelName"
	Description  Field = "description"
	ViewCount    Field = "viewCount"
	LikeCount    Field = "likeCount"
	CommentCount Field = "commentCount"
	DurationSecs Field = "durationSecs"
	Day          Field = "day"
	Month        Field = "month"
)

// NumericFields lists the count columns in heatmap order.
var NumericFields = []Field{ViewCount, LikeCount, CommentCount, DurationSecs}

var (
	numericFields = map[Field]bool{ViewCount: true, LikeCount: true, CommentCount: true, DurationSecs: true}
	textFields    = map[Field]bool{ChannelName: true, Description: true, Day: true, Month: true}
)

// ParseField validates a field name coming from a request.
func ParseField(param, s string) (Field, error) {
	f := Field(s)
	if !numericFields[f] && !textFields[f] {
		return "", invalid(param, s, "unknown field")
	}
	return f, nil
}

func requireNumeric(param string, f Field) error {
	if !numericFields[f] {
		return invalid(param, string(f), "not a numeric field")
	}
	return nil
}

func requireText(param string, f Field) error {
	if !textFields[f] {
		return invalid(param, string(f), "not a text field")
	}
	return nil
}

func requireKnown(param string, f Field) error {
	if !numericFields[f] && !textFields[f] {
		return invalid(param, string(f), "unknown field")
	}
	return nil
}

// numeric returns the value of a count column; ok is false when it is missing.
func numeric(v model.Video, f Field) (int64, bool) {
	var p *int64
	switch f {
	case ViewCount:
		p = v.ViewCount
	case LikeCount:
		p = v.LikeCount
	case CommentCount:
		p = v.CommentCount
	case DurationSecs:
		p = v.DurationSecs
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// text returns the value of a string column; ok is false when it is null.
func text(v model.Video, f Field) (string, bool) {
	switch f {
	case ChannelName:
		return v.ChannelName, true
	case Description:
		return deref(v.Description)
	case Day:
		return deref(v.Day)
	case Month:
		return deref(v.Month)
	}
	return "", false
}

// keyOf returns a comparable grouping key for any field.
func keyOf(v model.Video, f Field) (any, bool) {
	if numericFields[f] {
		n, ok := numeric(v, f)
		return n, ok
	}
	return text(v, f)
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
