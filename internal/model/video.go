package model

import (
	"slices"
	"time"
)

// Video is one row of the dataset. Pointer fields are nil when the source
// cell was missing or could not be parsed.
type Video struct {
	ChannelName  string     `json:"channelName"`
	Description  *string    `json:"description,omitempty"`
	ViewCount    *int64     `json:"viewCount,omitempty"`
	LikeCount    *int64     `json:"likeCount,omitempty"`
	CommentCount *int64     `json:"commentCount,omitempty"`
	DurationSecs *int64     `json:"durationSecs,omitempty"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`

	// Derived from PublishedAt; nil whenever PublishedAt is nil.
	Day   *string `json:"day,omitempty"`
	Month *string `json:"month,omitempty"`
}

// Dataset is the read-once collection of videos. It is never modified after
// construction; Videos hands out a copy of the slice.
type Dataset struct {
	videos      []Video
	source      string
	fingerprint string
	warnings    int
	loadedAt    time.Time
}

// NewDataset wraps videos into an immutable Dataset.
func NewDataset(videos []Video, source, fingerprint string, warnings int) *Dataset {
	return &Dataset{
		videos:      slices.Clone(videos),
		source:      source,
		fingerprint: fingerprint,
		warnings:    warnings,
		loadedAt:    time.Now().UTC(),
	}
}

func (d *Dataset) Videos() []Video     { return slices.Clone(d.videos) }
func (d *Dataset) Len() int            { return len(d.videos) }
func (d *Dataset) Source() string      { return d.source }
func (d *Dataset) Fingerprint() string { return d.fingerprint }
func (d *Dataset) Warnings() int       { return d.warnings }
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// DatasetResponse is the API response describing the loaded dataset.
type DatasetResponse struct {
	Source      string `json:"source"`
	Fingerprint string `json:"fingerprint"`
	Rows        int    `json:"rows"`
	Warnings    int    `json:"warnings"`
	LoadedAt    string `json:"loadedAt"`
}
