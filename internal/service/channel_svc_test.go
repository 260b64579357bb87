package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu-neron/tubedash/internal/query"
)

func TestChannels_OrderedByViews(t *testing.T) {
	got, err := newTestService().Channels(query.FilterSpec{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Beta", got[0].ChannelName)
	assert.Equal(t, int64(60000), got[0].TotalViews)

	alpha := got[1]
	assert.Equal(t, "Alpha", alpha.ChannelName)
	assert.Equal(t, 2, alpha.Videos)
	assert.Equal(t, int64(20100), alpha.TotalViews)
	assert.Equal(t, int64(310), alpha.TotalLikes)
	require.NotNil(t, alpha.AvgViews)
	assert.InDelta(t, 10050.0, *alpha.AvgViews, 1e-9)

	gamma := got[2]
	assert.Equal(t, "Gamma", gamma.ChannelName)
	assert.Equal(t, 1, gamma.Videos)
	assert.Nil(t, gamma.AvgViews)
}

func TestChannels_AppliesFilters(t *testing.T) {
	got, err := newTestService().Channels(query.FilterSpec{Day: "Tuesday"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alpha", got[0].ChannelName)
	assert.Equal(t, 1, got[0].Videos)
}

func TestChannels_SumMatchesKPIs(t *testing.T) {
	svc := newTestService()
	channels, err := svc.Channels(query.FilterSpec{})
	require.NoError(t, err)
	kpis, err := svc.KPIs(query.FilterSpec{})
	require.NoError(t, err)

	var views int64
	videos := 0
	for _, c := range channels {
		views += c.TotalViews
		videos += c.Videos
	}
	assert.Equal(t, kpis.TotalViews, views)
	assert.Equal(t, kpis.TotalVideos, videos)
}
