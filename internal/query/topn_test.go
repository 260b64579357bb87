package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu-neron/tubedash/internal/model"
)

func TestTopN(t *testing.T) {
	rows := withViews(5, 50, 20, 1)

	tests := []struct {
		name       string
		n          int
		descending bool
		want       []int64
	}{
		{"top two descending", 2, true, []int64{50, 20}},
		{"bottom two ascending", 2, false, []int64{1, 5}},
		{"n larger than input", 10, true, []int64{50, 20, 5, 1}},
		{"zero", 0, true, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TopN(rows, ViewCount, tt.n, tt.descending)
			require.NoError(t, err)
			assert.Equal(t, tt.want, viewsOf(got))
		})
	}
	assert.Equal(t, []int64{5, 50, 20, 1}, viewsOf(rows), "input order is preserved")
}

func TestTopN_Idempotent(t *testing.T) {
	rows := withViews(3, 9, 9, 4, 7)
	once, err := TopN(rows, ViewCount, 3, true)
	require.NoError(t, err)
	twice, err := TopN(once, ViewCount, 3, true)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestTopN_TiesKeepOriginalOrder(t *testing.T) {
	rows := []model.Video{
		{ChannelName: "first", ViewCount: i64(10)},
		{ChannelName: "second", ViewCount: i64(10)},
		{ChannelName: "third", ViewCount: i64(10)},
	}
	got, err := TopN(rows, ViewCount, 2, true)
	require.NoError(t, err)
	assert.Equal(t, "first", got[0].ChannelName)
	assert.Equal(t, "second", got[1].ChannelName)
}

func TestTopN_MissingValuesSortLast(t *testing.T) {
	rows := []model.Video{
		{ChannelName: "none"},
		{ChannelName: "low", LikeCount: i64(1)},
		{ChannelName: "high", LikeCount: i64(9)},
	}
	for _, descending := range []bool{true, false} {
		got, err := TopN(rows, LikeCount, 3, descending)
		require.NoError(t, err)
		assert.Equal(t, "none", got[2].ChannelName)
	}
}

func TestTopN_RejectsBadArguments(t *testing.T) {
	var verr *ValidationError

	_, err := TopN(withViews(1), ViewCount, -1, true)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "n", verr.Param)

	_, err = TopN(withViews(1), ChannelName, 1, true)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sortField", verr.Param)
}
