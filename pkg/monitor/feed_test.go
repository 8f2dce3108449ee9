package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedPushEvictsOldest(t *testing.T) {
	feed := NewFeed[int](35)
	for i := 1; i <= 36; i++ {
		feed.Push(i)
		require.LessOrEqual(t, feed.Len(), feed.Cap())
	}

	items := feed.Items()
	require.Len(t, items, 35)
	assert.Equal(t, 36, items[0], "newest entry first")
	assert.Equal(t, 2, items[34], "entry 1 evicted")
	assert.True(t, feed.Full())
}

func TestFeedReplaceTruncates(t *testing.T) {
	feed := NewFeed[string](2)
	feed.Replace([]string{"c", "b", "a"})

	assert.Equal(t, []string{"c", "b"}, feed.Items())
}

func TestFeedItemsIsACopy(t *testing.T) {
	feed := NewFeed[int](3)
	feed.Push(1)

	items := feed.Items()
	items[0] = 42

	assert.Equal(t, []int{1}, feed.Items())
}

func TestFeedReplaceDoesNotAlias(t *testing.T) {
	feed := NewFeed[int](3)
	in := []int{3, 2, 1}
	feed.Replace(in)
	in[0] = 99

	assert.Equal(t, []int{3, 2, 1}, feed.Items())
}
