package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaylistSelectorCountsVisibleVideos(t *testing.T) {
	sel := (&PlaylistDao{}).playlistSelector(7)
	assert.Contains(t, sel.SQL(), "JOIN videos tv ON tv.id = pv.video_id")
	assert.Contains(t, sel.SQL(), "(tv.is_published = ? OR tv.owner_id = ?)) AS total_videos")
	assert.Equal(t, []interface{}{true, int64(7)}, sel.Vars())
}
