package db

import (
	"context"
	"testing"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/database/dbtest"
	"VideoTube.com/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoListIntegration(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	require.NoError(t, gdb.Create(&model.User{ID: 1, UserName: "alice", Email: "a@x.io", FullName: "Alice", Avatar: "a", Password: "p"}).Error)

	videos := NewVideoDao(gdb)
	base := time.Now().Add(-time.Hour)
	for i := int64(1); i <= 12; i++ {
		require.NoError(t, videos.InsertVideo(ctx, &model.Video{
			ID: i, VideoFile: "v", Thumbnail: "t", Title: "clip", Description: "d",
			OwnerID: 1, IsPublished: true, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	// 12号视频转为未发布
	_, err := videos.TogglePublish(ctx, 12)
	require.NoError(t, err)

	q := view.PageQuery{Page: 2, Limit: 5}
	rows, total, err := videos.ListVideos(ctx, VideoFilter{}, q, view.VideoSortFields[view.DefaultSortKey])
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, rows, 5)
	assert.Equal(t, int64(6), rows[0].ID)
	assert.Equal(t, "alice", rows[0].Profile().UserName)

	// 作者查看自己的频道时包含未发布视频
	_, total, err = videos.ListVideos(ctx, VideoFilter{OwnerID: 1, Viewer: 1}, q, view.VideoSortFields[view.DefaultSortKey])
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)

	_, total, err = videos.ListVideos(ctx, VideoFilter{Query: "ALICE"}, q, view.VideoSortFields[view.DefaultSortKey])
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
}

func TestPlaylistEntriesIntegration(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	require.NoError(t, gdb.Create(&model.User{ID: 1, UserName: "alice", Email: "a@x.io", FullName: "Alice", Avatar: "a", Password: "p"}).Error)
	videos := NewVideoDao(gdb)
	for _, id := range []int64{10, 11} {
		require.NoError(t, videos.InsertVideo(ctx, &model.Video{
			ID: id, VideoFile: "v", Thumbnail: "t", Title: "clip", Description: "d", OwnerID: 1, IsPublished: true,
		}))
	}

	playlists := NewPlaylistDao(gdb)
	require.NoError(t, playlists.CreatePlaylist(ctx, &model.Playlist{ID: 50, Name: "mix", Description: "d", OwnerID: 1, IsPublished: true}))

	added, err := playlists.AddVideo(ctx, 50, 11, 1)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = playlists.AddVideo(ctx, 50, 11, 2)
	require.NoError(t, err)
	assert.False(t, added)
	added, err = playlists.AddVideo(ctx, 50, 10, 3)
	require.NoError(t, err)
	assert.True(t, added)

	row, err := playlists.GetPlaylistView(ctx, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), row.TotalVideos)

	entries, err := playlists.PlaylistVideos(ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(11), entries[0].ID)
	assert.Equal(t, int64(10), entries[1].ID)

	// 未发布与已删除的视频不计入他人看到的total_videos
	published, err := videos.TogglePublish(ctx, 10)
	require.NoError(t, err)
	assert.False(t, published)
	require.NoError(t, videos.DeleteVideo(ctx, 11))
	row, err = playlists.GetPlaylistView(ctx, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), row.TotalVideos)
	row, err = playlists.GetPlaylistView(ctx, 50, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), row.TotalVideos)
	rows, total, err := playlists.UserPlaylists(ctx, 1, 2, view.PageQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(0), rows[0].TotalVideos)

	removed, err := playlists.RemoveVideo(ctx, 50, 11)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = playlists.RemoveVideo(ctx, 50, 11)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, playlists.DeletePlaylist(ctx, 50))
	_, err = playlists.GetPlaylist(ctx, 50)
	assert.Error(t, err)
}
