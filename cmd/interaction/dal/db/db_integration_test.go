package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/database/dbtest"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/view"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seed(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	require.NoError(t, gdb.Create(&[]model.User{
		{ID: 1, UserName: "alice", Email: "alice@x.io", FullName: "Alice", Avatar: "a", Password: "p"},
		{ID: 2, UserName: "bob", Email: "bob@x.io", FullName: "Bob", Avatar: "b", Password: "p"},
	}).Error)
	require.NoError(t, gdb.Create(&model.Video{
		ID: 10, VideoFile: "v", Thumbnail: "t", Title: "intro", Description: "d", OwnerID: 1, IsPublished: true,
	}).Error)
}

func TestToggleLikeIntegration(t *testing.T) {
	gdb := dbtest.Open(t)
	seed(t, gdb)
	ctx := context.Background()
	likes := NewLikeDao(gdb)

	like, liked, err := likes.ToggleLike(ctx, model.VideoTarget(10), 2, 100)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(100), like.ID)

	n, err := likes.CountLikes(ctx, model.VideoTarget(10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	prior, liked, err := likes.ToggleLike(ctx, model.VideoTarget(10), 2, 101)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(100), prior.ID)

	n, err = likes.CountLikes(ctx, model.VideoTarget(10))
	require.NoError(t, err)
	assert.Zero(t, n)
}

// 并发的首次点赞要么成功, 要么以ConflictErr失败, 不会出现500
func TestConcurrentToggleLikeIntegration(t *testing.T) {
	gdb := dbtest.Open(t)
	seed(t, gdb)
	ctx := context.Background()
	likes := NewLikeDao(gdb)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = likes.ToggleLike(ctx, model.VideoTarget(10), 2, int64(500+i))
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			assert.True(t, errors.Is(err, errno.ConflictErr), "unexpected error: %v", err)
		}
	}
	n, err := likes.CountLikes(ctx, model.VideoTarget(10))
	require.NoError(t, err)
	assert.LessOrEqual(t, n, int64(1))
}

func TestCommentViewIntegration(t *testing.T) {
	gdb := dbtest.Open(t)
	seed(t, gdb)
	ctx := context.Background()
	comments := NewCommentDao(gdb)
	likes := NewLikeDao(gdb)

	for i := int64(1); i <= 3; i++ {
		require.NoError(t, comments.CreateComment(ctx, &model.Comment{
			ID: 20 + i, Content: "c", VideoID: 10, OwnerID: 2, CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}
	_, _, err := likes.ToggleLike(ctx, model.CommentTarget(23), 1, 200)
	require.NoError(t, err)

	rows, total, err := comments.ListComments(ctx, 10, 1, view.PageQuery{Page: 1, Limit: 2}, view.CreatedSort("comments")["createdAt"])
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(23), rows[0].ID)
	assert.Equal(t, int64(1), rows[0].LikesCount)
	assert.True(t, rows[0].IsLiked)
	require.NotNil(t, rows[0].Profile())
	assert.Equal(t, "bob", rows[0].Profile().UserName)

	anon, err := comments.GetCommentView(ctx, 23, 0)
	require.NoError(t, err)
	assert.False(t, anon.IsLiked)
}

func TestPurgeVideoIntegration(t *testing.T) {
	gdb := dbtest.Open(t)
	seed(t, gdb)
	ctx := context.Background()
	comments := NewCommentDao(gdb)
	likes := NewLikeDao(gdb)
	cascade := NewCascadeDao(gdb)

	require.NoError(t, comments.CreateComment(ctx, &model.Comment{ID: 30, Content: "c", VideoID: 10, OwnerID: 2}))
	_, _, err := likes.ToggleLike(ctx, model.CommentTarget(30), 1, 300)
	require.NoError(t, err)
	_, _, err = likes.ToggleLike(ctx, model.VideoTarget(10), 2, 301)
	require.NoError(t, err)

	ids, err := cascade.OrphanedVideoIDs(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, gdb.Delete(&model.Video{}, 10).Error)
	ids, err = cascade.OrphanedVideoIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, ids)

	stats, err := cascade.PurgeVideo(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, &PurgeStats{Comments: 1, CommentLikes: 1, VideoLikes: 1}, stats)

	ids, err = cascade.OrphanedVideoIDs(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestOrphanScanWithoutComments(t *testing.T) {
	gdb := dbtest.Open(t)
	seed(t, gdb)
	ctx := context.Background()
	likes := NewLikeDao(gdb)
	cascade := NewCascadeDao(gdb)

	require.NoError(t, gdb.Create(&model.Video{
		ID: 11, VideoFile: "v", Thumbnail: "t", Title: "quiet", Description: "d", OwnerID: 1, IsPublished: true,
	}).Error)
	_, _, err := likes.ToggleLike(ctx, model.VideoTarget(11), 2, 400)
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&model.PlaylistVideo{PlaylistID: 60, VideoID: 11, Seq: 1, AddedAt: time.Now()}).Error)
	require.NoError(t, gdb.Create(&model.WatchHistory{UserID: 2, VideoID: 11, WatchedAt: time.Now()}).Error)
	// 只有观看历史的视频
	require.NoError(t, gdb.Create(&model.WatchHistory{UserID: 2, VideoID: 12, WatchedAt: time.Now()}).Error)

	ids, err := cascade.OrphanedVideoIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{12}, ids)

	require.NoError(t, gdb.Delete(&model.Video{}, 11).Error)
	ids, err = cascade.OrphanedVideoIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12}, ids)

	stats, err := cascade.PurgeVideo(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, &PurgeStats{VideoLikes: 1, PlaylistVideos: 1, WatchHistories: 1}, stats)
	ids, err = cascade.OrphanedVideoIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{12}, ids)
}
