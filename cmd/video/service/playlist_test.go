package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/view"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPlaylists struct {
	mu        sync.Mutex
	videos    *memVideos
	playlists map[int64]*model.Playlist
	entries   map[int64]map[int64]int64
}

func newMemPlaylists(videos *memVideos) *memPlaylists {
	return &memPlaylists{
		videos:    videos,
		playlists: make(map[int64]*model.Playlist),
		entries:   make(map[int64]map[int64]int64),
	}
}

func (m *memPlaylists) CreatePlaylist(ctx context.Context, p *model.Playlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.playlists[p.ID] = &cp
	m.entries[p.ID] = make(map[int64]int64)
	return nil
}

func (m *memPlaylists) GetPlaylist(ctx context.Context, playlistId int64) (*model.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.playlists[playlistId]
	if !ok {
		return nil, errno.PlaylistNotExist
	}
	cp := *p
	return &cp, nil
}

func (m *memPlaylists) GetPlaylistView(ctx context.Context, playlistId, viewer int64) (*view.PlaylistRow, error) {
	p, err := m.GetPlaylist(ctx, playlistId)
	if err != nil {
		return nil, err
	}
	visible, err := m.PlaylistVideos(ctx, playlistId, viewer)
	if err != nil {
		return nil, err
	}
	return &view.PlaylistRow{Playlist: *p, TotalVideos: int64(len(visible))}, nil
}

func (m *memPlaylists) PlaylistVideos(ctx context.Context, playlistId, viewer int64) ([]view.VideoRow, error) {
	m.mu.Lock()
	type entry struct{ video, seq int64 }
	list := make([]entry, 0)
	for v, seq := range m.entries[playlistId] {
		list = append(list, entry{v, seq})
	}
	m.mu.Unlock()
	sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })

	rows := make([]view.VideoRow, 0, len(list))
	for _, e := range list {
		v, err := m.videos.GetVideo(ctx, e.video)
		if err != nil || !v.VisibleTo(viewer) {
			continue
		}
		rows = append(rows, view.VideoRow{Video: *v})
	}
	return rows, nil
}

func (m *memPlaylists) UserPlaylists(ctx context.Context, ownerId, viewer int64, q view.PageQuery) ([]view.PlaylistRow, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := make([]view.PlaylistRow, 0)
	for _, p := range m.playlists {
		if p.OwnerID == ownerId && p.VisibleTo(viewer) {
			rows = append(rows, view.PlaylistRow{Playlist: *p})
		}
	}
	return view.Window(rows, q), int64(len(rows)), nil
}

func (m *memPlaylists) AddVideo(ctx context.Context, playlistId, videoId, seq int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[playlistId][videoId]; ok {
		return false, nil
	}
	m.entries[playlistId][videoId] = seq
	return true, nil
}

func (m *memPlaylists) RemoveVideo(ctx context.Context, playlistId, videoId int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[playlistId][videoId]; !ok {
		return false, nil
	}
	delete(m.entries[playlistId], videoId)
	return true, nil
}

func (m *memPlaylists) UpdatePlaylist(ctx context.Context, playlistId int64, name, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.playlists[playlistId]
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	return nil
}

func (m *memPlaylists) DeletePlaylist(ctx context.Context, playlistId int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.playlists, playlistId)
	delete(m.entries, playlistId)
	return nil
}

func (m *memPlaylists) TogglePublish(ctx context.Context, playlistId int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.playlists[playlistId]
	p.IsPublished = !p.IsPublished
	return p.IsPublished, nil
}

func newPlaylistFixture() (*PlaylistService, *memVideos) {
	videos := newMemVideos()
	now := time.Now()
	videos.videos[10] = &model.Video{ID: 10, OwnerID: 1, Title: "a", IsPublished: true, CreatedAt: now}
	videos.videos[11] = &model.Video{ID: 11, OwnerID: 2, Title: "b", IsPublished: true, CreatedAt: now}
	videos.videos[12] = &model.Video{ID: 12, OwnerID: 2, Title: "draft", IsPublished: false, CreatedAt: now}
	return NewPlaylistService(newMemPlaylists(videos), videos), videos
}

func TestCreatePlaylistDefaultDescription(t *testing.T) {
	svc, _ := newPlaylistFixture()
	p, err := svc.CreatePlaylist(context.Background(), 1, " mix ", "")
	require.NoError(t, err)
	assert.Equal(t, "mix", p.Name)
	assert.Equal(t, constants.DefaultPlaylistDescription, p.Description)

	_, err = svc.CreatePlaylist(context.Background(), 1, "", "x")
	assert.True(t, errors.Is(err, errno.ParamErr))
}

func TestPlaylistAddRemove(t *testing.T) {
	svc, _ := newPlaylistFixture()
	ctx := context.Background()
	p, err := svc.CreatePlaylist(ctx, 1, "mix", "")
	require.NoError(t, err)

	added, err := svc.AddVideo(ctx, p.ID, 11, 1)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = svc.AddVideo(ctx, p.ID, 10, 1)
	require.NoError(t, err)
	assert.True(t, added)

	// 重复添加不报错, 列表中仍只有一份
	added, err = svc.AddVideo(ctx, p.ID, 11, 1)
	require.NoError(t, err)
	assert.False(t, added)

	_, err = svc.AddVideo(ctx, p.ID, 12, 1)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	_, err = svc.AddVideo(ctx, p.ID, 10, 2)
	assert.True(t, errors.Is(err, errno.AuthorizationErr))

	got, err := svc.GetPlaylist(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalVideos)
	require.Len(t, got.Videos, 2)
	assert.Equal(t, int64(11), got.Videos[0].ID)
	assert.Equal(t, int64(10), got.Videos[1].ID)

	require.NoError(t, svc.RemoveVideo(ctx, p.ID, 11, 1))
	err = svc.RemoveVideo(ctx, p.ID, 11, 1)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}

func TestPlaylistTotalMatchesVisibleVideos(t *testing.T) {
	svc, videos := newPlaylistFixture()
	ctx := context.Background()
	p, err := svc.CreatePlaylist(ctx, 2, "mine", "")
	require.NoError(t, err)
	for _, id := range []int64{10, 11, 12} {
		_, err = svc.AddVideo(ctx, p.ID, id, 2)
		require.NoError(t, err)
	}

	// 12号未发布, 只有作者能看到
	got, err := svc.GetPlaylist(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalVideos)
	assert.Len(t, got.Videos, 2)
	got, err = svc.GetPlaylist(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TotalVideos)

	// 视频被删除但条目尚未清理
	require.NoError(t, videos.DeleteVideo(ctx, 10))
	got, err = svc.GetPlaylist(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalVideos)
	assert.Len(t, got.Videos, 1)

	page, err := svc.UserPlaylists(ctx, 2, 0, view.ParsePageQuery("", "", "", ""))
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)
}

func TestUnpublishedPlaylistVisibleToOwnerOnly(t *testing.T) {
	svc, _ := newPlaylistFixture()
	ctx := context.Background()
	p, err := svc.CreatePlaylist(ctx, 1, "private", "")
	require.NoError(t, err)

	published, err := svc.TogglePublishStatus(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.False(t, published)

	_, err = svc.GetPlaylist(ctx, p.ID, 2)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
	_, err = svc.GetPlaylist(ctx, p.ID, 1)
	assert.NoError(t, err)

	published, err = svc.TogglePublishStatus(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.True(t, published)
	published, err = svc.TogglePublishStatus(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.False(t, published)

	page, err := svc.UserPlaylists(ctx, 1, 2, view.ParsePageQuery("", "", "", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalDocs)
	assert.NotNil(t, page.Docs)
}

func TestUpdateAndDeletePlaylist(t *testing.T) {
	svc, _ := newPlaylistFixture()
	ctx := context.Background()
	p, err := svc.CreatePlaylist(ctx, 1, "mix", "")
	require.NoError(t, err)

	_, err = svc.UpdatePlaylist(ctx, p.ID, 1, "", "")
	assert.True(t, errors.Is(err, errno.ParamErr))
	got, err := svc.UpdatePlaylist(ctx, p.ID, 1, "", "new description")
	require.NoError(t, err)
	assert.Equal(t, "mix", got.Name)
	assert.Equal(t, "new description", got.Description)

	err = svc.DeletePlaylist(ctx, p.ID, 2)
	assert.True(t, errors.Is(err, errno.AuthorizationErr))
	require.NoError(t, svc.DeletePlaylist(ctx, p.ID, 1))
	_, err = svc.GetPlaylist(ctx, p.ID, 1)
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}
