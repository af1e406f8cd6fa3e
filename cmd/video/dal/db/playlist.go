package db

import (
	"context"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/view"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistDao struct {
	db *gorm.DB
}

func NewPlaylistDao(db *gorm.DB) *PlaylistDao {
	return &PlaylistDao{db: db}
}

func (d *PlaylistDao) CreatePlaylist(ctx context.Context, p *model.Playlist) error {
	if err := d.db.WithContext(ctx).Create(p).Error; err != nil {
		return errors.Wrapf(err, "CreatePlaylist failed,err:%v", err)
	}
	return nil
}

func (d *PlaylistDao) GetPlaylist(ctx context.Context, playlistId int64) (*model.Playlist, error) {
	var p model.Playlist
	if err := d.db.WithContext(ctx).Where("id = ?", playlistId).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.PlaylistNotExist
		}
		return nil, errors.Wrapf(err, "GetPlaylist failed,err:%v", err)
	}
	return &p, nil
}

// playlistSelector total_videos与PlaylistVideos的可见性条件一致, 已删除的视频不计入
func (d *PlaylistDao) playlistSelector(viewer int64) *view.Selector {
	p := constants.PlaylistsTableName
	return view.Select(p+".*").Owner().
		Add("(SELECT COUNT(*) FROM "+constants.PlaylistVideosTable+" pv JOIN "+constants.VideosTableName+
			" tv ON tv.id = pv.video_id WHERE pv.playlist_id = "+p+".id AND (tv.is_published = ? OR tv.owner_id = ?)) AS total_videos",
			true, viewer)
}

func (d *PlaylistDao) GetPlaylistView(ctx context.Context, playlistId, viewer int64) (*view.PlaylistRow, error) {
	p := constants.PlaylistsTableName
	var rows []view.PlaylistRow
	if err := d.db.WithContext(ctx).Table(p).
		Scopes(view.JoinOwner(p, "owner_id"), d.playlistSelector(viewer).Scope()).
		Where(p+".id = ?", playlistId).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "GetPlaylistView failed,err:%v", err)
	}
	if len(rows) == 0 {
		return nil, errno.PlaylistNotExist
	}
	return &rows[0], nil
}

// PlaylistVideos 按加入顺序返回, 未发布的视频只对作者可见
func (d *PlaylistDao) PlaylistVideos(ctx context.Context, playlistId, viewer int64) ([]view.VideoRow, error) {
	v := constants.VideosTableName
	pv := constants.PlaylistVideosTable
	sel := view.Select(v+".*").Owner().Likes(model.TargetVideo, v+".id", viewer)
	var rows []view.VideoRow
	if err := d.db.WithContext(ctx).Table(pv).
		Joins("JOIN "+v+" ON "+v+".id = "+pv+".video_id").
		Scopes(view.JoinOwner(v, "owner_id"), sel.Scope()).
		Where(pv+".playlist_id = ?", playlistId).
		Where("("+v+".is_published = ? OR "+v+".owner_id = ?)", true, viewer).
		Order(pv + ".seq ASC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "PlaylistVideos failed,err:%v", err)
	}
	return rows, nil
}

func (d *PlaylistDao) UserPlaylists(ctx context.Context, ownerId, viewer int64, q view.PageQuery) ([]view.PlaylistRow, int64, error) {
	p := constants.PlaylistsTableName
	base := d.db.WithContext(ctx).Table(p).Where(p+".owner_id = ?", ownerId)
	if ownerId != viewer {
		base = base.Where(p+".is_published = ?", true)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "UserPlaylists count failed,err:%v", err)
	}
	var rows []view.PlaylistRow
	if err := base.Scopes(
		view.JoinOwner(p, "owner_id"),
		d.playlistSelector(viewer).Scope(),
		view.OrderBy(view.SortField{Table: p, Column: "created_at"}, q.Desc()),
		view.Paginate(q),
	).Scan(&rows).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "UserPlaylists failed,err:%v", err)
	}
	return rows, total, nil
}

// AddVideo 复合主键上的INSERT IGNORE, 已存在时返回false
func (d *PlaylistDao) AddVideo(ctx context.Context, playlistId, videoId, seq int64) (bool, error) {
	res := d.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.PlaylistVideo{PlaylistID: playlistId, VideoID: videoId, Seq: seq, AddedAt: time.Now()})
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "AddVideo failed,err:%v", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// RemoveVideo 按主键删除, 不存在时返回false
func (d *PlaylistDao) RemoveVideo(ctx context.Context, playlistId, videoId int64) (bool, error) {
	res := d.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistId, videoId).
		Delete(&model.PlaylistVideo{})
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "RemoveVideo failed,err:%v", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (d *PlaylistDao) UpdatePlaylist(ctx context.Context, playlistId int64, name, description string) error {
	values := map[string]interface{}{"updated_at": time.Now()}
	if name != "" {
		values["name"] = name
	}
	if description != "" {
		values["description"] = description
	}
	res := d.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", playlistId).Updates(values)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "UpdatePlaylist failed,err:%v", res.Error)
	}
	if res.RowsAffected == 0 {
		return errno.PlaylistNotExist
	}
	return nil
}

func (d *PlaylistDao) DeletePlaylist(ctx context.Context, playlistId int64) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlistId).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", playlistId).Delete(&model.Playlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errno.PlaylistNotExist
		}
		return nil
	})
	if err != nil {
		return errors.WithMessage(err, "DeletePlaylist failed")
	}
	return nil
}

// TogglePublish 翻转后在同一事务内读回新状态
func (d *PlaylistDao) TogglePublish(ctx context.Context, playlistId int64) (bool, error) {
	var published []bool
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Playlist{}).Where("id = ?", playlistId).
			Updates(map[string]interface{}{
				"is_published": gorm.Expr("NOT is_published"),
				"updated_at":   time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errno.PlaylistNotExist
		}
		return tx.Model(&model.Playlist{}).Where("id = ?", playlistId).Pluck("is_published", &published).Error
	})
	if err != nil {
		return false, errors.WithMessage(err, "TogglePublish failed")
	}
	return len(published) > 0 && published[0], nil
}
