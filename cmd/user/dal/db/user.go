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

type UserDao struct {
	db *gorm.DB
}

func NewUserDao(db *gorm.DB) *UserDao {
	return &UserDao{db: db}
}

func (d *UserDao) CreateUser(ctx context.Context, user *model.User) error {
	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errno.UserAlreadyExist
		}
		return errors.Wrapf(err, "CreateUser failed,err: %v", err)
	}
	return nil
}

func (d *UserDao) GetUser(ctx context.Context, userId int64) (*model.User, error) {
	var user model.User
	if err := d.db.WithContext(ctx).Where("id = ?", userId).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.UserNotExistErr
		}
		return nil, errors.Wrapf(err, "GetUser failed,err:%v", err)
	}
	return &user, nil
}

// FindUser userName或email任意一个匹配即可
func (d *UserDao) FindUser(ctx context.Context, userName, email string) (*model.User, error) {
	var user model.User
	if err := d.db.WithContext(ctx).
		Where("user_name = ? OR email = ?", userName, email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.UserNotExistErr
		}
		return nil, errors.Wrapf(err, "FindUser failed,err:%v", err)
	}
	return &user, nil
}

func (d *UserDao) UserExists(ctx context.Context, userName, email string) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.User{}).
		Where("user_name = ? OR email = ?", userName, email).
		Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "UserExists failed,err:%v", err)
	}
	return count > 0, nil
}

func (d *UserDao) updateColumns(ctx context.Context, userId int64, values map[string]interface{}) error {
	res := d.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userId).Updates(values)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return errno.ConflictErr.WithMessage("Email is already in use")
		}
		return errors.Wrapf(res.Error, "Update user failed,err: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return errno.UserNotExistErr
	}
	return nil
}

func (d *UserDao) UpdateAccount(ctx context.Context, userId int64, fullName, email string) error {
	return d.updateColumns(ctx, userId, map[string]interface{}{
		"full_name":  fullName,
		"email":      email,
		"updated_at": time.Now(),
	})
}

func (d *UserDao) UpdatePassword(ctx context.Context, userId int64, hashed string) error {
	return d.updateColumns(ctx, userId, map[string]interface{}{
		"password":   hashed,
		"updated_at": time.Now(),
	})
}

func (d *UserDao) UpdateAvatar(ctx context.Context, userId int64, url string) error {
	return d.updateColumns(ctx, userId, map[string]interface{}{
		"avatar":     url,
		"updated_at": time.Now(),
	})
}

func (d *UserDao) UpdateCoverImage(ctx context.Context, userId int64, url string) error {
	return d.updateColumns(ctx, userId, map[string]interface{}{
		"cover_image": url,
		"updated_at":  time.Now(),
	})
}

// SetRefreshToken token为空表示注销
func (d *UserDao) SetRefreshToken(ctx context.Context, userId int64, token string) error {
	if err := d.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userId).
		UpdateColumn("refresh_token", token).Error; err != nil {
		return errors.Wrapf(err, "SetRefreshToken failed,err:%v", err)
	}
	return nil
}

// RotateRefreshToken 只有库中的token仍是old时才替换, 同一个refresh token只能使用一次
func (d *UserDao) RotateRefreshToken(ctx context.Context, userId int64, old, next string) (bool, error) {
	res := d.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", userId, old).
		UpdateColumn("refresh_token", next)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "RotateRefreshToken failed,err:%v", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ChannelProfile 频道主页: 订阅数, 已订阅的频道数, 当前用户是否已订阅
func (d *UserDao) ChannelProfile(ctx context.Context, userName string, viewer int64) (*view.ChannelRow, error) {
	ref := constants.UsersTableName + ".id"
	sel := view.Select(constants.UsersTableName+".*").
		SubscribersCount(ref).
		ChannelsSubscribedToCount(ref).
		IsSubscribed(ref, viewer)

	var rows []view.ChannelRow
	if err := d.db.WithContext(ctx).Table(constants.UsersTableName).
		Scopes(sel.Scope()).
		Where(constants.UsersTableName+".user_name = ?", userName).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "ChannelProfile failed,err:%v", err)
	}
	if len(rows) == 0 {
		return nil, errno.NotFoundErr.WithMessage("channel does not exists")
	}
	return &rows[0], nil
}

// RecordWatch 已看过的视频只更新观看时间
func (d *UserDao) RecordWatch(ctx context.Context, userId, videoId int64, at time.Time) error {
	if err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
	}).Create(&model.WatchHistory{UserID: userId, VideoID: videoId, WatchedAt: at}).Error; err != nil {
		return errors.Wrapf(err, "RecordWatch failed,err:%v", err)
	}
	return nil
}

// WatchHistory 最近观看的在前, 已被删除的视频通过INNER JOIN自然跳过
func (d *UserDao) WatchHistory(ctx context.Context, userId int64, q view.PageQuery) ([]view.VideoRow, int64, error) {
	v := constants.VideosTableName
	wh := constants.WatchHistoryTableName
	base := d.db.WithContext(ctx).Table(wh).
		Joins("JOIN "+v+" ON "+v+".id = "+wh+".video_id").
		Where(wh+".user_id = ?", userId).
		Where("("+v+".is_published = ? OR "+v+".owner_id = ?)", true, userId).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "WatchHistory count failed,err:%v", err)
	}

	sel := view.Select(v+".*").Owner().Likes(model.TargetVideo, v+".id", userId)
	var rows []view.VideoRow
	if err := base.Scopes(
		view.JoinOwner(v, "owner_id"),
		sel.Scope(),
		view.OrderBy(view.SortField{Table: wh, Column: "watched_at", TieTable: v}, true),
		view.Paginate(q),
	).Scan(&rows).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "WatchHistory failed,err:%v", err)
	}
	return rows, total, nil
}
