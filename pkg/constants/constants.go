package constants

import "time"

const (
	UsersTableName         = "users"
	VideosTableName        = "videos"
	CommentsTableName      = "comments"
	LikesTableName         = "likes"
	SubscriptionsTableName = "subscriptions"
	TweetsTableName        = "tweets"
	PlaylistsTableName     = "playlists"
	PlaylistVideosTable    = "playlist_videos"
	WatchHistoryTableName  = "watch_histories"
)

// 分页
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 20
)

const (
	DefaultPlaylistDescription = "add description"
	MaxCommentLength           = 500
	MaxTweetLength             = 280
	MinPasswordLength          = 6
	MaxPasswordLength          = 72 // bcrypt上限

	CommentRateLimit  = 10
	CommentRateWindow = time.Minute
)

// request context keys
const (
	ViewerKey      = "viewer_id"
	AccessTokenKey = "access_token"
	IdentityKey    = "identity"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// 上传表单中的文件字段
const (
	VideoFileField  = "videoFile"
	ThumbnailField  = "thumbnail"
	AvatarField     = "avatar"
	CoverImageField = "coverImage"
)

const SweepLockName = "videotube:reconcile:sweep"
