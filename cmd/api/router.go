package main

import (
	health "VideoTube.com/cmd/api/handlers/health"
	interaction "VideoTube.com/cmd/api/handlers/interaction"
	relation "VideoTube.com/cmd/api/handlers/relation"
	tweet "VideoTube.com/cmd/api/handlers/tweet"
	user "VideoTube.com/cmd/api/handlers/user"
	video "VideoTube.com/cmd/api/handlers/video"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/api/router/middleware"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routes struct {
	auth        *authfunc.Authenticator
	health      *health.Handler
	user        *user.Handler
	video       *video.Handler
	interaction *interaction.Handler
	relation    *relation.Handler
	tweet       *tweet.Handler
}

func with(pre []app.HandlerFunc, h ...app.HandlerFunc) []app.HandlerFunc {
	return append(append(make([]app.HandlerFunc, 0, len(pre)+len(h)), pre...), h...)
}

// register 注册 /api/v1 下的全部路由
func register(r *server.Hertz, rt *routes) {
	r.GET("/metrics", adaptor.HertzHandler(promhttp.Handler()))

	auth := rt.auth.Auth()
	opt := rt.auth.OptionalAuth()
	upload := middleware.FlowControl(middleware.UploadResource)

	v1 := r.Group("/api/v1")
	v1.GET("/healthcheck", rt.health.HealthCheck)

	users := v1.Group("/users")
	users.POST("/register", upload, rt.user.Register)
	users.POST("/login", rt.user.Login)
	users.POST("/refresh-token", rt.user.RefreshToken)
	users.POST("/logout", with(auth, rt.user.Logout)...)
	users.POST("/change-password", with(auth, rt.user.ChangePassword)...)
	users.GET("/current-user", with(auth, rt.user.CurrentUser)...)
	users.PATCH("/update-account", with(auth, rt.user.UpdateAccount)...)
	users.PATCH("/avatar", with(auth, upload, rt.user.UpdateAvatar)...)
	users.PATCH("/cover-image", with(auth, upload, rt.user.UpdateCoverImage)...)
	users.GET("/c/:userName", with(opt, rt.user.ChannelProfile)...)
	users.GET("/history", with(auth, rt.user.WatchHistory)...)

	videos := v1.Group("/videos")
	videos.GET("", with(opt, rt.video.ListVideos)...)
	videos.POST("", with(auth, upload, rt.video.PublishVideo)...)
	videos.GET("/:videoId", with(opt, rt.video.GetVideo)...)
	videos.PATCH("/:videoId", with(auth, upload, rt.video.UpdateVideo)...)
	videos.DELETE("/:videoId", with(auth, rt.video.DeleteVideo)...)
	videos.PATCH("/toggle/publish/:videoId", with(auth, rt.video.TogglePublishStatus)...)

	comments := v1.Group("/comments")
	comments.GET("/:videoId", with(opt, rt.interaction.ListComments)...)
	comments.POST("/:videoId", with(auth, rt.interaction.AddComment)...)
	comments.PATCH("/c/:commentId", with(auth, rt.interaction.UpdateComment)...)
	comments.DELETE("/c/:commentId", with(auth, rt.interaction.DeleteComment)...)

	likes := v1.Group("/likes", auth...)
	likes.POST("/toggle/v/:videoId", rt.interaction.ToggleVideoLike)
	likes.POST("/toggle/c/:commentId", rt.interaction.ToggleCommentLike)
	likes.POST("/toggle/t/:tweetId", rt.interaction.ToggleTweetLike)
	likes.GET("/videos", rt.interaction.LikedVideos)

	subscriptions := v1.Group("/subscriptions")
	subscriptions.POST("/c/:channelId", with(auth, rt.relation.ToggleSubscription)...)
	subscriptions.GET("/c/:channelId", with(opt, rt.relation.ChannelSubscribers)...)
	subscriptions.GET("/u/:subscriberId", with(opt, rt.relation.SubscribedChannels)...)

	tweets := v1.Group("/tweets")
	tweets.POST("", with(auth, rt.tweet.CreateTweet)...)
	tweets.GET("/user/:userId", with(opt, rt.tweet.UserTweets)...)
	tweets.PATCH("/:tweetId", with(auth, rt.tweet.UpdateTweet)...)
	tweets.DELETE("/:tweetId", with(auth, rt.tweet.DeleteTweet)...)

	playlist := v1.Group("/playlist")
	playlist.POST("", with(auth, rt.video.CreatePlaylist)...)
	playlist.GET("/user/:userId", with(opt, rt.video.UserPlaylists)...)
	playlist.GET("/:playlistId", with(opt, rt.video.GetPlaylist)...)
	playlist.PATCH("/:playlistId", with(auth, rt.video.UpdatePlaylist)...)
	playlist.DELETE("/:playlistId", with(auth, rt.video.DeletePlaylist)...)
	playlist.PATCH("/add/:videoId/:playlistId", with(auth, rt.video.AddVideo)...)
	playlist.PATCH("/remove/:videoId/:playlistId", with(auth, rt.video.RemoveVideo)...)
	playlist.PATCH("/toggle/publish/:playlistId", with(auth, rt.video.TogglePlaylistPublish)...)
}
