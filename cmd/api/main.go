package main

import (
	"context"
	"flag"
	"fmt"

	health "VideoTube.com/cmd/api/handlers/health"
	interaction "VideoTube.com/cmd/api/handlers/interaction"
	relation "VideoTube.com/cmd/api/handlers/relation"
	tweet "VideoTube.com/cmd/api/handlers/tweet"
	user "VideoTube.com/cmd/api/handlers/user"
	video "VideoTube.com/cmd/api/handlers/video"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/api/router/middleware"
	interactiondb "VideoTube.com/cmd/interaction/dal/db"
	interactionsvc "VideoTube.com/cmd/interaction/service"
	relationdb "VideoTube.com/cmd/relation/dal/db"
	relationsvc "VideoTube.com/cmd/relation/service"
	tweetdb "VideoTube.com/cmd/tweet/dal/db"
	tweetsvc "VideoTube.com/cmd/tweet/service"
	userdb "VideoTube.com/cmd/user/dal/db"
	usersvc "VideoTube.com/cmd/user/service"
	videodb "VideoTube.com/cmd/video/dal/db"
	videosvc "VideoTube.com/cmd/video/service"
	"VideoTube.com/config"
	"VideoTube.com/config/jaeger"
	"VideoTube.com/config/pprof"
	"VideoTube.com/pkg/cache"
	"VideoTube.com/pkg/database"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/jwt"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
)

func main() {
	configDir := flag.String("config", "", "directory containing config.yml")
	flag.Parse()

	if err := run(*configDir); err != nil {
		hlog.Fatalf("api server exited: %+v", err)
	}
}

func run(configDir string) error {
	ctx := context.Background()

	var paths []string
	if configDir != "" {
		paths = append(paths, configDir)
	}
	c, err := config.Init(paths...)
	if err != nil {
		return err
	}
	if err = utils.InitSnowflake(c.Server.WorkerID, c.Server.DatacenterID); err != nil {
		return err
	}

	// 1. 基础设施
	pprof.Load(c.Server.PprofAddr)
	closer, err := jaeger.InitJaeger(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	gdb, err := database.Open(c)
	if err != nil {
		return err
	}
	defer database.Close(gdb)

	rdb, err := cache.NewRedisClient(ctx, c)
	if err != nil {
		return err
	}
	defer rdb.Close()

	media, err := oss.NewMinioHost(ctx, c)
	if err != nil {
		return err
	}

	var publisher mq.EventPublisher = mq.NopPublisher{}
	if producer, err := mq.NewProducer(c.RabbitMqURL()); err != nil {
		hlog.Warnf("rabbitmq unavailable, video events disabled: %v", err)
	} else {
		defer producer.Close()
		publisher = producer
	}

	issuer, err := jwt.NewIssuer(c)
	if err != nil {
		return err
	}
	if err = middleware.InitSentinel(c.Sentinel.UploadQPS); err != nil {
		return err
	}

	// 2. dal与service
	users := userdb.NewUserDao(gdb)
	videos := videodb.NewVideoDao(gdb)
	subscriptions := relationdb.NewSubscriptionDao(gdb)
	denylist := cache.NewTokenDenylist(rdb)

	userService := usersvc.NewUserService(users, media, issuer, denylist)
	videoService := videosvc.NewVideoService(videos, users, media, publisher)
	playlistService := videosvc.NewPlaylistService(videodb.NewPlaylistDao(gdb), videos)
	commentService := interactionsvc.NewCommentService(interactiondb.NewCommentDao(gdb), videos,
		cache.NewRateLimiter(rdb), publisher)
	likeService := interactionsvc.NewLikeService(interactiondb.NewLikeDao(gdb))
	relationService := relationsvc.NewRelationService(subscriptions)
	tweetService := tweetsvc.NewTweetService(tweetdb.NewTweetDao(gdb), subscriptions)

	// 3. http server
	h := server.New(
		server.WithHostPorts(c.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(c.Server.MaxRequestBody),
		server.WithExitWaitTime(0),
	)
	h.Use(cors.New(cors.Config{
		AllowOrigins:     c.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	h.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"statusCode": consts.StatusInternalServerError,
				"data":       nil,
				"message":    fmt.Sprintf("%v", err),
				"success":    false,
				"errCode":    errno.ServiceErrCode,
			})
		})))
	h.Use(middleware.Tracing(), middleware.Metrics())

	register(h, &routes{
		auth:        authfunc.NewAuthenticator(issuer, denylist),
		health:      health.New(),
		user:        user.New(userService, c.Upload.TempDir, c.Jwt.SecureCookie),
		video:       video.New(videoService, playlistService, c.Upload.TempDir),
		interaction: interaction.New(commentService, likeService),
		relation:    relation.New(relationService),
		tweet:       tweet.New(tweetService),
	})

	// Spin 收到SIGTERM后优雅退出, 随后执行上面的defer释放连接
	h.Spin()
	return nil
}
