package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"VideoTube.com/cmd/interaction/dal/db"
	"VideoTube.com/cmd/interaction/service"
	"VideoTube.com/config"
	"VideoTube.com/pkg/database"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configDir string

func main() {
	root := &cobra.Command{
		Use:          "reconcile",
		Short:        "Remove comments, likes and playlist entries left behind by deleted videos",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config", "", "directory containing config.yml")
	root.AddCommand(newConsumeCmd(), newSweepCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		hlog.Errorf("reconcile: %+v", err)
		stop()
		os.Exit(1)
	}
}

// env 子命令共用的配置, 数据库与Reconciler
type env struct {
	conf       *config.Config
	db         *gorm.DB
	reconciler *service.Reconciler
}

func setup() (*env, error) {
	var paths []string
	if configDir != "" {
		paths = append(paths, configDir)
	}
	c, err := config.Init(paths...)
	if err != nil {
		return nil, err
	}
	gdb, err := database.Open(c)
	if err != nil {
		return nil, err
	}
	return &env{
		conf:       c,
		db:         gdb,
		reconciler: service.NewReconciler(db.NewCascadeDao(gdb)),
	}, nil
}

func (e *env) Close() {
	if err := database.Close(e.db); err != nil {
		hlog.Warnf("close mysql failed: %v", err)
	}
}
