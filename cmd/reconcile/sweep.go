package main

import (
	"context"
	"time"

	"VideoTube.com/pkg/cache"
	"VideoTube.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Locker 由redsync.Mutex实现
type Locker interface {
	LockContext(ctx context.Context) error
	UnlockContext(ctx context.Context) (bool, error)
}

// Sweeper 由service.Reconciler实现
type Sweeper interface {
	Sweep(ctx context.Context, batch int) (int, error)
}

func newSweepCmd() *cobra.Command {
	var loop bool
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Scan for records whose video no longer exists and purge them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			rdb, err := cache.NewRedisClient(ctx, e.conf)
			if err != nil {
				return err
			}
			defer rdb.Close()

			rs := redsync.New(goredis.NewPool(rdb))
			mutex := rs.NewMutex(constants.SweepLockName,
				redsync.WithExpiry(e.conf.Reconcile.LockExpiry),
				redsync.WithTries(1))

			if !loop {
				_, err = lockedSweep(ctx, mutex, e.reconciler, e.conf.Reconcile.SweepBatch)
				return err
			}
			interval := e.conf.Reconcile.SweepInterval
			if interval <= 0 {
				interval = 10 * time.Minute
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				if _, err = lockedSweep(ctx, mutex, e.reconciler, e.conf.Reconcile.SweepBatch); err != nil {
					hlog.Errorf("sweep failed: %+v", err)
				}
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
	cmd.Flags().BoolVar(&loop, "loop", false, "keep sweeping every reconcile.sweep_interval")
	return cmd
}

// lockedSweep 其他副本持有锁时跳过本轮, 返回清理的视频数
func lockedSweep(ctx context.Context, lock Locker, sweeper Sweeper, batch int) (int, error) {
	if err := lock.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) {
			hlog.CtxInfof(ctx, "sweep lock held by another replica, skip")
			return 0, nil
		}
		return 0, err
	}
	defer func() {
		if _, err := lock.UnlockContext(context.WithoutCancel(ctx)); err != nil {
			hlog.CtxWarnf(ctx, "release sweep lock failed: %v", err)
		}
	}()

	purged, err := sweeper.Sweep(ctx, batch)
	if err != nil {
		return purged, err
	}
	hlog.CtxInfof(ctx, "sweep purged %d videos", purged)
	return purged, nil
}
