package database

import (
	"context"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	erDupEntry        = 1062
	erLockWaitTimeout = 1205
	erLockDeadlock    = 1213
)

// IsContention 死锁, 锁等待超时与唯一键冲突, 都是并发写同一行造成的
func IsContention(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysqldriver.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case erDupEntry, erLockWaitTimeout, erLockDeadlock:
			return true
		}
	}
	return false
}

// RetryOnContention fn因并发冲突失败时重试一次, 仍然失败则返回最后一次的错误
func RetryOnContention(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || !IsContention(err) || ctx.Err() != nil {
		return err
	}
	return fn()
}
