package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// TokenDenylist 登出后access token在过期之前仍然有效, 这里记录被注销的token
type TokenDenylist struct {
	rdb *redis.Client
}

func NewTokenDenylist(rdb *redis.Client) *TokenDenylist {
	return &TokenDenylist{rdb: rdb}
}

func deniedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + "denied:" + hex.EncodeToString(sum[:])
}

// Deny ttl<=0 时不记录, token已经过期
func (d *TokenDenylist) Deny(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.rdb.Set(ctx, deniedKey(token), 1, ttl).Err(); err != nil {
		hlog.CtxErrorf(ctx, "Redis set denied token failed : %v", err)
		return errors.Wrap(err, "deny token failed")
	}
	return nil
}

func (d *TokenDenylist) IsDenied(ctx context.Context, token string) (bool, error) {
	n, err := d.rdb.Exists(ctx, deniedKey(token)).Result()
	if err != nil {
		return false, errors.Wrap(err, "check denied token failed")
	}
	return n > 0, nil
}
