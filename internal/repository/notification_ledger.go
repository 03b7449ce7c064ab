package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NotificationLedger 同一提醒窗口内的去重账本。
// Acquire返回true表示本次可以发送（并占住窗口），false表示窗口内已发过。
type NotificationLedger interface {
	Acquire(tier string, goalID uint, tokenID string, ttl time.Duration) bool
}

// RedisNotificationLedger 基于SETNX+TTL的实现。
// Redis不可用时放行（fail open），推送本身就是尽力而为。
type RedisNotificationLedger struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisNotificationLedger(rdb *redis.Client, log *zap.Logger) *RedisNotificationLedger {
	return &RedisNotificationLedger{rdb: rdb, log: log}
}

func (l *RedisNotificationLedger) Acquire(tier string, goalID uint, tokenID string, ttl time.Duration) bool {
	key := fmt.Sprintf("notify:%s:%d:%s", tier, goalID, tokenID)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ok, err := l.rdb.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		l.log.Warn("notification ledger unavailable, sending anyway",
			zap.String("key", key), zap.Error(err))
		return true
	}
	return ok
}

// NopNotificationLedger 去重关闭时使用，全部放行
type NopNotificationLedger struct{}

func (NopNotificationLedger) Acquire(string, uint, string, time.Duration) bool { return true }
