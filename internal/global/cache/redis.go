package cache

import (
	"context"
	"time"

	"company-oa-system/config"
	"company-oa-system/internal/global/logger"
	"company-oa-system/internal/global/sentry/tracing"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// Init 初始化 Redis 客户端，用于统计面板缓存
// Redis 不可用时仅降级为不缓存，不影响主流程
func Init() {
	cfg := config.Get()
	if cfg.Redis.Host == "" {
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if tracing.IsEnabled() {
		Client.AddHook(tracing.NewRedisSentryHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := Client.Ping(ctx).Err(); err != nil {
		logger.New("Cache").Warn("Redis 连接失败，统计缓存不可用", "error", err)
		Client = nil
	}
}

// Enabled 判断缓存是否可用
func Enabled() bool {
	return Client != nil
}
