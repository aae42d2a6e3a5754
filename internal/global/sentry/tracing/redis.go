package tracing

import (
	"context"
	"net"
	"strings"
	"time"

	"company-oa-system/config"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
)

// RedisSentryHook 实现 redis.Hook 接口，用于追踪 Redis 操作
type RedisSentryHook struct {
	// slowThreshold 慢操作阈值，仅记录执行时间超过此值的操作
	// 设为 0 表示记录所有操作
	slowThreshold time.Duration
}

// NewRedisSentryHook 创建 Redis Sentry 追踪 hook
func NewRedisSentryHook() *RedisSentryHook {
	cfg := config.Get()
	threshold := time.Duration(cfg.Sentry.Tracing.RedisSlowThresholdMs) * time.Millisecond
	return &RedisSentryHook{
		slowThreshold: threshold,
	}
}

// DialHook 实现 redis.Hook 接口
func (h *RedisSentryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

// ProcessHook 实现 redis.Hook 接口，追踪单个 Redis 命令
func (h *RedisSentryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		startTime := time.Now()

		parentSpan := sentry.SpanFromContext(ctx)

		var span *sentry.Span
		if parentSpan != nil {
			span = parentSpan.StartChild("db.redis")
			span.Description = h.getCommandName(cmd)
			span.SetData("db.system", "redis")
			span.SetData("db.operation", cmd.Name())
			ctx = span.Context()
		}

		err := next(ctx, cmd)

		if span != nil {
			elapsed := time.Since(startTime)
			if h.slowThreshold > 0 && elapsed < h.slowThreshold {
				span.Finish()
				return err
			}
			if err != nil && err != redis.Nil {
				span.Status = sentry.SpanStatusInternalError
				span.SetData("db.error", err.Error())
			}
			span.Finish()
		}

		return err
	}
}

// ProcessPipelineHook 实现 redis.Hook 接口，追踪 pipeline 命令
func (h *RedisSentryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		parentSpan := sentry.SpanFromContext(ctx)

		var span *sentry.Span
		if parentSpan != nil {
			span = parentSpan.StartChild("db.redis.pipeline")
			names := make([]string, 0, len(cmds))
			for _, cmd := range cmds {
				names = append(names, cmd.Name())
			}
			span.Description = strings.Join(names, ", ")
			span.SetData("db.system", "redis")
			ctx = span.Context()
		}

		err := next(ctx, cmds)

		if span != nil {
			span.Finish()
		}
		return err
	}
}

func (h *RedisSentryHook) getCommandName(cmd redis.Cmder) string {
	full := cmd.String()
	if idx := strings.IndexByte(full, ':'); idx > 0 {
		return full[:idx]
	}
	return cmd.Name()
}
