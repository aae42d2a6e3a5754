package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"company-oa-system/config"
	"company-oa-system/internal/global/cache"
	"company-oa-system/internal/global/database"
	"company-oa-system/internal/global/httpclient"
	"company-oa-system/internal/global/logger"
	"company-oa-system/internal/global/middleware"
	"company-oa-system/internal/global/notify"
	internalOtel "company-oa-system/internal/global/otel"
	"company-oa-system/internal/global/sentry"
	"company-oa-system/internal/module"
	"company-oa-system/tools"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	if config.Get().Sentry.Dsn != "" {
		if err := sentry.Init(); err != nil {
			log.Error("Sentry 初始化失败", "error", err)
		} else {
			log.Info("Sentry Enabled")
		}
	}

	database.Init()

	cache.Init()

	httpclient.Init()

	notify.Init()

	if config.Get().OTel.Enable {
		log.Info("OTel Enabled")
		internalOtel.Init()
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	if config.Get().Sentry.Dsn != "" {
		r.Use(sentry.Middleware())
		r.Use(middleware.SentryEnrichIP())
	}

	if config.Get().OTel.Enable {
		r.Use(middleware.Trace())
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}

	defer shutdown()

	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}

// shutdown 退出前冲刷可观测性组件
func shutdown() {
	sentry.Flush(2 * time.Second)
	if config.Get().OTel.Enable {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := internalOtel.Shutdown(ctx); err != nil {
			log.Error("关闭 TracerProvider 失败", "error", err)
		}
	}
}
