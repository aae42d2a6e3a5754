package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Trace 接入 OTel 链路追踪
func Trace() gin.HandlerFunc {
	return otelgin.Middleware("company-oa-system")
}
