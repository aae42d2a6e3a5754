package tracing

import (
	"net/url"

	"company-oa-system/config"

	"github.com/getsentry/sentry-go"
	"github.com/go-resty/resty/v2"
)

// SetupRestyTracing 为 Resty 客户端配置 Sentry 追踪中间件
// 应在 httpclient.Init() 中调用
func SetupRestyTracing(client *resty.Client) {
	cfg := config.Get()

	// 如果未启用 HTTP 追踪，直接返回
	if !cfg.Sentry.Tracing.TraceHTTPCalls {
		return
	}

	// 请求前中间件：创建 span
	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		ctx := req.Context()
		if ctx == nil {
			return nil
		}

		parentSpan := sentry.SpanFromContext(ctx)
		if parentSpan == nil {
			return nil
		}

		span := parentSpan.StartChild("http.client")
		span.Description = req.Method + " " + sanitizeURL(req.URL)
		span.SetData("http.request.method", req.Method)
		span.SetData("url.full", sanitizeURL(req.URL))

		// 添加 sentry-trace 头以支持分布式追踪
		req.SetHeader("sentry-trace", span.ToSentryTrace())
		if baggage := span.ToBaggage(); baggage != "" {
			req.SetHeader("baggage", baggage)
		}

		req.SetContext(span.Context())
		return nil
	})

	// 请求后中间件：结束 span
	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		ctx := resp.Request.Context()
		if ctx == nil {
			return nil
		}

		span := sentry.SpanFromContext(ctx)
		if span == nil {
			return nil
		}

		span.SetData("http.response.status_code", resp.StatusCode())
		if resp.StatusCode() >= 500 {
			span.Status = sentry.SpanStatusInternalError
		}
		span.Finish()
		return nil
	})
}

// sanitizeURL 去掉 URL 中的查询参数，避免泄露敏感信息
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
