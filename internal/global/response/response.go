package response

import (
	"net/http"

	"company-oa-system/config"

	"github.com/gin-gonic/gin"
)

// ResponseBody 统一响应体
type ResponseBody struct {
	Code int32       `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// Success 返回成功响应，data 可省略
func Success(c *gin.Context, data ...interface{}) {
	body := ResponseBody{
		Code: 200,
		Msg:  "success",
	}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Fail 返回失败响应
// 非 *Error 类型的错误统一包装为 ErrInternal，避免泄露内部细节
func Fail(c *gin.Context, err error) {
	e, ok := err.(*Error)
	if !ok {
		e = ErrInternal.WithOrigin(err)
	}

	body := ResponseBody{
		Code: e.Code,
		Msg:  e.Message,
	}
	// 仅在 debug 模式下向前端暴露原始错误
	if config.Get().Mode == config.ModeDebug && e.Origin != "" {
		body.Data = gin.H{"origin": e.Origin}
	}

	// 存入 context，供日志与 Sentry 中间件使用
	c.Set(ErrorContextKey, e)
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Recovery 处理 handler 中的 panic，返回统一的内部错误
// 用法：defer response.Recovery(c)
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = &Error{Code: ErrInternal.Code, Message: ErrInternal.Message}
		}
		Fail(c, ErrInternal.WithOrigin(err))
		c.Abort()
	}
}
