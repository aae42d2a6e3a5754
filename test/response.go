package test

import (
	"testing"

	"company-oa-system/internal/global/response"

	"github.com/stretchr/testify/require"
)

// ErrorEqual 校验响应携带预期错误
// WithTips 会在基础消息后追加提示，所以消息用包含匹配
func ErrorEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	require.Equal(t, expected.Code, resp.Code)
	require.Contains(t, resp.Msg, expected.Message)
}

func NoError(t *testing.T, resp response.ResponseBody) {
	require.Equal(t, int32(200), resp.Code)
}
