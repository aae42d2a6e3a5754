package tools

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func PanicOnErr(err error) {
	if err != nil {
		panic(err)
	}
}

// GetPage 从查询参数中解析分页，返回 offset 和 limit
func GetPage(c *gin.Context) (offset, limit int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}
	return (page - 1) * pageSize, pageSize
}

// GetTime 从查询参数中解析时间戳（毫秒），缺省为当前时间
func GetTime(c *gin.Context) int64 {
	t, err := strconv.ParseInt(c.Query("time"), 10, 64)
	if err != nil || t <= 0 {
		return time.Now().UnixMilli()
	}
	return t
}
