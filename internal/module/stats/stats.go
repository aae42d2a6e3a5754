package stats

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"company-oa-system/config"
	"company-oa-system/internal/global/cache"
	"company-oa-system/internal/global/database"
	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"
	"company-oa-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// getID 从路径参数取 ID，失败时已写入响应
func getID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("ID非法"))
		return 0, false
	}
	return uint(id), true
}

// cacheTTL 统计缓存过期时间
func cacheTTL() time.Duration {
	return time.Duration(config.Get().Redis.StatsTTLSeconds) * time.Second
}

// fromCache 尝试读取缓存的统计结果，Redis 不可用时静默跳过
func fromCache(c *gin.Context, key string, out interface{}) bool {
	if !cache.Enabled() {
		return false
	}
	raw, err := cache.Client.Get(c.Request.Context(), key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}
	return true
}

// toCache 写入统计缓存，失败仅记日志
func toCache(c *gin.Context, key string, v interface{}) {
	if !cache.Enabled() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := cache.Client.Set(c.Request.Context(), key, raw, cacheTTL()).Err(); err != nil {
		log.Warn("写入统计缓存失败", "key", key, "error", err)
	}
}

// ProjectOverview 项目进度面板
func ProjectOverview(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}

	key := fmt.Sprintf("stats:project:%d", id)
	var cached projectOverview
	if fromCache(c, key, &cached) {
		response.Success(c, cached)
		return
	}

	var count int64
	if err := database.DB.Model(&model.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		log.Error("查询项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if count == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
		return
	}

	overview, err := selectProjectOverview(id, time.Now().UnixMilli())
	if err != nil {
		log.Error("查询项目统计失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	toCache(c, key, overview)
	response.Success(c, overview)
}

// DepartmentWorkload 部门工作量面板
func DepartmentWorkload(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}

	key := fmt.Sprintf("stats:department:%d", id)
	var cached []memberWorkload
	if fromCache(c, key, &cached) {
		response.Success(c, gin.H{"members": cached})
		return
	}

	var count int64
	if err := database.DB.Model(&model.Department{}).Where("id = ?", id).Count(&count).Error; err != nil {
		log.Error("查询部门失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if count == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("部门不存在"))
		return
	}

	rows, err := selectDepartmentWorkload(id)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	toCache(c, key, rows)
	response.Success(c, gin.H{"members": rows})
}

// DepartmentWorkloadExport 导出部门工作量为 excel
func DepartmentWorkloadExport(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}

	rows, err := selectDepartmentWorkload(id)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := tools.ExportToExcel(f, "", rows); err != nil {
		log.Error("导出 excel 错误", "error", err)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	filename := fmt.Sprintf("workload_%d_%d.xlsx", id, time.Now().UnixMilli())
	c.Header("Content-Type", tools.ExcelContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Cache-Control", "must-revalidate")
	_ = f.Write(c.Writer)
}
