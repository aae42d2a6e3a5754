package report

import (
	"company-oa-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleReport) InitRouter(r *gin.RouterGroup) {
	// 定义报告模块的路由组，所有端点以 /report 为前缀
	reportGroup := r.Group("/report")

	reportGroup.Use(middleware.Auth(middleware.RoleMember))
	{
		// 提交进度报告，落库后不可修改
		reportGroup.POST("/create", CreateReport)

		// 注册获取报告列表端点
		reportGroup.GET("/list", ListReports)

		// 注册获取单条报告端点
		reportGroup.GET("/get/:id", GetReport)

		// 附件直传预签名，文件本体不经过本服务
		reportGroup.GET("/upload_url", GetUploadURL)
	}

	reportGroup.Use(middleware.Auth(middleware.RoleManager))
	{
		// 导出报告为 excel
		reportGroup.GET("/export", ExportReports)
	}
}
