package stats

import (
	"company-oa-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (*ModuleStats) InitRouter(r *gin.RouterGroup) {
	statsGroup := r.Group("/stats")

	statsGroup.Use(middleware.Auth(middleware.RoleManager))
	{
		// 项目进度面板：部门任务状态分布、平均进度、工时与警告
		statsGroup.GET("/project/:id", ProjectOverview)

		// 部门工作量面板：成员任务分布与工时
		statsGroup.GET("/department/:id", DepartmentWorkload)
	}

	statsGroup.Use(middleware.Auth(middleware.RoleAdmin))
	{
		// 导出部门工作量为 excel
		statsGroup.GET("/department/:id/export", DepartmentWorkloadExport)
	}
}
