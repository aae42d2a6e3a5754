package warning

import (
	"company-oa-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (w *ModuleWarning) InitRouter(r *gin.RouterGroup) {
	// 定义警告模块的路由组，所有端点以 /warning 为前缀
	warningGroup := r.Group("/warning")

	warningGroup.Use(middleware.Auth(middleware.RoleMember))
	{
		// 警告列表，普通成员只能看到自己的
		warningGroup.GET("/list", ListWarnings)
	}

	warningGroup.Use(middleware.Auth(middleware.RoleManager))
	{
		// 人工记警告，追加即不可变
		warningGroup.POST("/create", CreateWarning)
	}

	warningGroup.Use(middleware.Auth(middleware.RoleAdmin))
	{
		// 导出警告为 excel，用于绩效核算
		warningGroup.GET("/export", ExportWarnings)
	}
}
