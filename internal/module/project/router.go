package project

import (
	"company-oa-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (p *ModuleProject) InitRouter(r *gin.RouterGroup) {
	// 定义项目模块的路由组，所有项目相关端点以 /project 为前缀
	projectGroup := r.Group("/project")

	projectGroup.Use(middleware.Auth(middleware.RoleMember))
	{
		// 注册获取项目列表端点
		projectGroup.GET("/list", ListProjects)

		// 注册获取单个项目端点
		projectGroup.GET("/get/:id", GetProject)
	}

	projectGroup.Use(middleware.Auth(middleware.RoleAdmin))
	{
		// 注册创建项目端点
		projectGroup.POST("/create", CreateProject)

		// 注册更新项目端点
		projectGroup.PUT("/update/:id", UpdateProject)

		// 归档项目，归档后不再接受新任务
		projectGroup.PUT("/archive/:id", ArchiveProject)

		// 恢复已归档的项目
		projectGroup.PUT("/restore/:id", RestoreProject)
	}
}
