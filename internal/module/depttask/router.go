package depttask

import (
	"company-oa-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (d *ModuleDeptTask) InitRouter(r *gin.RouterGroup) {
	// 定义部门任务模块的路由组，所有端点以 /dept_task 为前缀
	taskGroup := r.Group("/dept_task")

	taskGroup.Use(middleware.Auth(middleware.RoleMember))
	{
		// 注册获取任务列表端点
		taskGroup.GET("/list", ListDeptTasks)

		// 注册获取单个任务端点，含子任务与流转日志
		taskGroup.GET("/get/:id", GetDeptTask)
	}

	taskGroup.Use(middleware.Auth(middleware.RoleManager))
	{
		// 经理认领任务
		taskGroup.POST("/accept/:id", AcceptDeptTask)

		// 经理更新进度与工时
		taskGroup.POST("/progress/:id", UpdateDeptProgress)

		// 经理提交任务送审
		taskGroup.POST("/submit/:id", SubmitDeptTask)
	}

	taskGroup.Use(middleware.Auth(middleware.RoleAdmin))
	{
		// 管理员下发部门任务
		taskGroup.POST("/create", CreateDeptTask)

		// 管理员审批通过
		taskGroup.POST("/approve/:id", ApproveDeptTask)

		// 管理员驳回
		taskGroup.POST("/reject/:id", RejectDeptTask)

		// 管理员取消任务，级联取消未完成子任务
		taskGroup.POST("/cancel/:id", CancelDeptTask)
	}
}
