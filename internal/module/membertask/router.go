package membertask

import (
	"company-oa-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleMemberTask) InitRouter(r *gin.RouterGroup) {
	// 定义成员任务模块的路由组，所有端点以 /member_task 为前缀
	taskGroup := r.Group("/member_task")

	taskGroup.Use(middleware.Auth(middleware.RoleMember))
	{
		// 注册获取任务列表端点
		taskGroup.GET("/list", ListMemberTasks)

		// 注册获取单个任务端点，含流转日志
		taskGroup.GET("/get/:id", GetMemberTask)

		// 成员开工
		taskGroup.POST("/start/:id", StartMemberTask)

		// 成员更新进度与工时
		taskGroup.POST("/progress/:id", UpdateMemberProgress)

		// 成员提交任务送审
		taskGroup.POST("/submit/:id", SubmitMemberTask)
	}

	taskGroup.Use(middleware.Auth(middleware.RoleManager))
	{
		// 经理在部门任务下拆分子任务
		taskGroup.POST("/create", CreateMemberTask)

		// 经理审批通过
		taskGroup.POST("/approve/:id", ApproveMemberTask)

		// 经理驳回
		taskGroup.POST("/reject/:id", RejectMemberTask)
	}
}
