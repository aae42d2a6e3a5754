package department

import (
	"company-oa-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (d *ModuleDepartment) InitRouter(r *gin.RouterGroup) {
	// 定义部门模块的路由组，所有部门相关端点以 /department 为前缀
	deptGroup := r.Group("/department")

	deptGroup.Use(middleware.Auth(middleware.RoleMember))
	{
		// 注册获取部门列表端点
		deptGroup.GET("/list", ListDepartments)

		// 注册获取单个部门端点
		deptGroup.GET("/get/:id", GetDepartment)
	}

	deptGroup.Use(middleware.Auth(middleware.RoleAdmin))
	{
		// 注册创建部门端点
		deptGroup.POST("/create", CreateDepartment)

		// 注册更新部门端点
		deptGroup.PUT("/update/:id", UpdateDepartment)

		// 指定部门经理
		deptGroup.PUT("/manager/:id", SetManager)
	}
}
