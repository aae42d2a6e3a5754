package user

import (
	"company-oa-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	// 定义用户模块的路由组，所有用户相关端点以 /user 为前缀
	userGroup := r.Group("/user")

	// 注册登录端点，处理用户登录请求
	userGroup.POST("/login", Login)

	// 注册注册端点，新用户默认为普通成员
	userGroup.POST("/register", Register)

	userGroup.Use(middleware.Auth(middleware.RoleMember))
	{
		// 当前登录用户信息
		userGroup.GET("/me", GetMe)

		// 修改密码
		userGroup.POST("/change_password", ChangePassword)
	}

	userGroup.Use(middleware.Auth(middleware.RoleManager))
	{
		// 用户列表，经理及以上可查
		userGroup.GET("/list", ListUsers)
	}

	userGroup.Use(middleware.Auth(middleware.RoleAdmin))
	{
		// 调整用户角色与部门归属
		userGroup.PUT("/assign/:employee_id", AssignUser)
	}
}
