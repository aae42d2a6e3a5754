package user

import (
	"strings"

	"company-oa-system/internal/global/database"
	"company-oa-system/internal/global/jwt"
	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"
	"company-oa-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// User 定义登录请求的结构体
type User struct {
	EmployeeID string `json:"employee_id" binding:"required"` // 工号，唯一标识用户
	Password   string `json:"password" binding:"required"`    // 密码，登录时验证，注册时加密
}

// Login 处理用户登录请求
func Login(c *gin.Context) {
	// 定义请求结构体并绑定 JSON 数据
	var req User
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err, "employee_id", req.EmployeeID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 查询用户是否存在
	var user model.User
	err := database.DB.Where("employee_id = ?", req.EmployeeID).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "employee_id", req.EmployeeID)
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "employee_id", req.EmployeeID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 验证密码
	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("密码错误", "employee_id", req.EmployeeID)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	// 记录登录成功的日志
	log.Info("用户登录成功",
		"employee_id", user.EmployeeID,
		"role_id", user.RoleID)

	// 生成 JWT 令牌并返回用户信息
	response.Success(c, map[string]interface{}{
		"token": jwt.CreateToken(jwt.Payload{
			UserID:       user.ID,
			EmployeeID:   user.EmployeeID,
			RoleID:       user.RoleID,
			DepartmentID: user.DepartmentID,
		}),
		"employee_id":   user.EmployeeID,
		"role_id":       user.RoleID,
		"department_id": user.DepartmentID,
	})
}

// validatePasswordStrength 验证密码强度
func validatePasswordStrength(password string) error {
	if password == "" {
		return errors.New("密码不能为空")
	}
	if len(password) < 8 {
		return errors.New("密码长度必须至少8字符")
	}

	hasLetter := false
	hasDigit := false
	hasSpecial := false
	specialChars := "!@#$%^&*-"

	for _, char := range password {
		switch {
		case strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ", char):
			hasLetter = true
		case strings.ContainsRune("0123456789", char):
			hasDigit = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	if !hasLetter {
		return errors.New("密码必须包含至少一个字母")
	}
	if !hasDigit {
		return errors.New("密码必须包含至少一个数字")
	}
	if !hasSpecial {
		return errors.New("密码必须包含至少一个特殊字符（!@#$%^&*）")
	}

	return nil
}

type registerReq struct {
	User
	NickName string `json:"nick_name" binding:"required"`
}

// Register 处理用户注册请求，新用户默认为普通成员，未分配部门
func Register(c *gin.Context) {
	// 定义请求结构体并绑定 JSON 数据
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定注册请求失败", "error", err, "employee_id", req.EmployeeID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 验证密码强度
	if err := validatePasswordStrength(req.Password); err != nil {
		log.Warn("密码强度验证失败", "error", err, "employee_id", req.EmployeeID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err).WithTips(err.Error()))
		return
	}

	// 检查工号是否已存在
	var existingUser model.User
	err := database.DB.Where("employee_id = ?", req.EmployeeID).First(&existingUser).Error
	if err == nil {
		log.Warn("用户已存在", "employee_id", req.EmployeeID)
		response.Fail(c, response.ErrAlreadyExists)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("数据库查询失败", "error", err, "employee_id", req.EmployeeID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 加密密码
	encryptedPassword := tools.PasswordEncrypt(req.Password)

	// 创建新的用户
	user := model.User{
		EmployeeID: req.EmployeeID,
		Password:   encryptedPassword,
		NickName:   req.NickName,
		RoleID:     model.RoleMember,
	}

	// 保存用户到数据库
	if err := database.DB.Create(&user).Error; err != nil {
		log.Error("创建用户失败", "error", err, "employee_id", req.EmployeeID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 记录注册成功的日志
	log.Info("用户注册成功",
		"employee_id", user.EmployeeID,
		"nick_name", user.NickName,
		"role_id", user.RoleID)

	// 返回成功响应
	response.Success(c)
}

// ChangePasswordReq 定义修改密码请求的结构体
type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"` // 旧密码，用于验证
	NewPassword string `json:"new_password" binding:"required"` // 新密码，需加密后保存
}

// ChangePassword 处理用户修改密码请求
// 验证旧密码正确性后更新新密码，要求用户已通过认证
func ChangePassword(c *gin.Context) {
	// 获取认证信息
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	// 定义请求结构体并绑定 JSON 数据
	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定修改密码请求失败", "error", err, "employee_id", userPayload.EmployeeID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 验证新密码强度
	if err := validatePasswordStrength(req.NewPassword); err != nil {
		log.Warn("新密码强度验证失败", "error", err, "employee_id", userPayload.EmployeeID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 查询用户
	var user model.User
	err := database.DB.Where("employee_id = ?", userPayload.EmployeeID).First(&user).Error
	if err != nil {
		log.Error("查询用户失败", "error", err, "employee_id", userPayload.EmployeeID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 验证旧密码
	if !tools.PasswordCompare(req.OldPassword, user.Password) {
		log.Warn("旧密码错误", "employee_id", userPayload.EmployeeID)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	// 加密新密码
	newEncryptedPassword := tools.PasswordEncrypt(req.NewPassword)

	// 更新用户密码
	if err := database.DB.Model(&user).Update("password", newEncryptedPassword).Error; err != nil {
		log.Error("更新密码失败", "error", err, "employee_id", userPayload.EmployeeID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户修改密码成功",
		"employee_id", user.EmployeeID,
		"role_id", user.RoleID)

	response.Success(c, nil)
}

// GetMe 返回当前登录用户信息
func GetMe(c *gin.Context) {
	// 获取认证信息
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	// 查询用户
	var user model.User
	err := database.DB.Where("employee_id = ?", userPayload.EmployeeID).First(&user).Error
	if err != nil {
		log.Error("查询用户失败", "error", err, "employee_id", userPayload.EmployeeID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, user)
}

// ListUsersReq 定义用户列表的查询参数结构体
type ListUsersReq struct {
	DepartmentID *uint  `form:"department_id"` // 按部门筛选
	RoleID       *int   `form:"role_id"`       // 按角色筛选
	NickName     string `form:"nick_name"`     // 姓名模糊查询
}

// ListUsers 获取用户列表，经理及以上可查
func ListUsers(c *gin.Context) {
	var req ListUsersReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	query := database.DB.Model(&model.User{})
	if req.DepartmentID != nil {
		query = query.Where("department_id = ?", *req.DepartmentID)
	}
	if req.RoleID != nil {
		query = query.Where("role_id = ?", *req.RoleID)
	}
	if req.NickName != "" {
		query = query.Where("nick_name LIKE ?", "%"+req.NickName+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取用户总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	offset, limit := tools.GetPage(c)
	var users []model.User
	if err := query.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		log.Error("获取用户列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"users": users,
		"total": total,
	})
}

// AssignUserReq 定义调整用户角色与部门的请求结构体，使用指针类型支持部分更新
type AssignUserReq struct {
	RoleID       *int  `json:"role_id"`       // 角色：0 成员，1 经理，2 管理员
	DepartmentID *uint `json:"department_id"` // 所属部门，0 表示移出部门
}

// AssignUser 管理员调整用户的角色与部门归属
func AssignUser(c *gin.Context) {
	employeeID := c.Param("employee_id")
	if employeeID == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("工号不能为空"))
		return
	}

	var req AssignUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定调整用户请求失败", "error", err, "employee_id", employeeID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.RoleID != nil && (*req.RoleID < model.RoleMember || *req.RoleID > model.RoleAdmin) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("角色取值非法"))
		return
	}

	var user model.User
	err := database.DB.Where("employee_id = ?", employeeID).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "employee_id", employeeID)
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "employee_id", employeeID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.DepartmentID != nil {
		// 部门存在性校验，0 表示移出部门
		if *req.DepartmentID != 0 {
			var dept model.Department
			err := database.DB.First(&dept, *req.DepartmentID).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				response.Fail(c, response.ErrNotFound.WithTips("部门不存在"))
				return
			case err != nil:
				response.Fail(c, response.ErrDatabase.WithOrigin(err))
				return
			}
		}
		user.DepartmentID = *req.DepartmentID
	}

	if err := database.DB.Save(&user).Error; err != nil {
		log.Error("更新用户失败", "error", err, "employee_id", employeeID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户信息调整成功",
		"employee_id", user.EmployeeID,
		"role_id", user.RoleID,
		"department_id", user.DepartmentID)

	response.Success(c)
}
