package department

import (
	"company-oa-system/internal/global/database"
	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"
	"company-oa-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// DepartmentCreateReq 定义创建部门请求的结构体
type DepartmentCreateReq struct {
	Name        string `json:"name" binding:"required"` // 部门名称
	Description string `json:"description"`             // 部门描述
}

// CreateDepartment 处理创建部门请求
func CreateDepartment(c *gin.Context) {
	// 定义请求结构体并绑定 JSON 数据
	var req DepartmentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建部门请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 查询部门是否已存在
	var existing model.Department
	err := database.DB.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		log.Warn("部门已存在", "name", req.Name)
		response.Fail(c, response.ErrAlreadyExists.WithTips("部门已存在"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("数据库查询失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	dept := model.Department{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := database.DB.Create(&dept).Error; err != nil {
		log.Error("创建部门失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("部门创建成功", "name", dept.Name, "id", dept.ID)

	response.Success(c, gin.H{
		"department_id": dept.ID,
	})
}

// DepartmentUpdateReq 定义更新部门请求的结构体，使用指针类型支持部分更新
type DepartmentUpdateReq struct {
	Name        *string `json:"name"`        // 部门名称，可选
	Description *string `json:"description"` // 部门描述，可选
}

// UpdateDepartment 处理更新部门请求
func UpdateDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("部门ID不能为空"))
		return
	}

	var req DepartmentUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新部门请求失败", "error", err, "id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var dept model.Department
	if err := database.DB.First(&dept, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("部门不存在", "id", id)
			response.Fail(c, response.ErrNotFound.WithTips("部门不存在"))
			return
		}
		log.Error("查询部门失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}

	if err := database.DB.Save(&dept).Error; err != nil {
		log.Error("更新部门失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("部门更新成功", "id", dept.ID, "name", dept.Name)
	response.Success(c)
}

// SetManagerReq 定义指定部门经理请求的结构体
type SetManagerReq struct {
	ManagerID string `json:"manager_id" binding:"required"` // 经理工号
}

// SetManager 指定部门经理
// 被指定的用户会被提升为经理角色并划入该部门
func SetManager(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("部门ID不能为空"))
		return
	}

	var req SetManagerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定指定经理请求失败", "error", err, "id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var dept model.Department
	if err := database.DB.First(&dept, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("部门不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var manager model.User
	err := database.DB.Where("employee_id = ?", req.ManagerID).First(&manager).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 同一事务内更新部门与用户，保持经理关系一致
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		dept.ManagerID = manager.EmployeeID
		if err := tx.Save(&dept).Error; err != nil {
			return err
		}
		manager.DepartmentID = dept.ID
		if manager.RoleID < model.RoleManager {
			manager.RoleID = model.RoleManager
		}
		return tx.Save(&manager).Error
	})
	if err != nil {
		log.Error("指定部门经理失败", "error", err, "id", id, "manager_id", req.ManagerID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("部门经理指定成功",
		"department_id", dept.ID,
		"manager_id", manager.EmployeeID)
	response.Success(c)
}

// ListDepartments 获取部门列表
func ListDepartments(c *gin.Context) {
	query := database.DB.Model(&model.Department{})
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取部门总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	offset, limit := tools.GetPage(c)
	var depts []model.Department
	if err := query.Offset(offset).Limit(limit).Find(&depts).Error; err != nil {
		log.Error("获取部门列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"departments": depts,
		"total":       total,
	})
}

// MemberInDepartment 部门成员摘要
type MemberInDepartment struct {
	EmployeeID string `json:"employee_id"`
	NickName   string `json:"nick_name"`
	RoleID     int    `json:"role_id"`
}

// GetDepartment 获取单个部门详情及其成员
func GetDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("部门ID不能为空"))
		return
	}

	var dept model.Department
	if err := database.DB.First(&dept, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("部门不存在", "id", id)
			response.Fail(c, response.ErrNotFound.WithTips("部门不存在"))
			return
		}
		log.Error("查询部门失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var members []MemberInDepartment
	if err := database.DB.Model(&model.User{}).
		Select("employee_id, nick_name, role_id").
		Where("department_id = ?", dept.ID).
		Find(&members).Error; err != nil {
		log.Error("查询部门成员失败", "error", err, "department_id", dept.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"department": dept,
		"members":    members,
	})
}
