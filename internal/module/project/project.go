package project

import (
	"company-oa-system/internal/global/database"
	"company-oa-system/internal/global/jwt"
	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"
	"company-oa-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ProjectCreateReq 定义创建项目请求的结构体
type ProjectCreateReq struct {
	Name        string `json:"name" binding:"required"`       // 项目名称
	Description string `json:"description"`                   // 项目描述
	StartDate   int64  `json:"start_date" binding:"required"` // 项目开始时间（毫秒）
	EndDate     int64  `json:"end_date" binding:"required"`   // 项目结束时间（毫秒）
}

// CreateProject 处理创建项目请求
func CreateProject(c *gin.Context) {
	// 获取认证信息
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	// 定义请求结构体并绑定 JSON 数据
	var req ProjectCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建项目请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.EndDate < req.StartDate {
		response.Fail(c, response.ErrInvalidRequest.WithTips("结束时间不能早于开始时间"))
		return
	}

	// 查询项目是否已存在
	var existing model.Project
	err := database.DB.Where("name = ? AND start_date = ?", req.Name, req.StartDate).First(&existing).Error
	if err == nil {
		log.Warn("项目已存在", "name", req.Name, "start_date", req.StartDate)
		response.Fail(c, response.ErrAlreadyExists.WithTips("项目已存在"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("数据库查询失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	project := model.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      model.ProjectActive,
		OwnerID:     userPayload.EmployeeID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := database.DB.Create(&project).Error; err != nil {
		log.Error("创建项目失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("项目创建成功",
		"name", project.Name,
		"owner_id", project.OwnerID)

	response.Success(c, gin.H{
		"project_id": project.ID,
	})
}

// ProjectUpdateReq 定义更新项目请求的结构体，使用指针类型支持部分更新
type ProjectUpdateReq struct {
	Name        *string `json:"name"`        // 项目名称，可选
	Description *string `json:"description"` // 项目描述，可选
	StartDate   *int64  `json:"start_date"`  // 项目开始时间，可选
	EndDate     *int64  `json:"end_date"`    // 项目结束时间，可选
}

// UpdateProject 处理更新项目请求，已归档项目不可修改
func UpdateProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("项目ID不能为空"))
		return
	}

	var req ProjectUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新项目请求失败", "error", err, "id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var project model.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("项目不存在", "id", id)
			response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
			return
		}
		log.Error("查询项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if project.Status == model.ProjectArchived {
		response.Fail(c, response.ErrPreconditionFailed.WithTips("项目已归档，不可修改"))
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = *req.EndDate
	}

	if err := database.DB.Save(&project).Error; err != nil {
		log.Error("更新项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("项目更新成功", "id", project.ID, "name", project.Name)
	response.Success(c)
}

// ArchiveProject 归档项目
// 软操作：其下任务保持原状态，只是不再接受新任务
func ArchiveProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("项目ID不能为空"))
		return
	}

	var project model.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("项目不存在", "id", id)
			response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
			return
		}
		log.Error("查询项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if project.Status == model.ProjectArchived {
		response.Fail(c, response.ErrAlreadyExists.WithTips("项目已归档"))
		return
	}

	project.Status = model.ProjectArchived
	if err := database.DB.Save(&project).Error; err != nil {
		log.Error("归档项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("项目归档成功", "id", project.ID, "name", project.Name)
	response.Success(c)
}

// RestoreProject 恢复已归档的项目
func RestoreProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("项目ID不能为空"))
		return
	}

	var project model.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("项目不存在", "id", id)
			response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
			return
		}
		log.Error("查询项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if project.Status != model.ProjectArchived {
		response.Fail(c, response.ErrPreconditionFailed.WithTips("项目未归档"))
		return
	}

	project.Status = model.ProjectActive
	if err := database.DB.Save(&project).Error; err != nil {
		log.Error("恢复项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("项目恢复成功", "id", project.ID, "name", project.Name)
	response.Success(c)
}

// ListProjectsReq 定义获取项目列表的查询参数结构体
type ListProjectsReq struct {
	OwnerID string `form:"owner_id"` // 创建人工号筛选
	Status  string `form:"status"`   // 状态筛选：active / archived
	Name    string `form:"name"`     // 项目名称模糊查询
}

// ListProjects 获取项目列表（支持查询参数）
func ListProjects(c *gin.Context) {
	var req ListProjectsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	query := database.DB.Model(&model.Project{})
	if req.OwnerID != "" {
		query = query.Where("owner_id = ?", req.OwnerID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取项目总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	offset, limit := tools.GetPage(c)
	var projects []model.Project
	if err := query.Offset(offset).Limit(limit).Find(&projects).Error; err != nil {
		log.Error("获取项目列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"projects": projects,
		"total":    total,
	})
}

// GetProject 获取单个项目详情及其部门任务摘要
func GetProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("项目ID不能为空"))
		return
	}

	var project model.Project
	if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("项目不存在", "id", id)
			response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
			return
		}
		log.Error("查询项目失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var tasks []model.DepartmentTask
	if err := database.DB.Where("project_id = ?", project.ID).Find(&tasks).Error; err != nil {
		log.Error("查询项目任务失败", "error", err, "project_id", project.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"project": project,
		"tasks":   tasks,
	})
}
