package depttask

import (
	"strconv"

	"company-oa-system/internal/global/database"
	"company-oa-system/internal/global/jwt"
	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"
	"company-oa-system/internal/workflow"
	"company-oa-system/tools"

	"github.com/gin-gonic/gin"
)

// getActor 从登录态取操作者，失败时已写入响应
func getActor(c *gin.Context) (workflow.Actor, bool) {
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return workflow.Actor{}, false
	}
	return workflow.ActorFromClaims(userPayload), true
}

// getTaskID 从路径参数取任务 ID，失败时已写入响应
func getTaskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("任务ID非法"))
		return 0, false
	}
	return uint(id), true
}

// DeptTaskCreateReq 定义下发部门任务请求的结构体
type DeptTaskCreateReq struct {
	ProjectID      uint    `json:"project_id" binding:"required"`    // 所属项目
	DepartmentID   uint    `json:"department_id" binding:"required"` // 承接部门
	Title          string  `json:"title" binding:"required"`         // 任务标题
	Description    string  `json:"description"`                      // 任务描述
	Priority       int     `json:"priority"`                         // 优先级：0 低 1 普通 2 高 3 紧急
	Deadline       int64   `json:"deadline"`                         // 截止时间（毫秒）
	EstimatedHours float64 `json:"estimated_hours"`                  // 预估工时
}

// CreateDeptTask 管理员下发部门任务
func CreateDeptTask(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req DeptTaskCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定下发任务请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Priority < model.PriorityLow || req.Priority > model.PriorityUrgent {
		response.Fail(c, response.ErrInvalidRequest.WithTips("优先级取值非法"))
		return
	}

	task, failure := engine.AssignDeptTask(c.Request.Context(), actor, workflow.AssignDeptTaskParams{
		ProjectID:      req.ProjectID,
		DepartmentID:   req.DepartmentID,
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		Deadline:       req.Deadline,
		EstimatedHours: req.EstimatedHours,
	})
	if failure != nil {
		response.Fail(c, failure)
		return
	}

	response.Success(c, gin.H{
		"task_id": task.ID,
	})
}

// AcceptDeptTask 部门经理认领任务
func AcceptDeptTask(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := getTaskID(c)
	if !ok {
		return
	}

	task, failure := engine.AcceptDeptTask(c.Request.Context(), actor, id)
	if failure != nil {
		response.Fail(c, failure)
		return
	}
	response.Success(c, task)
}

// DeptProgressReq 定义更新进度请求的结构体
type DeptProgressReq struct {
	Progress    int      `json:"progress" binding:"min=0,max=100"` // 0-100，允许向下修正
	ActualHours *float64 `json:"actual_hours"`                     // 实际工时，不填则由子任务汇总
}

// UpdateDeptProgress 经理更新部门任务进度与工时
func UpdateDeptProgress(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := getTaskID(c)
	if !ok {
		return
	}

	var req DeptProgressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新进度请求失败", "error", err, "task_id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	task, failure := engine.UpdateDeptProgress(c.Request.Context(), actor, id, workflow.UpdateDeptProgressParams{
		Progress:    req.Progress,
		ActualHours: req.ActualHours,
	})
	if failure != nil {
		response.Fail(c, failure)
		return
	}
	response.Success(c, task)
}

// NoteReq 携带备注的流转请求
type NoteReq struct {
	Note string `json:"note"` // 提交说明或审批意见
}

// SubmitDeptTask 经理提交任务送审
func SubmitDeptTask(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := getTaskID(c)
	if !ok {
		return
	}

	// 备注可选，空请求体也接受
	var req NoteReq
	_ = c.ShouldBindJSON(&req)

	task, failure := engine.SubmitDeptTask(c.Request.Context(), actor, id, req.Note)
	if failure != nil {
		response.Fail(c, failure)
		return
	}
	response.Success(c, task)
}

// ApproveDeptTask 管理员审批通过
func ApproveDeptTask(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := getTaskID(c)
	if !ok {
		return
	}

	// 备注可选，空请求体也接受
	var req NoteReq
	_ = c.ShouldBindJSON(&req)

	task, failure := engine.ApproveDeptTask(c.Request.Context(), actor, id, req.Note)
	if failure != nil {
		response.Fail(c, failure)
		return
	}
	response.Success(c, task)
}

// RejectDeptTask 管理员驳回，任务退回 in_progress 继续处理
func RejectDeptTask(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := getTaskID(c)
	if !ok {
		return
	}

	// 备注可选，空请求体也接受
	var req NoteReq
	_ = c.ShouldBindJSON(&req)

	task, failure := engine.RejectDeptTask(c.Request.Context(), actor, id, req.Note)
	if failure != nil {
		response.Fail(c, failure)
		return
	}
	response.Success(c, task)
}

// CancelDeptTask 管理员取消任务
func CancelDeptTask(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := getTaskID(c)
	if !ok {
		return
	}

	// 备注可选，空请求体也接受
	var req NoteReq
	_ = c.ShouldBindJSON(&req)

	task, failure := engine.CancelDeptTask(c.Request.Context(), actor, id, req.Note)
	if failure != nil {
		response.Fail(c, failure)
		return
	}
	response.Success(c, task)
}

// ListDeptTasksReq 定义任务列表的查询参数结构体
type ListDeptTasksReq struct {
	ProjectID    *uint  `form:"project_id"`    // 按项目筛选
	DepartmentID *uint  `form:"department_id"` // 按部门筛选
	Status       string `form:"status"`        // 按状态筛选
	Title        string `form:"title"`         // 标题模糊查询
}

// ListDeptTasks 获取部门任务列表
func ListDeptTasks(c *gin.Context) {
	var req ListDeptTasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	query := database.DB.Model(&model.DepartmentTask{})
	if req.ProjectID != nil {
		query = query.Where("project_id = ?", *req.ProjectID)
	}
	if req.DepartmentID != nil {
		query = query.Where("department_id = ?", *req.DepartmentID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Title != "" {
		query = query.Where("title LIKE ?", "%"+req.Title+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取任务总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	offset, limit := tools.GetPage(c)
	var tasks []model.DepartmentTask
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&tasks).Error; err != nil {
		log.Error("获取任务列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"tasks": tasks,
		"total": total,
	})
}

// GetDeptTask 获取单个部门任务详情，含子任务与流转日志
func GetDeptTask(c *gin.Context) {
	id, ok := getTaskID(c)
	if !ok {
		return
	}

	var task model.DepartmentTask
	if err := database.DB.First(&task, id).Error; err != nil {
		response.Fail(c, response.ErrNotFound.WithTips("部门任务不存在"))
		return
	}

	var children []model.MemberTask
	if err := database.DB.Where("department_task_id = ?", task.ID).Find(&children).Error; err != nil {
		log.Error("查询子任务失败", "error", err, "task_id", task.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var events []model.TaskEvent
	if err := database.DB.
		Where("task_kind = ? AND task_id = ?", model.TaskKindDepartment, task.ID).
		Order("id ASC").Find(&events).Error; err != nil {
		log.Error("查询流转日志失败", "error", err, "task_id", task.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"task":     task,
		"children": children,
		"events":   events,
	})
}
