package membertask

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

// MemberTaskCreateReq 定义拆分子任务请求的结构体
type MemberTaskCreateReq struct {
	DepartmentTaskID uint    `json:"department_task_id" binding:"required"` // 所属部门任务
	AssignedUserID   string  `json:"assigned_user_id" binding:"required"`   // 执行成员工号
	Title            string  `json:"title" binding:"required"`              // 任务标题
	Description      string  `json:"description"`                           // 任务描述
	Priority         int     `json:"priority"`                              // 优先级：0 低 1 普通 2 高 3 紧急
	Deadline         int64   `json:"deadline"`                              // 截止时间（毫秒）
	EstimatedHours   float64 `json:"estimated_hours"`                       // 预估工时
}

// CreateMemberTask 经理在已认领的部门任务下拆分子任务
func CreateMemberTask(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req MemberTaskCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定拆分子任务请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Priority < model.PriorityLow || req.Priority > model.PriorityUrgent {
		response.Fail(c, response.ErrInvalidRequest.WithTips("优先级取值非法"))
		return
	}

	task, failure := engine.AssignMemberTask(c.Request.Context(), actor, workflow.AssignMemberTaskParams{
		DepartmentTaskID: req.DepartmentTaskID,
		AssignedUserID:   req.AssignedUserID,
		Title:            req.Title,
		Description:      req.Description,
		Priority:         req.Priority,
		Deadline:         req.Deadline,
		EstimatedHours:   req.EstimatedHours,
	})
	if failure != nil {
		response.Fail(c, failure)
		return
	}

	response.Success(c, gin.H{
		"task_id": task.ID,
	})
}

// StartMemberTask 成员开工
func StartMemberTask(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := getTaskID(c)
	if !ok {
		return
	}

	task, failure := engine.StartMemberTask(c.Request.Context(), actor, id)
	if failure != nil {
		response.Fail(c, failure)
		return
	}
	response.Success(c, task)
}

// MemberProgressReq 定义更新进度请求的结构体
type MemberProgressReq struct {
	Progress    int      `json:"progress" binding:"min=0,max=100"` // 0-100，允许向下修正
	ActualHours *float64 `json:"actual_hours"`                     // 实际工时
}

// UpdateMemberProgress 成员更新进度与实际工时
func UpdateMemberProgress(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := getTaskID(c)
	if !ok {
		return
	}

	var req MemberProgressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新进度请求失败", "error", err, "task_id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	task, failure := engine.UpdateMemberProgress(c.Request.Context(), actor, id, workflow.UpdateMemberProgressParams{
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

// SubmitMemberTask 成员提交任务送审
func SubmitMemberTask(c *gin.Context) {
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

	task, failure := engine.SubmitMemberTask(c.Request.Context(), actor, id, req.Note)
	if failure != nil {
		response.Fail(c, failure)
		return
	}
	response.Success(c, task)
}

// ApproveMemberTask 经理审批通过
func ApproveMemberTask(c *gin.Context) {
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

	task, failure := engine.ApproveMemberTask(c.Request.Context(), actor, id, req.Note)
	if failure != nil {
		response.Fail(c, failure)
		return
	}
	response.Success(c, task)
}

// RejectMemberTask 经理驳回，任务退回 started 继续处理
func RejectMemberTask(c *gin.Context) {
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

	task, failure := engine.RejectMemberTask(c.Request.Context(), actor, id, req.Note)
	if failure != nil {
		response.Fail(c, failure)
		return
	}
	response.Success(c, task)
}

// ListMemberTasksReq 定义任务列表的查询参数结构体
type ListMemberTasksReq struct {
	DepartmentTaskID *uint  `form:"department_task_id"` // 按部门任务筛选
	AssignedUserID   string `form:"assigned_user_id"`   // 按执行成员筛选
	Status           string `form:"status"`             // 按状态筛选
	Mine             bool   `form:"mine"`               // 只看自己执行的任务
}

// ListMemberTasks 获取成员任务列表
func ListMemberTasks(c *gin.Context) {
	var req ListMemberTasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	query := database.DB.Model(&model.MemberTask{})
	if req.DepartmentTaskID != nil {
		query = query.Where("department_task_id = ?", *req.DepartmentTaskID)
	}
	if req.Mine {
		actor, ok := getActor(c)
		if !ok {
			return
		}
		query = query.Where("assigned_user_id = ?", actor.EmployeeID)
	} else if req.AssignedUserID != "" {
		query = query.Where("assigned_user_id = ?", req.AssignedUserID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取任务总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	offset, limit := tools.GetPage(c)
	var tasks []model.MemberTask
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

// GetMemberTask 获取单个成员任务详情，含流转日志
func GetMemberTask(c *gin.Context) {
	id, ok := getTaskID(c)
	if !ok {
		return
	}

	var task model.MemberTask
	if err := database.DB.First(&task, id).Error; err != nil {
		response.Fail(c, response.ErrNotFound.WithTips("成员任务不存在"))
		return
	}

	var events []model.TaskEvent
	if err := database.DB.
		Where("task_kind = ? AND task_id = ?", model.TaskKindMember, task.ID).
		Order("id ASC").Find(&events).Error; err != nil {
		log.Error("查询流转日志失败", "error", err, "task_id", task.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"task":   task,
		"events": events,
	})
}
