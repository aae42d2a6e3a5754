package warning

import (
	"fmt"
	"time"

	"company-oa-system/internal/global/database"
	"company-oa-system/internal/global/jwt"
	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"
	"company-oa-system/internal/workflow"
	"company-oa-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// WarningCreateReq 定义人工记警告请求的结构体
type WarningCreateReq struct {
	ProjectID        uint    `json:"project_id" binding:"required"`     // 关联项目
	DepartmentTaskID *uint   `json:"department_task_id"`                // 关联部门任务，可选
	WarnedUserID     string  `json:"warned_user_id" binding:"required"` // 被警告人工号
	WarningType      string  `json:"warning_type" binding:"required"`   // late_submission / quality_issue / missed_deadline / other
	Severity         string  `json:"severity" binding:"required"`       // low / medium / high
	Reason           string  `json:"reason" binding:"required"`         // 警告原因
	PenaltyAmount    float64 `json:"penalty_amount"`                    // 扣款金额，可为 0
}

// CreateWarning 人工记警告
// 管理员可警告经理和成员，经理只能警告本部门成员
func CreateWarning(c *gin.Context) {
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req WarningCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定记警告请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	warning, failure := engine.CreateWarning(c.Request.Context(),
		workflow.ActorFromClaims(userPayload), workflow.CreateWarningParams{
			ProjectID:        req.ProjectID,
			DepartmentTaskID: req.DepartmentTaskID,
			WarnedUserID:     req.WarnedUserID,
			WarningType:      req.WarningType,
			Severity:         req.Severity,
			Reason:           req.Reason,
			PenaltyAmount:    req.PenaltyAmount,
		})
	if failure != nil {
		response.Fail(c, failure)
		return
	}

	response.Success(c, gin.H{
		"warning_id": warning.ID,
	})
}

// ListWarningsReq 定义警告列表的查询参数结构体
type ListWarningsReq struct {
	ProjectID    *uint  `form:"project_id"`     // 按项目筛选
	WarnedUserID string `form:"warned_user_id"` // 按被警告人筛选
	WarningType  string `form:"warning_type"`   // 按类型筛选
	Severity     string `form:"severity"`       // 按严重程度筛选
	IssuedBy     string `form:"issued_by"`      // 按签发人筛选，system 表示自动警告
}

func buildWarningQuery(req ListWarningsReq) *gorm.DB {
	query := database.DB.Model(&model.Warning{})
	if req.ProjectID != nil {
		query = query.Where("project_id = ?", *req.ProjectID)
	}
	if req.WarnedUserID != "" {
		query = query.Where("warned_user_id = ?", req.WarnedUserID)
	}
	if req.WarningType != "" {
		query = query.Where("warning_type = ?", req.WarningType)
	}
	if req.Severity != "" {
		query = query.Where("severity = ?", req.Severity)
	}
	if req.IssuedBy != "" {
		query = query.Where("issued_by = ?", req.IssuedBy)
	}
	return query
}

// ListWarnings 获取警告列表
// 普通成员只能看到自己的警告，经理及以上可按条件查询
func ListWarnings(c *gin.Context) {
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ListWarningsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if userPayload.RoleID < model.RoleManager {
		req.WarnedUserID = userPayload.EmployeeID
	}

	query := buildWarningQuery(req)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取警告总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	offset, limit := tools.GetPage(c)
	var warnings []model.Warning
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&warnings).Error; err != nil {
		log.Error("获取警告列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"warnings": warnings,
		"total":    total,
	})
}

// warningRow excel 导出行
type warningRow struct {
	ID            uint    `excel:"警告ID"`
	ProjectID     uint    `excel:"项目ID"`
	WarnedUserID  string  `excel:"被警告人"`
	WarningType   string  `excel:"类型"`
	Severity      string  `excel:"严重程度"`
	Reason        string  `excel:"原因"`
	PenaltyAmount float64 `excel:"扣款金额"`
	IssuedBy      string  `excel:"签发人"`
	CreatedAt     string  `excel:"签发时间"`
}

// ExportWarnings 按筛选条件导出警告为 excel
func ExportWarnings(c *gin.Context) {
	var req ListWarningsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var warnings []model.Warning
	if err := buildWarningQuery(req).Order("id ASC").Find(&warnings).Error; err != nil {
		log.Error("查询警告失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rows := make([]warningRow, 0, len(warnings))
	for _, w := range warnings {
		rows = append(rows, warningRow{
			ID:            w.ID,
			ProjectID:     w.ProjectID,
			WarnedUserID:  w.WarnedUserID,
			WarningType:   w.WarningType,
			Severity:      w.Severity,
			Reason:        w.Reason,
			PenaltyAmount: w.PenaltyAmount,
			IssuedBy:      w.IssuedBy,
			CreatedAt:     w.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := tools.ExportToExcel(f, "", rows); err != nil {
		log.Error("导出 excel 错误", "error", err)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	filename := fmt.Sprintf("warnings_%d.xlsx", time.Now().UnixMilli())
	c.Header("Content-Type", tools.ExcelContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Cache-Control", "must-revalidate")
	_ = f.Write(c.Writer)
}
