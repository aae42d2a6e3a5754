package report

import (
	"fmt"
	"strconv"
	"time"

	"company-oa-system/internal/global/attachment"
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

// ReportCreateReq 定义提交进度报告请求的结构体
// department_task_id 与 member_task_id 二选一
type ReportCreateReq struct {
	DepartmentTaskID *uint  `json:"department_task_id"`           // 部门任务报告填此项
	MemberTaskID     *uint  `json:"member_task_id"`               // 成员任务报告填此项
	ReportType       string `json:"report_type" binding:"required"` // daily / weekly / milestone / issue
	Title            string `json:"title" binding:"required"`       // 报告标题
	Content          string `json:"content" binding:"required"`     // 报告正文
	Issues           string `json:"issues"`                         // 风险与问题
	Attachment       string `json:"attachment"`                     // 附件访问 URL
}

// CreateReport 提交进度报告
func CreateReport(c *gin.Context) {
	userPayload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ReportCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定提交报告请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	report, failure := engine.CreateReport(c.Request.Context(),
		workflow.ActorFromClaims(userPayload), workflow.CreateReportParams{
			DepartmentTaskID: req.DepartmentTaskID,
			MemberTaskID:     req.MemberTaskID,
			ReportType:       req.ReportType,
			Title:            req.Title,
			Content:          req.Content,
			Issues:           req.Issues,
			Attachment:       req.Attachment,
		})
	if failure != nil {
		response.Fail(c, failure)
		return
	}

	response.Success(c, gin.H{
		"report_id": report.ID,
	})
}

// ListReportsReq 定义报告列表的查询参数结构体
type ListReportsReq struct {
	ProjectID        *uint  `form:"project_id"`         // 按项目筛选
	DepartmentTaskID *uint  `form:"department_task_id"` // 按部门任务筛选
	MemberTaskID     *uint  `form:"member_task_id"`     // 按成员任务筛选
	ReportType       string `form:"report_type"`        // 按类型筛选
	CreatedBy        string `form:"created_by"`         // 按撰写人筛选
}

func buildReportQuery(req ListReportsReq) *gorm.DB {
	query := database.DB.Model(&model.ProgressReport{})
	if req.ProjectID != nil {
		query = query.Where("project_id = ?", *req.ProjectID)
	}
	if req.DepartmentTaskID != nil {
		query = query.Where("department_task_id = ?", *req.DepartmentTaskID)
	}
	if req.MemberTaskID != nil {
		query = query.Where("member_task_id = ?", *req.MemberTaskID)
	}
	if req.ReportType != "" {
		query = query.Where("report_type = ?", req.ReportType)
	}
	if req.CreatedBy != "" {
		query = query.Where("created_by = ?", req.CreatedBy)
	}
	return query
}

// ListReports 获取报告列表
func ListReports(c *gin.Context) {
	var req ListReportsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	query := buildReportQuery(req)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取报告总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	offset, limit := tools.GetPage(c)
	var reports []model.ProgressReport
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&reports).Error; err != nil {
		log.Error("获取报告列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"reports": reports,
		"total":   total,
	})
}

// GetReport 获取单条报告
func GetReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("报告ID非法"))
		return
	}

	var report model.ProgressReport
	if err := database.DB.First(&report, id).Error; err != nil {
		response.Fail(c, response.ErrNotFound.WithTips("报告不存在"))
		return
	}
	response.Success(c, report)
}

// GetUploadURL 为报告附件签发 S3 预签名上传 URL
func GetUploadURL(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("文件名不能为空"))
		return
	}

	result, err := attachment.Default().GeneratePresignedUploadURL(c.Request.Context(),
		attachment.PresignedUploadRequest{
			Filename:    filename,
			ContentType: c.Query("content_type"),
		})
	if err != nil {
		log.Error("生成预签名上传 URL 失败", "error", err, "filename", filename)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	response.Success(c, result)
}

// reportRow excel 导出行
type reportRow struct {
	ID         uint   `excel:"报告ID"`
	ProjectID  uint   `excel:"项目ID"`
	ReportType string `excel:"类型"`
	Title      string `excel:"标题"`
	Progress   int    `excel:"进度"`
	Issues     string `excel:"风险与问题"`
	CreatedBy  string `excel:"撰写人"`
	CreatedAt  string `excel:"提交时间"`
}

// ExportReports 按筛选条件导出报告为 excel
func ExportReports(c *gin.Context) {
	var req ListReportsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var reports []model.ProgressReport
	if err := buildReportQuery(req).Order("id ASC").Find(&reports).Error; err != nil {
		log.Error("查询报告失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rows := make([]reportRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, reportRow{
			ID:         r.ID,
			ProjectID:  r.ProjectID,
			ReportType: r.ReportType,
			Title:      r.Title,
			Progress:   r.Progress,
			Issues:     r.Issues,
			CreatedBy:  r.CreatedBy,
			CreatedAt:  r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := tools.ExportToExcel(f, "", rows); err != nil {
		log.Error("导出 excel 错误", "error", err)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	filename := fmt.Sprintf("reports_%d.xlsx", time.Now().UnixMilli())
	c.Header("Content-Type", tools.ExcelContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Cache-Control", "must-revalidate")
	_ = f.Write(c.Writer)
}
