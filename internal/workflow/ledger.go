package workflow

import (
	"context"

	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var reportTypes = map[string]bool{
	model.ReportTypeDaily:     true,
	model.ReportTypeWeekly:    true,
	model.ReportTypeMilestone: true,
	model.ReportTypeIssue:     true,
}

var warningTypes = map[string]bool{
	model.WarningLateSubmission: true,
	model.WarningQualityIssue:   true,
	model.WarningMissedDeadline: true,
	model.WarningOther:          true,
}

var severities = map[string]bool{
	model.SeverityLow:    true,
	model.SeverityMedium: true,
	model.SeverityHigh:   true,
}

// CreateReportParams 进度报告，部门任务和成员任务二选一
type CreateReportParams struct {
	DepartmentTaskID *uint
	MemberTaskID     *uint
	ReportType       string
	Title            string
	Content          string
	Issues           string
	Attachment       string // 附件访问 URL，对象存储直传后回填
}

// CreateReport 追加一条进度报告
// 部门任务报告只能由该部门经理写，成员任务报告只能由执行成员写
// 进度快照取任务当前值，落库后不可修改
func (e *Engine) CreateReport(ctx context.Context, actor Actor, p CreateReportParams) (*model.ProgressReport, *response.Error) {
	if !reportTypes[p.ReportType] {
		return nil, response.ErrInvalidRequest.WithTips("未知的报告类型")
	}
	if (p.DepartmentTaskID == nil) == (p.MemberTaskID == nil) {
		return nil, response.ErrInvalidRequest.WithTips("必须且只能关联一个任务")
	}

	var report *model.ProgressReport
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		report = &model.ProgressReport{
			DepartmentTaskID: p.DepartmentTaskID,
			MemberTaskID:     p.MemberTaskID,
			ReportType:       p.ReportType,
			Title:            p.Title,
			Content:          p.Content,
			Issues:           p.Issues,
			Attachment:       p.Attachment,
			CreatedBy:        actor.EmployeeID,
		}

		if p.DepartmentTaskID != nil {
			var task model.DepartmentTask
			err := tx.First(&task, *p.DepartmentTaskID).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				failure = response.ErrNotFound.WithTips("部门任务不存在")
				return failure
			case err != nil:
				failure = response.ErrDatabase.WithOrigin(err)
				return failure
			}
			if failure = requireDeptManager(tx, actor, task.DepartmentID); failure != nil {
				return failure
			}
			report.ProjectID = task.ProjectID
			report.Progress = task.Progress
		} else {
			var task model.MemberTask
			err := tx.First(&task, *p.MemberTaskID).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				failure = response.ErrNotFound.WithTips("成员任务不存在")
				return failure
			case err != nil:
				failure = response.ErrDatabase.WithOrigin(err)
				return failure
			}
			if actor.EmployeeID != task.AssignedUserID {
				failure = response.ErrForbidden.WithTips("只有任务执行人可以写报告")
				return failure
			}
			var parent model.DepartmentTask
			if err := tx.First(&parent, task.DepartmentTaskID).Error; err != nil {
				failure = response.ErrDatabase.WithOrigin(err)
				return failure
			}
			report.ProjectID = parent.ProjectID
			report.Progress = task.Progress
		}

		if err := tx.Create(report).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}
		return nil
	})
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	log.Info("进度报告提交", "report_id", report.ID, "report_type", report.ReportType, "created_by", actor.EmployeeID)
	return report, nil
}

// CreateWarningParams 人工警告
type CreateWarningParams struct {
	ProjectID        uint
	DepartmentTaskID *uint
	WarnedUserID     string
	WarningType      string
	Severity         string
	Reason           string
	PenaltyAmount    float64
}

// CreateWarning 追加一条警告，不可更新或删除
// 管理员可警告经理和成员，经理只能警告本部门成员
func (e *Engine) CreateWarning(ctx context.Context, actor Actor, p CreateWarningParams) (*model.Warning, *response.Error) {
	if !warningTypes[p.WarningType] {
		return nil, response.ErrInvalidRequest.WithTips("未知的警告类型")
	}
	if !severities[p.Severity] {
		return nil, response.ErrInvalidRequest.WithTips("未知的严重程度")
	}
	if p.Reason == "" {
		return nil, response.ErrInvalidRequest.WithTips("警告原因不能为空")
	}
	if p.PenaltyAmount < 0 {
		return nil, response.ErrInvalidRequest.WithTips("扣款金额不能为负数")
	}

	var warning *model.Warning
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var warned model.User
		err := tx.Where("employee_id = ?", p.WarnedUserID).First(&warned).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			failure = response.ErrNotFound.WithTips("被警告用户不存在")
			return failure
		case err != nil:
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		switch {
		case actor.RoleID >= model.RoleAdmin:
			if warned.RoleID >= model.RoleAdmin {
				failure = response.ErrForbidden.WithTips("不能警告管理员")
				return failure
			}
		case actor.RoleID == model.RoleManager:
			if warned.RoleID != model.RoleMember {
				failure = response.ErrForbidden.WithTips("经理只能警告普通成员")
				return failure
			}
			if failure = requireDeptManager(tx, actor, warned.DepartmentID); failure != nil {
				return failure
			}
		default:
			failure = response.ErrForbidden
			return failure
		}

		warning = &model.Warning{
			ProjectID:        p.ProjectID,
			DepartmentTaskID: p.DepartmentTaskID,
			WarnedUserID:     p.WarnedUserID,
			WarningType:      p.WarningType,
			Severity:         p.Severity,
			Reason:           p.Reason,
			PenaltyAmount:    p.PenaltyAmount,
			IssuedBy:         actor.EmployeeID,
		}
		if err := tx.Create(warning).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}
		return nil
	})
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	log.Info("警告记录",
		"warning_id", warning.ID,
		"warned_user_id", warning.WarnedUserID,
		"severity", warning.Severity,
		"issued_by", actor.EmployeeID)
	return warning, nil
}
