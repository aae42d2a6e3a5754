package stats

import (
	"company-oa-system/internal/global/database"
	"company-oa-system/internal/model"
)

// statusCount 某状态下的任务数
type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// projectOverview 项目进度面板
type projectOverview struct {
	ProjectID     uint          `json:"project_id"`
	TaskTotal     int64         `json:"task_total"`
	StatusCounts  []statusCount `json:"status_counts"`
	AvgProgress   float64       `json:"avg_progress"`
	TotalHours    float64       `json:"total_hours"`
	WarningCount  int64         `json:"warning_count"`
	TotalPenalty  float64       `json:"total_penalty"`
	OverdueActive int64         `json:"overdue_active"` // 已过截止仍未结束的任务数
}

func selectProjectOverview(projectID uint, nowMs int64) (*projectOverview, error) {
	o := projectOverview{ProjectID: projectID}

	wrapper := database.DB.Model(&model.DepartmentTask{}).Where("project_id = ?", projectID)
	if err := wrapper.Count(&o.TaskTotal).Error; err != nil {
		return nil, err
	}

	if err := database.DB.Model(&model.DepartmentTask{}).
		Select("status, COUNT(*) as count").
		Where("project_id = ?", projectID).
		Group("status").
		Scan(&o.StatusCounts).Error; err != nil {
		return nil, err
	}

	// 已取消的任务不计入进度与工时
	if err := database.DB.Model(&model.DepartmentTask{}).
		Select("COALESCE(AVG(progress), 0) as avg_progress, COALESCE(SUM(actual_hours), 0) as total_hours").
		Where("project_id = ? AND status != ?", projectID, model.DeptTaskCancelled).
		Row().Scan(&o.AvgProgress, &o.TotalHours); err != nil {
		return nil, err
	}

	if err := database.DB.Model(&model.DepartmentTask{}).
		Where("project_id = ? AND deadline > 0 AND deadline < ? AND status NOT IN ?",
			projectID, nowMs,
			[]model.DeptTaskStatus{model.DeptTaskApproved, model.DeptTaskCancelled}).
		Count(&o.OverdueActive).Error; err != nil {
		return nil, err
	}

	if err := database.DB.Model(&model.Warning{}).
		Select("COUNT(*) as warning_count, COALESCE(SUM(penalty_amount), 0) as total_penalty").
		Where("project_id = ?", projectID).
		Row().Scan(&o.WarningCount, &o.TotalPenalty); err != nil {
		return nil, err
	}

	return &o, nil
}

// memberWorkload 部门成员工作量行
type memberWorkload struct {
	EmployeeID  string  `gorm:"column:employee_id" json:"employee_id" excel:"工号"`
	NickName    string  `gorm:"column:nick_name" json:"nick_name" excel:"姓名"`
	TaskTotal   int64   `gorm:"column:task_total" json:"task_total" excel:"任务数"`
	Approved    int64   `gorm:"column:approved" json:"approved" excel:"已通过"`
	Active      int64   `gorm:"column:active" json:"active" excel:"进行中"`
	AvgProgress float64 `gorm:"column:avg_progress" json:"avg_progress" excel:"平均进度"`
	TotalHours  float64 `gorm:"column:total_hours" json:"total_hours" excel:"总工时"`
}

func selectDepartmentWorkload(departmentID uint) ([]memberWorkload, error) {
	var rows []memberWorkload
	err := database.DB.Table("user u").
		Select(`
            u.employee_id,
            u.nick_name,
            COUNT(mt.id) as task_total,
            COALESCE(SUM(CASE WHEN mt.status = 'approved' THEN 1 ELSE 0 END), 0) as approved,
            COALESCE(SUM(CASE WHEN mt.status IN ('started', 'in_progress', 'submitted') THEN 1 ELSE 0 END), 0) as active,
            COALESCE(AVG(CASE WHEN mt.status != 'cancelled' THEN mt.progress END), 0) as avg_progress,
            COALESCE(SUM(CASE WHEN mt.status != 'cancelled' THEN mt.actual_hours ELSE 0 END), 0) as total_hours
        `).
		Joins("LEFT JOIN member_task mt ON mt.assigned_user_id = u.employee_id AND mt.deleted_at IS NULL").
		Where("u.department_id = ? AND u.deleted_at IS NULL", departmentID).
		Group("u.employee_id, u.nick_name").
		Order("total_hours DESC").
		Scan(&rows).Error
	if err != nil {
		log.Error("数据库 查询部门工作量失败", "error", err.Error())
		return nil, err
	}
	return rows, nil
}
