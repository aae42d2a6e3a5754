package model

import "time"

type DeptTaskStatus string

// 部门任务状态机：assigned → accepted → in_progress → submitted → approved
// submitted 可被驳回回到 in_progress；非终态可被管理员取消
const (
	DeptTaskAssigned   DeptTaskStatus = "assigned"
	DeptTaskAccepted   DeptTaskStatus = "accepted"
	DeptTaskInProgress DeptTaskStatus = "in_progress"
	DeptTaskSubmitted  DeptTaskStatus = "submitted"
	DeptTaskApproved   DeptTaskStatus = "approved"
	DeptTaskCancelled  DeptTaskStatus = "cancelled"
)

// Terminal 是否终态，终态后任何状态或进度变更都不再接受
func (s DeptTaskStatus) Terminal() bool {
	return s == DeptTaskApproved || s == DeptTaskCancelled
}

// ProgressMutable 进度和工时仅在 accepted / in_progress 状态下可修改
func (s DeptTaskStatus) ProgressMutable() bool {
	return s == DeptTaskAccepted || s == DeptTaskInProgress
}

// 任务优先级
const (
	PriorityLow    = 0
	PriorityNormal = 1
	PriorityHigh   = 2
	PriorityUrgent = 3
)

// DepartmentTask 管理员下发给部门的工作项，由部门经理认领、跟进和提交
type DepartmentTask struct {
	Model
	ProjectID      uint           `gorm:"index;not null" json:"project_id"`
	DepartmentID   uint           `gorm:"index;not null" json:"department_id"`
	Title          string         `gorm:"type:varchar(100);not null" json:"title"`
	Description    string         `gorm:"type:varchar(1000);" json:"description"`
	Priority       int            `gorm:"default:1" json:"priority"`
	Deadline       int64          `gorm:"" json:"deadline"`                     // 截止时间（毫秒）
	EstimatedHours float64        `gorm:"default:0" json:"estimated_hours"`     //
	ActualHours    float64        `gorm:"default:0" json:"actual_hours"`        // 未显式填写时由子任务工时汇总
	Progress       int            `gorm:"default:0" json:"progress"`            // 0-100
	HoursManual    bool           `gorm:"default:false" json:"hours_manual"`    // 经理是否手工填写过工时（汇总时不覆盖）
	Status         DeptTaskStatus `gorm:"type:varchar(20);default:'assigned';index" json:"status"`
	CreatedBy      string         `gorm:"type:varchar(20);not null" json:"created_by"`  // 下发任务的管理员工号
	AcceptedBy     string         `gorm:"type:varchar(20);default:''" json:"accepted_by"` // 认领任务的经理工号，认领前为空
	SubmitNote     string         `gorm:"type:varchar(500);" json:"submit_note"`
	ReviewNote     string         `gorm:"type:varchar(500);" json:"review_note"` // 审批/驳回意见
	SubmittedAt    *time.Time     `json:"submitted_at"`
	ApprovedAt     *time.Time     `json:"approved_at"`
}
