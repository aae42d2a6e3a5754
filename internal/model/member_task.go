package model

import "time"

type MemberTaskStatus string

// 成员任务状态机：assigned → started → in_progress → submitted → approved
// submitted 可被经理驳回回到 started；非终态可随父任务取消
const (
	MemberTaskAssigned   MemberTaskStatus = "assigned"
	MemberTaskStarted    MemberTaskStatus = "started"
	MemberTaskInProgress MemberTaskStatus = "in_progress"
	MemberTaskSubmitted  MemberTaskStatus = "submitted"
	MemberTaskApproved   MemberTaskStatus = "approved"
	MemberTaskCancelled  MemberTaskStatus = "cancelled"
)

func (s MemberTaskStatus) Terminal() bool {
	return s == MemberTaskApproved || s == MemberTaskCancelled
}

// ProgressMutable 进度和工时仅在 started / in_progress 状态下可修改
func (s MemberTaskStatus) ProgressMutable() bool {
	return s == MemberTaskStarted || s == MemberTaskInProgress
}

// MemberTask 经理下发给本部门成员的工作项，必属于一个部门任务
type MemberTask struct {
	Model
	DepartmentTaskID uint             `gorm:"index;not null" json:"department_task_id"`
	AssignedUserID   string           `gorm:"type:varchar(20);index;not null" json:"assigned_user_id"` // 执行成员工号
	Title            string           `gorm:"type:varchar(100);not null" json:"title"`
	Description      string           `gorm:"type:varchar(1000);" json:"description"`
	Priority         int              `gorm:"default:1" json:"priority"`
	Deadline         int64            `gorm:"" json:"deadline"`
	EstimatedHours   float64          `gorm:"default:0" json:"estimated_hours"`
	ActualHours      float64          `gorm:"default:0" json:"actual_hours"`
	Progress         int              `gorm:"default:0" json:"progress"` // 0-100，允许向下修正
	Status           MemberTaskStatus `gorm:"type:varchar(20);default:'assigned';index" json:"status"`
	CreatedBy        string           `gorm:"type:varchar(20);not null" json:"created_by"` // 下发任务的经理工号
	SubmitNote       string           `gorm:"type:varchar(500);" json:"submit_note"`
	ReviewNote       string           `gorm:"type:varchar(500);" json:"review_note"`
	StartedAt        *time.Time       `json:"started_at"`
	SubmittedAt      *time.Time       `json:"submitted_at"`
	ApprovedAt       *time.Time       `json:"approved_at"`
}
