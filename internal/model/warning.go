package model

// 警告类型
const (
	WarningLateSubmission = "late_submission"
	WarningQualityIssue   = "quality_issue"
	WarningMissedDeadline = "missed_deadline"
	WarningOther          = "other"
)

// 警告严重程度
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Warning 违规警告，追加即不可变，用于审计和绩效核算
// 管理员可警告经理和成员，经理只能警告本部门成员
type Warning struct {
	Model
	ProjectID        uint    `gorm:"index;not null" json:"project_id"`
	DepartmentTaskID *uint   `gorm:"index" json:"department_task_id"`
	WarnedUserID     string  `gorm:"type:varchar(20);index;not null" json:"warned_user_id"`
	WarningType      string  `gorm:"type:varchar(20);not null" json:"warning_type"`
	Severity         string  `gorm:"type:varchar(10);not null" json:"severity"`
	Reason           string  `gorm:"type:varchar(500);not null" json:"reason"`
	PenaltyAmount    float64 `gorm:"default:0" json:"penalty_amount"` // 扣款金额，0 表示无罚金
	IssuedBy         string  `gorm:"type:varchar(20);not null" json:"issued_by"`
}
