package model

// 报告类型
const (
	ReportTypeDaily     = "daily"
	ReportTypeWeekly    = "weekly"
	ReportTypeMilestone = "milestone"
	ReportTypeIssue     = "issue"
)

// ProgressReport 进度报告，追加即不可变：没有任何更新或删除入口
// 任务结束后仍需可查，与任务之间是弱引用
type ProgressReport struct {
	Model
	ProjectID        uint   `gorm:"index;not null" json:"project_id"`
	DepartmentTaskID *uint  `gorm:"index" json:"department_task_id"` // 部门任务报告填此项
	MemberTaskID     *uint  `gorm:"index" json:"member_task_id"`     // 成员任务报告填此项
	ReportType       string `gorm:"type:varchar(20);not null" json:"report_type"`
	Title            string `gorm:"type:varchar(100);not null" json:"title"`
	Content          string `gorm:"type:varchar(2000);not null" json:"content"`
	Progress         int    `gorm:"default:0" json:"progress"` // 撰写时的进度快照
	Issues           string `gorm:"type:varchar(1000);" json:"issues"`
	Attachment       string `gorm:"type:varchar(255);" json:"attachment"` // 附件访问 URL（对象存储直传）
	CreatedBy        string `gorm:"type:varchar(20);not null" json:"created_by"`
}
