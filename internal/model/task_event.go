package model

// 任务类别
const (
	TaskKindDepartment = "department"
	TaskKindMember     = "member"
)

// TaskEvent 任务流转日志，追加即不可变
// 既是审计轨迹，也是对外通知事件的来源
type TaskEvent struct {
	Model
	TaskKind     string `gorm:"type:varchar(10);index:idx_task_event_task;not null" json:"task_kind"`
	TaskID       uint   `gorm:"index:idx_task_event_task;not null" json:"task_id"`
	Action       string `gorm:"type:varchar(30);not null" json:"action"` // assign / accept / submit / ...
	FromStatus   string `gorm:"type:varchar(20);" json:"from_status"`
	ToStatus     string `gorm:"type:varchar(20);not null" json:"to_status"`
	ActorID      string `gorm:"type:varchar(20);not null" json:"actor_id"`
	TargetUserID string `gorm:"type:varchar(20);" json:"target_user_id"` // 该事件需要通知的用户
	Note         string `gorm:"type:varchar(500);" json:"note"`
}
