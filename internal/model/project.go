package model

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

// Project 顶层容器，归档为软操作，不级联删除其下任务
type Project struct {
	Model
	Name        string        `gorm:"type:varchar(100);not null" json:"name"` // 项目名称
	Description string        `gorm:"type:varchar(255);" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	OwnerID     string        `gorm:"type:varchar(20);not null" json:"owner_id"` // 创建人（管理员）工号
	StartDate   int64         `gorm:"" json:"start_date"`                        // 项目开始时间（毫秒）
	EndDate     int64         `gorm:"" json:"end_date"`                          // 项目结束时间（毫秒）
}
