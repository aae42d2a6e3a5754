package model

type Department struct {
	Model
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 部门名称
	Description string `gorm:"type:varchar(255);" json:"description"`
	ManagerID   string `gorm:"type:varchar(20);default:''" json:"manager_id"` // 部门经理工号，指向用户表的工号
}
