package model

// 用户角色
const (
	RoleMember  = 0 // 普通成员
	RoleManager = 1 // 部门经理
	RoleAdmin   = 2 // 管理员
)

type User struct {
	Model
	EmployeeID   string `gorm:"type:varchar(20);uniqueIndex;not null" json:"employee_id"` // 工号，唯一标识用户
	Password     string `gorm:"type:varchar(255);not null" json:"-"`
	RoleID       int    `gorm:"default:0;not null" json:"role_id"`
	NickName     string `gorm:"type:varchar(20);not null" json:"nick_name"`
	Avatar       string `gorm:"type:varchar(255);" json:"avatar"`
	DepartmentID uint   `gorm:"index;default:0" json:"department_id"` // 所属部门，0 表示未分配
}
