package workflow

import (
	"company-oa-system/internal/global/jwt"
	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Actor 发起任务操作的用户
type Actor struct {
	UserID     uint
	EmployeeID string
	RoleID     int
}

// ActorFromClaims 从登录态构造操作者
func ActorFromClaims(claims *jwt.Claims) Actor {
	return Actor{
		UserID:     claims.UserID,
		EmployeeID: claims.EmployeeID,
		RoleID:     claims.RoleID,
	}
}

// TaskContext 授权所需的任务关系信息
type TaskContext struct {
	DepartmentID   uint   // 任务所属部门
	AssignedUserID string // 成员任务执行人工号（部门任务为空）
}

// Authorizer 判断操作者能否对任务执行某动作
// 能力表驱动：角色下限 + 与任务的关系要求
type Authorizer interface {
	CanDept(tx *gorm.DB, actor Actor, action Action, tc TaskContext) *response.Error
	CanMember(tx *gorm.DB, actor Actor, action Action, tc TaskContext) *response.Error
}

type dbAuthorizer struct{}

// NewAuthorizer 返回基于数据库关系的授权器
func NewAuthorizer() Authorizer {
	return &dbAuthorizer{}
}

func (a *dbAuthorizer) CanDept(tx *gorm.DB, actor Actor, action Action, tc TaskContext) *response.Error {
	r, ok := deptTaskRules[action]
	if !ok {
		return response.ErrForbidden
	}
	return a.check(tx, actor, r, tc)
}

func (a *dbAuthorizer) CanMember(tx *gorm.DB, actor Actor, action Action, tc TaskContext) *response.Error {
	r, ok := memberTaskRules[action]
	if !ok {
		return response.ErrForbidden
	}
	return a.check(tx, actor, r, tc)
}

func (a *dbAuthorizer) check(tx *gorm.DB, actor Actor, r rule, tc TaskContext) *response.Error {
	if actor.RoleID < r.minRole {
		return response.ErrForbidden
	}

	switch r.relation {
	case RelationNone:
		return nil

	case RelationDeptManager:
		return requireDeptManager(tx, actor, tc.DepartmentID)

	case RelationAssignee:
		if actor.EmployeeID != tc.AssignedUserID {
			return response.ErrForbidden.WithTips("只有任务执行人可以操作")
		}
		return nil

	case RelationDeptManagerNotSelf:
		// 自审自批是硬性授权失败，而不是约定俗成
		if actor.EmployeeID == tc.AssignedUserID {
			return response.ErrForbidden.WithTips("不能审批自己执行的任务")
		}
		return requireDeptManager(tx, actor, tc.DepartmentID)
	}

	return response.ErrForbidden
}

// requireDeptManager 校验操作者是指定部门的经理
func requireDeptManager(tx *gorm.DB, actor Actor, departmentID uint) *response.Error {
	var dept model.Department
	err := tx.First(&dept, departmentID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.ErrNotFound.WithTips("部门不存在")
	case err != nil:
		return response.ErrDatabase.WithOrigin(err)
	}
	if dept.ManagerID == "" || dept.ManagerID != actor.EmployeeID {
		return response.ErrForbidden.WithTips("只有该部门经理可以操作")
	}
	return nil
}
