package workflow

import (
	"testing"

	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"

	"github.com/stretchr/testify/require"
)

// 以下用例只覆盖不查库的授权分支，传 nil tx 即可
// 涉及部门经理关系的分支随接口用例在数据库环境下验证

func TestAuthorizerRoleFloor(t *testing.T) {
	auth := NewAuthorizer()
	member := Actor{EmployeeID: "E1001", RoleID: model.RoleMember}

	failure := auth.CanDept(nil, member, ActionApprove, TaskContext{})
	require.NotNil(t, failure)
	require.Equal(t, response.ErrForbidden.Code, failure.Code)

	failure = auth.CanDept(nil, member, ActionCancel, TaskContext{})
	require.NotNil(t, failure)
	require.Equal(t, response.ErrForbidden.Code, failure.Code)
}

func TestAuthorizerAdminBypassesRelationNone(t *testing.T) {
	auth := NewAuthorizer()
	admin := Actor{EmployeeID: "E0001", RoleID: model.RoleAdmin}

	require.Nil(t, auth.CanDept(nil, admin, ActionApprove, TaskContext{}))
	require.Nil(t, auth.CanDept(nil, admin, ActionReject, TaskContext{}))
	require.Nil(t, auth.CanDept(nil, admin, ActionCancel, TaskContext{}))
}

func TestAuthorizerAssigneeOnly(t *testing.T) {
	auth := NewAuthorizer()
	tc := TaskContext{DepartmentID: 1, AssignedUserID: "E1001"}

	assignee := Actor{EmployeeID: "E1001", RoleID: model.RoleMember}
	require.Nil(t, auth.CanMember(nil, assignee, ActionStart, tc))
	require.Nil(t, auth.CanMember(nil, assignee, ActionUpdateProgress, tc))
	require.Nil(t, auth.CanMember(nil, assignee, ActionSubmit, tc))

	// 同部门其他成员也不能替人操作
	other := Actor{EmployeeID: "E1002", RoleID: model.RoleMember}
	failure := auth.CanMember(nil, other, ActionStart, tc)
	require.NotNil(t, failure)
	require.Equal(t, response.ErrForbidden.Code, failure.Code)
}

func TestAuthorizerSelfApprovalForbidden(t *testing.T) {
	auth := NewAuthorizer()
	// 经理自己执行的子任务，自审自批直接拒绝，不查部门关系
	manager := Actor{EmployeeID: "E2001", RoleID: model.RoleManager}
	tc := TaskContext{DepartmentID: 1, AssignedUserID: "E2001"}

	failure := auth.CanMember(nil, manager, ActionApprove, tc)
	require.NotNil(t, failure)
	require.Equal(t, response.ErrForbidden.Code, failure.Code)
}

func TestAuthorizerUnknownAction(t *testing.T) {
	auth := NewAuthorizer()
	admin := Actor{EmployeeID: "E0001", RoleID: model.RoleAdmin}

	require.NotNil(t, auth.CanDept(nil, admin, ActionStart, TaskContext{}))
	require.NotNil(t, auth.CanMember(nil, admin, Action("unknown"), TaskContext{}))
}
