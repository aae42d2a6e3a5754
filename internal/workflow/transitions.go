// Package workflow 实现任务分派与审批流转的核心：
// 部门任务 / 成员任务状态机、角色能力表、进度汇总和流转日志。
package workflow

import (
	"fmt"

	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"
)

// Action 任务流转动作
type Action string

const (
	ActionAssign         Action = "assign"
	ActionAccept         Action = "accept"
	ActionStart          Action = "start"
	ActionUpdateProgress Action = "update_progress"
	ActionSubmit         Action = "submit"
	ActionApprove        Action = "approve"
	ActionReject         Action = "reject"
	ActionCancel         Action = "cancel"
)

// Relation 动作对操作者与任务关系的要求
type Relation int

const (
	// RelationNone 无关系要求（角色达标即可）
	RelationNone Relation = iota
	// RelationDeptManager 操作者必须是任务所属部门的经理
	RelationDeptManager
	// RelationAssignee 操作者必须是任务的执行成员
	RelationAssignee
	// RelationDeptManagerNotSelf 部门经理且不能审批自己执行的任务
	RelationDeptManagerNotSelf
)

// rule 能力表条目：动作允许的来源状态、最低角色和关系要求
type rule struct {
	from     []string
	minRole  int
	relation Relation
}

// deptTaskRules 部门任务能力表（assigned → accepted → in_progress → submitted → approved）
var deptTaskRules = map[Action]rule{
	ActionAccept: {
		from:     []string{string(model.DeptTaskAssigned)},
		minRole:  model.RoleManager,
		relation: RelationDeptManager,
	},
	ActionUpdateProgress: {
		from:     []string{string(model.DeptTaskAccepted), string(model.DeptTaskInProgress)},
		minRole:  model.RoleManager,
		relation: RelationDeptManager,
	},
	ActionSubmit: {
		from:     []string{string(model.DeptTaskInProgress)},
		minRole:  model.RoleManager,
		relation: RelationDeptManager,
	},
	ActionApprove: {
		from:     []string{string(model.DeptTaskSubmitted)},
		minRole:  model.RoleAdmin,
		relation: RelationNone,
	},
	ActionReject: {
		from:     []string{string(model.DeptTaskSubmitted)},
		minRole:  model.RoleAdmin,
		relation: RelationNone,
	},
	// 取消允许任何非终态，包括已提交待审批的任务
	ActionCancel: {
		from: []string{
			string(model.DeptTaskAssigned), string(model.DeptTaskAccepted),
			string(model.DeptTaskInProgress), string(model.DeptTaskSubmitted),
		},
		minRole:  model.RoleAdmin,
		relation: RelationNone,
	},
}

// memberTaskRules 成员任务能力表（assigned → started → in_progress → submitted → approved）
// 成员任务没有独立的 cancel 动作，只随父任务取消级联
var memberTaskRules = map[Action]rule{
	// 下发是新建不是流转，from 为空，只做角色与关系校验
	ActionAssign: {
		minRole:  model.RoleManager,
		relation: RelationDeptManager,
	},
	ActionStart: {
		from:     []string{string(model.MemberTaskAssigned)},
		minRole:  model.RoleMember,
		relation: RelationAssignee,
	},
	ActionUpdateProgress: {
		from:     []string{string(model.MemberTaskStarted), string(model.MemberTaskInProgress)},
		minRole:  model.RoleMember,
		relation: RelationAssignee,
	},
	ActionSubmit: {
		from:     []string{string(model.MemberTaskStarted), string(model.MemberTaskInProgress)},
		minRole:  model.RoleMember,
		relation: RelationAssignee,
	},
	ActionApprove: {
		from:     []string{string(model.MemberTaskSubmitted)},
		minRole:  model.RoleManager,
		relation: RelationDeptManagerNotSelf,
	},
	ActionReject: {
		from:     []string{string(model.MemberTaskSubmitted)},
		minRole:  model.RoleManager,
		relation: RelationDeptManager,
	},
}

// ValidateDeptTransition 校验部门任务在当前状态下能否执行动作
func ValidateDeptTransition(status model.DeptTaskStatus, action Action) *response.Error {
	r, ok := deptTaskRules[action]
	if !ok {
		return response.ErrInvalidTransition.WithTips(fmt.Sprintf("未知动作 %s", action))
	}
	return validateFrom(string(status), action, r.from)
}

// ValidateMemberTransition 校验成员任务在当前状态下能否执行动作
func ValidateMemberTransition(status model.MemberTaskStatus, action Action) *response.Error {
	r, ok := memberTaskRules[action]
	if !ok {
		return response.ErrInvalidTransition.WithTips(fmt.Sprintf("未知动作 %s", action))
	}
	return validateFrom(string(status), action, r.from)
}

func validateFrom(status string, action Action, from []string) *response.Error {
	for _, s := range from {
		if s == status {
			return nil
		}
	}
	return response.ErrInvalidTransition.WithTips(
		fmt.Sprintf("状态 %s 下不允许执行 %s", status, action))
}
