package workflow

import (
	"testing"

	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"

	"github.com/stretchr/testify/require"
)

func TestValidateDeptTransition(t *testing.T) {
	cases := []struct {
		name   string
		status model.DeptTaskStatus
		action Action
		ok     bool
	}{
		{"认领待认领任务", model.DeptTaskAssigned, ActionAccept, true},
		{"重复认领", model.DeptTaskAccepted, ActionAccept, false},
		{"认领后更新进度", model.DeptTaskAccepted, ActionUpdateProgress, true},
		{"进行中更新进度", model.DeptTaskInProgress, ActionUpdateProgress, true},
		{"送审后更新进度", model.DeptTaskSubmitted, ActionUpdateProgress, false},
		{"进行中提交", model.DeptTaskInProgress, ActionSubmit, true},
		{"认领后直接提交", model.DeptTaskAccepted, ActionSubmit, false},
		{"审批已送审任务", model.DeptTaskSubmitted, ActionApprove, true},
		{"驳回已送审任务", model.DeptTaskSubmitted, ActionReject, true},
		{"审批未送审任务", model.DeptTaskInProgress, ActionApprove, false},
		{"取消已送审任务", model.DeptTaskSubmitted, ActionCancel, true},
		{"取消待认领任务", model.DeptTaskAssigned, ActionCancel, true},
		{"取消已通过任务", model.DeptTaskApproved, ActionCancel, false},
		{"取消已取消任务", model.DeptTaskCancelled, ActionCancel, false},
		{"终态后更新进度", model.DeptTaskApproved, ActionUpdateProgress, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			failure := ValidateDeptTransition(c.status, c.action)
			if c.ok {
				require.Nil(t, failure)
			} else {
				require.NotNil(t, failure)
				require.Equal(t, response.ErrInvalidTransition.Code, failure.Code)
			}
		})
	}
}

func TestValidateMemberTransition(t *testing.T) {
	cases := []struct {
		name   string
		status model.MemberTaskStatus
		action Action
		ok     bool
	}{
		{"开工待开工任务", model.MemberTaskAssigned, ActionStart, true},
		{"重复开工", model.MemberTaskStarted, ActionStart, false},
		{"开工后更新进度", model.MemberTaskStarted, ActionUpdateProgress, true},
		{"未开工更新进度", model.MemberTaskAssigned, ActionUpdateProgress, false},
		{"开工后直接提交", model.MemberTaskStarted, ActionSubmit, true},
		{"进行中提交", model.MemberTaskInProgress, ActionSubmit, true},
		{"重复提交", model.MemberTaskSubmitted, ActionSubmit, false},
		{"审批已送审任务", model.MemberTaskSubmitted, ActionApprove, true},
		{"驳回已送审任务", model.MemberTaskSubmitted, ActionReject, true},
		{"驳回进行中任务", model.MemberTaskInProgress, ActionReject, false},
		{"终态后更新进度", model.MemberTaskCancelled, ActionUpdateProgress, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			failure := ValidateMemberTransition(c.status, c.action)
			if c.ok {
				require.Nil(t, failure)
			} else {
				require.NotNil(t, failure)
				require.Equal(t, response.ErrInvalidTransition.Code, failure.Code)
			}
		})
	}
}

func TestMemberTaskHasNoStandaloneCancel(t *testing.T) {
	// 成员任务只随父任务级联取消，能力表里不应出现 cancel
	_, ok := memberTaskRules[ActionCancel]
	require.False(t, ok)

	failure := ValidateMemberTransition(model.MemberTaskStarted, ActionCancel)
	require.NotNil(t, failure)
	require.Equal(t, response.ErrInvalidTransition.Code, failure.Code)
}

func TestSeverityForLateness(t *testing.T) {
	const day = int64(24 * 60 * 60 * 1000)

	require.Equal(t, model.SeverityLow, severityForLateness(1))
	require.Equal(t, model.SeverityLow, severityForLateness(day-1))
	require.Equal(t, model.SeverityMedium, severityForLateness(day))
	require.Equal(t, model.SeverityMedium, severityForLateness(3*day-1))
	require.Equal(t, model.SeverityHigh, severityForLateness(3*day))
	require.Equal(t, model.SeverityHigh, severityForLateness(30*day))
}

func TestValidateProgress(t *testing.T) {
	require.Nil(t, validateProgress(0))
	require.Nil(t, validateProgress(100))
	require.NotNil(t, validateProgress(-1))
	require.NotNil(t, validateProgress(101))
}
