package workflow

import (
	"testing"

	"company-oa-system/internal/model"

	"github.com/stretchr/testify/require"
)

func child(status model.MemberTaskStatus, progress int, hours float64) model.MemberTask {
	return model.MemberTask{Status: status, Progress: progress, ActualHours: hours}
}

func TestComputeRollup(t *testing.T) {
	t.Run("无子任务", func(t *testing.T) {
		r := ComputeRollup(nil)
		require.Equal(t, 0, r.NonCancelled)
		require.Equal(t, 0, r.Progress)
		require.Zero(t, r.ActualHours)
	})

	t.Run("平均进度与工时合计", func(t *testing.T) {
		r := ComputeRollup([]model.MemberTask{
			child(model.MemberTaskInProgress, 50, 8),
			child(model.MemberTaskApproved, 100, 12),
			child(model.MemberTaskStarted, 0, 0),
		})
		require.Equal(t, 3, r.NonCancelled)
		require.Equal(t, 50, r.Progress)
		require.Equal(t, 20.0, r.ActualHours)
	})

	t.Run("已取消子任务不参与汇总", func(t *testing.T) {
		r := ComputeRollup([]model.MemberTask{
			child(model.MemberTaskApproved, 100, 10),
			child(model.MemberTaskCancelled, 40, 99),
		})
		require.Equal(t, 1, r.NonCancelled)
		require.Equal(t, 100, r.Progress)
		require.Equal(t, 10.0, r.ActualHours)
	})

	t.Run("全部取消视同无子任务", func(t *testing.T) {
		r := ComputeRollup([]model.MemberTask{
			child(model.MemberTaskCancelled, 80, 5),
		})
		require.Equal(t, 0, r.NonCancelled)
		require.Equal(t, 0, r.Progress)
	})
}

func TestReconcileParentStatus(t *testing.T) {
	t.Run("子任务开工后父任务进入进行中", func(t *testing.T) {
		parent := model.DepartmentTask{Status: model.DeptTaskAccepted}
		got := ReconcileParentStatus(parent, []model.MemberTask{
			child(model.MemberTaskStarted, 0, 0),
		})
		require.Equal(t, model.DeptTaskInProgress, got)
	})

	t.Run("子任务未开工则保持已认领", func(t *testing.T) {
		parent := model.DepartmentTask{Status: model.DeptTaskAccepted}
		got := ReconcileParentStatus(parent, []model.MemberTask{
			child(model.MemberTaskAssigned, 0, 0),
		})
		require.Equal(t, model.DeptTaskAccepted, got)
	})

	t.Run("父任务自身进度大于零", func(t *testing.T) {
		parent := model.DepartmentTask{Status: model.DeptTaskAccepted, Progress: 10}
		got := ReconcileParentStatus(parent, nil)
		require.Equal(t, model.DeptTaskInProgress, got)
	})

	t.Run("非已认领状态不回退", func(t *testing.T) {
		for _, s := range []model.DeptTaskStatus{
			model.DeptTaskAssigned, model.DeptTaskInProgress,
			model.DeptTaskSubmitted, model.DeptTaskApproved, model.DeptTaskCancelled,
		} {
			parent := model.DepartmentTask{Status: s}
			require.Equal(t, s, ReconcileParentStatus(parent, []model.MemberTask{
				child(model.MemberTaskStarted, 50, 0),
			}))
		}
	})
}

func TestAllChildrenApproved(t *testing.T) {
	require.True(t, AllChildrenApproved(nil))
	require.True(t, AllChildrenApproved([]model.MemberTask{
		child(model.MemberTaskApproved, 100, 0),
		child(model.MemberTaskCancelled, 30, 0),
	}))
	require.False(t, AllChildrenApproved([]model.MemberTask{
		child(model.MemberTaskApproved, 100, 0),
		child(model.MemberTaskSubmitted, 100, 0),
	}))
	require.False(t, AllChildrenApproved([]model.MemberTask{
		child(model.MemberTaskInProgress, 60, 0),
	}))
}
