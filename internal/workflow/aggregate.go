package workflow

import (
	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"

	"gorm.io/gorm"
)

// Rollup 子任务向父任务汇总的结果
type Rollup struct {
	Progress     int     // 非取消子任务的平均进度
	ActualHours  float64 // 非取消子任务的工时合计
	NonCancelled int     // 非取消子任务数
}

// ComputeRollup 纯函数：从子任务列表计算汇总值
// 同样的输入算多少次结果都一样，可安全重跑
func ComputeRollup(children []model.MemberTask) Rollup {
	var r Rollup
	var progressSum int
	for _, c := range children {
		if c.Status == model.MemberTaskCancelled {
			continue
		}
		r.NonCancelled++
		progressSum += c.Progress
		r.ActualHours += c.ActualHours
	}
	if r.NonCancelled > 0 {
		r.Progress = progressSum / r.NonCancelled
	}
	return r
}

// ReconcileParentStatus 纯函数：根据子任务推导父任务应处的状态
// 已认领的部门任务在首个子任务启动（或自身进度大于 0）时隐式进入 in_progress
func ReconcileParentStatus(parent model.DepartmentTask, children []model.MemberTask) model.DeptTaskStatus {
	if parent.Status != model.DeptTaskAccepted {
		return parent.Status
	}
	if parent.Progress > 0 {
		return model.DeptTaskInProgress
	}
	for _, c := range children {
		switch c.Status {
		case model.MemberTaskStarted, model.MemberTaskInProgress,
			model.MemberTaskSubmitted, model.MemberTaskApproved:
			return model.DeptTaskInProgress
		}
	}
	return parent.Status
}

// RecomputeParent 全量重读子任务并重算父任务的冗余字段，写回同一事务
// 不做增量累加，并发写入下也能保持正确；失败会让外层流转整体回滚
func RecomputeParent(tx *gorm.DB, parent *model.DepartmentTask) *response.Error {
	var children []model.MemberTask
	if err := tx.Where("department_task_id = ?", parent.ID).Find(&children).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}

	rollup := ComputeRollup(children)
	if rollup.NonCancelled > 0 {
		// 有子任务时展示进度以子任务均值为准
		parent.Progress = rollup.Progress
		// 经理手工填写过工时则不覆盖
		if !parent.HoursManual {
			parent.ActualHours = rollup.ActualHours
		}
	}
	parent.Status = ReconcileParentStatus(*parent, children)

	if err := tx.Save(parent).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

// AllChildrenApproved 判断部门任务能否提交：所有非取消子任务都已审批通过
func AllChildrenApproved(children []model.MemberTask) bool {
	for _, c := range children {
		if c.Status == model.MemberTaskCancelled {
			continue
		}
		if c.Status != model.MemberTaskApproved {
			return false
		}
	}
	return true
}
