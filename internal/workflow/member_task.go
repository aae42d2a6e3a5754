package workflow

import (
	"context"
	"time"

	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// lockMemberTaskWithParent 先锁父任务再锁子任务
// 与级联取消的加锁顺序保持一致，避免两类流转互相死锁
func lockMemberTaskWithParent(tx *gorm.DB, id uint) (*model.MemberTask, *model.DepartmentTask, *response.Error) {
	var probe model.MemberTask
	err := tx.Select("id", "department_task_id").First(&probe, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, response.ErrNotFound.WithTips("成员任务不存在")
	case err != nil:
		return nil, nil, response.ErrDatabase.WithOrigin(err)
	}

	parent, failure := lockDeptTask(tx, probe.DepartmentTaskID)
	if failure != nil {
		return nil, nil, failure
	}
	task, failure := lockMemberTask(tx, id)
	if failure != nil {
		return nil, nil, failure
	}
	return task, parent, nil
}

// AssignMemberTaskParams 经理向本部门成员下发子任务
type AssignMemberTaskParams struct {
	DepartmentTaskID uint
	AssignedUserID   string // 执行成员工号
	Title            string
	Description      string
	Priority         int
	Deadline         int64
	EstimatedHours   float64
}

// AssignMemberTask 在已认领的部门任务下创建成员任务，初始状态 assigned
// 执行成员必须属于该部门任务所在部门
func (e *Engine) AssignMemberTask(ctx context.Context, actor Actor, p AssignMemberTaskParams) (*model.MemberTask, *response.Error) {
	var task *model.MemberTask
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parent, f := lockDeptTask(tx, p.DepartmentTaskID)
		if f != nil {
			failure = f
			return failure
		}
		if failure = e.auth.CanMember(tx, actor, ActionAssign, TaskContext{DepartmentID: parent.DepartmentID}); failure != nil {
			return failure
		}
		// 父任务认领后才能拆分，提交送审或进入终态后不能再加人
		if parent.Status != model.DeptTaskAccepted && parent.Status != model.DeptTaskInProgress {
			failure = response.ErrPreconditionFailed.WithTips("部门任务当前状态不允许下发子任务")
			return failure
		}

		var assignee model.User
		err := tx.Where("employee_id = ?", p.AssignedUserID).First(&assignee).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			failure = response.ErrNotFound.WithTips("执行成员不存在")
			return failure
		case err != nil:
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}
		if assignee.DepartmentID != parent.DepartmentID {
			failure = response.ErrInvalidRequest.WithTips("只能指派本部门成员")
			return failure
		}

		task = &model.MemberTask{
			DepartmentTaskID: parent.ID,
			AssignedUserID:   p.AssignedUserID,
			Title:            p.Title,
			Description:      p.Description,
			Priority:         p.Priority,
			Deadline:         p.Deadline,
			EstimatedHours:   p.EstimatedHours,
			Status:           model.MemberTaskAssigned,
			CreatedBy:        actor.EmployeeID,
		}
		if err := tx.Create(task).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		// 新建的子任务进度为 0，会拉低父任务的汇总进度
		if failure = RecomputeParent(tx, parent); failure != nil {
			return failure
		}

		failure = recordEvent(tx, model.TaskKindMember, task.ID, ActionAssign,
			"", string(model.MemberTaskAssigned), actor, p.AssignedUserID, "")
		if failure != nil {
			return failure
		}
		return nil
	})
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	emit(model.TaskKindMember, task.ID, ActionAssign, actor, p.AssignedUserID)
	log.Info("成员任务下发", "task_id", task.ID, "assigned_user_id", p.AssignedUserID, "created_by", actor.EmployeeID)
	return task, nil
}

// StartMemberTask 成员开工，assigned → started，父任务随之进入 in_progress
func (e *Engine) StartMemberTask(ctx context.Context, actor Actor, taskID uint) (*model.MemberTask, *response.Error) {
	var task *model.MemberTask
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent *model.DepartmentTask
		task, parent, failure = lockMemberTaskWithParent(tx, taskID)
		if failure != nil {
			return failure
		}
		tc := TaskContext{DepartmentID: parent.DepartmentID, AssignedUserID: task.AssignedUserID}
		if failure = e.auth.CanMember(tx, actor, ActionStart, tc); failure != nil {
			return failure
		}
		if failure = ValidateMemberTransition(task.Status, ActionStart); failure != nil {
			return failure
		}

		from := task.Status
		now := time.Now()
		task.Status = model.MemberTaskStarted
		task.StartedAt = &now
		if err := tx.Save(task).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		if failure = RecomputeParent(tx, parent); failure != nil {
			return failure
		}

		failure = recordEvent(tx, model.TaskKindMember, task.ID, ActionStart,
			string(from), string(task.Status), actor, task.CreatedBy, "")
		if failure != nil {
			return failure
		}
		return nil
	})
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	emit(model.TaskKindMember, task.ID, ActionStart, actor, task.CreatedBy)
	return task, nil
}

// UpdateMemberProgressParams 成员更新进度与实际工时
type UpdateMemberProgressParams struct {
	Progress    int
	ActualHours *float64
}

// UpdateMemberProgress 更新进度，进度大于 0 时 started 隐式进入 in_progress
// 允许向下修正；变更会在同一事务内汇总进父任务
func (e *Engine) UpdateMemberProgress(ctx context.Context, actor Actor, taskID uint, p UpdateMemberProgressParams) (*model.MemberTask, *response.Error) {
	if failure := validateProgress(p.Progress); failure != nil {
		return nil, failure
	}

	var task *model.MemberTask
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent *model.DepartmentTask
		task, parent, failure = lockMemberTaskWithParent(tx, taskID)
		if failure != nil {
			return failure
		}
		tc := TaskContext{DepartmentID: parent.DepartmentID, AssignedUserID: task.AssignedUserID}
		if failure = e.auth.CanMember(tx, actor, ActionUpdateProgress, tc); failure != nil {
			return failure
		}
		if failure = ValidateMemberTransition(task.Status, ActionUpdateProgress); failure != nil {
			return failure
		}

		from := task.Status
		task.Progress = p.Progress
		if p.ActualHours != nil {
			task.ActualHours = *p.ActualHours
		}
		if task.Progress > 0 && task.Status == model.MemberTaskStarted {
			task.Status = model.MemberTaskInProgress
		}
		if err := tx.Save(task).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		if failure = RecomputeParent(tx, parent); failure != nil {
			return failure
		}

		failure = recordEvent(tx, model.TaskKindMember, task.ID, ActionUpdateProgress,
			string(from), string(task.Status), actor, task.CreatedBy, "")
		if failure != nil {
			return failure
		}
		return nil
	})
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	emit(model.TaskKindMember, task.ID, ActionUpdateProgress, actor, task.CreatedBy)
	return task, nil
}

// SubmitMemberTask 成员提交任务送审，前置条件进度 100；迟交会自动记警告
func (e *Engine) SubmitMemberTask(ctx context.Context, actor Actor, taskID uint, note string) (*model.MemberTask, *response.Error) {
	var task *model.MemberTask
	var failure *response.Error
	var reviewer string

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent *model.DepartmentTask
		task, parent, failure = lockMemberTaskWithParent(tx, taskID)
		if failure != nil {
			return failure
		}
		tc := TaskContext{DepartmentID: parent.DepartmentID, AssignedUserID: task.AssignedUserID}
		if failure = e.auth.CanMember(tx, actor, ActionSubmit, tc); failure != nil {
			return failure
		}
		if failure = ValidateMemberTransition(task.Status, ActionSubmit); failure != nil {
			return failure
		}
		if task.Progress < 100 {
			failure = response.ErrPreconditionFailed.WithTips(response.PreconditionProgressNotComplete)
			return failure
		}

		from := task.Status
		now := time.Now()
		task.Status = model.MemberTaskSubmitted
		task.SubmitNote = note
		task.SubmittedAt = &now
		if err := tx.Save(task).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		if failure = issueLateWarning(tx, parent.ProjectID, &parent.ID, task.AssignedUserID, task.Deadline); failure != nil {
			return failure
		}

		reviewer = parent.AcceptedBy
		failure = recordEvent(tx, model.TaskKindMember, task.ID, ActionSubmit,
			string(from), string(task.Status), actor, reviewer, note)
		if failure != nil {
			return failure
		}
		return nil
	})
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	emit(model.TaskKindMember, task.ID, ActionSubmit, actor, reviewer)
	return task, nil
}

// ApproveMemberTask 经理审批通过子任务（终态），不能审批自己执行的任务
// 审批结果在同一事务内汇总进父任务
func (e *Engine) ApproveMemberTask(ctx context.Context, actor Actor, taskID uint, note string) (*model.MemberTask, *response.Error) {
	var task *model.MemberTask
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent *model.DepartmentTask
		task, parent, failure = lockMemberTaskWithParent(tx, taskID)
		if failure != nil {
			return failure
		}
		tc := TaskContext{DepartmentID: parent.DepartmentID, AssignedUserID: task.AssignedUserID}
		if failure = e.auth.CanMember(tx, actor, ActionApprove, tc); failure != nil {
			return failure
		}
		if failure = ValidateMemberTransition(task.Status, ActionApprove); failure != nil {
			return failure
		}

		from := task.Status
		now := time.Now()
		task.Status = model.MemberTaskApproved
		task.ReviewNote = note
		task.ApprovedAt = &now
		if err := tx.Save(task).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		if failure = RecomputeParent(tx, parent); failure != nil {
			return failure
		}

		failure = recordEvent(tx, model.TaskKindMember, task.ID, ActionApprove,
			string(from), string(task.Status), actor, task.AssignedUserID, note)
		if failure != nil {
			return failure
		}
		return nil
	})
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	emit(model.TaskKindMember, task.ID, ActionApprove, actor, task.AssignedUserID)
	return task, nil
}

// RejectMemberTask 经理驳回，submitted → started，进度保留不清零
func (e *Engine) RejectMemberTask(ctx context.Context, actor Actor, taskID uint, note string) (*model.MemberTask, *response.Error) {
	var task *model.MemberTask
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent *model.DepartmentTask
		task, parent, failure = lockMemberTaskWithParent(tx, taskID)
		if failure != nil {
			return failure
		}
		tc := TaskContext{DepartmentID: parent.DepartmentID, AssignedUserID: task.AssignedUserID}
		if failure = e.auth.CanMember(tx, actor, ActionReject, tc); failure != nil {
			return failure
		}
		if failure = ValidateMemberTransition(task.Status, ActionReject); failure != nil {
			return failure
		}

		from := task.Status
		task.Status = model.MemberTaskStarted
		task.ReviewNote = note
		if err := tx.Save(task).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		failure = recordEvent(tx, model.TaskKindMember, task.ID, ActionReject,
			string(from), string(task.Status), actor, task.AssignedUserID, note)
		if failure != nil {
			return failure
		}
		return nil
	})
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	emit(model.TaskKindMember, task.ID, ActionReject, actor, task.AssignedUserID)
	return task, nil
}
