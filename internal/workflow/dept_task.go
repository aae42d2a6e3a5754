package workflow

import (
	"context"
	"time"

	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AssignDeptTaskParams 管理员向部门下发任务
type AssignDeptTaskParams struct {
	ProjectID      uint
	DepartmentID   uint
	Title          string
	Description    string
	Priority       int
	Deadline       int64
	EstimatedHours float64
}

// AssignDeptTask 管理员创建部门任务，初始状态 assigned，并通知部门经理
func (e *Engine) AssignDeptTask(ctx context.Context, actor Actor, p AssignDeptTaskParams) (*model.DepartmentTask, *response.Error) {
	if actor.RoleID < model.RoleAdmin {
		return nil, response.ErrForbidden.WithTips("只有管理员可以下发部门任务")
	}

	var task *model.DepartmentTask
	var failure *response.Error
	var managerID string

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 项目必须存在且未归档
		var project model.Project
		err := tx.First(&project, p.ProjectID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			failure = response.ErrNotFound.WithTips("项目不存在")
			return failure
		case err != nil:
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}
		if project.Status != model.ProjectActive {
			failure = response.ErrPreconditionFailed.WithTips("项目已归档，不能下发任务")
			return failure
		}

		var dept model.Department
		err = tx.First(&dept, p.DepartmentID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			failure = response.ErrNotFound.WithTips("部门不存在")
			return failure
		case err != nil:
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}
		managerID = dept.ManagerID

		task = &model.DepartmentTask{
			ProjectID:      p.ProjectID,
			DepartmentID:   p.DepartmentID,
			Title:          p.Title,
			Description:    p.Description,
			Priority:       p.Priority,
			Deadline:       p.Deadline,
			EstimatedHours: p.EstimatedHours,
			Status:         model.DeptTaskAssigned,
			CreatedBy:      actor.EmployeeID,
		}
		if err := tx.Create(task).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		failure = recordEvent(tx, model.TaskKindDepartment, task.ID, ActionAssign,
			"", string(model.DeptTaskAssigned), actor, managerID, "")
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

	emit(model.TaskKindDepartment, task.ID, ActionAssign, actor, managerID)
	log.Info("部门任务下发", "task_id", task.ID, "department_id", p.DepartmentID, "created_by", actor.EmployeeID)
	return task, nil
}

// AcceptDeptTask 部门经理认领任务，assigned → accepted
func (e *Engine) AcceptDeptTask(ctx context.Context, actor Actor, taskID uint) (*model.DepartmentTask, *response.Error) {
	var task *model.DepartmentTask
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, failure = lockDeptTask(tx, taskID)
		if failure != nil {
			return failure
		}
		if failure = e.auth.CanDept(tx, actor, ActionAccept, TaskContext{DepartmentID: task.DepartmentID}); failure != nil {
			return failure
		}
		if failure = ValidateDeptTransition(task.Status, ActionAccept); failure != nil {
			return failure
		}

		from := task.Status
		task.Status = model.DeptTaskAccepted
		task.AcceptedBy = actor.EmployeeID
		if err := tx.Save(task).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		failure = recordEvent(tx, model.TaskKindDepartment, task.ID, ActionAccept,
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

	emit(model.TaskKindDepartment, task.ID, ActionAccept, actor, task.CreatedBy)
	return task, nil
}

// UpdateDeptProgressParams 经理更新部门任务进度
type UpdateDeptProgressParams struct {
	Progress    int
	ActualHours *float64 // 不填则继续由子任务工时汇总
}

// UpdateDeptProgress 更新进度与工时，进度大于 0 时隐式进入 in_progress
// 进度到 100 只代表具备提交条件，不会自动提交
func (e *Engine) UpdateDeptProgress(ctx context.Context, actor Actor, taskID uint, p UpdateDeptProgressParams) (*model.DepartmentTask, *response.Error) {
	if failure := validateProgress(p.Progress); failure != nil {
		return nil, failure
	}

	var task *model.DepartmentTask
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, failure = lockDeptTask(tx, taskID)
		if failure != nil {
			return failure
		}
		if failure = e.auth.CanDept(tx, actor, ActionUpdateProgress, TaskContext{DepartmentID: task.DepartmentID}); failure != nil {
			return failure
		}
		if failure = ValidateDeptTransition(task.Status, ActionUpdateProgress); failure != nil {
			return failure
		}

		from := task.Status
		task.Progress = p.Progress
		if p.ActualHours != nil {
			task.ActualHours = *p.ActualHours
			task.HoursManual = true
		}
		// 有子任务时展示进度会被汇总覆盖，无子任务时以经理填写为准
		if failure = RecomputeParent(tx, task); failure != nil {
			return failure
		}

		failure = recordEvent(tx, model.TaskKindDepartment, task.ID, ActionUpdateProgress,
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

	emit(model.TaskKindDepartment, task.ID, ActionUpdateProgress, actor, task.CreatedBy)
	return task, nil
}

// SubmitDeptTask 经理提交部门任务送审
// 前置条件：进度 100 且所有非取消子任务均已审批通过；迟交会自动记警告
func (e *Engine) SubmitDeptTask(ctx context.Context, actor Actor, taskID uint, note string) (*model.DepartmentTask, *response.Error) {
	var task *model.DepartmentTask
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, failure = lockDeptTask(tx, taskID)
		if failure != nil {
			return failure
		}
		if failure = e.auth.CanDept(tx, actor, ActionSubmit, TaskContext{DepartmentID: task.DepartmentID}); failure != nil {
			return failure
		}
		if failure = ValidateDeptTransition(task.Status, ActionSubmit); failure != nil {
			return failure
		}

		if task.Progress < 100 {
			failure = response.ErrPreconditionFailed.WithTips(response.PreconditionProgressNotComplete)
			return failure
		}
		var children []model.MemberTask
		if err := tx.Where("department_task_id = ?", task.ID).Find(&children).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}
		if !AllChildrenApproved(children) {
			failure = response.ErrPreconditionFailed.WithTips(response.PreconditionIncompleteChildren)
			return failure
		}

		from := task.Status
		now := time.Now()
		task.Status = model.DeptTaskSubmitted
		task.SubmitNote = note
		task.SubmittedAt = &now
		if err := tx.Save(task).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		// 迟交策略钩子：超过截止时间提交自动对经理记警告
		if failure = issueLateWarning(tx, task.ProjectID, &task.ID, task.AcceptedBy, task.Deadline); failure != nil {
			return failure
		}

		failure = recordEvent(tx, model.TaskKindDepartment, task.ID, ActionSubmit,
			string(from), string(task.Status), actor, task.CreatedBy, note)
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

	emit(model.TaskKindDepartment, task.ID, ActionSubmit, actor, task.CreatedBy)
	return task, nil
}

// ApproveDeptTask 管理员审批通过，submitted → approved（终态）
func (e *Engine) ApproveDeptTask(ctx context.Context, actor Actor, taskID uint, note string) (*model.DepartmentTask, *response.Error) {
	return e.reviewDeptTask(ctx, actor, taskID, note, ActionApprove)
}

// RejectDeptTask 管理员驳回，submitted → in_progress，进度保留不清零
func (e *Engine) RejectDeptTask(ctx context.Context, actor Actor, taskID uint, note string) (*model.DepartmentTask, *response.Error) {
	return e.reviewDeptTask(ctx, actor, taskID, note, ActionReject)
}

func (e *Engine) reviewDeptTask(ctx context.Context, actor Actor, taskID uint, note string, action Action) (*model.DepartmentTask, *response.Error) {
	var task *model.DepartmentTask
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, failure = lockDeptTask(tx, taskID)
		if failure != nil {
			return failure
		}
		if failure = e.auth.CanDept(tx, actor, action, TaskContext{DepartmentID: task.DepartmentID}); failure != nil {
			return failure
		}
		if failure = ValidateDeptTransition(task.Status, action); failure != nil {
			return failure
		}

		from := task.Status
		task.ReviewNote = note
		if action == ActionApprove {
			now := time.Now()
			task.Status = model.DeptTaskApproved
			task.ApprovedAt = &now
		} else {
			// 驳回是"退回继续做"，不是"从头再来"
			task.Status = model.DeptTaskInProgress
		}
		if err := tx.Save(task).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		failure = recordEvent(tx, model.TaskKindDepartment, task.ID, action,
			string(from), string(task.Status), actor, task.AcceptedBy, note)
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

	emit(model.TaskKindDepartment, task.ID, action, actor, task.AcceptedBy)
	return task, nil
}

// CancelDeptTask 管理员取消任务（终态），级联取消所有未审批通过的子任务
// 任务层级固定两层，直接遍历子任务即可
func (e *Engine) CancelDeptTask(ctx context.Context, actor Actor, taskID uint, note string) (*model.DepartmentTask, *response.Error) {
	var task *model.DepartmentTask
	var failure *response.Error

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, failure = lockDeptTask(tx, taskID)
		if failure != nil {
			return failure
		}
		if failure = e.auth.CanDept(tx, actor, ActionCancel, TaskContext{DepartmentID: task.DepartmentID}); failure != nil {
			return failure
		}
		if failure = ValidateDeptTransition(task.Status, ActionCancel); failure != nil {
			return failure
		}

		var children []model.MemberTask
		if err := tx.Where("department_task_id = ?", task.ID).Find(&children).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}
		for i := range children {
			child := &children[i]
			if child.Status == model.MemberTaskApproved || child.Status == model.MemberTaskCancelled {
				continue
			}
			from := child.Status
			child.Status = model.MemberTaskCancelled
			if err := tx.Save(child).Error; err != nil {
				failure = response.ErrDatabase.WithOrigin(err)
				return failure
			}
			failure = recordEvent(tx, model.TaskKindMember, child.ID, ActionCancel,
				string(from), string(child.Status), actor, child.AssignedUserID, "随部门任务取消")
			if failure != nil {
				return failure
			}
		}

		from := task.Status
		task.Status = model.DeptTaskCancelled
		task.ReviewNote = note
		if err := tx.Save(task).Error; err != nil {
			failure = response.ErrDatabase.WithOrigin(err)
			return failure
		}

		failure = recordEvent(tx, model.TaskKindDepartment, task.ID, ActionCancel,
			string(from), string(task.Status), actor, task.AcceptedBy, note)
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

	emit(model.TaskKindDepartment, task.ID, ActionCancel, actor, task.AcceptedBy)
	log.Info("部门任务取消", "task_id", task.ID, "actor", actor.EmployeeID)
	return task, nil
}
