package workflow

import (
	"log/slog"
	"time"

	"company-oa-system/internal/global/logger"
	"company-oa-system/internal/global/notify"
	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var log *slog.Logger

// Engine 任务流转引擎
// 每个流转都是一次独立事务：行锁串行化同一任务上的并发操作，
// 第二个请求看到的是流转后的状态，会以 ErrInvalidTransition 失败而不是重复生效
type Engine struct {
	db   *gorm.DB
	auth Authorizer
}

func New(db *gorm.DB) *Engine {
	if log == nil {
		log = logger.New("Workflow")
	}
	return &Engine{
		db:   db,
		auth: NewAuthorizer(),
	}
}

// lockDeptTask 按 id 加行锁读取部门任务
func lockDeptTask(tx *gorm.DB, id uint) (*model.DepartmentTask, *response.Error) {
	var task model.DepartmentTask
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("部门任务不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &task, nil
}

// lockMemberTask 按 id 加行锁读取成员任务
func lockMemberTask(tx *gorm.DB, id uint) (*model.MemberTask, *response.Error) {
	var task model.MemberTask
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("成员任务不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &task, nil
}

// recordEvent 在同一事务内写入流转日志
func recordEvent(tx *gorm.DB, kind string, taskID uint, action Action, from, to string, actor Actor, targetUser, note string) *response.Error {
	event := model.TaskEvent{
		TaskKind:     kind,
		TaskID:       taskID,
		Action:       string(action),
		FromStatus:   from,
		ToStatus:     to,
		ActorID:      actor.EmployeeID,
		TargetUserID: targetUser,
		Note:         note,
	}
	if err := tx.Create(&event).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

// emit 事务提交后对外推送事件，尽力投递，失败不影响已提交的流转
func emit(kind string, taskID uint, action Action, actor Actor, targetUser string) {
	notify.Send(notify.Event{
		Type:         kind + "_task." + string(action),
		TaskKind:     kind,
		TaskID:       taskID,
		ActorID:      actor.EmployeeID,
		TargetUserID: targetUser,
	})
}

// issueLateWarning 迟交策略钩子：截止时间之后才提交的任务自动记一条警告
// 只追加记录，不阻止提交本身
func issueLateWarning(tx *gorm.DB, projectID uint, deptTaskID *uint, warnedUserID string, deadline int64) *response.Error {
	if deadline <= 0 {
		return nil
	}
	now := time.Now().UnixMilli()
	if now <= deadline {
		return nil
	}

	warning := model.Warning{
		ProjectID:        projectID,
		DepartmentTaskID: deptTaskID,
		WarnedUserID:     warnedUserID,
		WarningType:      model.WarningLateSubmission,
		Severity:         severityForLateness(now - deadline),
		Reason:           "超过截止时间提交",
		IssuedBy:         "system",
	}
	if err := tx.Create(&warning).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	log.Warn("迟交警告",
		"project_id", projectID,
		"warned_user_id", warnedUserID,
		"severity", warning.Severity)
	return nil
}

// severityForLateness 按迟交时长分级：一天内 low，三天内 medium，更久 high
func severityForLateness(lateMs int64) string {
	const day = 24 * 60 * 60 * 1000
	switch {
	case lateMs < day:
		return model.SeverityLow
	case lateMs < 3*day:
		return model.SeverityMedium
	default:
		return model.SeverityHigh
	}
}

// validateProgress 进度必须在 0-100 之间
func validateProgress(progress int) *response.Error {
	if progress < 0 || progress > 100 {
		return response.ErrInvalidRequest.WithTips("进度必须在 0-100 之间")
	}
	return nil
}
