package notify

import (
	"context"
	"log/slog"
	"time"

	"company-oa-system/config"
	"company-oa-system/internal/global/httpclient"
	"company-oa-system/internal/global/logger"
)

var log *slog.Logger

func Init() {
	log = logger.New("Notify")
}

// Event 任务流转事件，推送给外部通知方（企业 IM 机器人等）
type Event struct {
	Type         string `json:"type"`           // 流转动作名，如 dept_task.submit
	TaskKind     string `json:"task_kind"`      // department / member
	TaskID       uint   `json:"task_id"`        //
	ActorID      string `json:"actor_id"`       // 操作者工号
	TargetUserID string `json:"target_user_id"` // 需要被通知的用户工号
	OccurredAt   int64  `json:"occurred_at"`    // 毫秒时间戳
}

// Send 异步推送事件，尽力投递
// 投递失败只记日志，绝不回滚或阻塞任务流转
func Send(event Event) {
	cfg := config.Get()
	if !cfg.Notify.Enable || cfg.Notify.WebhookURL == "" {
		return
	}
	if event.OccurredAt == 0 {
		event.OccurredAt = time.Now().UnixMilli()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		resp, err := httpclient.Client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(event).
			Post(cfg.Notify.WebhookURL)
		if err != nil {
			log.Warn("通知推送失败", "type", event.Type, "task_id", event.TaskID, "error", err)
			return
		}
		if resp.StatusCode() >= 300 {
			log.Warn("通知推送被拒绝", "type", event.Type, "task_id", event.TaskID, "status", resp.StatusCode())
		}
	}()
}
