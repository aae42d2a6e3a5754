package membertask

import (
	"log/slog"

	"company-oa-system/internal/global/database"
	"company-oa-system/internal/global/logger"
	"company-oa-system/internal/workflow"
)

var (
	log    *slog.Logger
	engine *workflow.Engine
)

type ModuleMemberTask struct{}

func (m *ModuleMemberTask) GetName() string {
	return "MemberTask"
}

func (m *ModuleMemberTask) Init() {
	log = logger.New("MemberTask")
	engine = workflow.New(database.DB)
}
