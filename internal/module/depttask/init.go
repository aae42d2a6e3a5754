package depttask

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

type ModuleDeptTask struct{}

func (d *ModuleDeptTask) GetName() string {
	return "DeptTask"
}

func (d *ModuleDeptTask) Init() {
	log = logger.New("DeptTask")
	engine = workflow.New(database.DB)
}
