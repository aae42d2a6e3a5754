package report

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

type ModuleReport struct{}

func (r *ModuleReport) GetName() string {
	return "Report"
}

func (r *ModuleReport) Init() {
	log = logger.New("Report")
	engine = workflow.New(database.DB)
}
