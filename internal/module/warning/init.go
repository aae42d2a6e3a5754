package warning

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

type ModuleWarning struct{}

func (w *ModuleWarning) GetName() string {
	return "Warning"
}

func (w *ModuleWarning) Init() {
	log = logger.New("Warning")
	engine = workflow.New(database.DB)
}
