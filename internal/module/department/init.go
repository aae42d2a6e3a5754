package department

import (
	"company-oa-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleDepartment struct{}

func (d *ModuleDepartment) GetName() string {
	return "Department"
}

func (d *ModuleDepartment) Init() {
	log = logger.New("Department")
}
