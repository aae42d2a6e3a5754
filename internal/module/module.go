package module

import (
	"company-oa-system/internal/module/department"
	"company-oa-system/internal/module/depttask"
	"company-oa-system/internal/module/membertask"
	"company-oa-system/internal/module/ping"
	"company-oa-system/internal/module/project"
	"company-oa-system/internal/module/report"
	"company-oa-system/internal/module/stats"
	"company-oa-system/internal/module/user"
	"company-oa-system/internal/module/warning"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&ping.ModulePing{},
		&user.ModuleUser{},
		&department.ModuleDepartment{},
		&project.ModuleProject{},
		&depttask.ModuleDeptTask{},
		&membertask.ModuleMemberTask{},
		&report.ModuleReport{},
		&warning.ModuleWarning{},
		&stats.ModuleStats{},
	})
}
