package workflow

import (
	"context"
	"testing"

	"company-oa-system/internal/global/response"
	"company-oa-system/internal/model"

	"github.com/stretchr/testify/require"
)

// 入参校验在进事务前完成，这些用例不需要数据库

func TestCreateReportValidation(t *testing.T) {
	e := New(nil)
	actor := Actor{EmployeeID: "E1001", RoleID: model.RoleMember}
	taskID := uint(1)

	t.Run("未知报告类型", func(t *testing.T) {
		_, failure := e.CreateReport(context.Background(), actor, CreateReportParams{
			MemberTaskID: &taskID,
			ReportType:   "hourly",
		})
		require.NotNil(t, failure)
		require.Equal(t, response.ErrInvalidRequest.Code, failure.Code)
	})

	t.Run("未关联任务", func(t *testing.T) {
		_, failure := e.CreateReport(context.Background(), actor, CreateReportParams{
			ReportType: model.ReportTypeDaily,
		})
		require.NotNil(t, failure)
		require.Equal(t, response.ErrInvalidRequest.Code, failure.Code)
	})

	t.Run("同时关联两种任务", func(t *testing.T) {
		_, failure := e.CreateReport(context.Background(), actor, CreateReportParams{
			DepartmentTaskID: &taskID,
			MemberTaskID:     &taskID,
			ReportType:       model.ReportTypeDaily,
		})
		require.NotNil(t, failure)
		require.Equal(t, response.ErrInvalidRequest.Code, failure.Code)
	})
}

func TestCreateWarningValidation(t *testing.T) {
	e := New(nil)
	actor := Actor{EmployeeID: "E0001", RoleID: model.RoleAdmin}

	base := CreateWarningParams{
		ProjectID:    1,
		WarnedUserID: "E1001",
		WarningType:  model.WarningQualityIssue,
		Severity:     model.SeverityMedium,
		Reason:       "验收质量不达标",
	}

	t.Run("未知警告类型", func(t *testing.T) {
		p := base
		p.WarningType = "verbal"
		_, failure := e.CreateWarning(context.Background(), actor, p)
		require.NotNil(t, failure)
		require.Equal(t, response.ErrInvalidRequest.Code, failure.Code)
	})

	t.Run("未知严重程度", func(t *testing.T) {
		p := base
		p.Severity = "critical"
		_, failure := e.CreateWarning(context.Background(), actor, p)
		require.NotNil(t, failure)
		require.Equal(t, response.ErrInvalidRequest.Code, failure.Code)
	})

	t.Run("原因不能为空", func(t *testing.T) {
		p := base
		p.Reason = ""
		_, failure := e.CreateWarning(context.Background(), actor, p)
		require.NotNil(t, failure)
		require.Equal(t, response.ErrInvalidRequest.Code, failure.Code)
	})

	t.Run("扣款金额不能为负", func(t *testing.T) {
		p := base
		p.PenaltyAmount = -100
		_, failure := e.CreateWarning(context.Background(), actor, p)
		require.NotNil(t, failure)
		require.Equal(t, response.ErrInvalidRequest.Code, failure.Code)
	})
}
