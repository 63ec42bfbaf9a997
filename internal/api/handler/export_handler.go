package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-planner/backend/internal/service"
	"campus-planner/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	planningSvc service.PlanningService
}

// NewExportHandler 创建 ExportHandler；planningSvc 用于校验计划归属
func NewExportHandler(exportSvc service.ExportService, planningSvc service.PlanningService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, planningSvc: planningSvc}
}

// ExportPlanExcel 导出学期计划周课表
// GET /api/v1/export/plans/:id/xlsx
func (h *ExportHandler) ExportPlanExcel(c *gin.Context) {
	h.export(c, contentTypeXLSX, h.exportSvc.ExportPlanExcel)
}

// ExportPlanICS 导出学期计划日历
// GET /api/v1/export/plans/:id/ics
func (h *ExportHandler) ExportPlanICS(c *gin.Context) {
	h.export(c, contentTypeICS, h.exportSvc.ExportPlanICS)
}

func (h *ExportHandler) export(c *gin.Context, contentType string, render func(context.Context, string) (*bytes.Buffer, string, error)) {
	planID := c.Param("id")

	plan, err := h.planningSvc.GetPlan(c.Request.Context(), planID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	if !MustAccessStudent(c, plan.Plan.StudentID) {
		return
	}

	buf, filename, err := render(c.Request.Context(), planID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	response.Attachment(c, contentType, filename, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		response.NotFound(c, 14001, "学期计划不存在")
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 12001, "学期不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 16001, "生成导出文件失败")
	default:
		response.InternalError(c)
	}
}
