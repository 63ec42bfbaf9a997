package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-planner/backend/internal/dto"
	"campus-planner/backend/internal/service"
	"campus-planner/backend/pkg/response"
)

// ScheduleHandler 教学日与教学班 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ── 教学日 ──

// ListDays 获取学期的教学日
// GET /api/v1/semesters/:id/days
func (h *ScheduleHandler) ListDays(c *gin.Context) {
	days, err := h.scheduleSvc.ListDays(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": days})
}

// CreateDay 为学期添加教学日
// POST /api/v1/semesters/:id/days
func (h *ScheduleHandler) CreateDay(c *gin.Context) {
	var req dto.CreateSemesterDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	day, err := h.scheduleSvc.CreateDay(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, day)
}

// DeleteDay 删除教学日及其教学班
// DELETE /api/v1/semester-days/:id
func (h *ScheduleHandler) DeleteDay(c *gin.Context) {
	if err := h.scheduleSvc.DeleteDay(c.Request.Context(), c.Param("id")); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 教学班 ──

// ListSections 获取教学日下的教学班
// GET /api/v1/semester-days/:id/sections
func (h *ScheduleHandler) ListSections(c *gin.Context) {
	sections, err := h.scheduleSvc.ListSections(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": sections})
}

// CreateSection 在教学日下创建教学班
// POST /api/v1/semester-days/:id/sections
func (h *ScheduleHandler) CreateSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	section, err := h.scheduleSvc.CreateSection(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, section)
}

// UpdateSection 更新教学班
// PUT /api/v1/sections/:id
func (h *ScheduleHandler) UpdateSection(c *gin.Context) {
	var req dto.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	section, err := h.scheduleSvc.UpdateSection(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, section)
}

// DeleteSection 删除教学班
// DELETE /api/v1/sections/:id
func (h *ScheduleHandler) DeleteSection(c *gin.Context) {
	if err := h.scheduleSvc.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleScheduleError 统一处理排课模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 12001, "学期不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 11001, "课程不存在")
	case errors.Is(err, service.ErrSemesterDayNotFound):
		response.NotFound(c, 13001, "教学日不存在")
	case errors.Is(err, service.ErrSemesterDayExists):
		response.Conflict(c, 13002, "该学期已存在相同星期的教学日")
	case errors.Is(err, service.ErrWeekdayInvalid):
		response.BadRequest(c, 13003, "星期取值无效")
	case errors.Is(err, service.ErrSectionNotFound):
		response.NotFound(c, 13004, "教学班不存在")
	case errors.Is(err, service.ErrSlotsInvalid):
		response.BadRequest(c, 13005, "节次无效或重复")
	case errors.Is(err, service.ErrSectionTypeInvalid):
		response.BadRequest(c, 13006, "课程不包含该类型的教学班")
	default:
		response.InternalError(c)
	}
}
