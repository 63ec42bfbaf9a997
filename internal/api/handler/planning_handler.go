package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-planner/backend/internal/dto"
	"campus-planner/backend/internal/service"
	"campus-planner/backend/pkg/response"
)

// PlanningHandler 学业规划 HTTP 处理器
type PlanningHandler struct {
	planningSvc service.PlanningService
}

// NewPlanningHandler 创建 PlanningHandler
func NewPlanningHandler(planningSvc service.PlanningService) *PlanningHandler {
	return &PlanningHandler{planningSvc: planningSvc}
}

// ValidatePrerequisites 校验先修图是否存在环
// GET /api/v1/prerequisites/validate
func (h *PlanningHandler) ValidatePrerequisites(c *gin.Context) {
	result, err := h.planningSvc.ValidatePrerequisiteGraph(c.Request.Context())
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}

	response.OK(c, result)
}

// EligibleCourses 获取学生当前可选课程
// GET /api/v1/planning/students/:id/eligible-courses
func (h *PlanningHandler) EligibleCourses(c *gin.Context) {
	studentID := c.Param("id")
	if !MustAccessStudent(c, studentID) {
		return
	}

	result, err := h.planningSvc.EligibleCourses(c.Request.Context(), studentID)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}

	response.OK(c, result)
}

// ValidatePlan 校验候选方案的课表冲突与学分
// POST /api/v1/planning/validate
func (h *PlanningHandler) ValidatePlan(c *gin.Context) {
	var req dto.ValidatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	result, err := h.planningSvc.ValidatePlan(c.Request.Context(), &req)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}

	response.OK(c, result)
}

// GenerateSemesterPlan 生成并记录学期计划
// POST /api/v1/planning/semester-plan
func (h *PlanningHandler) GenerateSemesterPlan(c *gin.Context) {
	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}
	if !MustAccessStudent(c, req.StudentID) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	plan, err := h.planningSvc.GenerateSemesterPlan(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}

	response.Created(c, plan)
}

// GetPlan 获取已记录的学期计划
// GET /api/v1/planning/plans/:id
func (h *PlanningHandler) GetPlan(c *gin.Context) {
	plan, err := h.planningSvc.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}
	if !MustAccessStudent(c, plan.Plan.StudentID) {
		return
	}

	response.OK(c, plan)
}

// ListPlans 分页获取学生的学期计划记录
// GET /api/v1/planning/students/:id/plans
func (h *PlanningHandler) ListPlans(c *gin.Context) {
	studentID := c.Param("id")
	if !MustAccessStudent(c, studentID) {
		return
	}

	var req dto.PlanListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	list, total, err := h.planningSvc.ListPlans(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// handlePlanningError 统一处理学业规划业务错误
func (h *PlanningHandler) handlePlanningError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		response.NotFound(c, 14001, "学期计划不存在")
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 12001, "学期不存在")
	default:
		response.InternalError(c)
	}
}
