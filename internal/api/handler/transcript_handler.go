package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-planner/backend/internal/dto"
	"campus-planner/backend/internal/service"
	"campus-planner/backend/pkg/response"
)

// TranscriptHandler 学生成绩与课程状态 HTTP 处理器
type TranscriptHandler struct {
	transcriptSvc service.TranscriptService
}

// NewTranscriptHandler 创建 TranscriptHandler
func NewTranscriptHandler(transcriptSvc service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{transcriptSvc: transcriptSvc}
}

// GetSummary 学生学业概览：GPA 与已修课程
// GET /api/v1/students/:id/summary
func (h *TranscriptHandler) GetSummary(c *gin.Context) {
	studentID := c.Param("id")
	if !MustAccessStudent(c, studentID) {
		return
	}

	summary, err := h.transcriptSvc.GetSummary(c.Request.Context(), studentID)
	if err != nil {
		h.handleTranscriptError(c, err)
		return
	}

	response.OK(c, summary)
}

// UpsertStatuses 批量写入学生课程状态
// PUT /api/v1/students/:id/statuses
func (h *TranscriptHandler) UpsertStatuses(c *gin.Context) {
	var req dto.UpsertStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	statuses, err := h.transcriptSvc.UpsertStatuses(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleTranscriptError(c, err)
		return
	}

	response.OK(c, gin.H{"list": statuses})
}

func (h *TranscriptHandler) handleTranscriptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStatusCourseNotFound):
		response.BadRequest(c, 15001, "课程状态引用的课程不存在")
	default:
		response.InternalError(c)
	}
}
