package handler

import "campus-planner/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Course     *CourseHandler
	Semester   *SemesterHandler
	Schedule   *ScheduleHandler
	Planning   *PlanningHandler
	Transcript *TranscriptHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Course:     NewCourseHandler(svc.Course),
		Semester:   NewSemesterHandler(svc.Semester),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Planning:   NewPlanningHandler(svc.Planning),
		Transcript: NewTranscriptHandler(svc.Transcript),
		Export:     NewExportHandler(svc.Export, svc.Planning),
	}
}
