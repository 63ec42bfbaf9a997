package service

import (
	"go.uber.org/zap"

	"campus-planner/backend/config"
	"campus-planner/backend/internal/planning"
	"campus-planner/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Course     CourseService
	Semester   SemesterService
	Schedule   ScheduleService
	Planning   PlanningService
	Transcript TranscriptService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	planner *planning.Planner,
	logger *zap.Logger,
) *Service {
	return &Service{
		Course:     NewCourseService(repo, logger),
		Semester:   NewSemesterService(repo, logger),
		Schedule:   NewScheduleService(repo, logger),
		Planning:   NewPlanningService(&cfg.Planning, repo, planner, logger),
		Transcript: NewTranscriptService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
