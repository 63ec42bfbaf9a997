package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"campus-planner/backend/config"
	"campus-planner/backend/internal/dto"
	"campus-planner/backend/internal/model"
	"campus-planner/backend/internal/planning"
	"campus-planner/backend/internal/repository"
)

// ── 学业规划业务错误 ──

var (
	ErrPlanNotFound = errors.New("学期计划不存在")
)

// PlanningService 学业规划业务接口：为规划核心加载快照并记录结果
type PlanningService interface {
	ValidatePrerequisiteGraph(ctx context.Context) (*dto.GraphValidationResponse, error)
	EligibleCourses(ctx context.Context, studentID string) (*dto.EligibleCoursesResponse, error)
	ValidatePlan(ctx context.Context, req *dto.ValidatePlanRequest) (*planning.ValidationResult, error)
	GenerateSemesterPlan(ctx context.Context, req *dto.GeneratePlanRequest, callerID string) (*dto.PlanResponse, error)
	GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error)
	ListPlans(ctx context.Context, studentID string, req *dto.PlanListRequest) ([]dto.PlanSummary, int64, error)
}

type planningService struct {
	repo       *repository.Repository
	planner    *planning.Planner
	maxCredits int
	logger     *zap.Logger
}

// NewPlanningService 创建 PlanningService 实例
func NewPlanningService(cfg *config.PlanningConfig, repo *repository.Repository, planner *planning.Planner, logger *zap.Logger) PlanningService {
	return &planningService{
		repo:       repo,
		planner:    planner,
		maxCredits: cfg.MaxRequestedCredits,
		logger:     logger,
	}
}

// ────────────────────── 先修图校验 ──────────────────────

func (s *planningService) ValidatePrerequisiteGraph(ctx context.Context) (*dto.GraphValidationResponse, error) {
	snap, err := s.loadSnapshot(ctx, "", "")
	if err != nil {
		s.logger.Error("加载先修图失败", zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(snap.Courses))
	codeByID := make(map[string]string, len(snap.Courses))
	for _, c := range snap.Courses {
		ids = append(ids, c.ID)
		codeByID[c.ID] = c.Code
	}

	result := planning.ValidateGraph(snap.Prerequisites, ids)
	resp := &dto.GraphValidationResponse{OK: result.OK, Cycle: result.Cycle}
	if !result.OK {
		resp.CycleCodes = make([]string, 0, len(result.Cycle))
		for _, id := range result.Cycle {
			if code, ok := codeByID[id]; ok {
				resp.CycleCodes = append(resp.CycleCodes, code)
			} else {
				resp.CycleCodes = append(resp.CycleCodes, id)
			}
		}
		s.logger.Warn("先修图存在环", zap.Strings("cycle", resp.CycleCodes))
	}
	return resp, nil
}

// ────────────────────── 可选课程 ──────────────────────

func (s *planningService) EligibleCourses(ctx context.Context, studentID string) (*dto.EligibleCoursesResponse, error) {
	snap, err := s.loadSnapshot(ctx, studentID, "")
	if err != nil {
		s.logger.Error("加载规划快照失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	completed := planning.CompletedCredits(snap.Courses, snap.Statuses)
	eligible := planning.FilterEligibleCourses(snap.Courses, snap.Statuses, snap.Prerequisites, completed)

	byID := make(map[string]*model.Course, len(snap.rows))
	for i := range snap.rows {
		byID[snap.rows[i].CourseID] = &snap.rows[i]
	}
	courses := make([]dto.CourseResponse, 0, len(eligible))
	for _, c := range eligible {
		courses = append(courses, *toCourseResponse(byID[c.ID]))
	}

	return &dto.EligibleCoursesResponse{
		StudentID:        studentID,
		CompletedCredits: completed,
		Courses:          courses,
	}, nil
}

// ────────────────────── 候选方案校验 ──────────────────────

func (s *planningService) ValidatePlan(ctx context.Context, req *dto.ValidatePlanRequest) (*planning.ValidationResult, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := planning.ValidateAll(req.ToPlanning(), toPlanningCourses(courses))
	return &result, nil
}

// ────────────────────── 生成学期计划 ──────────────────────

func (s *planningService) GenerateSemesterPlan(ctx context.Context, req *dto.GeneratePlanRequest, callerID string) (*dto.PlanResponse, error) {
	if _, err := s.repo.Semester.GetByID(ctx, req.SemesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("semester_id", req.SemesterID), zap.Error(err))
		return nil, err
	}

	requested := req.RequestedCredits
	if s.maxCredits > 0 && requested > s.maxCredits {
		s.logger.Info("申请学分超过上限，按上限规划",
			zap.String("student_id", req.StudentID),
			zap.Int("requested", requested),
			zap.Int("max", s.maxCredits),
		)
		requested = s.maxCredits
	}

	snap, err := s.loadSnapshot(ctx, req.StudentID, req.SemesterID)
	if err != nil {
		s.logger.Error("加载规划快照失败", zap.String("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}

	result := s.planner.Plan(ctx, planning.PlanRequest{
		StudentID:        req.StudentID,
		RequestedCredits: requested,
		SemesterID:       req.SemesterID,
	}, snap.Snapshot)

	record, err := newPlanRecord(req.SemesterID, result, callerID)
	if err != nil {
		s.logger.Error("序列化学期计划失败", zap.Error(err))
		return nil, err
	}
	if err := s.repo.PlanRecord.Create(ctx, record); err != nil {
		s.logger.Error("保存学期计划失败", zap.String("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}

	return &dto.PlanResponse{
		PlanID:     record.PlanID,
		SemesterID: record.SemesterID,
		Plan:       result,
		CreatedAt:  record.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

// ────────────────────── 计划记录 ──────────────────────

func (s *planningService) GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error) {
	record, err := s.repo.PlanRecord.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.logger.Error("查询学期计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	result, err := planResultFromRecord(record)
	if err != nil {
		s.logger.Error("解析学期计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.PlanResponse{
		PlanID:     record.PlanID,
		SemesterID: record.SemesterID,
		Plan:       result,
		CreatedAt:  record.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

func (s *planningService) ListPlans(ctx context.Context, studentID string, req *dto.PlanListRequest) ([]dto.PlanSummary, int64, error) {
	records, total, err := s.repo.PlanRecord.ListByStudent(ctx, studentID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出学期计划失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.PlanSummary, 0, len(records))
	for _, r := range records {
		list = append(list, dto.PlanSummary{
			PlanID:           r.PlanID,
			SemesterID:       r.SemesterID,
			RequestedCredits: r.RequestedCredits,
			TotalCredits:     r.TotalCredits,
			Valid:            r.Valid,
			Source:           r.Source,
			CreatedAt:        r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return list, total, nil
}

// ── 快照加载 ──

// planningSnapshot 规划核心快照，附带原始课程行用于响应映射
type planningSnapshot struct {
	planning.Snapshot
	rows []model.Course
}

// loadSnapshot 并发加载课程、先修边、学生状态与学期教学班。
// studentID 为空时不加载状态，semesterID 为空时不加载教学班。
func (s *planningService) loadSnapshot(ctx context.Context, studentID, semesterID string) (*planningSnapshot, error) {
	var (
		courses  []model.Course
		edges    []model.Prerequisite
		statuses []model.StudentCourseStatus
		sections []model.SectionRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		courses, err = s.repo.Course.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		edges, err = s.repo.Prerequisite.ListAll(gctx)
		return err
	})
	if studentID != "" {
		g.Go(func() error {
			var err error
			statuses, err = s.repo.StudentStatus.ListByStudent(gctx, studentID)
			return err
		})
	}
	if semesterID != "" {
		g.Go(func() error {
			var err error
			sections, err = s.repo.Section.ListBySemester(gctx, semesterID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &planningSnapshot{rows: courses}
	snap.Courses = toPlanningCourses(courses)

	snap.Prerequisites = make([]planning.Prerequisite, 0, len(edges))
	for _, e := range edges {
		snap.Prerequisites = append(snap.Prerequisites, planning.Prerequisite{
			CourseID:       e.CourseID,
			PrereqCourseID: e.PrereqCourseID,
		})
	}

	snap.Statuses = make([]planning.StudentStatus, 0, len(statuses))
	for _, st := range statuses {
		snap.Statuses = append(snap.Statuses, planning.StudentStatus{
			StudentID: st.StudentID,
			CourseID:  st.CourseID,
			Status:    planning.CourseStatus(st.Status),
		})
	}

	snap.Sections = make([]planning.ScheduledSection, 0, len(sections))
	for _, row := range sections {
		snap.Sections = append(snap.Sections, planning.ScheduledSection{
			CourseCode:  row.CourseCode,
			SectionType: planning.SectionType(row.SectionType),
			DayOfWeek:   row.DayOfWeek,
			Slots:       []string(row.Slots),
		})
	}

	return snap, nil
}

func toPlanningCourses(courses []model.Course) []planning.Course {
	out := make([]planning.Course, 0, len(courses))
	for _, c := range courses {
		out = append(out, planning.Course{
			ID:                  c.CourseID,
			Code:                c.Code,
			Name:                c.Name,
			CreditHours:         c.CreditHours,
			HasTheoretical:      c.HasTheoretical,
			HasPractical:        c.HasPractical,
			MinCreditsToOpen:    c.MinCreditsToOpen,
			IsConditionRequired: c.IsConditionRequired,
		})
	}
	return out
}

// ── 计划记录序列化 ──

func newPlanRecord(semesterID string, result *planning.PlanResult, callerID string) (*model.PlanRecord, error) {
	assignments, err := json.Marshal(result.Assignments)
	if err != nil {
		return nil, fmt.Errorf("序列化 assignments: %w", err)
	}
	validation, err := json.Marshal(result.Validation)
	if err != nil {
		return nil, fmt.Errorf("序列化 validation: %w", err)
	}

	return &model.PlanRecord{
		StudentID:        result.StudentID,
		SemesterID:       semesterID,
		RequestedCredits: result.RequestedCredits,
		Source:           string(result.Source),
		Valid:            result.Validation.Valid,
		TotalCredits:     result.Validation.TotalCredits,
		CompletedCredits: result.CompletedCredits,
		EligibleCount:    result.EligibleCount,
		Assignments:      datatypes.JSON(assignments),
		Validation:       datatypes.JSON(validation),
		Rationale:        result.Rationale,
		Score:            result.Score,
		CreatedBy:        &callerID,
	}, nil
}

func planResultFromRecord(record *model.PlanRecord) (*planning.PlanResult, error) {
	result := &planning.PlanResult{
		StudentID:        record.StudentID,
		RequestedCredits: record.RequestedCredits,
		Rationale:        record.Rationale,
		Score:            record.Score,
		Source:           planning.PlanSource(record.Source),
		CompletedCredits: record.CompletedCredits,
		EligibleCount:    record.EligibleCount,
	}
	if err := json.Unmarshal(record.Assignments, &result.Assignments); err != nil {
		return nil, fmt.Errorf("解析 assignments: %w", err)
	}
	if err := json.Unmarshal(record.Validation, &result.Validation); err != nil {
		return nil, fmt.Errorf("解析 validation: %w", err)
	}
	return result, nil
}
