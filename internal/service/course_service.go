package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-planner/backend/internal/dto"
	"campus-planner/backend/internal/model"
	"campus-planner/backend/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound       = errors.New("课程不存在")
	ErrCourseCodeExists     = errors.New("课程代码已存在")
	ErrPrereqCourseNotFound = errors.New("先修课程不存在")
)

// CourseService 课程目录与先修关系业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	SetPrerequisites(ctx context.Context, id string, req *dto.SetPrerequisitesRequest, callerID string) (*dto.PrerequisitesResponse, error)
	ListPrerequisites(ctx context.Context, id string) (*dto.PrerequisitesResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	if _, err := s.repo.Course.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrCourseCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("检查课程代码失败", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}

	hasTheoretical := true
	if req.HasTheoretical != nil {
		hasTheoretical = *req.HasTheoretical
	}

	course := &model.Course{
		Code:                req.Code,
		Name:                req.Name,
		CreditHours:         req.CreditHours,
		HasTheoretical:      hasTheoretical,
		HasPractical:        req.HasPractical,
		MinCreditsToOpen:    req.MinCreditsToOpen,
		IsConditionRequired: req.IsConditionRequired,
	}
	course.CreatedBy = &callerID
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(course), nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != course.Code {
		existing, err := s.repo.Course.GetByCode(ctx, *req.Code)
		if err == nil && existing.CourseID != id {
			return nil, ErrCourseCodeExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("检查课程代码失败", zap.String("code", *req.Code), zap.Error(err))
			return nil, err
		}
		course.Code = *req.Code
	}
	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.CreditHours != nil {
		course.CreditHours = *req.CreditHours
	}
	if req.HasTheoretical != nil {
		course.HasTheoretical = *req.HasTheoretical
	}
	if req.HasPractical != nil {
		course.HasPractical = *req.HasPractical
	}
	if req.ClearMinCredits {
		course.MinCreditsToOpen = nil
	} else if req.MinCreditsToOpen != nil {
		course.MinCreditsToOpen = req.MinCreditsToOpen
	}
	if req.IsConditionRequired != nil {
		course.IsConditionRequired = *req.IsConditionRequired
	}
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.getCourse(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Course.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Prerequisites ──────────────────────

// SetPrerequisites 全量替换课程的先修课程。
// 重复 ID 与指向自身的 ID 被忽略；任一先修课程不存在时整体失败。
// 先修图允许出现环，环由 /prerequisites/validate 报告。
func (s *courseService) SetPrerequisites(ctx context.Context, id string, req *dto.SetPrerequisitesRequest, callerID string) (*dto.PrerequisitesResponse, error) {
	if _, err := s.getCourse(ctx, id); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(req.PrereqIDs))
	prereqIDs := make([]string, 0, len(req.PrereqIDs))
	for _, pid := range req.PrereqIDs {
		if pid == id || seen[pid] {
			continue
		}
		seen[pid] = true
		prereqIDs = append(prereqIDs, pid)
	}
	sort.Strings(prereqIDs)

	found, err := s.repo.Course.ListByIDs(ctx, prereqIDs)
	if err != nil {
		s.logger.Error("查询先修课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if len(found) != len(prereqIDs) {
		return nil, ErrPrereqCourseNotFound
	}

	if err := s.repo.Prerequisite.ReplaceForCourse(ctx, id, prereqIDs, callerID); err != nil {
		s.logger.Error("设置先修课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("先修课程已更新",
		zap.String("course_id", id),
		zap.Int("count", len(prereqIDs)),
		zap.String("operator", callerID),
	)

	return &dto.PrerequisitesResponse{CourseID: id, Prerequisites: toCourseBriefs(found)}, nil
}

func (s *courseService) ListPrerequisites(ctx context.Context, id string) (*dto.PrerequisitesResponse, error) {
	if _, err := s.getCourse(ctx, id); err != nil {
		return nil, err
	}

	edges, err := s.repo.Prerequisite.ListByCourse(ctx, id)
	if err != nil {
		s.logger.Error("查询先修课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	prereqs := make([]model.Course, 0, len(edges))
	for _, e := range edges {
		if e.PrereqCourse != nil {
			prereqs = append(prereqs, *e.PrereqCourse)
		}
	}
	return &dto.PrerequisitesResponse{CourseID: id, Prerequisites: toCourseBriefs(prereqs)}, nil
}

// ── 内部辅助方法 ──

func (s *courseService) getCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

func toCourseResponse(course *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:                  course.CourseID,
		Code:                course.Code,
		Name:                course.Name,
		CreditHours:         course.CreditHours,
		HasTheoretical:      course.HasTheoretical,
		HasPractical:        course.HasPractical,
		MinCreditsToOpen:    course.MinCreditsToOpen,
		IsConditionRequired: course.IsConditionRequired,
		Version:             course.Version,
		CreatedAt:           course.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:           course.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toCourseBriefs(courses []model.Course) []dto.CourseBrief {
	briefs := make([]dto.CourseBrief, 0, len(courses))
	for _, c := range courses {
		briefs = append(briefs, dto.CourseBrief{
			ID:          c.CourseID,
			Code:        c.Code,
			Name:        c.Name,
			CreditHours: c.CreditHours,
		})
	}
	return briefs
}
