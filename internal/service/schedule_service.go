package service

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-planner/backend/internal/dto"
	"campus-planner/backend/internal/model"
	"campus-planner/backend/internal/planning"
	"campus-planner/backend/internal/repository"
)

// ── 教学日 / 教学班业务错误 ──

var (
	ErrSemesterDayNotFound = errors.New("教学日不存在")
	ErrSemesterDayExists   = errors.New("该学期已存在相同星期的教学日")
	ErrWeekdayInvalid      = errors.New("星期取值无效")
	ErrSectionNotFound     = errors.New("教学班不存在")
	ErrSlotsInvalid        = errors.New("节次无效或重复")
	ErrSectionTypeInvalid  = errors.New("课程不包含该类型的教学班")
)

// ScheduleService 学期课表（教学日与教学班）业务接口
type ScheduleService interface {
	CreateDay(ctx context.Context, semesterID string, req *dto.CreateSemesterDayRequest, callerID string) (*dto.SemesterDayResponse, error)
	ListDays(ctx context.Context, semesterID string) ([]dto.SemesterDayResponse, error)
	DeleteDay(ctx context.Context, dayID string) error

	CreateSection(ctx context.Context, dayID string, req *dto.CreateSectionRequest, callerID string) (*dto.SectionResponse, error)
	ListSections(ctx context.Context, dayID string) ([]dto.SectionResponse, error)
	UpdateSection(ctx context.Context, id string, req *dto.UpdateSectionRequest, callerID string) (*dto.SectionResponse, error)
	DeleteSection(ctx context.Context, id string) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ════════════════════════ 教学日 ════════════════════════

func (s *scheduleService) CreateDay(ctx context.Context, semesterID string, req *dto.CreateSemesterDayRequest, callerID string) (*dto.SemesterDayResponse, error) {
	if !planning.IsWeekday(req.DayOfWeek) {
		return nil, ErrWeekdayInvalid
	}
	if _, err := s.repo.Semester.GetByID(ctx, semesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.SemesterDay.GetBySemesterAndDay(ctx, semesterID, req.DayOfWeek); err == nil {
		return nil, ErrSemesterDayExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("检查教学日失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	day := &model.SemesterDay{
		SemesterID: semesterID,
		DayOfWeek:  req.DayOfWeek,
	}
	day.CreatedBy = &callerID
	day.UpdatedBy = &callerID

	if err := s.repo.SemesterDay.Create(ctx, day); err != nil {
		s.logger.Error("创建教学日失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}
	return toSemesterDayResponse(day), nil
}

func (s *scheduleService) ListDays(ctx context.Context, semesterID string) ([]dto.SemesterDayResponse, error) {
	if _, err := s.repo.Semester.GetByID(ctx, semesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	days, err := s.repo.SemesterDay.ListBySemester(ctx, semesterID)
	if err != nil {
		s.logger.Error("列出教学日失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SemesterDayResponse, 0, len(days))
	for i := range days {
		result = append(result, *toSemesterDayResponse(&days[i]))
	}
	return result, nil
}

// DeleteDay 删除教学日，其下教学班一并删除
func (s *scheduleService) DeleteDay(ctx context.Context, dayID string) error {
	if _, err := s.getDay(ctx, dayID); err != nil {
		return err
	}
	if err := s.repo.SemesterDay.Delete(ctx, dayID); err != nil {
		s.logger.Error("删除教学日失败", zap.String("id", dayID), zap.Error(err))
		return err
	}
	return nil
}

// ════════════════════════ 教学班 ════════════════════════

func (s *scheduleService) CreateSection(ctx context.Context, dayID string, req *dto.CreateSectionRequest, callerID string) (*dto.SectionResponse, error) {
	day, err := s.getDay(ctx, dayID)
	if err != nil {
		return nil, err
	}
	course, err := s.getCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if err := checkSectionType(course, req.SectionType); err != nil {
		return nil, err
	}
	if !validSlots(req.Slots) {
		return nil, ErrSlotsInvalid
	}

	section := &model.ScheduledSection{
		CourseID:      course.CourseID,
		SemesterDayID: day.SemesterDayID,
		SectionType:   req.SectionType,
		Slots:         pq.StringArray(req.Slots),
		Room:          req.Room,
	}
	section.CreatedBy = &callerID
	section.UpdatedBy = &callerID

	if err := s.repo.Section.Create(ctx, section); err != nil {
		s.logger.Error("创建教学班失败", zap.String("semester_day_id", dayID), zap.Error(err))
		return nil, err
	}

	section.Course = course
	section.SemesterDay = day
	return toSectionResponse(section), nil
}

func (s *scheduleService) ListSections(ctx context.Context, dayID string) ([]dto.SectionResponse, error) {
	day, err := s.getDay(ctx, dayID)
	if err != nil {
		return nil, err
	}

	sections, err := s.repo.Section.ListByDay(ctx, dayID)
	if err != nil {
		s.logger.Error("列出教学班失败", zap.String("semester_day_id", dayID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		sections[i].SemesterDay = day
		result = append(result, *toSectionResponse(&sections[i]))
	}
	return result, nil
}

func (s *scheduleService) UpdateSection(ctx context.Context, id string, req *dto.UpdateSectionRequest, callerID string) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("查询教学班失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	course := section.Course
	if req.CourseID != nil && *req.CourseID != section.CourseID {
		course, err = s.getCourse(ctx, *req.CourseID)
		if err != nil {
			return nil, err
		}
		section.CourseID = course.CourseID
		section.Course = course
	}
	if req.SectionType != nil {
		section.SectionType = *req.SectionType
	}
	if course != nil {
		if err := checkSectionType(course, section.SectionType); err != nil {
			return nil, err
		}
	}
	if req.Slots != nil {
		if !validSlots(req.Slots) {
			return nil, ErrSlotsInvalid
		}
		section.Slots = pq.StringArray(req.Slots)
	}
	if req.Room != nil {
		section.Room = req.Room
	}
	section.UpdatedBy = &callerID

	if err := s.repo.Section.Update(ctx, section); err != nil {
		s.logger.Error("更新教学班失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSectionResponse(section), nil
}

func (s *scheduleService) DeleteSection(ctx context.Context, id string) error {
	if _, err := s.repo.Section.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		s.logger.Error("查询教学班失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Section.Delete(ctx, id); err != nil {
		s.logger.Error("删除教学班失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *scheduleService) getDay(ctx context.Context, id string) (*model.SemesterDay, error) {
	day, err := s.repo.SemesterDay.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterDayNotFound
		}
		s.logger.Error("查询教学日失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return day, nil
}

func (s *scheduleService) getCourse(ctx context.Context, id string) (*model.Course, error) {
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

func checkSectionType(course *model.Course, sectionType string) error {
	switch planning.SectionType(sectionType) {
	case planning.SectionTheory:
		if course.HasTheoretical {
			return nil
		}
	case planning.SectionPractical:
		if course.HasPractical {
			return nil
		}
	}
	return ErrSectionTypeInvalid
}

// validSlots 节次非空、取值合法且不重复
func validSlots(slots []string) bool {
	if len(slots) == 0 {
		return false
	}
	seen := make(map[string]bool, len(slots))
	for _, slot := range slots {
		if !planning.IsSlot(slot) || seen[slot] {
			return false
		}
		seen[slot] = true
	}
	return true
}

func toSemesterDayResponse(day *model.SemesterDay) *dto.SemesterDayResponse {
	return &dto.SemesterDayResponse{
		ID:         day.SemesterDayID,
		SemesterID: day.SemesterID,
		DayOfWeek:  day.DayOfWeek,
		CreatedAt:  day.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toSectionResponse(section *model.ScheduledSection) *dto.SectionResponse {
	resp := &dto.SectionResponse{
		ID:            section.SectionID,
		SemesterDayID: section.SemesterDayID,
		SectionType:   section.SectionType,
		Slots:         []string(section.Slots),
		Room:          section.Room,
		CreatedAt:     section.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     section.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if section.SemesterDay != nil {
		resp.DayOfWeek = section.SemesterDay.DayOfWeek
	}
	if section.Course != nil {
		resp.Course = &dto.CourseBrief{
			ID:          section.Course.CourseID,
			Code:        section.Course.Code,
			Name:        section.Course.Name,
			CreditHours: section.Course.CreditHours,
		}
	}
	return resp
}
