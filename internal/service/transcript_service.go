package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"campus-planner/backend/internal/dto"
	"campus-planner/backend/internal/model"
	"campus-planner/backend/internal/planning"
	"campus-planner/backend/internal/repository"
)

// ── 成绩 / 课程状态业务错误 ──

var (
	ErrStatusCourseNotFound = errors.New("课程状态引用的课程不存在")
)

// TranscriptService 学生成绩概览与课程状态业务接口
type TranscriptService interface {
	GetSummary(ctx context.Context, studentID string) (*dto.StudentSummaryResponse, error)
	UpsertStatuses(ctx context.Context, studentID string, req *dto.UpsertStatusesRequest, callerID string) ([]dto.CourseStatusResponse, error)
}

type transcriptService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTranscriptService 创建 TranscriptService 实例
func NewTranscriptService(repo *repository.Repository, logger *zap.Logger) TranscriptService {
	return &transcriptService{repo: repo, logger: logger}
}

// ────────────────────── GetSummary ──────────────────────

// GetSummary 汇总学生的学期 GPA、累计 GPA 与已修学分。
// 未出分的选课记录只出现在课程列表中，不参与 GPA 计算。
func (s *transcriptService) GetSummary(ctx context.Context, studentID string) (*dto.StudentSummaryResponse, error) {
	enrollments, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询选课记录失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	statuses, err := s.repo.StudentStatus.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询课程状态失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	graded := make([]planning.GradedCourse, 0, len(enrollments))
	courses := make([]dto.TranscriptCourse, 0, len(enrollments))
	for _, e := range enrollments {
		item := dto.TranscriptCourse{CourseID: e.CourseID, Grade: e.Grade}
		credits := 0
		if e.Course != nil {
			item.Code = e.Course.Code
			item.Name = e.Course.Name
			item.CreditHours = e.Course.CreditHours
			credits = e.Course.CreditHours
		}
		semesterName := ""
		if e.Semester != nil {
			semesterName = e.Semester.Name
		}
		item.SemesterName = semesterName

		if e.Grade != nil {
			point := planning.GradePoint(*e.Grade)
			item.GradePoint = &point
			item.Outcome = planning.GradeOutcome(*e.Grade)
			graded = append(graded, planning.GradedCourse{
				SemesterID:   e.SemesterID,
				SemesterName: semesterName,
				CreditHours:  credits,
				GradePoint:   point,
			})
		}
		courses = append(courses, item)
	}

	semesters := make([]dto.SemesterGPAItem, 0)
	for _, sg := range planning.SemesterGPAs(graded) {
		semesters = append(semesters, dto.SemesterGPAItem{
			SemesterID:     sg.SemesterID,
			SemesterName:   sg.SemesterName,
			GPA:            sg.Value,
			Classification: planning.ClassifyGPA(sg.Value),
		})
	}
	cumulative := planning.CumulativeGPA(graded)

	return &dto.StudentSummaryResponse{
		StudentID:                studentID,
		CompletedCredits:         completedCreditsOf(statuses),
		CumulativeGPA:            cumulative,
		CumulativeClassification: planning.ClassifyGPA(cumulative),
		Semesters:                semesters,
		Courses:                  courses,
	}, nil
}

// ────────────────────── UpsertStatuses ──────────────────────

// UpsertStatuses 在同一事务内写入多门课程状态，每个 (学生, 课程) 只保留一条
func (s *transcriptService) UpsertStatuses(ctx context.Context, studentID string, req *dto.UpsertStatusesRequest, callerID string) ([]dto.CourseStatusResponse, error) {
	// 同一课程多次出现时以最后一次为准
	latest := make(map[string]string, len(req.Statuses))
	order := make([]string, 0, len(req.Statuses))
	for _, st := range req.Statuses {
		if _, ok := latest[st.CourseID]; !ok {
			order = append(order, st.CourseID)
		}
		latest[st.CourseID] = st.Status
	}

	found, err := s.repo.Course.ListByIDs(ctx, order)
	if err != nil {
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	if len(found) != len(order) {
		return nil, ErrStatusCourseNotFound
	}
	codeByID := make(map[string]string, len(found))
	for _, c := range found {
		codeByID[c.CourseID] = c.Code
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	result := make([]dto.CourseStatusResponse, 0, len(order))
	for _, courseID := range order {
		status := &model.StudentCourseStatus{
			StudentID: studentID,
			CourseID:  courseID,
			Status:    latest[courseID],
			UpdatedBy: &callerID,
		}
		if err := txRepo.StudentStatus.Upsert(ctx, status); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("写入课程状态失败",
				zap.String("student_id", studentID),
				zap.String("course_id", courseID),
				zap.Error(err),
			)
			return nil, err
		}
		result = append(result, dto.CourseStatusResponse{
			CourseID:   courseID,
			CourseCode: codeByID[courseID],
			Status:     status.Status,
			UpdatedAt:  status.UpdatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("课程状态已更新",
		zap.String("student_id", studentID),
		zap.Int("count", len(result)),
		zap.String("operator", callerID),
	)
	return result, nil
}

// completedCreditsOf 已通过课程学分合计（依赖预加载的 Course）
func completedCreditsOf(statuses []model.StudentCourseStatus) int {
	courses := make([]planning.Course, 0, len(statuses))
	converted := make([]planning.StudentStatus, 0, len(statuses))
	for _, st := range statuses {
		if st.Course != nil {
			courses = append(courses, planning.Course{ID: st.CourseID, CreditHours: st.Course.CreditHours})
		}
		converted = append(converted, planning.StudentStatus{
			StudentID: st.StudentID,
			CourseID:  st.CourseID,
			Status:    planning.CourseStatus(st.Status),
		})
	}
	return planning.CompletedCredits(courses, converted)
}
