package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-planner/backend/internal/model"
)

// EnrollmentRepository 选课记录数据访问接口
type EnrollmentRepository interface {
	// ListByStudent 返回学生全部选课记录，预加载课程与学期
	ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Semester").
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&enrollments).Error
	return enrollments, err
}
