package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-planner/backend/internal/model"
)

// StudentStatusRepository 学生课程状态数据访问接口
type StudentStatusRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]model.StudentCourseStatus, error)
	// Upsert 按 (student_id, course_id) 插入或覆盖状态
	Upsert(ctx context.Context, status *model.StudentCourseStatus) error
}

type studentStatusRepo struct {
	db *gorm.DB
}

// NewStudentStatusRepo 创建 StudentStatusRepository 实例
func NewStudentStatusRepo(db *gorm.DB) StudentStatusRepository {
	return &studentStatusRepo{db: db}
}

func (r *studentStatusRepo) ListByStudent(ctx context.Context, studentID string) ([]model.StudentCourseStatus, error) {
	var statuses []model.StudentCourseStatus
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("course_id ASC").
		Find(&statuses).Error
	return statuses, err
}

func (r *studentStatusRepo) Upsert(ctx context.Context, status *model.StudentCourseStatus) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     status.Status,
				"updated_by": status.UpdatedBy,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(status).Error
}
