package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-planner/backend/internal/model"
)

// PrerequisiteRepository 先修关系数据访问接口
type PrerequisiteRepository interface {
	ListAll(ctx context.Context) ([]model.Prerequisite, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Prerequisite, error)
	// ReplaceForCourse 在事务中全量替换课程的先修：先删除旧边，再批量插入新边
	ReplaceForCourse(ctx context.Context, courseID string, prereqIDs []string, callerID string) error
}

type prerequisiteRepo struct {
	db *gorm.DB
}

// NewPrerequisiteRepo 创建 PrerequisiteRepository 实例
func NewPrerequisiteRepo(db *gorm.DB) PrerequisiteRepository {
	return &prerequisiteRepo{db: db}
}

func (r *prerequisiteRepo) ListAll(ctx context.Context) ([]model.Prerequisite, error) {
	var edges []model.Prerequisite
	err := r.db.WithContext(ctx).
		Order("course_id ASC, prereq_course_id ASC").
		Find(&edges).Error
	return edges, err
}

func (r *prerequisiteRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Prerequisite, error) {
	var edges []model.Prerequisite
	err := r.db.WithContext(ctx).
		Preload("PrereqCourse").
		Where("course_id = ?", courseID).
		Order("prereq_course_id ASC").
		Find(&edges).Error
	return edges, err
}

func (r *prerequisiteRepo) ReplaceForCourse(ctx context.Context, courseID string, prereqIDs []string, callerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).
			Delete(&model.Prerequisite{}).Error; err != nil {
			return err
		}
		if len(prereqIDs) == 0 {
			return nil
		}
		edges := make([]model.Prerequisite, 0, len(prereqIDs))
		for _, pid := range prereqIDs {
			edge := model.Prerequisite{CourseID: courseID, PrereqCourseID: pid}
			edge.CreatedBy = &callerID
			edges = append(edges, edge)
		}
		return tx.Create(&edges).Error
	})
}
