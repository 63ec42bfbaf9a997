package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-planner/backend/internal/model"
)

// PlanRecordRepository 学期计划记录数据访问接口
type PlanRecordRepository interface {
	Create(ctx context.Context, record *model.PlanRecord) error
	GetByID(ctx context.Context, id string) (*model.PlanRecord, error)
	ListByStudent(ctx context.Context, studentID string, offset, limit int) ([]model.PlanRecord, int64, error)
}

type planRecordRepo struct {
	db *gorm.DB
}

// NewPlanRecordRepo 创建 PlanRecordRepository 实例
func NewPlanRecordRepo(db *gorm.DB) PlanRecordRepository {
	return &planRecordRepo{db: db}
}

func (r *planRecordRepo) Create(ctx context.Context, record *model.PlanRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *planRecordRepo) GetByID(ctx context.Context, id string) (*model.PlanRecord, error) {
	var record model.PlanRecord
	err := r.db.WithContext(ctx).
		Preload("Semester").
		Where("plan_id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *planRecordRepo) ListByStudent(ctx context.Context, studentID string, offset, limit int) ([]model.PlanRecord, int64, error) {
	var records []model.PlanRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&model.PlanRecord{}).Where("student_id = ?", studentID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
