package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-planner/backend/internal/model"
)

// SemesterDayRepository 学期教学日数据访问接口
type SemesterDayRepository interface {
	Create(ctx context.Context, day *model.SemesterDay) error
	GetByID(ctx context.Context, id string) (*model.SemesterDay, error)
	GetBySemesterAndDay(ctx context.Context, semesterID, dayOfWeek string) (*model.SemesterDay, error)
	ListBySemester(ctx context.Context, semesterID string) ([]model.SemesterDay, error)
	// Delete 删除教学日及其下所有教学班
	Delete(ctx context.Context, id string) error
}

type semesterDayRepo struct {
	db *gorm.DB
}

// NewSemesterDayRepo 创建 SemesterDayRepository 实例
func NewSemesterDayRepo(db *gorm.DB) SemesterDayRepository {
	return &semesterDayRepo{db: db}
}

func (r *semesterDayRepo) Create(ctx context.Context, day *model.SemesterDay) error {
	return r.db.WithContext(ctx).Create(day).Error
}

func (r *semesterDayRepo) GetByID(ctx context.Context, id string) (*model.SemesterDay, error) {
	var day model.SemesterDay
	err := r.db.WithContext(ctx).
		Where("semester_day_id = ?", id).
		First(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *semesterDayRepo) GetBySemesterAndDay(ctx context.Context, semesterID, dayOfWeek string) (*model.SemesterDay, error) {
	var day model.SemesterDay
	err := r.db.WithContext(ctx).
		Where("semester_id = ? AND day_of_week = ?", semesterID, dayOfWeek).
		First(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *semesterDayRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.SemesterDay, error) {
	var days []model.SemesterDay
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", semesterID).
		Order("array_position(ARRAY['MON','TUE','WED','THU','FRI','SAT','SUN']::varchar[], day_of_week)").
		Find(&days).Error
	return days, err
}

func (r *semesterDayRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("semester_day_id = ?", id).
			Delete(&model.ScheduledSection{}).Error; err != nil {
			return err
		}
		return tx.Where("semester_day_id = ?", id).
			Delete(&model.SemesterDay{}).Error
	})
}
