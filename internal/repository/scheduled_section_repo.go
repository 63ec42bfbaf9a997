package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-planner/backend/internal/model"
)

// ScheduledSectionRepository 教学班数据访问接口
type ScheduledSectionRepository interface {
	Create(ctx context.Context, section *model.ScheduledSection) error
	GetByID(ctx context.Context, id string) (*model.ScheduledSection, error)
	ListByDay(ctx context.Context, semesterDayID string) ([]model.ScheduledSection, error)
	// ListBySemester 返回学期内全部教学班，已关联课程代码与星期
	ListBySemester(ctx context.Context, semesterID string) ([]model.SectionRow, error)
	Update(ctx context.Context, section *model.ScheduledSection) error
	Delete(ctx context.Context, id string) error
}

type scheduledSectionRepo struct {
	db *gorm.DB
}

// NewScheduledSectionRepo 创建 ScheduledSectionRepository 实例
func NewScheduledSectionRepo(db *gorm.DB) ScheduledSectionRepository {
	return &scheduledSectionRepo{db: db}
}

func (r *scheduledSectionRepo) Create(ctx context.Context, section *model.ScheduledSection) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *scheduledSectionRepo) GetByID(ctx context.Context, id string) (*model.ScheduledSection, error) {
	var section model.ScheduledSection
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("SemesterDay").
		Where("section_id = ?", id).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *scheduledSectionRepo) ListByDay(ctx context.Context, semesterDayID string) ([]model.ScheduledSection, error) {
	var sections []model.ScheduledSection
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("semester_day_id = ?", semesterDayID).
		Order("slots[1] ASC, created_at ASC").
		Find(&sections).Error
	return sections, err
}

func (r *scheduledSectionRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.SectionRow, error) {
	var rows []model.SectionRow
	err := r.db.WithContext(ctx).
		Table("scheduled_sections AS s").
		Select("s.section_id, c.code AS course_code, s.section_type, d.day_of_week, s.slots").
		Joins("JOIN courses c ON c.course_id = s.course_id AND c.deleted_at IS NULL").
		Joins("JOIN semester_days d ON d.semester_day_id = s.semester_day_id").
		Where("d.semester_id = ?", semesterID).
		Order("c.code ASC, s.section_type DESC, s.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *scheduledSectionRepo) Update(ctx context.Context, section *model.ScheduledSection) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduledSection{}).
		Where("section_id = ?", section.SectionID).
		Updates(map[string]interface{}{
			"course_id":    section.CourseID,
			"section_type": section.SectionType,
			"slots":        section.Slots,
			"room":         section.Room,
			"updated_by":   section.UpdatedBy,
			"updated_at":   gorm.Expr("NOW()"),
		}).Error
}

func (r *scheduledSectionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("section_id = ?", id).
		Delete(&model.ScheduledSection{}).Error
}
