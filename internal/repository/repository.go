package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Course        CourseRepository
	Prerequisite  PrerequisiteRepository
	StudentStatus StudentStatusRepository
	Semester      SemesterRepository
	SemesterDay   SemesterDayRepository
	Section       ScheduledSectionRepository
	Enrollment    EnrollmentRepository
	PlanRecord    PlanRecordRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		Course:        NewCourseRepo(db),
		Prerequisite:  NewPrerequisiteRepo(db),
		StudentStatus: NewStudentStatusRepo(db),
		Semester:      NewSemesterRepo(db),
		SemesterDay:   NewSemesterDayRepo(db),
		Section:       NewScheduledSectionRepo(db),
		Enrollment:    NewEnrollmentRepo(db),
		PlanRecord:    NewPlanRecordRepo(db),
	}
}

// BeginTx 开启事务。未绑定数据库（单元测试中的 mock 聚合）时返回 nil 事务，
// 调用方按 nil 处理：直接在原 Repository 上执行。
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 副本；tx 为 nil 时返回自身
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
