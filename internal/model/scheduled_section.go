package model

import "github.com/lib/pq"

// ScheduledSection 已排教学班 — 对应 scheduled_sections
type ScheduledSection struct {
	SectionID     string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"section_id"`
	CourseID      string         `gorm:"type:uuid;not null;index"                       json:"course_id"`
	SemesterDayID string         `gorm:"type:uuid;not null;index"                       json:"semester_day_id"`
	SectionType   string         `gorm:"type:varchar(20);not null"                      json:"section_type"` // THEORY | PRACTICAL
	Slots         pq.StringArray `gorm:"type:text[];not null"                           json:"slots"`        // P1..P6，有序
	Room          *string        `gorm:"type:varchar(50)"                               json:"room,omitempty"`
	BaseModel

	// 关联
	Course      *Course      `gorm:"foreignKey:CourseID;references:CourseID"           json:"course,omitempty"`
	SemesterDay *SemesterDay `gorm:"foreignKey:SemesterDayID;references:SemesterDayID" json:"semester_day,omitempty"`
}

// TableName 指定表名
func (ScheduledSection) TableName() string { return "scheduled_sections" }

// SectionRow 教学班与课程代码、星期的联表结果
type SectionRow struct {
	SectionID   string         `gorm:"column:section_id"`
	CourseCode  string         `gorm:"column:course_code"`
	SectionType string         `gorm:"column:section_type"`
	DayOfWeek   string         `gorm:"column:day_of_week"`
	Slots       pq.StringArray `gorm:"column:slots;type:text[]"`
}
