package model

import "time"

// Semester 学期表 — 对应 semesters
type Semester struct {
	SemesterID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"semester_id"`
	Name       string    `gorm:"type:varchar(100);not null"                     json:"name"`
	StartDate  time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null"                             json:"end_date"`
	IsActive   bool      `gorm:"not null;default:false"                         json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (Semester) TableName() string { return "semesters" }

// SemesterDay 学期教学日 — 对应 semester_days，(semester_id, day_of_week) 唯一
type SemesterDay struct {
	SemesterDayID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"              json:"semester_day_id"`
	SemesterID    string `gorm:"type:uuid;not null;uniqueIndex:uq_semester_day"              json:"semester_id"`
	DayOfWeek     string `gorm:"type:varchar(3);not null;uniqueIndex:uq_semester_day"        json:"day_of_week"` // MON..SUN
	BaseModel

	Semester *Semester `gorm:"foreignKey:SemesterID;references:SemesterID" json:"semester,omitempty"`
}

// TableName 指定表名
func (SemesterDay) TableName() string { return "semester_days" }
