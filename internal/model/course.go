package model

// Course 课程表 — 对应 courses
type Course struct {
	CourseID            string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Code                string `gorm:"type:varchar(20);uniqueIndex;not null"          json:"code"`
	Name                string `gorm:"type:varchar(200);not null"                     json:"name"`
	CreditHours         int    `gorm:"type:smallint;not null"                         json:"credit_hours"`
	HasTheoretical      bool   `gorm:"not null"                                       json:"has_theoretical"` // 数据库缺省为 true，创建时由 Service 显式赋值
	HasPractical        bool   `gorm:"not null;default:false"                         json:"has_practical"`
	MinCreditsToOpen    *int   `gorm:"type:smallint"                                  json:"min_credits_to_open,omitempty"`
	IsConditionRequired bool   `gorm:"not null;default:false"                         json:"is_condition_required"`
	VersionedModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// Prerequisite 先修关系表 — 对应 prerequisites，(course_id, prereq_course_id) 唯一
type Prerequisite struct {
	CourseID       string `gorm:"type:uuid;primaryKey" json:"course_id"`
	PrereqCourseID string `gorm:"type:uuid;primaryKey" json:"prereq_course_id"`
	BaseModel

	PrereqCourse *Course `gorm:"foreignKey:PrereqCourseID;references:CourseID" json:"prereq_course,omitempty"`
}

// TableName 指定表名
func (Prerequisite) TableName() string { return "prerequisites" }
