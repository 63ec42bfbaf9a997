package model

import "time"

// 课程状态
const (
	CourseStatusPassed     = "PASSED"
	CourseStatusFailed     = "FAILED"
	CourseStatusInProgress = "IN_PROGRESS"
)

// StudentCourseStatus 学生课程状态 — 对应 student_course_statuses，(student_id, course_id) 唯一
type StudentCourseStatus struct {
	StudentID string    `gorm:"type:uuid;primaryKey"                          json:"student_id"`
	CourseID  string    `gorm:"type:uuid;primaryKey"                          json:"course_id"`
	Status    string    `gorm:"type:varchar(20);not null"                     json:"status"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                                     json:"updated_by,omitempty"`

	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (StudentCourseStatus) TableName() string { return "student_course_statuses" }

// Enrollment 选课与成绩记录 — 对应 enrollments
type Enrollment struct {
	EnrollmentID string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	StudentID    string   `gorm:"type:uuid;not null;index"                       json:"student_id"`
	CourseID     string   `gorm:"type:uuid;not null"                             json:"course_id"`
	SemesterID   string   `gorm:"type:uuid;not null"                             json:"semester_id"`
	Grade        *float64 `gorm:"type:numeric(5,2)"                              json:"grade,omitempty"` // 0-100，未出分为空
	BaseModel

	Course   *Course   `gorm:"foreignKey:CourseID;references:CourseID"     json:"course,omitempty"`
	Semester *Semester `gorm:"foreignKey:SemesterID;references:SemesterID" json:"semester,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }
