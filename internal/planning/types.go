// Package planning 学业规划核心：先修图校验、选课资格过滤、课表冲突校验与学期计划组装。
//
// 本包不访问数据库，也不保存跨调用状态；所有输入均为调用方传入的只读快照。
package planning

// CourseStatus 学生课程状态
type CourseStatus string

const (
	StatusPassed     CourseStatus = "PASSED"
	StatusFailed     CourseStatus = "FAILED"
	StatusInProgress CourseStatus = "IN_PROGRESS"
)

// SectionType 教学班类型
type SectionType string

const (
	SectionTheory    SectionType = "THEORY"
	SectionPractical SectionType = "PRACTICAL"
)

// Weekdays 合法的星期取值（按自然顺序）
var Weekdays = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// Slots 合法的节次取值，每节 2 小时
var Slots = []string{"P1", "P2", "P3", "P4", "P5", "P6"}

// Course 课程快照
type Course struct {
	ID                  string `json:"id"`
	Code                string `json:"code"`
	Name                string `json:"name"`
	CreditHours         int    `json:"creditHours"`
	HasTheoretical      bool   `json:"hasTheoretical"`
	HasPractical        bool   `json:"hasPractical"`
	MinCreditsToOpen    *int   `json:"minCreditsToOpen,omitempty"`
	IsConditionRequired bool   `json:"isConditionRequired"`
}

// Prerequisite 先修边：CourseID 依赖 PrereqCourseID
type Prerequisite struct {
	CourseID       string `json:"courseId"`
	PrereqCourseID string `json:"prereqCourseId"`
}

// StudentStatus 学生在某门课程上的结果
type StudentStatus struct {
	StudentID string       `json:"studentId"`
	CourseID  string       `json:"courseId"`
	Status    CourseStatus `json:"status"`
}

// ScheduledSection 学期内已排定的教学班（已关联课程代码与星期）
type ScheduledSection struct {
	CourseCode  string      `json:"courseCode"`
	SectionType SectionType `json:"sectionType"`
	DayOfWeek   string      `json:"dayOfWeek"`
	Slots       []string    `json:"slots"`
}

// SectionAssignment 候选方案中的单个教学班安排
type SectionAssignment struct {
	Type      SectionType `json:"type"`
	DayOfWeek string      `json:"dayOfWeek"`
	Slots     []string    `json:"slots"`
}

// CandidateAssignment 候选方案中的一门课程及其教学班安排
type CandidateAssignment struct {
	CourseCode         string              `json:"courseCode"`
	SectionAssignments []SectionAssignment `json:"sectionAssignments"`
}

// IsWeekday 判断是否为合法星期
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// IsSlot 判断是否为合法节次
func IsSlot(slot string) bool {
	for _, s := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// IsSectionType 判断是否为合法教学班类型
func IsSectionType(t string) bool {
	return t == string(SectionTheory) || t == string(SectionPractical)
}
