package dto

import "campus-planner/backend/internal/planning"

// ── 学业规划 DTO ──
// 候选方案沿用规划核心的 camelCase 线格式，外层字段保持 snake_case。

// SectionAssignmentInput 候选教学班安排
type SectionAssignmentInput struct {
	Type      string   `json:"type"      binding:"required,section_type"`
	DayOfWeek string   `json:"dayOfWeek" binding:"required,weekday"`
	Slots     []string `json:"slots"     binding:"required,min=1,dive,slot"`
}

// CandidateAssignmentInput 候选课程
type CandidateAssignmentInput struct {
	CourseCode         string                   `json:"courseCode"         binding:"required"`
	SectionAssignments []SectionAssignmentInput `json:"sectionAssignments" binding:"dive"`
}

// ValidatePlanRequest 校验候选方案请求
type ValidatePlanRequest struct {
	Assignments []CandidateAssignmentInput `json:"assignments" binding:"required,dive"`
}

// ToPlanning 转换为规划核心类型
func (r *ValidatePlanRequest) ToPlanning() []planning.CandidateAssignment {
	out := make([]planning.CandidateAssignment, 0, len(r.Assignments))
	for _, a := range r.Assignments {
		ca := planning.CandidateAssignment{CourseCode: a.CourseCode}
		for _, sa := range a.SectionAssignments {
			ca.SectionAssignments = append(ca.SectionAssignments, planning.SectionAssignment{
				Type:      planning.SectionType(sa.Type),
				DayOfWeek: sa.DayOfWeek,
				Slots:     sa.Slots,
			})
		}
		out = append(out, ca)
	}
	return out
}

// GeneratePlanRequest 生成学期计划请求
type GeneratePlanRequest struct {
	StudentID        string `json:"student_id"        binding:"required,uuid"`
	SemesterID       string `json:"semester_id"       binding:"required,uuid"`
	RequestedCredits int    `json:"requested_credits" binding:"required,min=1"`
}

// EligibleCoursesResponse 可选课程响应
type EligibleCoursesResponse struct {
	StudentID        string           `json:"student_id"`
	CompletedCredits int              `json:"completed_credits"`
	Courses          []CourseResponse `json:"courses"`
}

// PlanResponse 学期计划响应
type PlanResponse struct {
	PlanID     string               `json:"plan_id"`
	SemesterID string               `json:"semester_id"`
	Plan       *planning.PlanResult `json:"plan"`
	CreatedAt  string               `json:"created_at"`
}

// PlanSummary 学期计划列表项
type PlanSummary struct {
	PlanID           string `json:"plan_id"`
	SemesterID       string `json:"semester_id"`
	RequestedCredits int    `json:"requested_credits"`
	TotalCredits     int    `json:"total_credits"`
	Valid            bool   `json:"valid"`
	Source           string `json:"source"`
	CreatedAt        string `json:"created_at"`
}

// PlanListRequest 计划列表查询参数
type PlanListRequest struct {
	PaginationRequest
}
