package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Code                string `json:"code"                  binding:"required,min=2,max=20"`
	Name                string `json:"name"                  binding:"required,min=2,max=200"`
	CreditHours         int    `json:"credit_hours"          binding:"required,min=1,max=30"`
	HasTheoretical      *bool  `json:"has_theoretical"` // 缺省为 true
	HasPractical        bool   `json:"has_practical"`
	MinCreditsToOpen    *int   `json:"min_credits_to_open"   binding:"omitempty,min=0"`
	IsConditionRequired bool   `json:"is_condition_required"`
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Code                *string `json:"code"                  binding:"omitempty,min=2,max=20"`
	Name                *string `json:"name"                  binding:"omitempty,min=2,max=200"`
	CreditHours         *int    `json:"credit_hours"          binding:"omitempty,min=1,max=30"`
	HasTheoretical      *bool   `json:"has_theoretical"`
	HasPractical        *bool   `json:"has_practical"`
	MinCreditsToOpen    *int    `json:"min_credits_to_open"   binding:"omitempty,min=0"`
	ClearMinCredits     bool    `json:"clear_min_credits"` // true 时移除学分门槛
	IsConditionRequired *bool   `json:"is_condition_required"`
}

// SetPrerequisitesRequest 全量设置先修课程
type SetPrerequisitesRequest struct {
	PrereqIDs []string `json:"prereq_ids" binding:"required,dive,uuid"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID                  string `json:"id"`
	Code                string `json:"code"`
	Name                string `json:"name"`
	CreditHours         int    `json:"credit_hours"`
	HasTheoretical      bool   `json:"has_theoretical"`
	HasPractical        bool   `json:"has_practical"`
	MinCreditsToOpen    *int   `json:"min_credits_to_open,omitempty"`
	IsConditionRequired bool   `json:"is_condition_required"`
	Version             int    `json:"version"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

// CourseBrief 课程简要信息
type CourseBrief struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	CreditHours int    `json:"credit_hours"`
}

// PrerequisitesResponse 课程先修列表
type PrerequisitesResponse struct {
	CourseID      string        `json:"course_id"`
	Prerequisites []CourseBrief `json:"prerequisites"`
}

// GraphValidationResponse 先修图校验结果
type GraphValidationResponse struct {
	OK         bool     `json:"ok"`
	Cycle      []string `json:"cycle,omitempty"`
	CycleCodes []string `json:"cycle_codes,omitempty"`
}
