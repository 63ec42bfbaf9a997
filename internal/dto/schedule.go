package dto

// ── 教学日 / 教学班 DTO ──

// CreateSemesterDayRequest 为学期添加教学日
type CreateSemesterDayRequest struct {
	DayOfWeek string `json:"day_of_week" binding:"required,weekday"`
}

// SemesterDayResponse 教学日响应
type SemesterDayResponse struct {
	ID         string `json:"id"`
	SemesterID string `json:"semester_id"`
	DayOfWeek  string `json:"day_of_week"`
	CreatedAt  string `json:"created_at"`
}

// CreateSectionRequest 创建教学班请求
type CreateSectionRequest struct {
	CourseID    string   `json:"course_id"    binding:"required,uuid"`
	SectionType string   `json:"section_type" binding:"required,section_type"`
	Slots       []string `json:"slots"        binding:"required,min=1,max=6,dive,slot"`
	Room        *string  `json:"room"         binding:"omitempty,max=50"`
}

// UpdateSectionRequest 更新教学班请求
type UpdateSectionRequest struct {
	CourseID    *string  `json:"course_id"    binding:"omitempty,uuid"`
	SectionType *string  `json:"section_type" binding:"omitempty,section_type"`
	Slots       []string `json:"slots"        binding:"omitempty,min=1,max=6,dive,slot"`
	Room        *string  `json:"room"         binding:"omitempty,max=50"`
}

// SectionResponse 教学班响应
type SectionResponse struct {
	ID            string       `json:"id"`
	SemesterDayID string       `json:"semester_day_id"`
	DayOfWeek     string       `json:"day_of_week,omitempty"`
	Course        *CourseBrief `json:"course,omitempty"`
	SectionType   string       `json:"section_type"`
	Slots         []string     `json:"slots"`
	Room          *string      `json:"room,omitempty"`
	CreatedAt     string       `json:"created_at"`
	UpdatedAt     string       `json:"updated_at"`
}
