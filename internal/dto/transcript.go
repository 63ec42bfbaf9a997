package dto

// ── 成绩与课程状态 DTO ──

// CourseStatusInput 单门课程状态
type CourseStatusInput struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
	Status   string `json:"status"    binding:"required,oneof=PASSED FAILED IN_PROGRESS"`
}

// UpsertStatusesRequest 批量写入学生课程状态
type UpsertStatusesRequest struct {
	Statuses []CourseStatusInput `json:"statuses" binding:"required,min=1,dive"`
}

// CourseStatusResponse 课程状态响应
type CourseStatusResponse struct {
	CourseID   string `json:"course_id"`
	CourseCode string `json:"course_code,omitempty"`
	Status     string `json:"status"`
	UpdatedAt  string `json:"updated_at"`
}

// SemesterGPAItem 单学期 GPA
type SemesterGPAItem struct {
	SemesterID     string  `json:"semester_id"`
	SemesterName   string  `json:"semester_name"`
	GPA            float64 `json:"gpa"`
	Classification string  `json:"classification"`
}

// TranscriptCourse 成绩单中的单门课程
type TranscriptCourse struct {
	CourseID     string   `json:"course_id"`
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	CreditHours  int      `json:"credit_hours"`
	SemesterName string   `json:"semester_name"`
	Grade        *float64 `json:"grade,omitempty"`
	GradePoint   *float64 `json:"grade_point,omitempty"`
	Outcome      string   `json:"outcome,omitempty"` // Pass | Conditional | Fail，未出分为空
}

// StudentSummaryResponse 学生学业概览
type StudentSummaryResponse struct {
	StudentID                string             `json:"student_id"`
	CompletedCredits         int                `json:"completed_credits"`
	CumulativeGPA            float64            `json:"cumulative_gpa"`
	CumulativeClassification string             `json:"cumulative_classification"`
	Semesters                []SemesterGPAItem  `json:"semesters"`
	Courses                  []TranscriptCourse `json:"courses"`
}
