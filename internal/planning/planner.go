package planning

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// DefaultBalanceWeight 默认均衡权重
const DefaultBalanceWeight = 0.4

// PlanSource 方案来源
type PlanSource string

const (
	SourceExternal PlanSource = "external"
	SourceFallback PlanSource = "fallback"
)

// PlanRequest 生成学期计划的请求
type PlanRequest struct {
	StudentID        string
	RequestedCredits int
	SemesterID       string
}

// Snapshot 一次规划所需的只读数据快照
type Snapshot struct {
	Courses       []Course
	Prerequisites []Prerequisite
	Statuses      []StudentStatus
	Sections      []ScheduledSection // 仅限目标学期
}

// PlanResult 学期计划
type PlanResult struct {
	StudentID        string                `json:"studentId"`
	RequestedCredits int                   `json:"requestedCredits"`
	Assignments      []CandidateAssignment `json:"assignments"`
	Validation       ValidationResult      `json:"validation"`
	Rationale        *string               `json:"rationale,omitempty"`
	Score            *float64              `json:"score,omitempty"`
	Source           PlanSource            `json:"source"`
	CompletedCredits int                   `json:"completedCredits"`
	EligibleCount    int                   `json:"eligibleCount"`
}

// Planner 学期计划组装器，无状态，可并发使用
type Planner struct {
	advisor       Advisor
	balanceWeight float64
	logger        *zap.Logger
}

// NewPlanner 创建 Planner；advisor 为 nil 时使用 NopAdvisor
func NewPlanner(advisor Advisor, balanceWeight float64, logger *zap.Logger) *Planner {
	if advisor == nil {
		advisor = NopAdvisor{}
	}
	return &Planner{advisor: advisor, balanceWeight: balanceWeight, logger: logger}
}

// Plan 根据快照生成学期计划。外部服务不可用时降级为贪心方案，不返回错误。
func (p *Planner) Plan(ctx context.Context, req PlanRequest, snap Snapshot) *PlanResult {
	completed := CompletedCredits(snap.Courses, snap.Statuses)
	eligible := FilterEligibleCourses(snap.Courses, snap.Statuses, snap.Prerequisites, completed)

	result := &PlanResult{
		StudentID:        req.StudentID,
		RequestedCredits: req.RequestedCredits,
		CompletedCredits: completed,
		EligibleCount:    len(eligible),
	}

	advice := p.advisor.Propose(ctx, p.buildAdvisorRequest(req, eligible, snap.Sections))
	if advice != nil && len(advice.SelectedCourses) > 0 {
		result.Assignments = advice.SelectedCourses
		result.Rationale = advice.Rationale
		result.Score = advice.Score
		result.Source = SourceExternal
	} else {
		result.Assignments = GreedySelect(eligible, snap.Sections, req.RequestedCredits)
		result.Source = SourceFallback
	}

	result.Validation = ValidateAll(result.Assignments, snap.Courses)

	p.logger.Info("学期计划已生成",
		zap.String("student_id", req.StudentID),
		zap.String("semester_id", req.SemesterID),
		zap.String("source", string(result.Source)),
		zap.Int("courses", len(result.Assignments)),
		zap.Int("total_credits", result.Validation.TotalCredits),
		zap.Bool("valid", result.Validation.Valid),
	)
	return result
}

func (p *Planner) buildAdvisorRequest(req PlanRequest, eligible []Course, sections []ScheduledSection) *AdvisorRequest {
	courses := make([]AdvisorCourse, 0, len(eligible))
	for _, c := range eligible {
		courses = append(courses, AdvisorCourse{
			Code:           c.Code,
			CreditHours:    c.CreditHours,
			HasTheoretical: c.HasTheoretical,
			HasPractical:   c.HasPractical,
		})
	}
	schedule := sections
	if schedule == nil {
		schedule = []ScheduledSection{}
	}

	return &AdvisorRequest{
		StudentID:        req.StudentID,
		RequestedCredits: req.RequestedCredits,
		Objective: AdvisorObjective{
			MaximizeCredits: true,
			BalanceWeight:   p.balanceWeight,
		},
		EligibleCourses: courses,
		Schedule:        schedule,
	}
}

// GreedySelect 贪心兜底：按学分降序挑选课程，总学分不超过 requestedCredits。
//
// 没有任何已排教学班的课程跳过。每门课程按教学班类型各取一个教学班，
// 优先选择与已选时段不重叠的第一个，否则取该类型的第一个。
func GreedySelect(eligible []Course, sections []ScheduledSection, requestedCredits int) []CandidateAssignment {
	sorted := make([]Course, len(eligible))
	copy(sorted, eligible)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreditHours > sorted[j].CreditHours
	})

	sectionsByCode := make(map[string][]ScheduledSection)
	for _, s := range sections {
		sectionsByCode[s.CourseCode] = append(sectionsByCode[s.CourseCode], s)
	}

	selected := make([]CandidateAssignment, 0)
	occupied := make(map[string]bool)
	sum := 0

	for _, c := range sorted {
		if sum >= requestedCredits {
			break
		}
		if c.CreditHours <= 0 || sum+c.CreditHours > requestedCredits {
			continue
		}
		available := sectionsByCode[c.Code]
		if len(available) == 0 {
			continue
		}

		assignment := CandidateAssignment{CourseCode: c.Code}
		for _, s := range pickSections(available, occupied) {
			assignment.SectionAssignments = append(assignment.SectionAssignments, SectionAssignment{
				Type:      s.SectionType,
				DayOfWeek: s.DayOfWeek,
				Slots:     append([]string(nil), s.Slots...),
			})
		}

		selected = append(selected, assignment)
		sum += c.CreditHours
	}

	return selected
}

// pickSections 每种教学班类型取一个，类型顺序与首次出现顺序一致；选中的时段写入 occupied
func pickSections(available []ScheduledSection, occupied map[string]bool) []ScheduledSection {
	types := make([]SectionType, 0, 2)
	byType := make(map[SectionType][]ScheduledSection)
	for _, s := range available {
		if _, ok := byType[s.SectionType]; !ok {
			types = append(types, s.SectionType)
		}
		byType[s.SectionType] = append(byType[s.SectionType], s)
	}

	picked := make([]ScheduledSection, 0, len(types))
	for _, t := range types {
		candidates := byType[t]
		choice := candidates[0]
		for _, s := range candidates {
			if isFree(s, occupied) {
				choice = s
				break
			}
		}
		for _, k := range slotKeys(SectionAssignment{DayOfWeek: choice.DayOfWeek, Slots: choice.Slots}) {
			occupied[k] = true
		}
		picked = append(picked, choice)
	}
	return picked
}

func isFree(s ScheduledSection, occupied map[string]bool) bool {
	for _, k := range slotKeys(SectionAssignment{DayOfWeek: s.DayOfWeek, Slots: s.Slots}) {
		if occupied[k] {
			return false
		}
	}
	return true
}
