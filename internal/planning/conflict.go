package planning

import "sort"

// ReasonScheduleConflict 课表冲突原因
const ReasonScheduleConflict = "Schedule conflict detected"

// ReportItem 单门课程的校验结果
type ReportItem struct {
	Code   string `json:"code"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// ValidationResult 候选方案整体校验结果
type ValidationResult struct {
	Valid        bool         `json:"valid"`
	Items        []ReportItem `json:"items"`
	TotalCredits int          `json:"totalCredits"`
}

// CreditCheck 学分统计结果。学分仅作提示，OK 恒为 true。
type CreditCheck struct {
	Total int  `json:"total"`
	OK    bool `json:"ok"`
}

// slotKeys 生成教学班占用的 (星期, 节次) 键，节次去重并排序
func slotKeys(sa SectionAssignment) []string {
	slots := make([]string, 0, len(sa.Slots))
	seen := make(map[string]bool, len(sa.Slots))
	for _, s := range sa.Slots {
		if seen[s] {
			continue
		}
		seen[s] = true
		slots = append(slots, s)
	}
	sort.Strings(slots)

	keys := make([]string, len(slots))
	for i, s := range slots {
		keys[i] = sa.DayOfWeek + ":" + s
	}
	return keys
}

// ValidateScheduleConflicts 按输入顺序逐门校验课表冲突。
//
// 已占用的 (星期, 节次) 在整批方案内累积。某门课程的任一教学班与已占用时段重叠时，
// 该课程判定失败，其余教学班不再检查也不再占用时段。
func ValidateScheduleConflicts(assignments []CandidateAssignment) []ReportItem {
	occupied := make(map[string]bool)
	items := make([]ReportItem, 0, len(assignments))

	for _, a := range assignments {
		ok := true
		for _, sa := range a.SectionAssignments {
			keys := slotKeys(sa)
			for _, k := range keys {
				if occupied[k] {
					ok = false
					break
				}
			}
			if !ok {
				break
			}
			for _, k := range keys {
				occupied[k] = true
			}
		}

		item := ReportItem{Code: a.CourseCode, OK: ok}
		if !ok {
			item.Reason = ReasonScheduleConflict
		}
		items = append(items, item)
	}
	return items
}

// ValidateCredits 按课程代码累计学分，未知课程计 0
func ValidateCredits(assignments []CandidateAssignment, courseByCode map[string]Course) CreditCheck {
	total := 0
	for _, a := range assignments {
		if c, ok := courseByCode[a.CourseCode]; ok {
			total += c.CreditHours
		}
	}
	return CreditCheck{Total: total, OK: true}
}

// ValidateAll 组合冲突校验与学分统计
func ValidateAll(assignments []CandidateAssignment, courses []Course) ValidationResult {
	courseByCode := make(map[string]Course, len(courses))
	for _, c := range courses {
		courseByCode[c.Code] = c
	}

	items := ValidateScheduleConflicts(assignments)
	credits := ValidateCredits(assignments, courseByCode)

	valid := true
	for _, item := range items {
		if !item.OK {
			valid = false
			break
		}
	}

	return ValidationResult{
		Valid:        valid,
		Items:        items,
		TotalCredits: credits.Total,
	}
}
