package planning

// CompletedCredits 统计已通过课程的学分总和。
// 状态指向未知课程或学分非正的课程不计入。
func CompletedCredits(courses []Course, statuses []StudentStatus) int {
	creditsByID := make(map[string]int, len(courses))
	for _, c := range courses {
		creditsByID[c.ID] = c.CreditHours
	}

	total := 0
	counted := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		if s.Status != StatusPassed || counted[s.CourseID] {
			continue
		}
		counted[s.CourseID] = true
		if credits := creditsByID[s.CourseID]; credits > 0 {
			total += credits
		}
	}
	return total
}

// FilterEligibleCourses 计算学生本学期可选课程，保持 courses 原有顺序。
//
// 以下任一条件成立即排除：
//   - 该课程状态为 PASSED
//   - 设置了 MinCreditsToOpen 且 completedCredits 不足
//   - 存在任一先修课程状态不是 PASSED（无状态视为未通过）
func FilterEligibleCourses(courses []Course, statuses []StudentStatus, prereqs []Prerequisite, completedCredits int) []Course {
	statusByCourse := make(map[string]CourseStatus, len(statuses))
	for _, s := range statuses {
		statusByCourse[s.CourseID] = s.Status
	}

	prereqsByCourse := make(map[string][]string)
	for _, p := range prereqs {
		prereqsByCourse[p.CourseID] = append(prereqsByCourse[p.CourseID], p.PrereqCourseID)
	}

	eligible := make([]Course, 0, len(courses))
	for _, c := range courses {
		if statusByCourse[c.ID] == StatusPassed {
			continue
		}
		if c.MinCreditsToOpen != nil && completedCredits < *c.MinCreditsToOpen {
			continue
		}

		unmet := false
		for _, pid := range prereqsByCourse[c.ID] {
			if statusByCourse[pid] != StatusPassed {
				unmet = true
				break
			}
		}
		if unmet {
			continue
		}

		eligible = append(eligible, c)
	}
	return eligible
}
