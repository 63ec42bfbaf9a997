package planning

import (
	"math"
	"sort"
)

// 成绩结果
const (
	OutcomePass        = "Pass"
	OutcomeConditional = "Conditional"
	OutcomeFail        = "Fail"
)

// GradeOutcome 百分制成绩 → 通过状态
func GradeOutcome(grade float64) string {
	switch {
	case grade >= 60:
		return OutcomePass
	case grade >= 50:
		return OutcomeConditional
	default:
		return OutcomeFail
	}
}

// GradePoint 百分制成绩 → 4 分制绩点
func GradePoint(grade float64) float64 {
	switch {
	case grade >= 90:
		return 4.0
	case grade >= 85:
		return 3.7
	case grade >= 80:
		return 3.3
	case grade >= 75:
		return 3.0
	case grade >= 70:
		return 2.7
	case grade >= 65:
		return 2.3
	case grade >= 60:
		return 2.0
	case grade >= 55:
		return 1.7
	case grade >= 50:
		return 1.3
	default:
		return 0.0
	}
}

// ClassifyGPA GPA → 等级
func ClassifyGPA(gpa float64) string {
	switch {
	case gpa < 2:
		return "poor"
	case gpa <= 2.5:
		return "average"
	case gpa <= 3:
		return "good"
	case gpa <= 3.5:
		return "very good"
	default:
		return "excellent"
	}
}

// GradedCourse 计算 GPA 所需的单条修读记录
type GradedCourse struct {
	SemesterID   string
	SemesterName string
	CreditHours  int
	GradePoint   float64
}

// SemesterGPA 单学期 GPA
type SemesterGPA struct {
	SemesterID   string  `json:"semester_id"`
	SemesterName string  `json:"semester_name"`
	Value        float64 `json:"value"`
}

// SemesterGPAs 按学期计算学分加权 GPA（保留两位小数），按学期名称排序
func SemesterGPAs(records []GradedCourse) []SemesterGPA {
	type agg struct {
		name          string
		qualityPoints float64
		credits       int
	}
	bySemester := make(map[string]*agg)
	order := make([]string, 0)

	for _, r := range records {
		a, ok := bySemester[r.SemesterID]
		if !ok {
			a = &agg{name: r.SemesterName}
			bySemester[r.SemesterID] = a
			order = append(order, r.SemesterID)
		}
		a.qualityPoints += r.GradePoint * float64(r.CreditHours)
		a.credits += r.CreditHours
	}

	result := make([]SemesterGPA, 0, len(order))
	for _, id := range order {
		a := bySemester[id]
		value := 0.0
		if a.credits > 0 {
			value = round2(a.qualityPoints / float64(a.credits))
		}
		result = append(result, SemesterGPA{SemesterID: id, SemesterName: a.name, Value: value})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SemesterName < result[j].SemesterName
	})
	return result
}

// CumulativeGPA 全部修读记录的学分加权 GPA（保留两位小数）
func CumulativeGPA(records []GradedCourse) float64 {
	var qualityPoints float64
	credits := 0
	for _, r := range records {
		qualityPoints += r.GradePoint * float64(r.CreditHours)
		credits += r.CreditHours
	}
	if credits == 0 {
		return 0
	}
	return round2(qualityPoints / float64(credits))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
