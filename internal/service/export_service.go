package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-planner/backend/internal/model"
	"campus-planner/backend/internal/planning"
	"campus-planner/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// 节次时间：P1 从 08:00 开始，每节 2 小时
const (
	firstSlotHour = 8
	slotHours     = 2
)

var weekdayNames = map[string]string{
	"MON": "周一", "TUE": "周二", "WED": "周三", "THU": "周四",
	"FRI": "周五", "SAT": "周六", "SUN": "周日",
}

var weekdayOf = map[string]time.Weekday{
	"MON": time.Monday, "TUE": time.Tuesday, "WED": time.Wednesday, "THU": time.Thursday,
	"FRI": time.Friday, "SAT": time.Saturday, "SUN": time.Sunday,
}

// ExportService 学期计划导出接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportPlanExcel 导出为周课表 Excel：列为星期，行为节次
	ExportPlanExcel(ctx context.Context, planID string) (*bytes.Buffer, string, error)
	// ExportPlanICS 导出为 iCalendar，每个教学班在学期内按周重复
	ExportPlanICS(ctx context.Context, planID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// exportData 导出所需数据
type exportData struct {
	record   *model.PlanRecord
	plan     *planning.PlanResult
	semester *model.Semester
	courses  map[string]model.Course // code → course
}

func (s *exportService) load(ctx context.Context, planID string) (*exportData, error) {
	record, err := s.repo.PlanRecord.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.logger.Error("查询学期计划失败", zap.String("id", planID), zap.Error(err))
		return nil, err
	}

	plan, err := planResultFromRecord(record)
	if err != nil {
		s.logger.Error("解析学期计划失败", zap.String("id", planID), zap.Error(err))
		return nil, err
	}

	semester := record.Semester
	if semester == nil {
		semester, err = s.repo.Semester.GetByID(ctx, record.SemesterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSemesterNotFound
			}
			s.logger.Error("查询学期失败", zap.String("semester_id", record.SemesterID), zap.Error(err))
			return nil, err
		}
	}

	list, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}
	courses := make(map[string]model.Course, len(list))
	for _, c := range list {
		courses[c.Code] = c
	}

	return &exportData{record: record, plan: plan, semester: semester, courses: courses}, nil
}

// ═══════════════════════════════════════════════════════════
// ExportPlanExcel
// ═══════════════════════════════════════════════════════════
//
// Sheet "周课表"：行为节次 P1..P6，列为周一..周日，单元格为 "课程代码 类型"；
// 同一单元格出现多门课程时换行并列（对应校验中的冲突项）。
// Sheet "课程列表"：课程代码、名称、学分、校验结果。

func (s *exportService) ExportPlanExcel(ctx context.Context, planID string) (*bytes.Buffer, string, error) {
	data, err := s.load(ctx, planID)
	if err != nil {
		return nil, "", err
	}

	grid := make(map[string][]string) // "DAY:Pn" → 单元格文本
	for _, a := range data.plan.Assignments {
		for _, sa := range a.SectionAssignments {
			for _, slot := range sa.Slots {
				key := sa.DayOfWeek + ":" + slot
				grid[key] = append(grid[key], fmt.Sprintf("%s %s", a.CourseCode, sectionTypeName(sa.Type)))
			}
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "周课表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, colName(2), colName(2+len(planning.Weekdays)-1), 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})

	// 标题行
	lastCol := colName(1 + len(planning.Weekdays))
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s 学期计划（%d 学分）", data.semester.Name, data.plan.Validation.TotalCredits))
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	f.SetCellValue(sheetName, cell("A", 2), "节次")
	f.SetCellValue(sheetName, cell("B", 2), "时间")
	for i, day := range planning.Weekdays {
		f.SetCellValue(sheetName, cell(colName(2+i), 2), weekdayNames[day])
	}
	f.SetCellStyle(sheetName, "A2", cell(lastCol, 2), headerStyle)

	// 数据行
	for r, slot := range planning.Slots {
		row := 3 + r
		start, end := slotClock(r)
		f.SetCellValue(sheetName, cell("A", row), slot)
		f.SetCellValue(sheetName, cell("B", row), fmt.Sprintf("%s-%s", start, end))
		for i, day := range planning.Weekdays {
			text := "-"
			if entries, ok := grid[day+":"+slot]; ok {
				text = strings.Join(entries, "\n")
			}
			f.SetCellValue(sheetName, cell(colName(2+i), row), text)
		}
	}
	f.SetCellStyle(sheetName, "C3", cell(lastCol, 2+len(planning.Slots)), wrapStyle)

	// 课程列表
	listSheet := "课程列表"
	f.NewSheet(listSheet)
	f.SetColWidth(listSheet, "B", "B", 30)
	f.SetColWidth(listSheet, "E", "E", 28)
	for i, h := range []string{"课程代码", "课程名称", "学分", "校验", "原因"} {
		f.SetCellValue(listSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(listSheet, "A1", "E1", headerStyle)
	for i, item := range data.plan.Validation.Items {
		row := 2 + i
		course := data.courses[item.Code]
		f.SetCellValue(listSheet, cell("A", row), item.Code)
		f.SetCellValue(listSheet, cell("B", row), course.Name)
		f.SetCellValue(listSheet, cell("C", row), course.CreditHours)
		if item.OK {
			f.SetCellValue(listSheet, cell("D", row), "通过")
		} else {
			f.SetCellValue(listSheet, cell("D", row), "冲突")
			f.SetCellValue(listSheet, cell("E", row), item.Reason)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("学期计划_%s_%s.xlsx", data.semester.Name, shortID(planID))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportPlanICS
// ═══════════════════════════════════════════════════════════
//
// 每个教学班的连续节次合并为一个事件，首次发生在学期开始后的第一个对应星期，
// 按周重复至学期结束日。

func (s *exportService) ExportPlanICS(ctx context.Context, planID string) (*bytes.Buffer, string, error) {
	data, err := s.load(ctx, planID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//campus-planner//semester plan//ZH")
	cal.SetXWRCalName(fmt.Sprintf("%s 学期计划", data.semester.Name))

	until := time.Date(data.semester.EndDate.Year(), data.semester.EndDate.Month(), data.semester.EndDate.Day(), 23, 59, 59, 0, time.UTC)
	stamp := data.record.CreatedAt.UTC()

	for _, a := range data.plan.Assignments {
		course := data.courses[a.CourseCode]
		for i, sa := range a.SectionAssignments {
			weekday, ok := weekdayOf[sa.DayOfWeek]
			if !ok {
				continue
			}
			firstDay := firstWeekday(data.semester.StartDate, weekday)
			if firstDay.After(until) {
				continue
			}

			for _, run := range slotRuns(sa.Slots) {
				start := firstDay.Add(time.Duration(firstSlotHour+run[0]*slotHours) * time.Hour)
				end := firstDay.Add(time.Duration(firstSlotHour+(run[1]+1)*slotHours) * time.Hour)

				uid := fmt.Sprintf("%s-%s-%d-%s@campus-planner", data.record.PlanID, a.CourseCode, i, planning.Slots[run[0]])
				event := cal.AddEvent(uid)
				event.SetDtStampTime(stamp)
				event.SetStartAt(start)
				event.SetEndAt(end)
				event.SetSummary(strings.TrimSpace(fmt.Sprintf("%s %s %s", a.CourseCode, course.Name, sectionTypeName(sa.Type))))
				event.SetDescription(fmt.Sprintf("学分: %d", course.CreditHours))
				event.AddProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY;UNTIL="+until.Format("20060102T150405Z"))
			}
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("学期计划_%s_%s.ics", data.semester.Name, shortID(planID))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func sectionTypeName(t planning.SectionType) string {
	switch t {
	case planning.SectionTheory:
		return "理论"
	case planning.SectionPractical:
		return "实践"
	default:
		return string(t)
	}
}

// slotClock 第 idx 个节次（从 0 开始）的起止时间
func slotClock(idx int) (string, string) {
	start := firstSlotHour + idx*slotHours
	return fmt.Sprintf("%02d:00", start), fmt.Sprintf("%02d:00", start+slotHours)
}

// slotRuns 将节次按序号排序去重后合并为连续区间 [起, 止]（下标从 0 开始），忽略非法节次
func slotRuns(slots []string) [][2]int {
	idx := make([]int, 0, len(slots))
	seen := make(map[int]bool, len(slots))
	for _, slot := range slots {
		for i, s := range planning.Slots {
			if s == slot && !seen[i] {
				seen[i] = true
				idx = append(idx, i)
			}
		}
	}
	sort.Ints(idx)

	runs := make([][2]int, 0, len(idx))
	for _, i := range idx {
		if n := len(runs); n > 0 && runs[n-1][1] == i-1 {
			runs[n-1][1] = i
			continue
		}
		runs = append(runs, [2]int{i, i})
	}
	return runs
}

// firstWeekday 返回 from 当天或之后第一个指定星期的零点（UTC）
func firstWeekday(from time.Time, weekday time.Weekday) time.Time {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
