package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"campus-planner/backend/internal/model"
	"campus-planner/backend/internal/repository"
)

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	seq     int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("course-%d", m.seq)
	}
	if course.Version == 0 {
		course.Version = 1
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListByIDs(_ context.Context, ids []string) ([]model.Course, error) {
	result := make([]model.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.courses[id]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

// List 按课程代码排序，与真实实现一致
func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	result := make([]model.Course, 0, len(m.courses))
	for _, c := range m.courses {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	if _, ok := m.courses[course.CourseID]; !ok {
		return gorm.ErrRecordNotFound
	}
	course.Version++
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.courses, id)
	return nil
}

// add 测试辅助：直接写入课程
func (m *mockCourseRepo) add(id, code string, credits int) *model.Course {
	c := &model.Course{
		CourseID:       id,
		Code:           code,
		Name:           "课程 " + code,
		CreditHours:    credits,
		HasTheoretical: true,
	}
	m.courses[id] = c
	return c
}

// ── Mock PrerequisiteRepository ──

type mockPrerequisiteRepo struct {
	edges   map[string][]string // course_id → prereq ids
	courses *mockCourseRepo
}

func newMockPrerequisiteRepo(courses *mockCourseRepo) *mockPrerequisiteRepo {
	return &mockPrerequisiteRepo{edges: make(map[string][]string), courses: courses}
}

func (m *mockPrerequisiteRepo) ListAll(_ context.Context) ([]model.Prerequisite, error) {
	ids := make([]string, 0, len(m.edges))
	for id := range m.edges {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []model.Prerequisite
	for _, id := range ids {
		for _, pid := range m.edges[id] {
			result = append(result, model.Prerequisite{CourseID: id, PrereqCourseID: pid})
		}
	}
	return result, nil
}

func (m *mockPrerequisiteRepo) ListByCourse(_ context.Context, courseID string) ([]model.Prerequisite, error) {
	var result []model.Prerequisite
	for _, pid := range m.edges[courseID] {
		p := model.Prerequisite{CourseID: courseID, PrereqCourseID: pid}
		if c, ok := m.courses.courses[pid]; ok {
			p.PrereqCourse = c
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPrerequisiteRepo) ReplaceForCourse(_ context.Context, courseID string, prereqIDs []string, _ string) error {
	m.edges[courseID] = append([]string(nil), prereqIDs...)
	return nil
}

// ── Mock StudentStatusRepository ──

type mockStudentStatusRepo struct {
	statuses map[string]map[string]*model.StudentCourseStatus // student → course → status
	courses  *mockCourseRepo
	failOn   string // 写入该课程时返回错误
}

func newMockStudentStatusRepo(courses *mockCourseRepo) *mockStudentStatusRepo {
	return &mockStudentStatusRepo{
		statuses: make(map[string]map[string]*model.StudentCourseStatus),
		courses:  courses,
	}
}

func (m *mockStudentStatusRepo) ListByStudent(_ context.Context, studentID string) ([]model.StudentCourseStatus, error) {
	byCourse := m.statuses[studentID]
	ids := make([]string, 0, len(byCourse))
	for id := range byCourse {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]model.StudentCourseStatus, 0, len(ids))
	for _, id := range ids {
		st := *byCourse[id]
		if c, ok := m.courses.courses[id]; ok {
			st.Course = c
		}
		result = append(result, st)
	}
	return result, nil
}

func (m *mockStudentStatusRepo) Upsert(_ context.Context, status *model.StudentCourseStatus) error {
	if m.failOn != "" && status.CourseID == m.failOn {
		return fmt.Errorf("写入失败")
	}
	if _, ok := m.statuses[status.StudentID]; !ok {
		m.statuses[status.StudentID] = make(map[string]*model.StudentCourseStatus)
	}
	status.UpdatedAt = time.Now()
	m.statuses[status.StudentID][status.CourseID] = status
	return nil
}

func (m *mockStudentStatusRepo) set(studentID, courseID, status string) {
	_ = m.Upsert(context.Background(), &model.StudentCourseStatus{
		StudentID: studentID,
		CourseID:  courseID,
		Status:    status,
	})
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[string]*model.Semester
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[string]*model.Semester)}
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	if semester.SemesterID == "" {
		semester.SemesterID = "sem-" + semester.Name
	}
	m.semesters[semester.SemesterID] = semester
	return nil
}

// GetByID 返回副本，避免 ClearActive 改写调用方持有的对象
func (m *mockSemesterRepo) GetByID(_ context.Context, id string) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context) ([]model.Semester, error) {
	var result []model.Semester
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (m *mockSemesterRepo) Update(_ context.Context, semester *model.Semester) error {
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.semesters, id)
	return nil
}

func (m *mockSemesterRepo) ClearActive(_ context.Context) error {
	for _, s := range m.semesters {
		s.IsActive = false
	}
	return nil
}

func (m *mockSemesterRepo) add(id, name, start, end string) *model.Semester {
	startDate, _ := time.Parse("2006-01-02", start)
	endDate, _ := time.Parse("2006-01-02", end)
	s := &model.Semester{SemesterID: id, Name: name, StartDate: startDate, EndDate: endDate}
	m.semesters[id] = s
	return s
}

// ── Mock SemesterDayRepository ──

type mockSemesterDayRepo struct {
	days map[string]*model.SemesterDay
}

func newMockSemesterDayRepo() *mockSemesterDayRepo {
	return &mockSemesterDayRepo{days: make(map[string]*model.SemesterDay)}
}

func (m *mockSemesterDayRepo) Create(_ context.Context, day *model.SemesterDay) error {
	if day.SemesterDayID == "" {
		day.SemesterDayID = day.SemesterID + "-" + day.DayOfWeek
	}
	m.days[day.SemesterDayID] = day
	return nil
}

func (m *mockSemesterDayRepo) GetByID(_ context.Context, id string) (*model.SemesterDay, error) {
	if d, ok := m.days[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterDayRepo) GetBySemesterAndDay(_ context.Context, semesterID, dayOfWeek string) (*model.SemesterDay, error) {
	for _, d := range m.days {
		if d.SemesterID == semesterID && d.DayOfWeek == dayOfWeek {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterDayRepo) ListBySemester(_ context.Context, semesterID string) ([]model.SemesterDay, error) {
	var result []model.SemesterDay
	for _, d := range m.days {
		if d.SemesterID == semesterID {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SemesterDayID < result[j].SemesterDayID })
	return result, nil
}

func (m *mockSemesterDayRepo) Delete(_ context.Context, id string) error {
	delete(m.days, id)
	return nil
}

// ── Mock ScheduledSectionRepository ──

type mockSectionRepo struct {
	sections map[string]*model.ScheduledSection
	// rows 按学期预置的联表结果，供 ListBySemester 返回
	rows map[string][]model.SectionRow
	seq  int
}

func newMockSectionRepo() *mockSectionRepo {
	return &mockSectionRepo{
		sections: make(map[string]*model.ScheduledSection),
		rows:     make(map[string][]model.SectionRow),
	}
}

func (m *mockSectionRepo) Create(_ context.Context, section *model.ScheduledSection) error {
	if section.SectionID == "" {
		m.seq++
		section.SectionID = fmt.Sprintf("section-%d", m.seq)
	}
	m.sections[section.SectionID] = section
	return nil
}

func (m *mockSectionRepo) GetByID(_ context.Context, id string) (*model.ScheduledSection, error) {
	if s, ok := m.sections[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectionRepo) ListByDay(_ context.Context, semesterDayID string) ([]model.ScheduledSection, error) {
	var result []model.ScheduledSection
	for _, s := range m.sections {
		if s.SemesterDayID == semesterDayID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SectionID < result[j].SectionID })
	return result, nil
}

func (m *mockSectionRepo) ListBySemester(_ context.Context, semesterID string) ([]model.SectionRow, error) {
	return m.rows[semesterID], nil
}

func (m *mockSectionRepo) Update(_ context.Context, section *model.ScheduledSection) error {
	m.sections[section.SectionID] = section
	return nil
}

func (m *mockSectionRepo) Delete(_ context.Context, id string) error {
	delete(m.sections, id)
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments []model.Enrollment
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			result = append(result, e)
		}
	}
	return result, nil
}

// ── Mock PlanRecordRepository ──

type mockPlanRecordRepo struct {
	records map[string]*model.PlanRecord
	order   []string
	seq     int
}

func newMockPlanRecordRepo() *mockPlanRecordRepo {
	return &mockPlanRecordRepo{records: make(map[string]*model.PlanRecord)}
}

func (m *mockPlanRecordRepo) Create(_ context.Context, record *model.PlanRecord) error {
	if record.PlanID == "" {
		m.seq++
		record.PlanID = fmt.Sprintf("plan-%04d", m.seq)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	m.records[record.PlanID] = record
	m.order = append(m.order, record.PlanID)
	return nil
}

func (m *mockPlanRecordRepo) GetByID(_ context.Context, id string) (*model.PlanRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ListByStudent 按创建顺序倒序分页
func (m *mockPlanRecordRepo) ListByStudent(_ context.Context, studentID string, offset, limit int) ([]model.PlanRecord, int64, error) {
	var all []model.PlanRecord
	for i := len(m.order) - 1; i >= 0; i-- {
		r := m.records[m.order[i]]
		if r.StudentID == studentID {
			all = append(all, *r)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []model.PlanRecord{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── 测试聚合 ──

// mockStore 一组相互关联的 mock 仓储
type mockStore struct {
	courses     *mockCourseRepo
	prereqs     *mockPrerequisiteRepo
	statuses    *mockStudentStatusRepo
	semesters   *mockSemesterRepo
	days        *mockSemesterDayRepo
	sections    *mockSectionRepo
	enrollments *mockEnrollmentRepo
	plans       *mockPlanRecordRepo
}

func newMockStore() *mockStore {
	courses := newMockCourseRepo()
	return &mockStore{
		courses:     courses,
		prereqs:     newMockPrerequisiteRepo(courses),
		statuses:    newMockStudentStatusRepo(courses),
		semesters:   newMockSemesterRepo(),
		days:        newMockSemesterDayRepo(),
		sections:    newMockSectionRepo(),
		enrollments: &mockEnrollmentRepo{},
		plans:       newMockPlanRecordRepo(),
	}
}

// repository 未绑定数据库，BeginTx 返回 nil 事务
func (s *mockStore) repository() *repository.Repository {
	return &repository.Repository{
		Course:        s.courses,
		Prerequisite:  s.prereqs,
		StudentStatus: s.statuses,
		Semester:      s.semesters,
		SemesterDay:   s.days,
		Section:       s.sections,
		Enrollment:    s.enrollments,
		PlanRecord:    s.plans,
	}
}
