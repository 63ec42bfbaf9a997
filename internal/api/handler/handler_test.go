package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"campus-planner/backend/internal/api/validation"
	"campus-planner/backend/internal/dto"
	"campus-planner/backend/internal/planning"
	"campus-planner/backend/internal/service"
	pkgerrors "campus-planner/backend/pkg/errors"
	"campus-planner/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		panic(err)
	}
}

const (
	studentA = "11111111-1111-4111-8111-111111111111"
	studentB = "22222222-2222-4222-8222-222222222222"
	semID    = "33333333-3333-4333-8333-333333333333"
	courseID = "44444444-4444-4444-8444-444444444444"
)

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock CourseService ──

type mockCourseService struct {
	listResult   []dto.CourseResponse
	listErr      error
	getResult    *dto.CourseResponse
	getErr       error
	createResult *dto.CourseResponse
	createErr    error
	updateResult *dto.CourseResponse
	updateErr    error
	deleteErr    error
	prereqResult *dto.PrerequisitesResponse
	prereqErr    error
}

func (m *mockCourseService) Create(_ context.Context, _ *dto.CreateCourseRequest, _ string) (*dto.CourseResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockCourseService) GetByID(_ context.Context, _ string) (*dto.CourseResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockCourseService) List(_ context.Context) ([]dto.CourseResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockCourseService) Update(_ context.Context, _ string, _ *dto.UpdateCourseRequest, _ string) (*dto.CourseResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockCourseService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}
func (m *mockCourseService) SetPrerequisites(_ context.Context, _ string, _ *dto.SetPrerequisitesRequest, _ string) (*dto.PrerequisitesResponse, error) {
	return m.prereqResult, m.prereqErr
}
func (m *mockCourseService) ListPrerequisites(_ context.Context, _ string) (*dto.PrerequisitesResponse, error) {
	return m.prereqResult, m.prereqErr
}

// ── Mock SemesterService ──

type mockSemesterService struct {
	result *dto.SemesterResponse
	list   []dto.SemesterResponse
	err    error
}

func (m *mockSemesterService) Create(_ context.Context, _ *dto.CreateSemesterRequest, _ string) (*dto.SemesterResponse, error) {
	return m.result, m.err
}
func (m *mockSemesterService) GetByID(_ context.Context, _ string) (*dto.SemesterResponse, error) {
	return m.result, m.err
}
func (m *mockSemesterService) List(_ context.Context) ([]dto.SemesterResponse, error) {
	return m.list, m.err
}
func (m *mockSemesterService) Update(_ context.Context, _ string, _ *dto.UpdateSemesterRequest, _ string) (*dto.SemesterResponse, error) {
	return m.result, m.err
}
func (m *mockSemesterService) Delete(_ context.Context, _ string, _ string) error {
	return m.err
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	dayResult     *dto.SemesterDayResponse
	dayErr        error
	sectionResult *dto.SectionResponse
	sectionErr    error
	called        bool
}

func (m *mockScheduleService) CreateDay(_ context.Context, _ string, _ *dto.CreateSemesterDayRequest, _ string) (*dto.SemesterDayResponse, error) {
	m.called = true
	return m.dayResult, m.dayErr
}
func (m *mockScheduleService) ListDays(_ context.Context, _ string) ([]dto.SemesterDayResponse, error) {
	return nil, m.dayErr
}
func (m *mockScheduleService) DeleteDay(_ context.Context, _ string) error {
	return m.dayErr
}
func (m *mockScheduleService) CreateSection(_ context.Context, _ string, _ *dto.CreateSectionRequest, _ string) (*dto.SectionResponse, error) {
	m.called = true
	return m.sectionResult, m.sectionErr
}
func (m *mockScheduleService) ListSections(_ context.Context, _ string) ([]dto.SectionResponse, error) {
	return nil, m.sectionErr
}
func (m *mockScheduleService) UpdateSection(_ context.Context, _ string, _ *dto.UpdateSectionRequest, _ string) (*dto.SectionResponse, error) {
	return m.sectionResult, m.sectionErr
}
func (m *mockScheduleService) DeleteSection(_ context.Context, _ string) error {
	return m.sectionErr
}

// ── Mock PlanningService ──

type mockPlanningService struct {
	graphResult    *dto.GraphValidationResponse
	eligibleResult *dto.EligibleCoursesResponse
	validateResult *planning.ValidationResult
	planResult     *dto.PlanResponse
	planErr        error
	listResult     []dto.PlanSummary
	listTotal      int64
	err            error
	generateCalled bool
	lastPageSize   int
}

func (m *mockPlanningService) ValidatePrerequisiteGraph(_ context.Context) (*dto.GraphValidationResponse, error) {
	return m.graphResult, m.err
}
func (m *mockPlanningService) EligibleCourses(_ context.Context, _ string) (*dto.EligibleCoursesResponse, error) {
	return m.eligibleResult, m.err
}
func (m *mockPlanningService) ValidatePlan(_ context.Context, _ *dto.ValidatePlanRequest) (*planning.ValidationResult, error) {
	return m.validateResult, m.err
}
func (m *mockPlanningService) GenerateSemesterPlan(_ context.Context, _ *dto.GeneratePlanRequest, _ string) (*dto.PlanResponse, error) {
	m.generateCalled = true
	return m.planResult, m.planErr
}
func (m *mockPlanningService) GetPlan(_ context.Context, _ string) (*dto.PlanResponse, error) {
	return m.planResult, m.planErr
}
func (m *mockPlanningService) ListPlans(_ context.Context, _ string, req *dto.PlanListRequest) ([]dto.PlanSummary, int64, error) {
	m.lastPageSize = req.GetPageSize()
	return m.listResult, m.listTotal, m.err
}

// ── Mock TranscriptService ──

type mockTranscriptService struct {
	summary  *dto.StudentSummaryResponse
	statuses []dto.CourseStatusResponse
	err      error
}

func (m *mockTranscriptService) GetSummary(_ context.Context, _ string) (*dto.StudentSummaryResponse, error) {
	return m.summary, m.err
}
func (m *mockTranscriptService) UpsertStatuses(_ context.Context, _ string, _ *dto.UpsertStatusesRequest, _ string) ([]dto.CourseStatusResponse, error) {
	return m.statuses, m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportPlanExcel(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportPlanICS(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// authAs 返回注入认证信息后再调用 h 的处理函数
func authAs(userID, role string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		h(c)
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func samplePlan(studentID string) *dto.PlanResponse {
	return &dto.PlanResponse{
		PlanID:     "plan-1",
		SemesterID: semID,
		Plan: &planning.PlanResult{
			StudentID:        studentID,
			RequestedCredits: 6,
			Source:           planning.SourceFallback,
			Assignments:      []planning.CandidateAssignment{},
			Validation:       planning.ValidationResult{Valid: true, Items: []planning.ReportItem{}},
		},
		CreatedAt: "2026-09-01T08:00:00Z",
	}
}

// ═══════════════════════════════════════════════════════════
// CourseHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCourseHandler_ListCourses_Success(t *testing.T) {
	mock := &mockCourseService{listResult: []dto.CourseResponse{{ID: courseID, Code: "CS101"}}}
	h := NewCourseHandler(mock)

	r := gin.New()
	r.GET("/courses", authAs(studentA, "student", h.ListCourses))
	w := serve(r, "GET", "/courses", nil)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "CS101") {
		t.Errorf("响应应包含课程代码，实际: %s", w.Body.String())
	}
}

func TestCourseHandler_CreateCourse_Success(t *testing.T) {
	mock := &mockCourseService{createResult: &dto.CourseResponse{ID: courseID, Code: "CS101"}}
	h := NewCourseHandler(mock)

	r := gin.New()
	r.POST("/courses", authAs("admin-1", "admin", h.CreateCourse))
	w := serve(r, "POST", "/courses", jsonBody(dto.CreateCourseRequest{
		Code: "CS101", Name: "程序设计", CreditHours: 3,
	}))

	if w.Code != http.StatusCreated {
		t.Errorf("期望 201，实际: %d", w.Code)
	}
}

func TestCourseHandler_CreateCourse_BadJSON(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{})

	r := gin.New()
	r.POST("/courses", authAs("admin-1", "admin", h.CreateCourse))
	w := serve(r, "POST", "/courses", strings.NewReader("invalid json"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际: %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != pkgerrors.CodeInvalidParams {
		t.Errorf("期望 code=%d，实际: %d", pkgerrors.CodeInvalidParams, resp.Code)
	}
}

func TestCourseHandler_CreateCourse_CodeExists(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{createErr: service.ErrCourseCodeExists})

	r := gin.New()
	r.POST("/courses", authAs("admin-1", "admin", h.CreateCourse))
	w := serve(r, "POST", "/courses", jsonBody(dto.CreateCourseRequest{
		Code: "CS101", Name: "程序设计", CreditHours: 3,
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("期望 409，实际: %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11002 {
		t.Errorf("期望 code=11002，实际: %d", resp.Code)
	}
}

func TestCourseHandler_CreateCourse_Unauthenticated(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{})

	r := gin.New()
	r.POST("/courses", h.CreateCourse)
	w := serve(r, "POST", "/courses", jsonBody(dto.CreateCourseRequest{
		Code: "CS101", Name: "程序设计", CreditHours: 3,
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际: %d", w.Code)
	}
}

func TestCourseHandler_GetCourse_NotFound(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{getErr: service.ErrCourseNotFound})

	r := gin.New()
	r.GET("/courses/:id", authAs(studentA, "student", h.GetCourse))
	w := serve(r, "GET", "/courses/"+courseID, nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际: %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("期望 code=11001，实际: %d", resp.Code)
	}
}

func TestCourseHandler_UpdateCourse_OptimisticLock(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{updateErr: pkgerrors.ErrOptimisticLock})

	name := "数据结构"
	r := gin.New()
	r.PUT("/courses/:id", authAs("admin-1", "admin", h.UpdateCourse))
	w := serve(r, "PUT", "/courses/"+courseID, jsonBody(dto.UpdateCourseRequest{Name: &name}))

	if w.Code != http.StatusConflict {
		t.Errorf("期望 409，实际: %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != pkgerrors.CodeConflict {
		t.Errorf("期望 code=%d，实际: %d", pkgerrors.CodeConflict, resp.Code)
	}
}

func TestCourseHandler_SetPrerequisites_InvalidUUID(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{})

	r := gin.New()
	r.PUT("/courses/:id/prerequisites", authAs("admin-1", "admin", h.SetPrerequisites))
	w := serve(r, "PUT", "/courses/"+courseID+"/prerequisites",
		jsonBody(dto.SetPrerequisitesRequest{PrereqIDs: []string{"not-a-uuid"}}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际: %d", w.Code)
	}
}

func TestCourseHandler_SetPrerequisites_PrereqMissing(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{prereqErr: service.ErrPrereqCourseNotFound})

	r := gin.New()
	r.PUT("/courses/:id/prerequisites", authAs("admin-1", "admin", h.SetPrerequisites))
	w := serve(r, "PUT", "/courses/"+courseID+"/prerequisites",
		jsonBody(dto.SetPrerequisitesRequest{PrereqIDs: []string{studentB}}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际: %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11003 {
		t.Errorf("期望 code=11003，实际: %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SemesterHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSemesterHandler_CreateSemester_DateInvalid(t *testing.T) {
	h := NewSemesterHandler(&mockSemesterService{err: service.ErrSemesterDateInvalid})

	r := gin.New()
	r.POST("/semesters", authAs("admin-1", "admin", h.CreateSemester))
	w := serve(r, "POST", "/semesters", jsonBody(dto.CreateSemesterRequest{
		Name: "2026 秋", StartDate: "2027-01-15", EndDate: "2026-09-01",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际: %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12002 {
		t.Errorf("期望 code=12002，实际: %d", resp.Code)
	}
}

func TestSemesterHandler_GetSemester_NotFound(t *testing.T) {
	h := NewSemesterHandler(&mockSemesterService{err: service.ErrSemesterNotFound})

	r := gin.New()
	r.GET("/semesters/:id", authAs("admin-1", "admin", h.GetSemester))
	w := serve(r, "GET", "/semesters/"+semID, nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际: %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_CreateDay_InvalidWeekday(t *testing.T) {
	mock := &mockScheduleService{}
	h := NewScheduleHandler(mock)

	r := gin.New()
	r.POST("/semesters/:id/days", authAs("admin-1", "admin", h.CreateDay))
	w := serve(r, "POST", "/semesters/"+semID+"/days",
		jsonBody(dto.CreateSemesterDayRequest{DayOfWeek: "Monday"}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际: %d", w.Code)
	}
	if mock.called {
		t.Error("参数校验失败时不应调用 Service")
	}
}

func TestScheduleHandler_CreateDay_Exists(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{dayErr: service.ErrSemesterDayExists})

	r := gin.New()
	r.POST("/semesters/:id/days", authAs("admin-1", "admin", h.CreateDay))
	w := serve(r, "POST", "/semesters/"+semID+"/days",
		jsonBody(dto.CreateSemesterDayRequest{DayOfWeek: "MON"}))

	if w.Code != http.StatusConflict {
		t.Errorf("期望 409，实际: %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13002 {
		t.Errorf("期望 code=13002，实际: %d", resp.Code)
	}
}

func TestScheduleHandler_CreateSection_InvalidSlot(t *testing.T) {
	mock := &mockScheduleService{}
	h := NewScheduleHandler(mock)

	r := gin.New()
	r.POST("/semester-days/:id/sections", authAs("admin-1", "admin", h.CreateSection))
	w := serve(r, "POST", "/semester-days/day-1/sections", jsonBody(dto.CreateSectionRequest{
		CourseID: courseID, SectionType: "THEORY", Slots: []string{"P1", "P9"},
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际: %d", w.Code)
	}
	if mock.called {
		t.Error("非法节次不应到达 Service")
	}
}

func TestScheduleHandler_CreateSection_Success(t *testing.T) {
	mock := &mockScheduleService{sectionResult: &dto.SectionResponse{ID: "sec-1", Slots: []string{"P1", "P2"}}}
	h := NewScheduleHandler(mock)

	r := gin.New()
	r.POST("/semester-days/:id/sections", authAs("admin-1", "admin", h.CreateSection))
	w := serve(r, "POST", "/semester-days/day-1/sections", jsonBody(dto.CreateSectionRequest{
		CourseID: courseID, SectionType: "PRACTICAL", Slots: []string{"P1", "P2"},
	}))

	if w.Code != http.StatusCreated {
		t.Errorf("期望 201，实际: %d", w.Code)
	}
}

func TestScheduleHandler_UpdateSection_TypeInvalid(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{sectionErr: service.ErrSectionTypeInvalid})

	typ := "PRACTICAL"
	r := gin.New()
	r.PUT("/sections/:id", authAs("admin-1", "admin", h.UpdateSection))
	w := serve(r, "PUT", "/sections/sec-1", jsonBody(dto.UpdateSectionRequest{SectionType: &typ}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际: %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13006 {
		t.Errorf("期望 code=13006，实际: %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// PlanningHandler Tests
// ═══════════════════════════════════════════════════════════

func TestPlanningHandler_ValidatePrerequisites_Cycle(t *testing.T) {
	mock := &mockPlanningService{graphResult: &dto.GraphValidationResponse{
		OK: false, Cycle: []string{"a", "b", "a"}, CycleCodes: []string{"CS1", "CS2", "CS1"},
	}}
	h := NewPlanningHandler(mock)

	r := gin.New()
	r.GET("/prerequisites/validate", authAs("admin-1", "admin", h.ValidatePrerequisites))
	w := serve(r, "GET", "/prerequisites/validate", nil)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":false`) {
		t.Errorf("响应应报告环，实际: %s", w.Body.String())
	}
}

func TestPlanningHandler_GenerateSemesterPlan_Self(t *testing.T) {
	mock := &mockPlanningService{planResult: samplePlan(studentA)}
	h := NewPlanningHandler(mock)

	r := gin.New()
	r.POST("/planning/semester-plan", authAs(studentA, "student", h.GenerateSemesterPlan))
	w := serve(r, "POST", "/planning/semester-plan", jsonBody(dto.GeneratePlanRequest{
		StudentID: studentA, SemesterID: semID, RequestedCredits: 6,
	}))

	if w.Code != http.StatusCreated {
		t.Errorf("期望 201，实际: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"requestedCredits":6`) {
		t.Errorf("计划应使用 camelCase 线格式，实际: %s", w.Body.String())
	}
}

func TestPlanningHandler_GenerateSemesterPlan_OtherStudentForbidden(t *testing.T) {
	mock := &mockPlanningService{planResult: samplePlan(studentB)}
	h := NewPlanningHandler(mock)

	r := gin.New()
	r.POST("/planning/semester-plan", authAs(studentA, "student", h.GenerateSemesterPlan))
	w := serve(r, "POST", "/planning/semester-plan", jsonBody(dto.GeneratePlanRequest{
		StudentID: studentB, SemesterID: semID, RequestedCredits: 6,
	}))

	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际: %d", w.Code)
	}
	if mock.generateCalled {
		t.Error("越权请求不应到达 Service")
	}
}

func TestPlanningHandler_GenerateSemesterPlan_AdvisorAllowed(t *testing.T) {
	mock := &mockPlanningService{planResult: samplePlan(studentB)}
	h := NewPlanningHandler(mock)

	r := gin.New()
	r.POST("/planning/semester-plan", authAs("advisor-1", "advisor", h.GenerateSemesterPlan))
	w := serve(r, "POST", "/planning/semester-plan", jsonBody(dto.GeneratePlanRequest{
		StudentID: studentB, SemesterID: semID, RequestedCredits: 6,
	}))

	if w.Code != http.StatusCreated {
		t.Errorf("期望 201，实际: %d", w.Code)
	}
}

func TestPlanningHandler_GenerateSemesterPlan_ZeroCredits(t *testing.T) {
	h := NewPlanningHandler(&mockPlanningService{})

	r := gin.New()
	r.POST("/planning/semester-plan", authAs(studentA, "student", h.GenerateSemesterPlan))
	w := serve(r, "POST", "/planning/semester-plan", jsonBody(dto.GeneratePlanRequest{
		StudentID: studentA, SemesterID: semID, RequestedCredits: 0,
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际: %d", w.Code)
	}
}

func TestPlanningHandler_GenerateSemesterPlan_SemesterNotFound(t *testing.T) {
	h := NewPlanningHandler(&mockPlanningService{planErr: service.ErrSemesterNotFound})

	r := gin.New()
	r.POST("/planning/semester-plan", authAs(studentA, "student", h.GenerateSemesterPlan))
	w := serve(r, "POST", "/planning/semester-plan", jsonBody(dto.GeneratePlanRequest{
		StudentID: studentA, SemesterID: semID, RequestedCredits: 6,
	}))

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际: %d", w.Code)
	}
}

func TestPlanningHandler_ValidatePlan_Success(t *testing.T) {
	mock := &mockPlanningService{validateResult: &planning.ValidationResult{
		Valid:        false,
		Items:        []planning.ReportItem{{Code: "CS1", OK: true}, {Code: "CS2", OK: false, Reason: planning.ReasonScheduleConflict}},
		TotalCredits: 7,
	}}
	h := NewPlanningHandler(mock)

	body := map[string]interface{}{
		"assignments": []map[string]interface{}{
			{"courseCode": "CS1", "sectionAssignments": []map[string]interface{}{
				{"type": "THEORY", "dayOfWeek": "MON", "slots": []string{"P1"}},
			}},
			{"courseCode": "CS2", "sectionAssignments": []map[string]interface{}{
				{"type": "THEORY", "dayOfWeek": "MON", "slots": []string{"P1"}},
			}},
		},
	}

	r := gin.New()
	r.POST("/planning/validate", authAs(studentA, "student", h.ValidatePlan))
	w := serve(r, "POST", "/planning/validate", jsonBody(body))

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际: %d，body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), planning.ReasonScheduleConflict) {
		t.Errorf("响应应包含冲突原因，实际: %s", w.Body.String())
	}
}

func TestPlanningHandler_ValidatePlan_InvalidWeekday(t *testing.T) {
	h := NewPlanningHandler(&mockPlanningService{})

	body := map[string]interface{}{
		"assignments": []map[string]interface{}{
			{"courseCode": "CS1", "sectionAssignments": []map[string]interface{}{
				{"type": "THEORY", "dayOfWeek": "XYZ", "slots": []string{"P1"}},
			}},
		},
	}

	r := gin.New()
	r.POST("/planning/validate", authAs(studentA, "student", h.ValidatePlan))
	w := serve(r, "POST", "/planning/validate", jsonBody(body))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际: %d", w.Code)
	}
}

func TestPlanningHandler_GetPlan_NotFound(t *testing.T) {
	h := NewPlanningHandler(&mockPlanningService{planErr: service.ErrPlanNotFound})

	r := gin.New()
	r.GET("/planning/plans/:id", authAs(studentA, "student", h.GetPlan))
	w := serve(r, "GET", "/planning/plans/plan-1", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际: %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 14001 {
		t.Errorf("期望 code=14001，实际: %d", resp.Code)
	}
}

func TestPlanningHandler_GetPlan_OtherStudentForbidden(t *testing.T) {
	h := NewPlanningHandler(&mockPlanningService{planResult: samplePlan(studentB)})

	r := gin.New()
	r.GET("/planning/plans/:id", authAs(studentA, "student", h.GetPlan))
	w := serve(r, "GET", "/planning/plans/plan-1", nil)

	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际: %d", w.Code)
	}
}

func TestPlanningHandler_ListPlans_Pagination(t *testing.T) {
	mock := &mockPlanningService{
		listResult: []dto.PlanSummary{{PlanID: "plan-1"}},
		listTotal:  11,
	}
	h := NewPlanningHandler(mock)

	r := gin.New()
	r.GET("/planning/students/:id/plans", authAs(studentA, "student", h.ListPlans))
	w := serve(r, "GET", "/planning/students/"+studentA+"/plans?page=2&page_size=5", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际: %d", w.Code)
	}
	if mock.lastPageSize != 5 {
		t.Errorf("期望 page_size=5，实际: %d", mock.lastPageSize)
	}
	if !strings.Contains(w.Body.String(), `"total_pages":3`) {
		t.Errorf("期望 total_pages=3，实际: %s", w.Body.String())
	}
}

func TestPlanningHandler_EligibleCourses_OtherStudentForbidden(t *testing.T) {
	h := NewPlanningHandler(&mockPlanningService{})

	r := gin.New()
	r.GET("/planning/students/:id/eligible-courses", authAs(studentA, "student", h.EligibleCourses))
	w := serve(r, "GET", "/planning/students/"+studentB+"/eligible-courses", nil)

	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际: %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TranscriptHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTranscriptHandler_GetSummary_Self(t *testing.T) {
	mock := &mockTranscriptService{summary: &dto.StudentSummaryResponse{
		StudentID: studentA, CumulativeGPA: 3.3, CumulativeClassification: "very good",
	}}
	h := NewTranscriptHandler(mock)

	r := gin.New()
	r.GET("/students/:id/summary", authAs(studentA, "student", h.GetSummary))
	w := serve(r, "GET", "/students/"+studentA+"/summary", nil)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际: %d", w.Code)
	}
}

func TestTranscriptHandler_UpsertStatuses_CourseMissing(t *testing.T) {
	h := NewTranscriptHandler(&mockTranscriptService{err: service.ErrStatusCourseNotFound})

	r := gin.New()
	r.PUT("/students/:id/statuses", authAs("advisor-1", "advisor", h.UpsertStatuses))
	w := serve(r, "PUT", "/students/"+studentA+"/statuses", jsonBody(dto.UpsertStatusesRequest{
		Statuses: []dto.CourseStatusInput{{CourseID: courseID, Status: "PASSED"}},
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际: %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15001 {
		t.Errorf("期望 code=15001，实际: %d", resp.Code)
	}
}

func TestTranscriptHandler_UpsertStatuses_InvalidStatus(t *testing.T) {
	h := NewTranscriptHandler(&mockTranscriptService{})

	r := gin.New()
	r.PUT("/students/:id/statuses", authAs("advisor-1", "advisor", h.UpsertStatuses))
	w := serve(r, "PUT", "/students/"+studentA+"/statuses", jsonBody(dto.UpsertStatusesRequest{
		Statuses: []dto.CourseStatusInput{{CourseID: courseID, Status: "DONE"}},
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际: %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportPlanICS_Success(t *testing.T) {
	exportMock := &mockExportService{buf: bytes.NewBufferString("BEGIN:VCALENDAR"), filename: "plan-abcd1234.ics"}
	planMock := &mockPlanningService{planResult: samplePlan(studentA)}
	h := NewExportHandler(exportMock, planMock)

	r := gin.New()
	r.GET("/export/plans/:id/ics", authAs(studentA, "student", h.ExportPlanICS))
	w := serve(r, "GET", "/export/plans/plan-1/ics", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type 不正确: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "plan-abcd1234.ics") {
		t.Errorf("Content-Disposition 缺少文件名: %s", cd)
	}
}

func TestExportHandler_ExportPlanExcel_OtherStudentForbidden(t *testing.T) {
	exportMock := &mockExportService{buf: bytes.NewBufferString("xlsx"), filename: "plan.xlsx"}
	planMock := &mockPlanningService{planResult: samplePlan(studentB)}
	h := NewExportHandler(exportMock, planMock)

	r := gin.New()
	r.GET("/export/plans/:id/xlsx", authAs(studentA, "student", h.ExportPlanExcel))
	w := serve(r, "GET", "/export/plans/plan-1/xlsx", nil)

	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际: %d", w.Code)
	}
}

func TestExportHandler_ExportPlanExcel_GenerateFail(t *testing.T) {
	exportMock := &mockExportService{err: service.ErrExportGenerateFail}
	planMock := &mockPlanningService{planResult: samplePlan(studentA)}
	h := NewExportHandler(exportMock, planMock)

	r := gin.New()
	r.GET("/export/plans/:id/xlsx", authAs(studentA, "student", h.ExportPlanExcel))
	w := serve(r, "GET", "/export/plans/plan-1/xlsx", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("期望 500，实际: %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 16001 {
		t.Errorf("期望 code=16001，实际: %d", resp.Code)
	}
}
