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

	"eventmaster/internal/dto"
	"eventmaster/internal/service"
	"eventmaster/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	profileResult *dto.PersonResponse
	profileErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return m.logoutErr
}
func (m *mockAuthService) GetProfile(_ context.Context, _ string) (*dto.PersonResponse, error) {
	return m.profileResult, m.profileErr
}

// ── Mock StaffingService ──

type mockStaffingService struct {
	reconcileErr   error
	listResult     []dto.AssignmentResponse
	listErr        error
	addResult      *dto.AssignmentResponse
	addErr         error
	updateResult   *dto.AssignmentResponse
	updateErr      error
	deleteErr      error
	changeLogs     []dto.ChangeLogResponse
	changeLogTotal int64
	changeLogErr   error

	reconciled []string
}

func (m *mockStaffingService) Reconcile(_ context.Context, occurrenceID, _ string) error {
	m.reconciled = append(m.reconciled, occurrenceID)
	return m.reconcileErr
}
func (m *mockStaffingService) ListStaffing(_ context.Context, _ string) ([]dto.AssignmentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockStaffingService) ListTemplateStaffing(_ context.Context, _ string) ([]dto.AssignmentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockStaffingService) AddOccurrenceAssignment(_ context.Context, _ string, _ *dto.AddAssignmentRequest, _ string) (*dto.AssignmentResponse, error) {
	return m.addResult, m.addErr
}
func (m *mockStaffingService) AddTemplateAssignment(_ context.Context, _ string, _ *dto.AddAssignmentRequest, _ string) (*dto.AssignmentResponse, error) {
	return m.addResult, m.addErr
}
func (m *mockStaffingService) UpdateAssignment(_ context.Context, _ string, _ *dto.UpdateAssignmentRequest, _ string) (*dto.AssignmentResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockStaffingService) DeleteAssignment(_ context.Context, _, _ string) error {
	return m.deleteErr
}
func (m *mockStaffingService) ListChangeLogs(_ context.Context, _ string, _ *dto.ChangeLogListRequest) ([]dto.ChangeLogResponse, int64, error) {
	return m.changeLogs, m.changeLogTotal, m.changeLogErr
}

// ── Mock NoticeService ──

type mockNoticeService struct {
	listResult  []dto.NoticeResponse
	listTotal   int64
	listErr     error
	countResult *dto.UnreadCountResponse
	countErr    error
	markReadErr error
	markAllErr  error
}

func (m *mockNoticeService) ListInbox(_ context.Context, _, _ string, _ *dto.NoticeListRequest) ([]dto.NoticeResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockNoticeService) UnreadCount(_ context.Context, _, _ string) (*dto.UnreadCountResponse, error) {
	return m.countResult, m.countErr
}
func (m *mockNoticeService) MarkRead(_ context.Context, _, _, _ string) error {
	return m.markReadErr
}
func (m *mockNoticeService) MarkAllRead(_ context.Context, _, _ string) error {
	return m.markAllErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	respondResult *dto.AttendanceResponseDTO
	respondErr    error
	listResult    []dto.AttendanceResponseDTO
	listErr       error
}

func (m *mockAttendanceService) Respond(_ context.Context, _, _, _ string, _ *dto.RespondAttendanceRequest) (*dto.AttendanceResponseDTO, error) {
	return m.respondResult, m.respondErr
}
func (m *mockAttendanceService) ListByOccurrence(_ context.Context, _ string) ([]dto.AttendanceResponseDTO, error) {
	return m.listResult, m.listErr
}
func (m *mockAttendanceService) ListMine(_ context.Context, _ string) ([]dto.AttendanceResponseDTO, error) {
	return m.listResult, m.listErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf       *bytes.Buffer
	filename  string
	exportErr error
	feed      string
	feedErr   error
}

func (m *mockExportService) ExportStaffing(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.exportErr
}
func (m *mockExportService) CalendarFeed(_ context.Context) (string, error) {
	return m.feed, m.feedErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("person_id", "test-person-id")
	c.Set("role", "admin")
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

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandlerLoginSuccess(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "anna@example.com",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginBadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "anna@example.com",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandlerLogoutMissingHeader(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// StaffingHandler Tests
// ═══════════════════════════════════════════════════════════

func TestStaffingHandlerSyncRunsReconcile(t *testing.T) {
	mock := &mockStaffingService{
		listResult: []dto.AssignmentResponse{
			{ID: "a-1", SortOrder: 1},
		},
	}
	h := NewStaffingHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/occurrences/occ-1/staffing/sync", nil)

	r := gin.New()
	r.POST("/occurrences/:id/staffing/sync", func(c *gin.Context) {
		setAuth(c)
		h.Sync(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if len(mock.reconciled) != 1 || mock.reconciled[0] != "occ-1" {
		t.Errorf("expected one reconcile for occ-1, got %v", mock.reconciled)
	}
}

func TestStaffingHandlerDeleteNotFound(t *testing.T) {
	h := NewStaffingHandler(&mockStaffingService{deleteErr: service.ErrAssignmentNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/assignments/a-missing", nil)

	r := gin.New()
	r.DELETE("/assignments/:id", func(c *gin.Context) {
		setAuth(c)
		h.Delete(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17002 {
		t.Errorf("expected error code 17002, got %d", resp.Code)
	}
}

func TestStaffingHandlerChangeLogsPaginated(t *testing.T) {
	mock := &mockStaffingService{
		changeLogs: []dto.ChangeLogResponse{
			{ID: "cl-1", Description: "Worship Leader was set to Anna by Admin"},
		},
		changeLogTotal: 7,
	}
	h := NewStaffingHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/occurrences/occ-1/change-logs?page=2&page_size=5", nil)

	r := gin.New()
	r.GET("/occurrences/:id/change-logs", h.ListChangeLogs)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Code int               `json:"code"`
		Data response.PageData `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Data.Pagination.Total != 7 {
		t.Errorf("expected total 7, got %d", resp.Data.Pagination.Total)
	}
	if resp.Data.Pagination.Page != 2 {
		t.Errorf("expected page 2, got %d", resp.Data.Pagination.Page)
	}
}

// ═══════════════════════════════════════════════════════════
// NoticeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestNoticeHandlerMarkReadNotFound(t *testing.T) {
	h := NewNoticeHandler(&mockNoticeService{markReadErr: service.ErrNoticeNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/notices/n-missing/read", nil)

	r := gin.New()
	r.PUT("/notices/:id/read", func(c *gin.Context) {
		setAuth(c)
		h.MarkRead(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 18002 {
		t.Errorf("expected error code 18002, got %d", resp.Code)
	}
}

func TestNoticeHandlerListRequiresAuth(t *testing.T) {
	h := NewNoticeHandler(&mockNoticeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/notices", nil)

	r := gin.New()
	r.GET("/notices", h.List) // no auth context set
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandlerRespondConflict(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{respondErr: service.ErrAttendanceNotOpen})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/occurrences/occ-1/roles/role-1/attendance",
		jsonBody(dto.RespondAttendanceRequest{Status: "accepted"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/occurrences/:id/roles/:roleId/attendance", func(c *gin.Context) {
		setAuth(c)
		h.Respond(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 18005 {
		t.Errorf("expected error code 18005, got %d", resp.Code)
	}
}

func TestAttendanceHandlerRespondRejectsBadStatus(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/occurrences/occ-1/roles/role-1/attendance",
		jsonBody(map[string]string{"status": "maybe"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/occurrences/:id/roles/:roleId/attendance", func(c *gin.Context) {
		setAuth(c)
		h.Respond(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandlerStaffingSheet(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		filename: "staffing_2025-03-02.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/occurrences/occ-1/staffing", nil)

	r := gin.New()
	r.GET("/export/occurrences/:id/staffing", h.ExportStaffing)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "staffing_2025-03-02.xlsx") {
		t.Errorf("expected filename in disposition header, got %q", cd)
	}
	if w.Body.String() != "fake-xlsx-bytes" {
		t.Error("expected workbook bytes in body")
	}
}

func TestExportHandlerStaffingEmpty(t *testing.T) {
	h := NewExportHandler(&mockExportService{exportErr: service.ErrExportNoStaffing})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/occurrences/occ-1/staffing", nil)

	r := gin.New()
	r.GET("/export/occurrences/:id/staffing", h.ExportStaffing)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 19001 {
		t.Errorf("expected error code 19001, got %d", resp.Code)
	}
}

func TestExportHandlerCalendarFeed(t *testing.T) {
	mock := &mockExportService{feed: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar.ics", nil)

	r := gin.New()
	r.GET("/calendar.ics", h.CalendarFeed)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Error("expected VCALENDAR body")
	}
}
