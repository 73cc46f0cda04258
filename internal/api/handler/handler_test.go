package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"

	"3genpadel/backend/internal/dto"
	"3genpadel/backend/internal/service"
	"3genpadel/backend/pkg/jwt"
	"3genpadel/backend/pkg/response"
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
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock RankingService ──

type mockRankingService struct {
	recomputeDivErr error
	playerResult    *dto.RankingRowResponse
	playerErr       error
	standingsResult *dto.StandingsResponse
	standingsErr    error
}

func (m *mockRankingService) RecomputeDivision(_ context.Context, _, _ string) error {
	return m.recomputeDivErr
}
func (m *mockRankingService) RecomputePlayer(_ context.Context, _, _, _ string) (*dto.RankingRowResponse, error) {
	return m.playerResult, m.playerErr
}
func (m *mockRankingService) GetStandings(_ context.Context, _, _ string) (*dto.StandingsResponse, error) {
	return m.standingsResult, m.standingsErr
}

// ── Mock TransitionService ──

type mockTransitionService struct {
	previewDivResult   *dto.TransitionResultResponse
	previewDivErr      error
	previewStageResult *dto.StageTransitionResponse
	previewStageErr    error
	commitResult       *dto.StageTransitionResponse
	commitErr          error
	committedResult    *dto.StageTransitionResponse
	committedErr       error
}

func (m *mockTransitionService) PreviewDivision(_ context.Context, _, _ string) (*dto.TransitionResultResponse, error) {
	return m.previewDivResult, m.previewDivErr
}
func (m *mockTransitionService) PreviewStage(_ context.Context, _ string) (*dto.StageTransitionResponse, error) {
	return m.previewStageResult, m.previewStageErr
}
func (m *mockTransitionService) Commit(_ context.Context, _, _ string) (*dto.StageTransitionResponse, error) {
	return m.commitResult, m.commitErr
}
func (m *mockTransitionService) GetCommitted(_ context.Context, _ string) (*dto.StageTransitionResponse, error) {
	return m.committedResult, m.committedErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportStandings(_ context.Context, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock MatchService ──

type mockMatchService struct {
	createResult *dto.MatchResponse
	createErr    error
	getResult    *dto.MatchResponse
	getErr       error
	listResult   []dto.MatchResponse
	listTotal    int64
	listErr      error
	recordResult *dto.MatchResponse
	recordErr    error
	deleteErr    error
}

func (m *mockMatchService) Create(_ context.Context, _ *dto.CreateMatchRequest) (*dto.MatchResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockMatchService) GetByID(_ context.Context, _ string) (*dto.MatchResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockMatchService) List(_ context.Context, _, _, _ string, _, _ int) ([]dto.MatchResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockMatchService) RecordResult(_ context.Context, _ string, _ *dto.RecordResultRequest) (*dto.MatchResponse, error) {
	return m.recordResult, m.recordErr
}
func (m *mockMatchService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "11111111-1111-1111-1111-111111111111")
	c.Set("role", "admin")
	c.Set("claims", &jwt.Claims{
		UserID:    "11111111-1111-1111-1111-111111111111",
		Role:      "admin",
		TokenType: "access",
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        "test-jti",
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	})
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

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock, nil)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "ana@test.com",
		Password: "secreto123",
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

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials}, nil)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "ana@test.com",
		Password: "equivocada",
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

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: jwt.ErrTokenInvalid}, nil)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "rubbish",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		setAuth(c)
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RankingHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRankingHandler_GetStandings_Success(t *testing.T) {
	mock := &mockRankingService{
		standingsResult: &dto.StandingsResponse{
			StageID:    "stage-1",
			DivisionID: "div-1",
			Rows:       []dto.RankingRowResponse{{PlayerID: "player-1"}},
		},
	}
	h := NewRankingHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/rankings?stage_id=stage-1&division_id=div-1", nil)

	r := gin.New()
	r.GET("/rankings", h.GetStandings)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRankingHandler_GetStandings_MissingParams(t *testing.T) {
	h := NewRankingHandler(&mockRankingService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/rankings?stage_id=stage-1", nil) // 缺 division_id

	r := gin.New()
	r.GET("/rankings", h.GetStandings)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRankingHandler_Recompute_NotEnrolled(t *testing.T) {
	h := NewRankingHandler(&mockRankingService{playerErr: service.ErrPlayerNotEnrolled})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/rankings/recompute", jsonBody(dto.RecomputeRankingRequest{
		PlayerID:   "11111111-1111-1111-1111-111111111111",
		StageID:    "22222222-2222-2222-2222-222222222222",
		DivisionID: "33333333-3333-3333-3333-333333333333",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/rankings/recompute", h.RecomputeRanking)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17002 {
		t.Errorf("expected error code 17002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TransitionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTransitionHandler_Preview_StageWide(t *testing.T) {
	mock := &mockTransitionService{
		previewStageResult: &dto.StageTransitionResponse{StageID: "stage-1"},
	}
	h := NewTransitionHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/stages/stage-1/transition/preview", nil)

	r := gin.New()
	r.GET("/stages/:id/transition/preview", h.PreviewTransition)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestTransitionHandler_Preview_SingleDivision(t *testing.T) {
	mock := &mockTransitionService{
		previewDivResult: &dto.TransitionResultResponse{DivisionID: "div-1", QuotaUsed: 2},
	}
	h := NewTransitionHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/stages/stage-1/transition/preview?division_id=div-1", nil)

	r := gin.New()
	r.GET("/stages/:id/transition/preview", h.PreviewTransition)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestTransitionHandler_Commit_Success(t *testing.T) {
	mock := &mockTransitionService{
		commitResult: &dto.StageTransitionResponse{StageID: "stage-1", Committed: true},
	}
	h := NewTransitionHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/stages/stage-1/transition/commit", nil)

	r := gin.New()
	r.POST("/stages/:id/transition/commit", func(c *gin.Context) {
		setAuth(c)
		h.CommitTransition(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestTransitionHandler_Commit_AlreadyCommitted(t *testing.T) {
	h := NewTransitionHandler(&mockTransitionService{commitErr: service.ErrTransitionCommitted})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/stages/stage-1/transition/commit", nil)

	r := gin.New()
	r.POST("/stages/:id/transition/commit", func(c *gin.Context) {
		setAuth(c)
		h.CommitTransition(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 19001 {
		t.Errorf("expected error code 19001, got %d", resp.Code)
	}
}

func TestTransitionHandler_Get_NotCommitted(t *testing.T) {
	h := NewTransitionHandler(&mockTransitionService{committedErr: service.ErrTransitionNotCommitted})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/stages/stage-1/transition", nil)

	r := gin.New()
	r.GET("/stages/:id/transition", h.GetTransition)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 19002 {
		t.Errorf("expected error code 19002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// MatchHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMatchHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrMatchNotFound, 404, 16001},
		{"DuplicatePlayer", service.ErrMatchPlayerDuplicate, 400, 16002},
		{"NotInDivision", service.ErrMatchPlayerNotInDiv, 400, 16003},
		{"AlreadyFinal", service.ErrMatchAlreadyFinal, 409, 16004},
		{"WinnerRequired", service.ErrMatchWinnerRequired, 400, 16005},
		{"NoShowInvalid", service.ErrMatchNoShowInvalid, 400, 16006},
		{"DivisionNotFound", service.ErrDivisionNotFound, 404, 14001},
		{"DivisionMismatch", service.ErrDivisionMismatch, 400, 15004},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMatchHandler(&mockMatchService{recordErr: tt.err})

			w := setupRecorder()
			req := httptest.NewRequest("PUT", "/matches/match-1/result", jsonBody(dto.RecordResultRequest{
				Status: "played", WinnerTeam: 1, SetsTeam1: 2, SetsTeam2: 0,
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.PUT("/matches/:id/result", h.RecordResult)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestMatchHandler_RecordResult_BadJSON(t *testing.T) {
	h := NewMatchHandler(&mockMatchService{})

	w := setupRecorder()
	req := httptest.NewRequest("PUT", "/matches/match-1/result", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/matches/:id/result", h.RecordResult)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "标准榜_Etapa 1.xlsx",
	}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/standings?stage_id=stage-1", nil)

	r := gin.New()
	r.GET("/export/standings", h.ExportStandings)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_MissingStageID(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/standings", nil)

	r := gin.New()
	r.GET("/export/standings", h.ExportStandings)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_NoDivisions(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoDivisions})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/standings?stage_id=stage-1", nil)

	r := gin.New()
	r.GET("/export/standings", h.ExportStandings)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
