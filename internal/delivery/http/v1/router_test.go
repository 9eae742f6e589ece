package v1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-interview-booking/config"
	v1 "go-interview-booking/internal/delivery/http/v1"
	"go-interview-booking/internal/domain"
	"go-interview-booking/internal/repository/memory"
	"go-interview-booking/internal/usecase"
	"go-interview-booking/pkg/auth"
	"go-interview-booking/pkg/metrics"
	"go-interview-booking/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testSecret = "test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type testServer struct {
	router *gin.Engine
	store  *memory.Store
}

func newTestServer(t *testing.T, tweak func(*config.Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:                testSecret,
		CORSAllowedOrigins:       []string{"http://localhost:3000"},
		RequestTimeoutSeconds:    5,
		MaxConcurrentRequests:    10,
		RateLimitWindowSeconds:   60,
		RateLimitGlobalThreshold: 1000,
		InterviewQuota:           domain.DefaultInterviewQuota,
	}
	if tweak != nil {
		tweak(cfg)
	}

	logger := zaptest.NewLogger(t)
	store := memory.New()
	validate := validation.New()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      usecase.NewAuthUsecase(store, logger),
		CompanyUC:   usecase.NewCompanyUsecase(store, validate, logger, m),
		PositionUC:  usecase.NewPositionUsecase(store, validate, logger, m),
		InterviewUC: usecase.NewInterviewUsecase(store, validate, logger, m, nil, cfg.InterviewQuota),
		Verifier:    auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		Config:      cfg,
		Logger:      logger,
		Metrics:     m,
		Gatherer:    reg,
	})
	return &testServer{router: router, store: store}
}

func token(t *testing.T, id, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(testSecret, "", id, id+"@example.com", id, role, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, tok string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decodeID(t *testing.T, env envelope) string {
	t.Helper()
	var v struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	require.NotEmpty(t, v.ID)
	return v.ID
}

var (
	windowStart = time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC)
)

func companyBody(name string) gin.H {
	return gin.H{
		"name":        name,
		"address":     "99 Rama IV Rd",
		"website":     "https://www.example.com",
		"description": "Software house",
		"tel":         "02-000-0000",
		"tags":        []string{"Software"},
	}
}

func positionBody(title string) gin.H {
	return gin.H{
		"title":           title,
		"description":     "Build things",
		"skill":           []string{"Go"},
		"openingPosition": 1,
		"salary":          gin.H{"min": 30000, "max": 50000},
		"location":        "Bangkok",
		"interviewStart":  windowStart,
		"interviewEnd":    windowEnd,
	}
}

// seed creates one company with one position as admin
func (s *testServer) seed(t *testing.T, adminTok string) (companyID, positionID string) {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/v1/companies", adminTok, companyBody("Acme"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	companyID = decodeID(t, env)

	w, env = s.do(t, http.MethodPost, "/api/v1/companies/"+companyID+"/positions", adminTok, positionBody("Backend"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return companyID, decodeID(t, env)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := s.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("missing token", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/v1/interviews", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Not authorized to access this route", env.Message)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		forged, err := auth.GenerateToken("other", "", "mallory", "m@example.com", "M", domain.RoleAdmin, time.Hour)
		require.NoError(t, err)
		w, _ := s.do(t, http.MethodGet, "/api/v1/interviews", forged, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown role claim", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/v1/auth/me", token(t, "eve", "superuser"), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Not authorized to access this route", env.Message)

		w, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", token(t, "eve", domain.RoleUser), nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("users cannot create companies", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/api/v1/companies", token(t, "ann", domain.RoleUser), companyBody("Acme"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "User role user is not authorized to access this route", env.Message)
	})

	t.Run("first request creates the local user", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/v1/auth/me", token(t, "carol", domain.RoleUser), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var user domain.User
		require.NoError(t, json.Unmarshal(env.Data, &user))
		assert.Equal(t, "carol@example.com", user.Email)
		assert.Equal(t, domain.RoleUser, user.Role)
	})

	t.Run("public reads need no token", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/v1/companies", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, env.Count)
		assert.Equal(t, 0, *env.Count)
	})
}

func TestBookingScenarios(t *testing.T) {
	s := newTestServer(t, nil)
	adminTok := token(t, "admin", domain.RoleAdmin)
	annTok := token(t, "ann", domain.RoleUser)
	companyID, positionID := s.seed(t, adminTok)

	book := func(date time.Time) (*httptest.ResponseRecorder, envelope) {
		return s.do(t, http.MethodPost, "/api/v1/interviews", annTok, gin.H{
			"company": companyID, "position": positionID, "interviewDate": date,
		})
	}

	t.Run("booking inside the window", func(t *testing.T) {
		w, env := book(windowStart.AddDate(0, 0, 1))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.True(t, env.Success)
	})

	t.Run("booking outside the window", func(t *testing.T) {
		w, env := book(windowEnd.AddDate(0, 0, 1))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Interview date must be between 2026-05-11T00:00:00.000Z and 2026-05-14T00:00:00.000Z", env.Message)
	})

	t.Run("fourth booking exceeds the quota", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w, _ := book(windowStart)
			require.Equal(t, http.StatusCreated, w.Code)
		}
		w, env := book(windowStart)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User ann@example.com has already made 3 interviews", env.Message)

		w, env = s.do(t, http.MethodGet, "/api/v1/interviews", annTok, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, *env.Count)
	})

	t.Run("route company wins over the body", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/api/v1/companies/missing/interviews", adminTok, gin.H{
			"company": companyID, "position": positionID, "interviewDate": windowStart,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "No company with the id of missing", env.Message)
	})
}

func TestBookingRequestErrors(t *testing.T) {
	s := newTestServer(t, nil)
	adminTok := token(t, "admin", domain.RoleAdmin)
	annTok := token(t, "ann", domain.RoleUser)
	companyID, positionID := s.seed(t, adminTok)

	t.Run("date without time is rejected with a format hint", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/api/v1/interviews", annTok, gin.H{
			"company": companyID, "position": positionID, "interviewDate": "2026-05-12",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid date, use ISO-8601 such as 2026-05-12T09:00:00Z", env.Message)
		assert.NotContains(t, w.Body.String(), "parsing time")
	})

	t.Run("missing date", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/api/v1/interviews", annTok, gin.H{
			"company": companyID, "position": positionID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please add Interview Date", env.Message)
	})

	t.Run("wrong field type", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/api/v1/interviews", annTok, gin.H{
			"company": 42, "position": positionID, "interviewDate": windowStart,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", env.Message)
	})
}

func TestDeleteScenarios(t *testing.T) {
	s := newTestServer(t, nil)
	adminTok := token(t, "admin", domain.RoleAdmin)
	annTok := token(t, "ann", domain.RoleUser)
	companyID, positionID := s.seed(t, adminTok)

	t.Run("position without interviews", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/api/v1/companies/"+companyID+"/positions", adminTok, positionBody("Spare"))
		require.Equal(t, http.StatusCreated, w.Code)
		spareID := decodeID(t, env)

		w, env = s.do(t, http.MethodDelete, "/api/v1/positions/"+spareID, adminTok, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{}`, string(env.Data))

		w, _ = s.do(t, http.MethodGet, "/api/v1/positions/"+spareID, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("company with an interview", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/api/v1/interviews", annTok, gin.H{
			"company": companyID, "position": positionID, "interviewDate": windowStart,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w, env := s.do(t, http.MethodDelete, "/api/v1/companies/"+companyID, adminTok, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Cannot delete company. There are active interviews associated with this company.", env.Message)

		w, _ = s.do(t, http.MethodGet, "/api/v1/companies/"+companyID, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		w, env = s.do(t, http.MethodGet, "/api/v1/companies/"+companyID+"/positions", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, *env.Count)
	})
}

func TestInterviewOwnership(t *testing.T) {
	s := newTestServer(t, nil)
	adminTok := token(t, "admin", domain.RoleAdmin)
	annTok := token(t, "ann", domain.RoleUser)
	bobTok := token(t, "bob", domain.RoleUser)
	companyID, positionID := s.seed(t, adminTok)

	w, env := s.do(t, http.MethodPost, "/api/v1/interviews", annTok, gin.H{
		"company": companyID, "position": positionID, "interviewDate": windowStart,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	interviewID := decodeID(t, env)

	t.Run("other users see nothing", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/v1/interviews", bobTok, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, *env.Count)

		w, env = s.do(t, http.MethodGet, "/api/v1/interviews/"+interviewID, bobTok, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "User bob is not authorized to read this interview", env.Message)

		w, _ = s.do(t, http.MethodDelete, "/api/v1/interviews/"+interviewID, bobTok, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin sees every interview populated", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/api/v1/companies/"+companyID+"/interviews", adminTok, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, *env.Count)

		var list []domain.InterviewDetail
		require.NoError(t, json.Unmarshal(env.Data, &list))
		require.NotNil(t, list[0].Company)
		assert.Equal(t, "Acme", list[0].Company.Name)
		assert.Equal(t, "Backend", list[0].Position.Title)
		assert.Equal(t, "ann@example.com", list[0].User.Email)
	})

	t.Run("owner reschedules inside the window", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPut, "/api/v1/interviews/"+interviewID, annTok, gin.H{
			"interviewDate": windowEnd,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		w, _ = s.do(t, http.MethodPut, "/api/v1/interviews/"+interviewID, annTok, gin.H{
			"interviewDate": windowEnd.Add(time.Hour),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("owner cancels", func(t *testing.T) {
		w, _ := s.do(t, http.MethodDelete, "/api/v1/interviews/"+interviewID, annTok, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w, env := s.do(t, http.MethodGet, "/api/v1/interviews/"+interviewID, annTok, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, fmt.Sprintf("No interview with the id of %s", interviewID), env.Message)
	})
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t, nil)
	adminTok := token(t, "admin", domain.RoleAdmin)

	body := companyBody("Acme")
	body["website"] = "example.com"
	delete(body, "address")

	w, env := s.do(t, http.MethodPost, "/api/v1/companies", adminTok, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "Please add an address")
	assert.Contains(t, env.Message, "Please use a valid URL with HTTP or HTTPS")

	var violations []validation.Violation
	require.NoError(t, json.Unmarshal(env.Error, &violations))
	assert.Len(t, violations, 2)

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/companies", bytes.NewBufferString("{"))
		req.Header.Set("Authorization", "Bearer "+adminTok)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"message":"Invalid request body"`)
	})

	t.Run("duplicate name", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/api/v1/companies", adminTok, companyBody("Acme"))
		require.Equal(t, http.StatusCreated, w.Code)
		w, env := s.do(t, http.MethodPost, "/api/v1/companies", adminTok, companyBody("Acme"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Duplicate field value entered", env.Message)
	})
}

func TestAggregations(t *testing.T) {
	s := newTestServer(t, nil)
	adminTok := token(t, "admin", domain.RoleAdmin)

	first := companyBody("Acme")
	first["tags"] = []string{"Fintech", "AI"}
	w, _ := s.do(t, http.MethodPost, "/api/v1/companies", adminTok, first)
	require.Equal(t, http.StatusCreated, w.Code)
	second := companyBody("Beta")
	second["tags"] = []string{"fintech"}
	w, _ = s.do(t, http.MethodPost, "/api/v1/companies", adminTok, second)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/v1/companies/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tags []string
	require.NoError(t, json.Unmarshal(env.Data, &tags))
	assert.Equal(t, []string{"AI", "Fintech"}, tags)

	w, env = s.do(t, http.MethodGet, "/api/v1/positions/skills", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, *env.Count)
}

func TestExport(t *testing.T) {
	s := newTestServer(t, nil)
	adminTok := token(t, "admin", domain.RoleAdmin)
	annTok := token(t, "ann", domain.RoleUser)
	s.seed(t, adminTok)

	w, _ := s.do(t, http.MethodGet, "/api/v1/interviews/export", annTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/interviews/export", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "interviews_")
	assert.NotZero(t, w.Body.Len())
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimitGlobalThreshold = 2
	})

	for i := 0; i < 2; i++ {
		w, _ := s.do(t, http.MethodGet, "/api/v1/companies", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, env := s.do(t, http.MethodGet, "/api/v1/companies", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", env.Message)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w, _ = s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodGet, "/api/v1/companies", "", nil)

	w, _ := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/api/v1/companies",status="200"} 1`)
}
