package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniactivity/internal/app/controllers"
	"github.com/yigit/uniactivity/internal/app/models/dto"
	"github.com/yigit/uniactivity/internal/app/repositories/memory"
	"github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/middleware"
	"github.com/yigit/uniactivity/internal/pkg/auth"
	"github.com/yigit/uniactivity/internal/pkg/validation"
)

var testNow = time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	jwt    *auth.JWTService
}

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.RegisterGinValidators())

	db := memory.Open()
	log := zerolog.New(io.Discard)
	users := memory.NewUserRepository(db)
	classes := memory.NewClassRepository(db)
	assistances := memory.NewAssistanceRepository(db)
	clock := func() time.Time { return testNow }

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "test"})

	router := gin.New()
	SetupRouter(router,
		controllers.NewHealthController("memory", nil),
		controllers.NewUserController(services.NewUserService(users, log)),
		controllers.NewClassController(services.NewClassService(classes, log), clock),
		controllers.NewInscriptionController(services.NewInscriptionService(users, classes, assistances, log), clock),
		controllers.NewAssistanceController(services.NewAssistanceService(assistances, log), clock),
		middleware.NewAuthMiddleware(jwtService),
	)
	return &apiClient{t: t, router: router, jwt: jwtService}
}

func (a *apiClient) do(method, path string, body interface{}, headers ...string) (int, envelope) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func (a *apiClient) createUser(id string) {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/users", gin.H{
		"id":             id,
		"name":           "User " + id,
		"type":           "STUDENT",
		"identification": "ID-" + id,
		"email":          id + "@school.edu",
	})
	require.Equal(a.t, http.StatusCreated, status, env.Error)
}

func yogaClass() gin.H {
	return gin.H{
		"name":              "Yoga",
		"maxStudents":       2,
		"type":              "wellness",
		"startDate":         "2024-01-01",
		"endDate":           "2024-01-15",
		"startTime":         "2024-01-01T10:00:00",
		"endTime":           "2024-01-01T12:00:00",
		"sessions":          []gin.H{{"id": "mon", "day": "MONDAY", "startTime": "2024-01-01T10:00:00", "endTime": "2024-01-01T12:00:00"}},
		"resources":         []gin.H{{"name": "mat", "quantity": 10}},
		"repetition":        "weekly",
		"endTimeRepetition": "2024-01-15",
	}
}

func TestHealth(t *testing.T) {
	api := newAPIClient(t)
	status, env := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", decode[dto.HealthResponse](t, env).Status)
}

func TestUserRoutes(t *testing.T) {
	api := newAPIClient(t)
	api.createUser("4795")

	status, env := api.do(http.MethodGet, "/users/4795", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "STUDENT", decode[dto.UserResponse](t, env).Type)

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{
			name: "duplicate email", method: http.MethodPost, path: "/users",
			body:       gin.H{"name": "Other", "type": "STUDENT", "identification": "other", "email": "4795@school.edu"},
			wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeResourceAlreadyExists,
		},
		{
			name: "unknown role", method: http.MethodPost, path: "/users",
			body:       gin.H{"name": "Other", "type": "JANITOR", "identification": "other", "email": "other@school.edu"},
			wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeResourceInvalid,
		},
		{
			name: "missing fields", method: http.MethodPost, path: "/users",
			body:       gin.H{"name": "Other"},
			wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed,
		},
		{
			name: "unknown user", method: http.MethodGet, path: "/users/nobody",
			wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := api.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestClassRoutes(t *testing.T) {
	api := newAPIClient(t)

	status, _ := api.do(http.MethodGet, "/classes", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, env := api.do(http.MethodPost, "/classes", yogaClass())
	require.Equal(t, http.StatusCreated, status, env.Error)
	created := decode[[]dto.ClassResponse](t, env)
	require.Len(t, created, 3)
	assert.Len(t, created[0].Sessions, 3)
	assert.Equal(t, "2024-01-15T10:00:00", created[0].Sessions[2].StartTime)
	assert.True(t, time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC).Equal(created[1].StartTime))
	assert.Empty(t, created[1].Sessions)
	assert.Nil(t, created[1].Repetition)

	t.Run("unsupported repetition persists nothing", func(t *testing.T) {
		body := yogaClass()
		body["repetition"] = "daily"
		status, env := api.do(http.MethodPost, "/classes", body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, dto.ErrorCodeResourceInvalid, env.Error.Code)

		_, env = api.do(http.MethodGet, "/classes", nil)
		assert.Len(t, decode[[]dto.ClassResponse](t, env), 3)
	})

	t.Run("invalid timestamp", func(t *testing.T) {
		body := yogaClass()
		body["startTime"] = "monday"
		status, env := api.do(http.MethodPost, "/classes", body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
	})

	t.Run("queries", func(t *testing.T) {
		_, env := api.do(http.MethodGet, "/classes/type/wellness", nil)
		assert.Len(t, decode[[]dto.ClassResponse](t, env), 3)

		status, _ := api.do(http.MethodGet, "/classes/type/sports", nil)
		assert.Equal(t, http.StatusNoContent, status)

		_, env = api.do(http.MethodGet, "/classes/active", nil)
		assert.Len(t, decode[[]dto.ClassResponse](t, env), 3)

		status, env = api.do(http.MethodGet, "/classes/schedule?day=MONDAY&startTime=2024-01-08T00:00:00", nil)
		require.Equal(t, http.StatusOK, status)
		window := decode[[]dto.ClassResponse](t, env)
		require.Len(t, window, 1)
		assert.Equal(t, created[0].ID, window[0].ID)

		status, _ = api.do(http.MethodGet, "/classes/schedule?day=FRIDAY", nil)
		assert.Equal(t, http.StatusNoContent, status)
	})

	t.Run("update and delete", func(t *testing.T) {
		body := yogaClass()
		body["name"] = "Power Yoga"
		delete(body, "repetition")
		status, env := api.do(http.MethodPut, "/classes/"+created[1].ID, body)
		require.Equal(t, http.StatusOK, status, env.Error)
		assert.Equal(t, "Power Yoga", decode[dto.ClassResponse](t, env).Name)

		status, _ = api.do(http.MethodDelete, "/classes/"+created[1].ID, nil)
		assert.Equal(t, http.StatusNoContent, status)

		status, env = api.do(http.MethodGet, "/classes/"+created[1].ID, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)

		status, _ = api.do(http.MethodDelete, "/classes/"+created[1].ID, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestEnrollmentAndAttendanceFlow(t *testing.T) {
	api := newAPIClient(t)
	api.createUser("u1")
	api.createUser("u2")
	api.createUser("u3")

	// each enrollment holds a class-level and a session record
	class := yogaClass()
	class["maxStudents"] = 4
	_, env := api.do(http.MethodPost, "/classes", class)
	created := decode[[]dto.ClassResponse](t, env)
	base, repeated := created[0].ID, created[1].ID

	status, env := api.do(http.MethodPost, "/inscriptions", gin.H{"userId": "u1", "classId": base})
	require.Equal(t, http.StatusCreated, status, env.Error)
	records := decode[[]dto.AssistanceResponse](t, env)
	require.Len(t, records, 2)
	assert.Nil(t, records[0].SessionID)
	assert.Equal(t, "mon", *records[1].SessionID)
	assert.Equal(t, "PENDING", records[0].Status)

	status, env = api.do(http.MethodPost, "/inscriptions", gin.H{"userId": "u1", "classId": base})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.ErrorCodeInvalidState, env.Error.Code)

	status, env = api.do(http.MethodPost, "/inscriptions", gin.H{"userId": "u1", "classId": repeated, "startTime": "2024-01-08T10:00:00"})
	require.Equal(t, http.StatusCreated, status, env.Error)

	status, env = api.do(http.MethodPost, "/inscriptions", gin.H{"userId": "ghost", "classId": base})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)

	t.Run("capacity", func(t *testing.T) {
		status, _ := api.do(http.MethodPost, "/inscriptions", gin.H{"userId": "u2", "classId": base})
		require.Equal(t, http.StatusCreated, status)

		status, env := api.do(http.MethodPost, "/inscriptions", gin.H{"userId": "u3", "classId": base})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, dto.ErrorCodeInvalidState, env.Error.Code)
	})

	t.Run("pending and absences", func(t *testing.T) {
		status, env := api.do(http.MethodGet, "/inscriptions/users/u1", nil)
		require.Equal(t, http.StatusOK, status)
		pending := decode[[]dto.AssistanceResponse](t, env)
		require.Len(t, pending, 1)
		assert.Equal(t, repeated, pending[0].ClassID)

		status, _ = api.do(http.MethodGet, "/inscriptions/users/u3", nil)
		assert.Equal(t, http.StatusNoContent, status)

		_, env = api.do(http.MethodGet, "/assistance/absences", nil)
		assert.Len(t, decode[[]dto.AssistanceResponse](t, env), 4)
	})

	t.Run("confirm", func(t *testing.T) {
		token, err := api.jwt.GenerateToken("teacher-1", "TEACHER", time.Hour)
		require.NoError(t, err)

		status, env := api.do(http.MethodPost, "/assistance/confirm", gin.H{"userId": "u1", "classId": base}, "Authorization", "Bearer "+token)
		require.Equal(t, http.StatusOK, status, env.Error)
		confirmed := decode[dto.AssistanceResponse](t, env)
		assert.Equal(t, "CONFIRMED", confirmed.Status)
		require.NotNil(t, confirmed.InstructorID)
		assert.Equal(t, "teacher-1", *confirmed.InstructorID)

		status, env = api.do(http.MethodPost, "/assistance/confirm", gin.H{"userId": "u1", "classId": base, "instructorId": "teacher-2"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, dto.ErrorCodeInvalidState, env.Error.Code)

		status, env = api.do(http.MethodPost, "/assistance/confirm", gin.H{"userId": "u3", "classId": base})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, dto.ErrorCodeResourceInvalid, env.Error.Code)

		status, _ = api.do(http.MethodPost, "/assistance/confirm", gin.H{"userId": "u1", "classId": base}, "Authorization", "Bearer forged")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("counts and history", func(t *testing.T) {
		_, env := api.do(http.MethodGet, "/assistance/confirmed", nil)
		assert.Len(t, decode[[]dto.AssistanceResponse](t, env), 1)

		status, env := api.do(http.MethodGet, "/assistance/users/u1/count?start=2024-01-01&end=2024-01-01", nil)
		require.Equal(t, http.StatusOK, status, env.Error)
		assert.EqualValues(t, 1, decode[dto.CountResponse](t, env).Count)

		status, env = api.do(http.MethodGet, "/assistance/users/u1/count?start=2024-01-31&end=2024-01-01", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)

		status, env = api.do(http.MethodGet, "/assistance/users/u1/count?start=January&end=2024-01-01", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Validation failed", env.Error.Message)

		status, env = api.do(http.MethodGet, "/assistance/users/u1/classes/"+base+"/count", nil)
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 1, decode[dto.CountResponse](t, env).Count)

		status, env = api.do(http.MethodGet, "/assistance/users/u1/classes/"+repeated+"/count", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, dto.ErrorCodeInvalidState, env.Error.Code)

		_, env = api.do(http.MethodGet, "/assistance/users/u1/history", nil)
		assert.Len(t, decode[[]dto.AssistanceResponse](t, env), 1)

		status, _ = api.do(http.MethodGet, "/assistance/users/u2/history", nil)
		assert.Equal(t, http.StatusNoContent, status)
	})

	t.Run("cancel", func(t *testing.T) {
		status, _ := api.do(http.MethodDelete, "/inscriptions?userId=u1&classId="+repeated, nil)
		assert.Equal(t, http.StatusNoContent, status)

		status, env := api.do(http.MethodDelete, "/inscriptions?userId=u1&classId="+repeated, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)

		status, _ = api.do(http.MethodDelete, "/inscriptions?userId=u1", nil)
		assert.Equal(t, http.StatusBadRequest, status)

		status, _ = api.do(http.MethodGet, "/inscriptions", nil)
		assert.Equal(t, http.StatusNoContent, status)
	})
}
