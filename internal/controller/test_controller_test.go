package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickgrade/quickgrade/config"
	"github.com/quickgrade/quickgrade/internal/apperr"
	"github.com/quickgrade/quickgrade/internal/dto"
	"github.com/quickgrade/quickgrade/internal/middleware"
	"github.com/quickgrade/quickgrade/internal/model"
	"github.com/quickgrade/quickgrade/internal/token"
)

type stubTestService struct {
	created   *dto.CreatedResponse
	test      *dto.TestResponse
	questions []dto.QuestionResponse
	err       error

	gotIdentity *token.Identity
	gotReq      dto.CreateTestRequest
}

func (s *stubTestService) Create(identity *token.Identity, req dto.CreateTestRequest) (*dto.CreatedResponse, error) {
	s.gotIdentity = identity
	s.gotReq = req
	return s.created, s.err
}
func (s *stubTestService) Get(identity *token.Identity, id string) (*dto.TestResponse, error) {
	s.gotIdentity = identity
	return s.test, s.err
}
func (s *stubTestService) GetQuestions(identity *token.Identity, id string) ([]dto.QuestionResponse, error) {
	s.gotIdentity = identity
	return s.questions, s.err
}

func newTestRouter(svc *stubTestService, env config.Environment, codec *token.Codec, createOpts ...middleware.Option) *gin.Engine {
	cfg := &config.Config{Environment: env}
	ctrl := NewTestController(svc)
	auth := middleware.NewAuth(codec, cfg)

	r := gin.New()
	r.POST("/api/tests", auth.RequireAuth(model.RoleDocente, createOpts...), ctrl.Create)
	r.GET("/api/tests/:id", auth.RequireAuth(middleware.AnyRole), ctrl.Get)
	r.GET("/api/tests/:id/questions", auth.RequireAuth(middleware.AnyRole), ctrl.GetQuestions)
	return r
}

func issue(t *testing.T, codec *token.Codec, role model.Role) *http.Cookie {
	t.Helper()
	raw, err := codec.Issue(token.Identity{UserID: "u-1", Email: "d@b.com", Role: role})
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.CookieName, Value: raw}
}

func TestCreateAcceptsEmptyBody(t *testing.T) {
	codec := token.New([]byte("s"), token.DefaultTTL)
	svc := &stubTestService{created: &dto.CreatedResponse{ID: "t-1"}}
	r := newTestRouter(svc, config.Production, codec)

	req := httptest.NewRequest(http.MethodPost, "/api/tests", nil)
	req.AddCookie(issue(t, codec, model.RoleDocente))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var body dto.CreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "t-1", body.ID)
	require.NotNil(t, svc.gotIdentity)
	assert.Equal(t, "u-1", svc.gotIdentity.UserID)
	assert.Empty(t, svc.gotReq.Title)
}

func TestCreatePassesBodyThrough(t *testing.T) {
	codec := token.New([]byte("s"), token.DefaultTTL)
	svc := &stubTestService{created: &dto.CreatedResponse{ID: "t-1"}}
	r := newTestRouter(svc, config.Production, codec)

	w := postJSONWithCookie(t, r, "/api/tests", `{"title":"Verifica di storia","description":"unità 3"}`, issue(t, codec, model.RoleDocente))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Verifica di storia", svc.gotReq.Title)
	assert.Equal(t, "unità 3", svc.gotReq.Description)
}

func TestCreateRequiresTeacherRole(t *testing.T) {
	codec := token.New([]byte("s"), token.DefaultTTL)
	svc := &stubTestService{created: &dto.CreatedResponse{ID: "t-1"}}
	r := newTestRouter(svc, config.Production, codec)

	req := httptest.NewRequest(http.MethodPost, "/api/tests", nil)
	req.AddCookie(issue(t, codec, model.RoleStudente))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", decodeEnvelope(t, w).Error.Code)
}

func TestCreateDevBypassReachesService(t *testing.T) {
	codec := token.New([]byte("s"), token.DefaultTTL)
	svc := &stubTestService{created: &dto.CreatedResponse{ID: "t-1"}}
	r := newTestRouter(svc, config.Development, codec, middleware.WithDevBypass())

	req := httptest.NewRequest(http.MethodPost, "/api/tests", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, svc.gotIdentity, "anonymous create under dev bypass")
}

func TestCreateServiceErrorEnvelope(t *testing.T) {
	codec := token.New([]byte("s"), token.DefaultTTL)
	svc := &stubTestService{err: apperr.NoDemoTeacher()}
	r := newTestRouter(svc, config.Development, codec, middleware.WithDevBypass())

	req := httptest.NewRequest(http.MethodPost, "/api/tests", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "NO_DEMO_TEACHER", decodeEnvelope(t, w).Error.Code)
}

func TestGetNotFoundEnvelope(t *testing.T) {
	codec := token.New([]byte("s"), token.DefaultTTL)
	svc := &stubTestService{err: apperr.TestNotFound()}
	r := newTestRouter(svc, config.Production, codec)

	req := httptest.NewRequest(http.MethodGet, "/api/tests/t-404", nil)
	req.AddCookie(issue(t, codec, model.RoleDocente))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "TEST_NOT_FOUND", env.Error.Code)
	assert.NotContains(t, w.Body.String(), "title")
}

func TestGetQuestionsReturnsOrderedArray(t *testing.T) {
	codec := token.New([]byte("s"), token.DefaultTTL)
	svc := &stubTestService{questions: []dto.QuestionResponse{
		{ID: "q-1", QuestionIndex: 0, Type: "MCQ", Points: 1},
		{ID: "q-2", QuestionIndex: 1, Type: "SHORT", Points: 2},
	}}
	r := newTestRouter(svc, config.Production, codec)

	req := httptest.NewRequest(http.MethodGet, "/api/tests/t-1/questions", nil)
	req.AddCookie(issue(t, codec, model.RoleDocente))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body []dto.QuestionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, 0, body[0].QuestionIndex)
}

func postJSONWithCookie(t *testing.T, r *gin.Engine, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
