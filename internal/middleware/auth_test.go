package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickgrade/quickgrade/config"
	"github.com/quickgrade/quickgrade/internal/model"
	"github.com/quickgrade/quickgrade/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(env config.Environment, required model.Role, opts ...Option) (*gin.Engine, *token.Codec) {
	codec := token.New([]byte("test-secret"), token.DefaultTTL)
	auth := NewAuth(codec, &config.Config{Environment: env})

	r := gin.New()
	r.GET("/protected", auth.RequireAuth(required, opts...), func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": identity.UserID, "role": string(identity.Role)})
	})
	return r, codec
}

func doGet(t *testing.T, r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestMissingCookieIsUnauthorized(t *testing.T) {
	r, _ := newRouter(config.Production, AnyRole)
	w := doGet(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
}

func TestInvalidTokenIsRejected(t *testing.T) {
	r, _ := newRouter(config.Production, AnyRole)
	w := doGet(t, r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, w))
}

func TestValidTokenAttachesIdentity(t *testing.T) {
	r, codec := newRouter(config.Production, AnyRole)
	raw, err := codec.Issue(token.Identity{UserID: "u-1", Email: "a@b.com", Role: model.RoleDocente})
	require.NoError(t, err)

	w := doGet(t, r, raw)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-1")
}

func TestRoleMismatchIsForbidden(t *testing.T) {
	r, codec := newRouter(config.Production, model.RoleDocente)
	raw, err := codec.Issue(token.Identity{UserID: "u-2", Role: model.RoleStudente})
	require.NoError(t, err)

	w := doGet(t, r, raw)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", errorCode(t, w))
}

func TestAdminOverridesRoleCheck(t *testing.T) {
	r, codec := newRouter(config.Production, model.RoleDocente)
	raw, err := codec.Issue(token.Identity{UserID: "u-3", Role: model.RoleAdmin})
	require.NoError(t, err)

	w := doGet(t, r, raw)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDevBypassAllowsAnonymous(t *testing.T) {
	r, _ := newRouter(config.Development, model.RoleDocente, WithDevBypass())

	w := doGet(t, r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")

	w = doGet(t, r, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestDevBypassIsInertInProduction(t *testing.T) {
	r, _ := newRouter(config.Production, model.RoleDocente, WithDevBypass())

	w := doGet(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))

	w = doGet(t, r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, w))
}

func TestBypassNotHonoredWithoutOption(t *testing.T) {
	r, _ := newRouter(config.Development, AnyRole)
	w := doGet(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
