package controllers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/thread-nest/api-go/config"
	"github.com/thread-nest/api-go/models"
	"github.com/thread-nest/api-go/routes"
	"github.com/thread-nest/api-go/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.SetupJoinTables(db))
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Follow{}, &models.Post{}, &models.Like{}, &models.Reply{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{Port: "8080", JWTSecret: testSecret}

	r := gin.New()
	routes.SetupRoutes(r, db, cfg, log)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

type account struct {
	ID     uint
	Cookie *http.Cookie
}

// signup registers a user through the API and returns the new id along with
// the session cookie issued by the handler.
func signup(t *testing.T, r *gin.Engine, name, email, username, password string) account {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":%q,"username":%q,"password":%q}`, name, email, username, password)
	w := doJSON(t, r, http.MethodPost, "/signup", body, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	id, ok := resp["id"].(float64)
	require.True(t, ok, "signup response missing id")

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == utils.SessionCookieName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "signup did not set a session cookie")

	return account{ID: uint(id), Cookie: cookie}
}
