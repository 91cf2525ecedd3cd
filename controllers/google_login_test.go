package controllers_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thread-nest/api-go/config"
	"github.com/thread-nest/api-go/controllers"
	"github.com/thread-nest/api-go/models"
	"github.com/thread-nest/api-go/utils"
	"gorm.io/gorm"
)

// googleRouter wires a user controller whose Google verification endpoints
// point at the given local server instead of Google.
func googleRouter(t *testing.T, db *gorm.DB, infoServer *httptest.Server) *gin.Engine {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		JWTSecret: testSecret,
		Google: config.GoogleSettings{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		},
	}

	uc := controllers.NewUserController(db, cfg, log)
	if infoServer != nil {
		uc.GoogleConfig.TokenInfoURL = infoServer.URL
		uc.GoogleConfig.UserInfoURL = infoServer.URL
	}

	r := gin.New()
	r.POST("/auth/google", uc.GoogleLogin)
	return r
}

func googleInfoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleLoginNotConfigured(t *testing.T) {
	// The default router carries no Google credentials.
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/google", `{"id_token":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Google sign-in is not configured", decodeBody(t, w)["error"])
}

func TestGoogleLoginRequiresCredential(t *testing.T) {
	_, db := setupRouter(t)
	r := googleRouter(t, db, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/google", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Either code with redirect_uri, id_token, or access_token is required",
		decodeBody(t, w)["error"])
}

func TestGoogleLoginRejectsInvalidToken(t *testing.T) {
	_, db := setupRouter(t)
	srv := googleInfoServer(t, http.StatusUnauthorized, `{}`)
	r := googleRouter(t, db, srv)

	w := doJSON(t, r, http.MethodPost, "/auth/google", `{"access_token":"bad"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid Google token", decodeBody(t, w)["error"])
}

func TestGoogleLoginCreatesAccountOnFirstSight(t *testing.T) {
	base, db := setupRouter(t)
	srv := googleInfoServer(t, http.StatusOK,
		`{"email":"g@x.com","name":"Gee","picture":"https://img.example/g.png"}`)
	r := googleRouter(t, db, srv)

	// An existing account already holds the username derived from the email,
	// so the new account gets a numbered suffix.
	signup(t, base, "Squatter", "squat@x.com", "g@x.com", "pw123")

	w := doJSON(t, r, http.MethodPost, "/auth/google", `{"access_token":"tok"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	assert.Equal(t, "g@x.com", resp["email"])
	assert.Equal(t, "g@x.com1", resp["username"])

	var cookieSet bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == utils.SessionCookieName && ck.Value != "" {
			cookieSet = true
		}
	}
	assert.True(t, cookieSet, "google login did not set a session cookie")

	var stored models.User
	require.NoError(t, db.First(&stored, "email = ?", "g@x.com").Error)
	assert.Equal(t, "Gee", stored.Name)
	assert.Equal(t, "https://img.example/g.png", stored.ProfilePic)
}

func TestGoogleLoginReusesExistingAccount(t *testing.T) {
	_, db := setupRouter(t)
	srv := googleInfoServer(t, http.StatusOK, `{"email":"g@x.com","name":"Gee"}`)
	r := googleRouter(t, db, srv)

	w := doJSON(t, r, http.MethodPost, "/auth/google", `{"access_token":"tok"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/google", `{"access_token":"tok"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "g@x.com").Count(&count)
	assert.Equal(t, int64(1), count, "second sign-in must not create another account")
}
