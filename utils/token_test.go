package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thread-nest/api-go/utils"
)

const testSecret = "token-test-secret"

func signClaims(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestGenerateAndParseToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	signed, err := utils.GenerateTokenAndSetCookie(c, 42, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := utils.ParseToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestGenerateTokenCookieAttributes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	_, err := utils.GenerateTokenAndSetCookie(c, 7, testSecret)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, utils.SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Greater(t, cookie.MaxAge, 0)
}

func TestClearTokenCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	utils.ClearTokenCookie(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token := signClaims(t, "other-secret", jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, err := utils.ParseToken(token, testSecret)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token := signClaims(t, testSecret, jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	_, err := utils.ParseToken(token, testSecret)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseTokenRejectsMissingUserID(t *testing.T) {
	token := signClaims(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := utils.ParseToken(token, testSecret)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := utils.ParseToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}
