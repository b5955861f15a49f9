package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-secret")

func sign(t *testing.T, key []byte, username string, expires time.Time) string {
	t.Helper()
	claims := &Claims{
		Username:         username,
		UserHash:         UserHashFromUsername(username, key),
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func run(t *testing.T, header string) (*httptest.ResponseRecorder, string, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	err := JWT(testKey)(func(c echo.Context) error {
		seen, _ = c.Get("username").(string)
		return c.NoContent(http.StatusNoContent)
	})(c)
	return rec, seen, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return he.Code
}

func TestJWTAcceptsBareAndBearerTokens(t *testing.T) {
	token := sign(t, testKey, "clerk", time.Now().Add(time.Hour))

	for _, header := range []string{token, "Bearer " + token, "bearer " + token} {
		rec, user, err := run(t, header)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "clerk", user)
	}
}

func TestJWTRejects(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"garbage", "not-a-token"},
		{"wrong key", sign(t, []byte("other"), "clerk", time.Now().Add(time.Hour))},
		{"expired", sign(t, testKey, "clerk", time.Now().Add(-time.Hour))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, tc.header)
			require.Error(t, err)
			assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
		})
	}
}

func TestUserHashIsNormalized(t *testing.T) {
	assert.Equal(t, UserHashFromUsername("Clerk ", testKey), UserHashFromUsername("clerk", testKey))
	assert.NotEqual(t, UserHashFromUsername("clerk", testKey), UserHashFromUsername("clerk", []byte("x")))
}
