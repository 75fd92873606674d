package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoSecretsApp/GoSecretsApp/internal/config"
	"github.com/GoSecretsApp/GoSecretsApp/internal/db/models"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web"
	"github.com/GoSecretsApp/GoSecretsApp/internal/web/session"
)

func newTestService(t *testing.T) (*web.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	session.Init(memory.New())

	cfg := &config.Config{}
	cfg.Webserver.Port = 3000
	cfg.Webserver.URL = "http://localhost:3000"
	cfg.Webserver.CookieEncryptionKey = encryptcookie.GenerateKey()
	cfg.Webserver.Session.ExpiryTime = 0

	return web.New(cfg, db), db
}

// sessionCookie extracts the session cookie from a response, or "" if unset.
func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			return c.Value
		}
	}

	return ""
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: cookie})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func get(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: cookie})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func registerUser(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	resp := postForm(t, app, "/register", url.Values{
		"username": {email},
		"password": {password},
	}, "")

	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/secrets", resp.Header.Get("Location"))

	cookie := sessionCookie(resp)
	require.NotEmpty(t, cookie)

	return cookie
}

func TestRegisterCreatesUserAndSignsIn(t *testing.T) {
	service, db := newTestService(t)

	registerUser(t, service.App, "alice@example.com", "correct horse")

	var user models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.NotEqual(t, "correct horse", user.Password)
	assert.NotEqual(t, models.PasswordSentinelGoogle, user.Password)
	assert.Nil(t, user.Secret)
}

func TestRegisterDuplicateRedirectsToLogin(t *testing.T) {
	service, db := newTestService(t)

	registerUser(t, service.App, "alice@example.com", "first password")

	resp := postForm(t, service.App, "/register", url.Values{
		"username": {"alice@example.com"},
		"password": {"second password"},
	}, "")

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Empty(t, sessionCookie(resp))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	service, db := newTestService(t)

	resp := postForm(t, service.App, "/register", url.Values{
		"username": {"not-an-email"},
		"password": {"something"},
	}, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLogin(t *testing.T) {
	service, _ := newTestService(t)

	registerUser(t, service.App, "alice@example.com", "correct horse")

	t.Run("correct password", func(t *testing.T) {
		resp := postForm(t, service.App, "/login", url.Values{
			"username": {"alice@example.com"},
			"password": {"correct horse"},
		}, "")

		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/secrets", resp.Header.Get("Location"))
		assert.NotEmpty(t, sessionCookie(resp))
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := postForm(t, service.App, "/login", url.Values{
			"username": {"alice@example.com"},
			"password": {"wrong horse"},
		}, "")

		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
		assert.Empty(t, sessionCookie(resp))
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := postForm(t, service.App, "/login", url.Values{
			"username": {"nobody@example.com"},
			"password": {"whatever"},
		}, "")

		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
		assert.Empty(t, sessionCookie(resp))
	})
}

func TestLoginRejectsGoogleAccount(t *testing.T) {
	service, db := newTestService(t)

	require.NoError(t, db.Create(&models.User{
		Email:    "bob@example.com",
		Password: models.PasswordSentinelGoogle,
	}).Error)

	resp := postForm(t, service.App, "/login", url.Values{
		"username": {"bob@example.com"},
		"password": {models.PasswordSentinelGoogle},
	}, "")

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Empty(t, sessionCookie(resp))
}

func TestSecretsRequiresAuthentication(t *testing.T) {
	service, _ := newTestService(t)

	for _, path := range []string{"/secrets", "/submit"} {
		resp := get(t, service.App, path, "")
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	}
}

func TestSecretsPlaceholderAndSubmit(t *testing.T) {
	service, _ := newTestService(t)

	cookie := registerUser(t, service.App, "alice@example.com", "correct horse")

	resp := get(t, service.App, "/secrets", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "You haven&#39;t submitted a secret yet")

	resp = postForm(t, service.App, "/submit", url.Values{
		"secret": {"I like pineapple pizza"},
	}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/secrets", resp.Header.Get("Location"))

	resp = get(t, service.App, "/secrets", cookie)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "I like pineapple pizza")
}

func TestSubmitOnlyChangesOwnSecret(t *testing.T) {
	service, db := newTestService(t)

	cookieAlice := registerUser(t, service.App, "alice@example.com", "password one")
	registerUser(t, service.App, "bob@example.com", "password two")

	resp := postForm(t, service.App, "/submit", url.Values{
		"secret": {"alice's secret"},
	}, cookieAlice)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	var bob models.User
	require.NoError(t, db.Where("email = ?", "bob@example.com").First(&bob).Error)
	assert.Nil(t, bob.Secret)
}

func TestLogout(t *testing.T) {
	service, _ := newTestService(t)

	cookie := registerUser(t, service.App, "alice@example.com", "correct horse")

	resp := get(t, service.App, "/logout", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// the session is gone server side, the old cookie no longer works
	resp = get(t, service.App, "/secrets", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginPageRedirectsSignedInUsers(t *testing.T) {
	service, _ := newTestService(t)

	cookie := registerUser(t, service.App, "alice@example.com", "correct horse")

	for _, path := range []string{"/login", "/register"} {
		resp := get(t, service.App, path, cookie)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/secrets", resp.Header.Get("Location"))
	}
}

func TestCheckAlive(t *testing.T) {
	service, _ := newTestService(t)

	resp := get(t, service.App, "/checkalive", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "alive", string(body))
}

func TestMetricsEndpoint(t *testing.T) {
	service, _ := newTestService(t)

	resp := get(t, service.App, "/metrics", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHomePage(t *testing.T) {
	service, _ := newTestService(t)

	resp := get(t, service.App, "/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Secrets")
}
