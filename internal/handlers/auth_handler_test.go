package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ritesh010/admin/internal/api"
	"github.com/Ritesh010/admin/internal/models"
	"github.com/Ritesh010/admin/internal/session"
)

func TestLoginCreatesSessionAndCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/login", r.URL.Path)
		resp := models.LoginResponse{Message: "Admin login successful", AdminToken: "tok-abc"}
		resp.Admin.FirstName = "Asha"
		resp.Admin.Username = "asha"
		writeJSON(w, resp)
	}))
	defer server.Close()

	store := testStore()
	h := NewAuthHandler(store, api.New(server.URL, zerolog.Nop()), testTemplates(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/signin", nil)
	req.Form = url.Values{"username": {"asha"}, "password": {"secret"}}
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	path, q := redirectQuery(t, rec)
	assert.Equal(t, "/", path)
	assert.Equal(t, "Login successful!", q.Get("notice"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)

	// The cookie resolves back to the stored session.
	follow := httptest.NewRequest(http.MethodGet, "/", nil)
	follow.AddCookie(cookies[0])
	id, err := store.ReadCookie(follow)
	require.NoError(t, err)
	token, ok := store.Token(id)
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)
}

func TestLoginRejectedShowsCredentialsMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"message": "nope"})
	}))
	defer server.Close()

	h := NewAuthHandler(testStore(), api.New(server.URL, zerolog.Nop()), testTemplates(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/signin", nil)
	req.Form = url.Values{"username": {"asha"}, "password": {"wrong"}}
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	path, q := redirectQuery(t, rec)
	assert.Equal(t, "/signin", path)
	assert.Equal(t, "Login failed. Please check your credentials.", q.Get("error"))
}

func TestLoginRequiresBothFields(t *testing.T) {
	h := NewAuthHandler(testStore(), api.New("http://unused", zerolog.Nop()), testTemplates(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/signin", nil)
	req.Form = url.Values{"username": {"asha"}}
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	_, q := redirectQuery(t, rec)
	assert.Equal(t, "Please enter both username and password.", q.Get("error"))
}

func TestLogoutClearsEverything(t *testing.T) {
	store := testStore()
	h := NewAuthHandler(store, api.New("http://unused", zerolog.Nop()), testTemplates(t), zerolog.Nop())

	id := store.Create(&models.Session{Token: "tok"})
	issue := httptest.NewRecorder()
	require.NoError(t, store.IssueCookie(issue, id))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(issue.Result().Cookies()[0])
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	path, q := redirectQuery(t, rec)
	assert.Equal(t, "/signin", path)
	assert.Equal(t, "You have been logged out.", q.Get("notice"))

	_, ok := store.Get(id)
	assert.False(t, ok)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
