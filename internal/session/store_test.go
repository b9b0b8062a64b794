package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ritesh010/admin/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore("test-secret", zerolog.Nop())
}

func TestStoreLifecycle(t *testing.T) {
	store := newTestStore(t)

	id := store.Create(&models.Session{
		Token:     "tok-123",
		FirstName: "Asha",
		LastName:  "Rao",
		Username:  "asha",
	})
	require.NotEmpty(t, id)

	sess, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, "asha", sess.Username)

	token, ok := store.Token(id)
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)

	store.Clear(id)
	_, ok = store.Get(id)
	assert.False(t, ok)
	_, ok = store.Token(id)
	assert.False(t, ok)

	// Clearing an unknown ID is a no-op.
	store.Clear("never-existed")
}

func TestSetReplacesSession(t *testing.T) {
	store := newTestStore(t)
	id := store.Create(&models.Session{Token: "old", Username: "asha"})

	store.Set(id, &models.Session{Token: "new", Username: "asha"})

	token, ok := store.Token(id)
	require.True(t, ok)
	assert.Equal(t, "new", token)
}

func TestTokenPresenceIsTheAuthSignal(t *testing.T) {
	store := newTestStore(t)
	id := store.Create(&models.Session{Username: "asha"})

	_, ok := store.Token(id)
	assert.False(t, ok, "a session without a token is unauthenticated")
}

func TestClearRunsRegisteredHooks(t *testing.T) {
	store := newTestStore(t)
	id := store.Create(&models.Session{Token: "tok"})

	var cleared []string
	store.OnClear(func(id string) { cleared = append(cleared, id) })

	store.Clear(id)
	assert.Equal(t, []string{id}, cleared)

	// Hooks fire for unknown IDs too; dependent state may outlive the
	// session entry.
	store.Clear("gone")
	assert.Equal(t, []string{id, "gone"}, cleared)
}

func TestCookieRoundTrip(t *testing.T) {
	store := newTestStore(t)
	id := store.Create(&models.Session{Token: "tok"})

	rec := httptest.NewRecorder()
	require.NoError(t, store.IssueCookie(rec, id))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	gotID, err := store.ReadCookie(req)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
}

func TestReadCookieRejectsTampering(t *testing.T) {
	store := newTestStore(t)
	other := NewStore("different-secret", zerolog.Nop())

	id := store.Create(&models.Session{Token: "tok"})
	rec := httptest.NewRecorder()
	require.NoError(t, other.IssueCookie(rec, id))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	_, err := store.ReadCookie(req)
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestReadCookieMissing(t *testing.T) {
	store := newTestStore(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := store.ReadCookie(req)
	assert.Error(t, err)
}
