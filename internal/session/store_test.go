package session

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, timeout time.Duration) *Store {
	t.Helper()
	return NewStore("test_session", timeout, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStore_CreateAndGet(t *testing.T) {
	s := newTestStore(t, 30*time.Minute)

	id := s.Create(7, "Ivan")
	require.NotEmpty(t, id)

	entry := s.Get(id)
	require.NotNil(t, entry)
	assert.Equal(t, int64(7), entry.UserID)
	assert.Equal(t, "Ivan", entry.UserName)
}

func TestStore_GetUnknownID(t *testing.T) {
	s := newTestStore(t, 30*time.Minute)
	assert.Nil(t, s.Get("no-such-session"))
}

func TestStore_IdleTimeoutExpiresSession(t *testing.T) {
	s := newTestStore(t, 30*time.Minute)

	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	id := s.Create(7, "Ivan")

	// Обращение до истечения таймаута продлевает сессию
	current = current.Add(29 * time.Minute)
	require.NotNil(t, s.Get(id))

	// Ещё 29 минут от последнего обращения — сессия всё ещё жива
	current = current.Add(29 * time.Minute)
	require.NotNil(t, s.Get(id))

	// Более 30 минут простоя — сессия истекла
	current = current.Add(31 * time.Minute)
	assert.Nil(t, s.Get(id))
}

func TestStore_DeleteClearsSession(t *testing.T) {
	s := newTestStore(t, 30*time.Minute)

	id := s.Create(7, "Ivan")
	s.Delete(id)

	assert.Nil(t, s.Get(id))
}

func TestStore_EvictExpired(t *testing.T) {
	s := newTestStore(t, 30*time.Minute)

	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	stale := s.Create(1, "Old")
	current = current.Add(40 * time.Minute)
	fresh := s.Create(2, "New")

	s.evictExpired()

	assert.Nil(t, s.Get(stale))
	assert.NotNil(t, s.Get(fresh))
}

func TestStore_CookieRoundTrip(t *testing.T) {
	s := newTestStore(t, 30*time.Minute)

	id := s.Create(7, "Ivan")

	w := httptest.NewRecorder()
	s.SetCookie(w, id)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "test_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])

	gotID, entry := s.FromRequest(r)
	assert.Equal(t, id, gotID)
	require.NotNil(t, entry)
	assert.Equal(t, int64(7), entry.UserID)
}

func TestStore_FromRequestWithoutCookie(t *testing.T) {
	s := newTestStore(t, 30*time.Minute)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	id, entry := s.FromRequest(r)

	assert.Empty(t, id)
	assert.Nil(t, entry)
}
