package session

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry хранит данные авторизованного пользователя на время сессии:
// числовой идентификатор и отображаемое имя.
type Entry struct {
	UserID   int64
	UserName string
	lastSeen time.Time
}

// Store — серверное хранилище сессий в памяти процесса.
// Сессия идентифицируется непрозрачным ID, который доставляется
// клиенту в HttpOnly-куке. Сессия истекает по таймауту простоя.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Entry
	idleTimeout time.Duration
	cookieName  string
	logger      *slog.Logger
	now         func() time.Time
}

// NewStore создает новое хранилище сессий с заданным таймаутом простоя
func NewStore(cookieName string, idleTimeout time.Duration, logger *slog.Logger) *Store {
	return &Store{
		sessions:    make(map[string]*Entry),
		idleTimeout: idleTimeout,
		cookieName:  cookieName,
		logger:      logger,
		now:         time.Now,
	}
}

// Create регистрирует новую сессию и возвращает её ID
func (s *Store) Create(userID int64, userName string) string {
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = &Entry{
		UserID:   userID,
		UserName: userName,
		lastSeen: s.now(),
	}
	s.mu.Unlock()

	s.logger.Info("session created", "user_id", userID)
	return id
}

// Get возвращает данные сессии по ID и продлевает её,
// либо nil, если сессия не существует или истекла по простою.
func (s *Store) Get(id string) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil
	}

	if s.now().Sub(entry.lastSeen) > s.idleTimeout {
		delete(s.sessions, id)
		s.logger.Info("session expired by idle timeout", "user_id", entry.UserID)
		return nil
	}

	entry.lastSeen = s.now()
	return &Entry{UserID: entry.UserID, UserName: entry.UserName, lastSeen: entry.lastSeen}
}

// Delete полностью очищает сессию (используется при выходе)
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// StartJanitor запускает фоновую очистку истекших сессий.
// Останавливается при отмене контекста.
func (s *Store) StartJanitor(done <-chan struct{}) {
	ticker := time.NewTicker(s.idleTimeout)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.evictExpired()
			}
		}
	}()
}

func (s *Store) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTimeout)
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// FromRequest извлекает сессию из куки запроса.
// Возвращает ID куки и данные сессии; ("", nil) если сессии нет.
func (s *Store) FromRequest(r *http.Request) (string, *Entry) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return "", nil
	}
	return cookie.Value, s.Get(cookie.Value)
}

// SetCookie устанавливает сессионную куку в ответ
func (s *Store) SetCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sessionID,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// ClearCookie сбрасывает сессионную куку
func (s *Store) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}
