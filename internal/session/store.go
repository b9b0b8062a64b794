package session

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ritesh010/admin/internal/models"
)

const CookieName = "admin_session"

var ErrInvalidCookie = errors.New("invalid session cookie")

// Store keeps admin sessions in process memory, mirroring the per-tab
// sessionStorage contract: nothing survives a restart, and clearing a
// session removes every field at once.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*models.Session
	onClear   []func(id string)
	secretKey []byte
	logger    zerolog.Logger
}

func NewStore(secret string, logger zerolog.Logger) *Store {
	if secret == "" {
		secret = "default-secret-key-change-in-production"
		logger.Warn().Msg("SESSION_SECRET not set, using default key")
	}

	return &Store{
		sessions:  make(map[string]*models.Session),
		secretKey: []byte(secret),
		logger:    logger,
	}
}

// Create registers a new session and returns its ID.
func (s *Store) Create(sess *models.Session) string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess

	return id
}

func (s *Store) Get(id string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Store) Set(id string, sess *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

// Token returns the bearer token for a session, if one exists. Token
// presence is the sole authentication signal.
func (s *Store) Token(id string) (string, bool) {
	sess, ok := s.Get(id)
	if !ok || sess.Token == "" {
		return "", false
	}
	return sess.Token, true
}

// OnClear registers a hook run whenever a session is cleared, so other
// components can drop per-session state without this package knowing them.
func (s *Store) OnClear(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}

// Clear drops the session entirely and runs the registered hooks. Clearing
// an unknown ID is a no-op apart from the hooks.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	hooks := s.onClear
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(id)
	}
}

type cookieClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// IssueCookie signs the session ID into the browser cookie. The cookie is a
// session cookie (no Max-Age), matching the tab-scoped storage it replaces.
func (s *Store) IssueCookie(w http.ResponseWriter, id string) error {
	claims := &cookieClaims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error signing session cookie")
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ReadCookie verifies the request's session cookie and returns the session ID.
func (s *Store) ReadCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", err
	}

	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidCookie
	}

	return claims.SessionID, nil
}

// DropCookie expires the browser cookie on logout or forced re-auth.
func (s *Store) DropCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
