package web

import (
	"encoding/gob"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/Agi91/Habit-Tracker/pkg/entity"
)

const sessionName = "habit_session"

// Notice is a transient user-facing message. Category matches the
// bootstrap alert classes: success, info, warning, danger.
type Notice struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Notice{})
}

type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(secret string) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, user *entity.User) error {
	session, _ := sm.store.Get(r, sessionName)
	session.Values["user_id"] = user.ID.String()
	session.Values["username"] = user.Username
	return session.Save(r, w)
}

// SignOut clears the identity binding. Idempotent, a second call on an
// empty session is a no-op.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := sm.store.Get(r, sessionName)
	delete(session.Values, "user_id")
	delete(session.Values, "username")
	return session.Save(r, w)
}

func (sm *SessionManager) CurrentUser(r *http.Request) (uuid.UUID, string, bool) {
	session, err := sm.store.Get(r, sessionName)
	if err != nil {
		return uuid.UUID{}, "", false
	}
	raw, ok := session.Values["user_id"].(string)
	if !ok {
		return uuid.UUID{}, "", false
	}
	uid, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, "", false
	}
	username, _ := session.Values["username"].(string)
	return uid, username, true
}

func (sm *SessionManager) Flash(w http.ResponseWriter, r *http.Request, category, message string) {
	session, _ := sm.store.Get(r, sessionName)
	session.AddFlash(Notice{Category: category, Message: message})
	session.Save(r, w)
}

// Flashes drains pending notices; reading consumes them.
func (sm *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []Notice {
	session, _ := sm.store.Get(r, sessionName)
	raw := session.Flashes()
	if len(raw) > 0 {
		session.Save(r, w)
	}
	notices := make([]Notice, 0, len(raw))
	for _, v := range raw {
		if n, ok := v.(Notice); ok {
			notices = append(notices, n)
		}
	}
	return notices
}
