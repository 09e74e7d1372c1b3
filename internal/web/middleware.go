package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/Agi91/Habit-Tracker/internal/error_values"
)

var (
	requestIDContextKey = "Request-ID"
	loggerContextKey    = "Logger"
	uidContextKey       = "User-ID"
	usernameContextKey  = "Username"
)

func (s *Server) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.New()
		ctx := context.WithValue(r.Context(), requestIDContextKey, reqID.String())
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) SettingUpLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.Default()
		reqID, ok := r.Context().Value(requestIDContextKey).(string)
		if ok && reqID != "" {
			logger = logger.With(slog.String("request_id", reqID))
		}
		logger = logger.With(slog.String("from", r.RemoteAddr))
		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

// SessionAuthMiddleware guards the habit-bearing routes: no session
// identity means a warning notice and a redirect to the login page,
// never an error page.
func (s *Server) SessionAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		uid, username, ok := s.sessions.CurrentUser(r)
		if !ok {
			s.sessions.Flash(w, r, "warning", "Please log in to view your habits.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		// Assuring if user still exists
		ctx, cancel := context.WithTimeout(r.Context(), time.Second*5)
		defer cancel()
		_, err := s.userService.GetByID(ctx, uid)
		if err != nil {
			if errors.Is(err, errorvalues.ErrUserNotFound) {
				logger.Error("session user doesn't exist anymore")
				s.sessions.SignOut(w, r)
				s.sessions.Flash(w, r, "warning", "Please log in to view your habits.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			logger.Error("error while searching for session user", slog.String("error", err.Error()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		logger = logger.With(slog.String("uid", uid.String()))
		reqCtx := context.WithValue(r.Context(), uidContextKey, uid)
		reqCtx = context.WithValue(reqCtx, usernameContextKey, username)
		reqCtx = context.WithValue(reqCtx, loggerContextKey, logger)
		next.ServeHTTP(w, r.WithContext(reqCtx))
	})
}

func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerContextKey).(*slog.Logger)
	if ok {
		return logger
	}
	return slog.Default()
}

func GetUIDFromContext(r *http.Request) (uuid.UUID, error) {
	uid, ok := r.Context().Value(uidContextKey).(uuid.UUID)
	if !ok {
		return uuid.UUID{}, errors.New("uid invalid or doesn't exists")
	}
	return uid, nil
}

func GetUsernameFromContext(r *http.Request) string {
	username, _ := r.Context().Value(usernameContextKey).(string)
	return username
}
