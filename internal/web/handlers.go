package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	errorvalues "github.com/Agi91/Habit-Tracker/internal/error_values"
	"github.com/Agi91/Habit-Tracker/internal/service"
	"github.com/Agi91/Habit-Tracker/internal/stats"
	"github.com/Agi91/Habit-Tracker/pkg/entity"
)

// HabitView is what the dashboard template gets per habit.
type HabitView struct {
	Habit     *entity.Habit
	Summary   *stats.Summary
	PieData   []float64
	PieLabels []string
}

func (s *Server) SignupPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "signup.html", nil)
}

func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	if err := r.ParseForm(); err != nil {
		logger.Error("registering error: invalid form")
		s.sessions.Flash(w, r, "danger", "Invalid form submission.")
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	_, err := s.userService.Register(ctx, &service.RegisterRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserExists):
			logger.Error("registering error: existed user")
			s.sessions.Flash(w, r, "danger", "Username already exists. Please choose a different one.")
		case errors.Is(err, errorvalues.ErrInvalidInput):
			logger.Error("registering error: invalid credentials input")
			s.sessions.Flash(w, r, "danger", "Username and password are required.")
		default:
			logger.Error("registering error: service error", slog.String("error", err.Error()))
			s.sessions.Flash(w, r, "danger", "Something went wrong, please try again.")
		}
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}
	s.sessions.Flash(w, r, "success", "Registration successful! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	logger.Info("successful registration")
}

func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", nil)
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	if err := r.ParseForm(); err != nil {
		logger.Error("login error: invalid form")
		s.sessions.Flash(w, r, "danger", "Invalid form submission.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, errorvalues.ErrWrongCredentials) {
			logger.Error("login error: wrong credentials")
			s.sessions.Flash(w, r, "danger", "Invalid username or password.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		logger.Error("login error: service error", slog.String("error", err.Error()))
		s.sessions.Flash(w, r, "danger", "Something went wrong, please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err = s.sessions.SignIn(w, r, user); err != nil {
		logger.Error("login error: saving session", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.sessions.Flash(w, r, "success", fmt.Sprintf("Welcome back, %s!", user.Username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
	logger.Info("successful login")
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.SignOut(w, r)
	s.sessions.Flash(w, r, "info", "You have been logged out.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("dashboard error: unauthorized")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	habits, err := s.habitsService.GetUserHabits(ctx, uid)
	if err != nil {
		logger.Error("getting habits list error", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	today := s.now()
	views := make([]HabitView, 0, len(habits))
	for _, habit := range habits {
		summary, err := s.completionsService.Summarize(ctx, habit, today)
		if err != nil {
			// A bad row must not take the whole dashboard down
			logger.Error("summarizing habit error", slog.String("habit_id", habit.ID.String()), slog.String("error", err.Error()))
			continue
		}
		views = append(views, HabitView{
			Habit:     habit,
			Summary:   summary,
			PieData:   []float64{summary.CompletedPercent, summary.MissedPercent},
			PieLabels: []string{"Completed", "Missed"},
		})
	}
	s.render(w, r, "index.html", map[string]any{
		"Username":  GetUsernameFromContext(r),
		"SevenDays": stats.SevenDays(today),
		"Habits":    views,
	})
	logger.Info("dashboard provided")
}

func (s *Server) CreateHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create habit error: unauthorized")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		logger.Error("create habit error: invalid form")
		s.sessions.Flash(w, r, "danger", "Invalid form submission.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	_, err = s.habitsService.CreateHabit(ctx, uid, &service.CreateHabitRequest{
		Name:         r.PostFormValue("habit_name"),
		GoalDuration: r.PostFormValue("goal_duration"),
		StartDate:    s.now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidInput):
			logger.Error("create habit error: blank name")
			s.sessions.Flash(w, r, "danger", "Habit name is required.")
		default:
			logger.Error("create habit error: service error", slog.String("error", err.Error()))
			s.sessions.Flash(w, r, "danger", "Something went wrong, please try again.")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
	logger.Info("habit created")
}

func (s *Server) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("habit deletion error: unauthorized")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "habitID"))
	if err != nil {
		logger.Error("habit deletion error: invalid id in path value")
		s.sessions.Flash(w, r, "danger", "Habit not found or access denied.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	habit, err := s.habitsService.DeleteHabit(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("habit deletion error: unexist or foreign habit")
			s.sessions.Flash(w, r, "danger", "Habit not found or access denied.")
		default:
			logger.Error("habit deletion error: service error", slog.String("error", err.Error()))
			s.sessions.Flash(w, r, "danger", "Something went wrong, please try again.")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.sessions.Flash(w, r, "success", fmt.Sprintf("Habit %q has been deleted.", habit.Name))
	http.Redirect(w, r, "/", http.StatusSeeOther)
	logger.Info("habit deleted")
}

func (s *Server) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("toggle error: unauthorized")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "habitID"))
	if err != nil {
		logger.Error("toggle error: invalid id in path value")
		s.sessions.Flash(w, r, "danger", "Habit not found or access denied.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		// Malformed date token: silent redirect, no notice, no row
		logger.Error("toggle error: malformed date token")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	_, err = s.completionsService.ToggleCompletion(ctx, id, uid, date)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("toggle error: unexist or foreign habit")
			s.sessions.Flash(w, r, "danger", "Habit not found or access denied.")
		default:
			logger.Error("toggle error: service error", slog.String("error", err.Error()))
			s.sessions.Flash(w, r, "danger", "Something went wrong, please try again.")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
	logger.Info("completion toggled")
}
