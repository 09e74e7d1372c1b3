package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Agi91/Habit-Tracker/internal/service"
)

type Server struct {
	mx                 *chi.Mux
	userService        service.UserServiceI
	habitsService      service.HabitsServiceI
	completionsService service.CompletionsServiceI
	sessions           *SessionManager
	tmpl               *template.Template
	// Overridable clock so handler tests can pin "today"
	now func() time.Time
}

type ServicesList struct {
	UserService        service.UserServiceI
	HabitsService      service.HabitsServiceI
	CompletionsService service.CompletionsServiceI
	Sessions           *SessionManager
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:                 chi.NewMux(),
		userService:        servicesOptions.UserService,
		habitsService:      servicesOptions.HabitsService,
		completionsService: servicesOptions.CompletionsService,
		sessions:           servicesOptions.Sessions,
		tmpl:               parseTemplates(),
		now:                time.Now,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)

	s.mx.Get("/signup", s.SignupPage)
	s.mx.Post("/signup", s.Signup)
	s.mx.Get("/login", s.LoginPage)
	s.mx.Post("/login", s.Login)
	s.mx.Get("/logout", s.Logout)

	s.mx.Group(func(r chi.Router) {
		r.Use(s.SessionAuthMiddleware)
		r.Get("/", s.Dashboard)
		r.Post("/", s.CreateHabit)
		r.Post("/delete_habit/{habitID}", s.DeleteHabit)
		r.Get("/complete/{habitID}/{date}", s.ToggleCompletion)
	})
}

func (s *Server) Handler() http.Handler {
	return s.mx
}

func (s *Server) Run(address string) error {
	return http.ListenAndServe(address, s.mx)
}
