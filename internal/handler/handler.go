package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"carebook/internal/middleware"
	"carebook/internal/store"
	"carebook/internal/view"
)

type Handler struct {
	store  *store.Store
	secret string
	log    *logrus.Logger
	now    func() time.Time
}

func New(st *store.Store, secret string, log *logrus.Logger) *Handler {
	return &Handler{store: st, secret: secret, log: log, now: time.Now}
}

// Router wires the full route table.
func (h *Handler) Router(rl *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Log(h.log))
	r.Use(middleware.Identify(h.secret))

	r.HandleFunc("/", h.Index).Methods("GET")
	r.Handle("/login", rl.Limit(http.HandlerFunc(h.Login))).Methods("GET", "POST")
	r.HandleFunc("/logout", h.Logout).Methods("GET")
	r.Handle("/register", rl.Limit(http.HandlerFunc(h.Register))).Methods("GET", "POST")
	r.HandleFunc("/refresh", h.Refresh).Methods("POST")

	r.Handle("/appointment", middleware.RequireAuth(http.HandlerFunc(h.Appointment))).Methods("GET", "POST")
	r.Handle("/dashboard", middleware.RequireAuth(http.HandlerFunc(h.Dashboard))).Methods("GET")
	r.Handle("/delete_appointment/{id}", middleware.RequireAuth(http.HandlerFunc(h.DeleteAppointment))).Methods("POST")

	r.HandleFunc("/admin_dashboard", h.AdminDashboard).Methods("GET")
	r.HandleFunc("/recent_appointments", h.RecentAppointments).Methods("GET")
	r.HandleFunc("/upcoming_appointments", h.UpcomingAppointments).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, http.StatusNotFound, "404", view.Data{})
	})
	return r
}

// today returns the current calendar day at midnight UTC.
func (h *Handler) today() time.Time {
	now := h.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// serverError logs the real cause and renders the generic error page.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	view.Render(w, http.StatusInternalServerError, "error", view.Data{})
}
