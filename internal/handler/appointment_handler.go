package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"carebook/internal/middleware"
	"carebook/internal/model"
	"carebook/internal/slot"
	"carebook/internal/store"
	"carebook/internal/view"
)

// wireDateFormat is how dates arrive from the booking form.
const wireDateFormat = "01/02/2006"

func (h *Handler) Appointment(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		view.Render(w, http.StatusOK, "appointment", view.Data{})
		return
	}

	claims := middleware.Claims(r.Context())

	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	phone := r.PostFormValue("phone")
	dateStr := r.PostFormValue("date")
	message := r.PostFormValue("message")

	if name == "" || email == "" || phone == "" || dateStr == "" {
		view.Render(w, http.StatusBadRequest, "appointment", view.Data{Error: "Name, email, phone and date are required."})
		return
	}

	date, err := time.ParseInLocation(wireDateFormat, dateStr, time.UTC)
	if err != nil {
		view.Render(w, http.StatusBadRequest, "appointment", view.Data{Error: "Invalid date format. Please use MM/DD/YYYY format."})
		return
	}

	// Read the day's bookings, allocate the next free slot, insert.
	// A concurrent booking of the same slot trips the unique index; the
	// loop then allocates again. len(Labels())+1 attempts are enough to
	// either land a slot or observe the day fully booked.
	for attempt := 0; attempt <= len(slot.Labels()); attempt++ {
		booked, err := h.store.BookedTimeslots(r.Context(), date)
		if err != nil {
			h.serverError(w, r, err)
			return
		}

		label, err := slot.Next(date, h.now(), booked)
		if err != nil {
			view.Render(w, http.StatusBadRequest, "appointment", view.Data{Error: bookingError(err)})
			return
		}

		a := &model.Appointment{
			ID:       uuid.New().String(),
			UserID:   claims.UserID,
			Name:     name,
			Email:    email,
			Phone:    phone,
			Date:     date,
			Timeslot: label,
			Message:  message,
		}
		err = h.store.CreateAppointment(r.Context(), a)
		if errors.Is(err, store.ErrSlotTaken) {
			continue
		}
		if err != nil {
			h.serverError(w, r, err)
			return
		}

		h.log.WithFields(map[string]any{"user": claims.Username, "date": dateStr, "timeslot": label}).Info("booked")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	view.Render(w, http.StatusBadRequest, "appointment", view.Data{Error: bookingError(slot.ErrFullyBooked)})
}

func bookingError(err error) string {
	switch {
	case errors.Is(err, slot.ErrPastDate):
		return "Cannot book appointments for past dates."
	case errors.Is(err, slot.ErrTooLateToday):
		return "Cannot book appointments after 19:00 today. Please select another date."
	case errors.Is(err, slot.ErrFullyBooked):
		return "All slots for that date are booked. Please select another date."
	}
	return "An error occurred while processing your request."
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r.Context())
	appointments, err := h.store.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	view.Render(w, http.StatusOK, "dashboard", view.Data{Username: claims.Username, Appointments: appointments})
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r.Context())
	if claims == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !claims.IsAdmin() {
		view.Render(w, http.StatusForbidden, "error", view.Data{Error: "Administrator access required."})
		return
	}

	appointments, err := h.store.ListForDate(r.Context(), h.today())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	view.Render(w, http.StatusOK, "admin_dashboard", view.Data{Username: claims.Username, Appointments: appointments})
}

func (h *Handler) RecentAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.store.ListBefore(r.Context(), h.today())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	view.Render(w, http.StatusOK, "recent_appointments", view.Data{Appointments: appointments})
}

func (h *Handler) UpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.store.ListAfter(r.Context(), h.today())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	view.Render(w, http.StatusOK, "upcoming_appointments", view.Data{Appointments: appointments})
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r.Context())
	id := mux.Vars(r)["id"]

	a, err := h.store.AppointmentByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		// deleting an id that is already gone is a no-op
		http.Redirect(w, r, "/upcoming_appointments", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	// only the owner or an admin may cancel
	if a.UserID != claims.UserID && !claims.IsAdmin() {
		view.Render(w, http.StatusForbidden, "error", view.Data{Error: "You may only cancel your own appointments."})
		return
	}

	if err := h.store.DeleteAppointment(r.Context(), id); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.log.WithFields(map[string]any{"user": claims.Username, "appointment": id}).Info("cancelled")
	http.Redirect(w, r, "/upcoming_appointments", http.StatusSeeOther)
}
