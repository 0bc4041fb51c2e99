package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"carebook/internal/auth"
	"carebook/internal/middleware"
	"carebook/internal/model"
	"carebook/internal/store"
	"carebook/internal/view"
)

const (
	refreshCookie  = "refresh_token"
	sessionTTL     = 7 * 24 * time.Hour
	minPasswordLen = 8
)

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	data := view.Data{}
	if c := middleware.Claims(r.Context()); c != nil {
		data.Username = c.Username
	}
	view.Render(w, http.StatusOK, "index", data)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		view.Render(w, http.StatusOK, "login", view.Data{})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		view.Render(w, http.StatusBadRequest, "login", view.Data{Error: "Username and password are required."})
		return
	}

	u, err := h.store.UserByUsername(r.Context(), username)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !auth.CheckPassword(u.PasswordHash, password)) {
		// same message for unknown user and wrong password
		view.Render(w, http.StatusUnauthorized, "login", view.Data{Error: "Invalid username or password."})
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if err := h.establishSession(w, r, u); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.log.WithField("user", u.Username).Info("login")
	if u.IsAdmin() {
		http.Redirect(w, r, "/admin_dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// establishSession issues the access-token and refresh-token cookies.
func (h *Handler) establishSession(w http.ResponseWriter, r *http.Request, u *model.User) error {
	tok, err := auth.MakeToken(u.ID, u.Username, u.Role, h.secret)
	if err != nil {
		return err
	}

	rawRefresh, tokenHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return err
	}
	if _, err := h.store.CreateSession(r.Context(), u.ID, tokenHash, h.now().Add(sessionTTL)); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name: middleware.AccessCookie, Value: tok,
		HttpOnly: true, Path: "/", SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name: refreshCookie, Value: rawRefresh,
		HttpOnly: true, Path: "/", SameSite: http.SameSiteLaxMode,
		Expires: h.now().Add(sessionTTL),
	})
	return nil
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c := middleware.Claims(r.Context()); c != nil {
		if err := h.store.RevokeAllSessions(r.Context(), c.UserID); err != nil {
			h.log.WithError(err).Warn("revoke sessions")
		}
	}
	clearCookie(w, middleware.AccessCookie)
	clearCookie(w, refreshCookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", HttpOnly: true, MaxAge: -1})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		view.Render(w, http.StatusOK, "register", view.Data{})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	email := r.PostFormValue("email")

	if username == "" || password == "" || email == "" {
		view.Render(w, http.StatusBadRequest, "register", view.Data{Error: "All fields are required."})
		return
	}
	if len(password) < minPasswordLen {
		view.Render(w, http.StatusBadRequest, "register", view.Data{Error: "Password must be at least 8 characters."})
		return
	}

	if exists, err := h.store.UsernameExists(r.Context(), username); err != nil {
		h.serverError(w, r, err)
		return
	} else if exists {
		view.Render(w, http.StatusBadRequest, "register", view.Data{Error: "Username already exists."})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Role:         model.RoleUser,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		// the unique constraint closes the exists-then-insert window
		if errors.Is(err, store.ErrDuplicateUsername) {
			view.Render(w, http.StatusBadRequest, "register", view.Data{Error: "Username already exists."})
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.log.WithField("user", username).Info("registered")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Refresh rotates the refresh token and issues a fresh access token.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookie)
	if err != nil || c.Value == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sess, err := h.store.SessionByHash(r.Context(), auth.HashRefreshToken(c.Value))
	if err != nil || sess.Revoked || h.now().After(sess.ExpiresAt) {
		clearCookie(w, refreshCookie)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	u, err := h.store.UserByID(r.Context(), sess.UserID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateSession(r.Context(), sess.ID, newID, u.ID, newHash, h.now().Add(sessionTTL)); err != nil {
		h.serverError(w, r, err)
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Username, u.Role, h.secret)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name: middleware.AccessCookie, Value: tok,
		HttpOnly: true, Path: "/", SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name: refreshCookie, Value: newRaw,
		HttpOnly: true, Path: "/", SameSite: http.SameSiteLaxMode,
		Expires: h.now().Add(sessionTTL),
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
