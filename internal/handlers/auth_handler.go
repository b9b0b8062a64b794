package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Ritesh010/admin/internal/api"
	"github.com/Ritesh010/admin/internal/models"
	"github.com/Ritesh010/admin/internal/session"
	"github.com/Ritesh010/admin/internal/views"
)

type AuthHandler struct {
	Base
}

func NewAuthHandler(sessions *session.Store, client *api.Client, templates *views.TemplateCache, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{Base{
		Sessions:  sessions,
		API:       client,
		Templates: templates,
		Logger:    logger,
	}}
}

func (h *AuthHandler) SigninPage(w http.ResponseWriter, r *http.Request) {
	// Already signed in? Straight to the dashboard.
	if id, err := h.Sessions.ReadCookie(r); err == nil {
		if _, ok := h.Sessions.Token(id); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	h.render(w, r, "signin.html", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		redirect(w, r, "/signin", "", "Please enter both username and password.")
		return
	}

	h.Logger.Info().Str("username", username).Msg("Attempting admin login")

	sess, err := h.API.Login(r.Context(), username, password)
	if err != nil {
		h.Logger.Warn().Err(err).Str("username", username).Msg("Login failed")
		if errors.Is(err, api.ErrLoginRejected) {
			redirect(w, r, "/signin", "", "Login failed. Please check your credentials.")
			return
		}
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			redirect(w, r, "/signin", "", "Invalid credentials. Please try again.")
			return
		}
		redirect(w, r, "/signin", "", "Login failed. Please try again.")
		return
	}

	id := h.Sessions.Create(sess)
	if err := h.Sessions.IssueCookie(w, id); err != nil {
		h.Sessions.Clear(id)
		redirect(w, r, "/signin", "", "Login failed. Please try again.")
		return
	}

	h.Logger.Info().Str("username", sess.Username).Msg("Admin logged in")
	redirect(w, r, "/", "Login successful!", "")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, err := h.Sessions.ReadCookie(r); err == nil {
		h.Sessions.Clear(id)
	}
	h.Sessions.DropCookie(w)
	redirect(w, r, "/signin", "You have been logged out.", "")
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	req := models.ChangePasswordRequest{
		OldPassword:     r.FormValue("old_password"),
		NewPassword:     r.FormValue("new_password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	resp, err := h.API.ChangePassword(r.Context(), h.token(r), req)
	if err != nil {
		h.Logger.Error().Err(err).Msg("Change password failed")
		msg := "Failed to change password."
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			var body models.MessageResponse
			if decodeErr := json.Unmarshal(httpErr.Body, &body); decodeErr == nil && body.Error != "" {
				msg = body.Error
			}
		}
		redirect(w, r, "/", "", msg)
		return
	}

	notice := resp.Message
	if notice == "" {
		notice = "Password changed."
	}
	redirect(w, r, "/", notice, "")
}
