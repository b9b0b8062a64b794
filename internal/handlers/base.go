package handlers

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/Ritesh010/admin/internal/api"
	"github.com/Ritesh010/admin/internal/middleware"
	"github.com/Ritesh010/admin/internal/session"
	"github.com/Ritesh010/admin/internal/views"
)

// Base carries the shared collaborators every page handler needs.
type Base struct {
	Sessions  *session.Store
	API       *api.Client
	Templates *views.TemplateCache
	Logger    zerolog.Logger
}

// pageData assembles the common template payload: current session (when
// authenticated) plus notice/error banners carried across redirects as
// query parameters.
func (b *Base) pageData(r *http.Request, extra map[string]any) map[string]any {
	data := map[string]any{
		"Session": nil,
		"Notice":  r.URL.Query().Get("notice"),
		"Error":   r.URL.Query().Get("error"),
	}
	if sess, ok := middleware.GetSession(r); ok {
		data["Session"] = sess
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// render executes a page template. The template runs into a buffer first so
// a mid-render failure produces a clean error page instead of torn HTML.
func (b *Base) render(w http.ResponseWriter, r *http.Request, name string, extra map[string]any) {
	var buf bytes.Buffer
	if err := b.Templates.Render(&buf, name, b.pageData(r, extra)); err != nil {
		b.Logger.Error().Err(err).Str("template", name).Msg("Template render failed")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// redirect sends a 303 with an optional notice or error banner.
func redirect(w http.ResponseWriter, r *http.Request, path, notice, errMsg string) {
	q := url.Values{}
	if notice != "" {
		q.Set("notice", notice)
	}
	if errMsg != "" {
		q.Set("error", errMsg)
	}
	if encoded := q.Encode(); encoded != "" {
		path = path + "?" + encoded
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// token returns the session's bearer token; the auth middleware guarantees
// presence on protected routes.
func (b *Base) token(r *http.Request) string {
	sess, ok := middleware.GetSession(r)
	if !ok {
		return ""
	}
	return sess.Token
}
