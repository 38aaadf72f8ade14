package handlers

import (
	"errors"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"shipment-tracker-web/internal/api/dto"
	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/platform/obs"
	"shipment-tracker-web/internal/ports"
	"shipment-tracker-web/internal/services"
)

const (
	msgLoginRequired = "Please enter your identifier and password."
	msgLoginFailed   = "Invalid identifier or password. Please try again."
	msgLoginLimited  = "Too many login attempts. Please wait a minute and try again."
)

type Limiter interface {
	Allow(key string) bool
}

type AuthHandler struct {
	API          ports.ContentAPI
	Sessions     ports.SessionStore
	TTL          time.Duration
	CookieSecure bool
	// Limiter throttles login attempts per client IP. Nil disables it.
	Limiter Limiter
}

func (h *AuthHandler) Form(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		if s, err := h.Sessions.Get(r.Context(), c.Value); err == nil && s != nil {
			http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
			return
		}
	}
	render(w, r, http.StatusOK, "login", dto.LoginPage{Layout: layout(r, "Login")})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	reqID := obs.RequestID(r.Context())
	identifier := strings.TrimSpace(r.FormValue("identifier"))
	password := r.FormValue("password")
	page := dto.LoginPage{Layout: layout(r, "Login"), Identifier: identifier}

	if h.Limiter != nil && !h.Limiter.Allow(clientIP(r)) {
		log.Printf("req_id=%s login rate limited ip=%s", reqID, clientIP(r))
		page.Error = msgLoginLimited
		render(w, r, http.StatusTooManyRequests, "login", page)
		return
	}

	sess, err := services.Login(r.Context(), h.API, h.Sessions, services.LoginRequest{
		Identifier: identifier,
		Password:   password,
		TTL:        h.TTL,
	})
	if errors.Is(err, domain.ErrInvalidInput) {
		page.Error = msgLoginRequired
		render(w, r, http.StatusBadRequest, "login", page)
		return
	}
	if err != nil {
		log.Printf("req_id=%s login failed: %v", reqID, err)
		page.Error = msgLoginFailed
		render(w, r, upstreamStatus(err), "login", page)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(h.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	log.Printf("req_id=%s login ok user=%s", reqID, sess.Username)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Logout deletes the session and clears the cookie. It always ends on the
// login page, even when the session was already gone.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if err := services.Logout(r.Context(), h.Sessions, c.Value); err != nil {
			log.Printf("req_id=%s logout failed: %v", obs.RequestID(r.Context()), err)
		}
	}

	ClearSessionCookie(w, h.CookieSecure)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
