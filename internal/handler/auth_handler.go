package handler

import (
	"net/http"

	"casebook/internal/service"
	"casebook/pkg/response"

	"github.com/gin-gonic/gin"
)

// Login opens a session and sets the session cookie.
// POST /login
func (h *Handler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bind(c, &req) {
		return
	}

	sessionID, user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, sessionID, int(h.cfg.Session.TTL.Seconds()), "/", "", h.cfg.Session.Secure, true)
	response.Success(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// Logout ends the session.
// POST /logout
func (h *Handler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(h.cfg.Session.CookieName); err == nil {
		if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
			h.fail(c, err)
			return
		}
	}
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.cfg.Session.Secure, true)
	response.NoContent(c)
}
