package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"medstore/m/internal/auth"
	"medstore/m/internal/logger"
)

// Session Handlers

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Enabled() {
		redirect(w, r, "/")
		return
	}
	h.render(w, r, http.StatusOK, "pages/login", h.pageData(r, "Login"))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Enabled() {
		redirect(w, r, "/")
		return
	}
	user := r.PostFormValue("username")
	token, err := h.auth.Login(user, r.PostFormValue("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		logger.FromContext(r.Context()).Warn("login rejected", zap.String("username", user))
		data := h.pageData(r, "Login")
		data["Error"] = err.Error()
		h.render(w, r, http.StatusUnauthorized, "pages/login", data)
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.auth.SetSession(w, token)
	redirect(w, r, "/")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if h.auth.Enabled() {
		h.auth.ClearSession(w)
	}
	redirect(w, r, "/login")
}
