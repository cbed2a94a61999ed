package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/PivnoyFei/webtronics-social-networking/internal/http/middleware"
	"github.com/PivnoyFei/webtronics-social-networking/internal/http/response"
	"github.com/PivnoyFei/webtronics-social-networking/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Login accepts form credentials and answers with an access/refresh pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Detail(w, http.StatusBadRequest, "invalid form body")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		response.Detail(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	pair, err := h.auth.Login(r.Context(), username, password, middleware.ClientIP(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		response.Detail(w, http.StatusUnprocessableEntity, "refresh_token is required")
		return
	}

	pair, err := h.auth.Refresh(r.Context(), req.RefreshToken, middleware.ClientIP(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, pair)
}

// Logout revokes every session of the token's owner. Answers 204 rather
// than the 404 the historical API used for this endpoint.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		w.Header().Set("WWW-Authenticate", "Bearer")
		response.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if err := h.auth.Logout(r.Context(), token); err != nil {
		h.fail(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logServiceError(r, h.logger, err)
	response.FromError(w, err)
}
