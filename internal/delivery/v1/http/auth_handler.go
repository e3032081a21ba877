package http

import (
	"net/http"
	"time"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/usecase"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
)

type AuthHandler struct {
	authUC usecase.AuthUC
	logger logger.Logger
}

func NewAuthHandler(authUC usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionResponse struct {
	Authenticated bool      `json:"authenticated"`
	Email         string    `json:"email,omitempty"`
	ExpiresAt     time.Time `json:"expires_at,omitempty"`
}

// Login godoc
// @Summary      Admin sign-in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body loginRequest true "Admin credentials"
// @Success      200 {object} loginResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /admin/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.Login"

	var req loginRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		WriteError(w, e.Wrap(op, err))
		return
	}

	res, err := h.authUC.Login(r.Context(), usecase.NewLoginReq(req.Email, req.Password))
	if err != nil {
		h.logger.Warnf("%s: %v", op, err)
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    res.Token,
		Path:     "/",
		Expires:  res.Session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	WriteSuccess(w, http.StatusOK, loginResponse{
		Token:     res.Token,
		Email:     res.Session.Email,
		ExpiresAt: res.Session.ExpiresAt,
	})
}

// Session godoc
// @Summary      Current session state
// @Tags         auth
// @Produce      json
// @Success      200 {object} sessionResponse
// @Router       /admin/session [get]
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r)
	if token == "" {
		WriteSuccess(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	session, err := h.authUC.Check(r.Context(), token)
	if err != nil {
		WriteSuccess(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	WriteSuccess(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		Email:         session.Email,
		ExpiresAt:     session.ExpiresAt,
	})
}

// Logout godoc
// @Summary      Admin sign-out
// @Tags         auth
// @Produce      json
// @Success      204 "No Content"
// @Router       /admin/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := extractToken(r); token != "" {
		h.authUC.SignOut(r.Context(), token)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}
