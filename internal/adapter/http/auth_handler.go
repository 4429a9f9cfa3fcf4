package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	mw "belavista-backend/internal/adapter/middleware"
	"belavista-backend/internal/auth"
	"belavista-backend/internal/domain/user"
)

type AuthHandler struct{ svc *auth.Service }

func NewAuthHandler(svc *auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

type signUpReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	u, err := h.svc.SignUp(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered"})
		}
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, u)
}

type signInReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signInResp struct {
	Token   string        `json:"token"`
	Session *auth.Session `json:"session"`
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	sess, err := h.svc.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
		}
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, signInResp{Token: sess.Token, Session: sess})
}

type forgotPasswordReq struct {
	Email string `json:"email" validate:"required,email"`
}

type forgotPasswordResp struct {
	ResetToken string `json:"reset_token"`
}

// ForgotPassword issues a reset token for the account. The token comes back in
// the response body; mail delivery is outside this service.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	token, err := h.svc.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "email not registered"})
		}
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, forgotPasswordResp{ResetToken: token})
}

type resetPasswordReq struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	if err := h.svc.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, auth.ErrResetTokenInvalid) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid or expired reset token"})
		}
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) SignOut(c echo.Context) error {
	sess := mw.SessionFrom(c)
	if sess != nil {
		if err := h.svc.SignOut(c.Request().Context(), sess.Token); err != nil {
			return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	sess := mw.SessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no active session"})
	}
	return c.JSON(http.StatusOK, sess)
}
