// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"helios/internal/delivery/http/response"
	"helios/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Username   string          `json:"username" validate:"required"`
	Email      string          `json:"email" validate:"required"`
	Password   string          `json:"password" validate:"required"`
	Permission string          `json:"permission"`
	Profile    *ProfileRequest `json:"profile"`
}

// ProfileRequest is the payload for a complete academic profile.
type ProfileRequest struct {
	EnrollmentYear     int    `json:"enrollmentYear" validate:"required"`
	GraduationYear     int    `json:"graduationYear" validate:"required"`
	EnrollmentSemester string `json:"enrollmentSemester"`
	GraduationSemester string `json:"graduationSemester"`
	Major              string `json:"major" validate:"required"`
	Minor              string `json:"minor"`
	Concentration      string `json:"concentration"`
}

// LoginRequest is the payload for credential verification.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse reports the outcome of credential verification without
// revealing which of the credentials was wrong.
type LoginResponse struct {
	Authenticated bool `json:"authenticated"`
}

// UpdateAccountRequest is the payload for a partial account update.
type UpdateAccountRequest struct {
	Username *string               `json:"username"`
	Email    *string               `json:"email"`
	Password *string               `json:"password"`
	Profile  *UpdateProfileRequest `json:"profile"`
}

// UpdateProfileRequest is the payload for a partial profile update.
type UpdateProfileRequest struct {
	EnrollmentYear     *int    `json:"enrollmentYear"`
	GraduationYear     *int    `json:"graduationYear"`
	EnrollmentSemester *string `json:"enrollmentSemester"`
	GraduationSemester *string `json:"graduationSemester"`
	Major              *string `json:"major"`
	Minor              *string `json:"minor"`
	Concentration      *string `json:"concentration"`
}

// ListQuery carries the optional pagination window.
type ListQuery struct {
	Skip  *int `query:"skip"`
	Limit *int `query:"limit"`
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.Register(c.Request().Context(), toRegisterInput(&req))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Account registered successfully")
}

// Login handles the credential verification request.
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	ok, err := h.uc.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, LoginResponse{Authenticated: ok}, "Login processed")
}

// Get handles the single-account lookup request.
func (h *AccountHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	output, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// List handles the account listing request. Without a pagination window it
// returns every account, newest first.
func (h *AccountHandler) List(c echo.Context) error {
	var query ListQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pagination query")
	}

	ctx := c.Request().Context()

	if query.Skip == nil && query.Limit == nil {
		outputs, err := h.uc.List(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, outputs, "")
	}

	skip, limit := 0, 0
	if query.Skip != nil {
		skip = *query.Skip
	}
	if query.Limit != nil {
		limit = *query.Limit
	}

	outputs, err := h.uc.ListPage(ctx, skip, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, outputs, "")
}

// Update handles the partial account update request.
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}

	output, err := h.uc.Update(c.Request().Context(), id, toUpdateInput(&req))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Account updated successfully")
}

// Delete handles the account deletion request.
func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func toRegisterInput(req *RegisterRequest) *usecase.RegisterAccountInput {
	input := &usecase.RegisterAccountInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Permission: req.Permission,
	}
	if req.Profile != nil {
		input.Profile = &usecase.ProfileInput{
			EnrollmentYear:     req.Profile.EnrollmentYear,
			GraduationYear:     req.Profile.GraduationYear,
			EnrollmentSemester: req.Profile.EnrollmentSemester,
			GraduationSemester: req.Profile.GraduationSemester,
			Major:              req.Profile.Major,
			Minor:              req.Profile.Minor,
			Concentration:      req.Profile.Concentration,
		}
	}

	return input
}

func toUpdateInput(req *UpdateAccountRequest) *usecase.UpdateAccountInput {
	input := &usecase.UpdateAccountInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Profile != nil {
		input.Profile = &usecase.UpdateProfileInput{
			EnrollmentYear:     req.Profile.EnrollmentYear,
			GraduationYear:     req.Profile.GraduationYear,
			EnrollmentSemester: req.Profile.EnrollmentSemester,
			GraduationSemester: req.Profile.GraduationSemester,
			Major:              req.Profile.Major,
			Minor:              req.Profile.Minor,
			Concentration:      req.Profile.Concentration,
		}
	}

	return input
}
