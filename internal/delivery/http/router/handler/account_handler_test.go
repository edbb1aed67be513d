package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpmiddleware "helios/internal/delivery/http/middleware"
	"helios/internal/delivery/http/validator"
	domainerrors "helios/internal/domain/errors"
	mockUC "helios/internal/mocks/usecase"
	"helios/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*echo.Echo, *mockUC.MockAccountUsecase) {
	t.Helper()

	uc := mockUC.NewMockAccountUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewAccountHandler(uc, logger)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(logger).HandleHTTPError

	e.POST("/auth/register", handler.Register)
	e.POST("/auth/login", handler.Login)
	e.GET("/accounts", handler.List)
	e.GET("/accounts/:id", handler.Get)
	e.PUT("/accounts/:id", handler.Update)
	e.DELETE("/accounts/:id", handler.Delete)

	return e, uc
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAccountHandler_Register_Created(t *testing.T) {
	e, uc := newTestServer(t)

	output := &usecase.AccountOutput{
		ID:         uuid.New(),
		Username:   "johndoe",
		Email:      "john@example.com",
		Permission: "user",
	}
	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterAccountInput")).
		Return(output, nil)

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"username":"johndoe","email":"john@example.com","password":"Password123"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"johndoe"`)
	assert.NotContains(t, body, "passwordHash")
	assert.NotContains(t, body, "Password123")
}

func TestAccountHandler_Register_MissingFields(t *testing.T) {
	e, uc := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", `{"email":"john@example.com"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
	uc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAccountHandler_Register_UsernameConflict(t *testing.T) {
	e, uc := newTestServer(t)

	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterAccountInput")).
		Return(nil, domainerrors.ErrUsernameTaken)

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"username":"johndoe","email":"john@example.com","password":"Password123"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "USERNAME_TAKEN")
	assert.Contains(t, body, `"success":false`)
}

func TestAccountHandler_Login_Authenticated(t *testing.T) {
	e, uc := newTestServer(t)

	uc.EXPECT().Authenticate(mock.Anything, "johndoe", "Password123").Return(true, nil)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"username":"johndoe","password":"Password123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
}

func TestAccountHandler_Login_Rejected(t *testing.T) {
	e, uc := newTestServer(t)

	uc.EXPECT().Authenticate(mock.Anything, "johndoe", "WrongPass1").Return(false, nil)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"username":"johndoe","password":"WrongPass1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

func TestAccountHandler_Get_Success(t *testing.T) {
	e, uc := newTestServer(t)

	id := uuid.New()
	uc.EXPECT().Get(mock.Anything, id).Return(&usecase.AccountOutput{ID: id, Username: "johndoe"}, nil)

	rec := doJSON(e, http.MethodGet, "/accounts/"+id.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id.String())
}

func TestAccountHandler_Get_InvalidID(t *testing.T) {
	e, uc := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/accounts/not-a-uuid", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	e, uc := newTestServer(t)

	id := uuid.New()
	uc.EXPECT().Get(mock.Anything, id).Return(nil, domainerrors.ErrAccountNotFound)

	rec := doJSON(e, http.MethodGet, "/accounts/"+id.String(), "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACCOUNT_NOT_FOUND")
}

func TestAccountHandler_List_WithoutWindow(t *testing.T) {
	e, uc := newTestServer(t)

	uc.EXPECT().List(mock.Anything).Return([]*usecase.AccountOutput{
		{ID: uuid.New(), Username: "newer"},
		{ID: uuid.New(), Username: "older"},
	}, nil)

	rec := doJSON(e, http.MethodGet, "/accounts", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "newer")
	uc.AssertNotCalled(t, "ListPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountHandler_List_WithWindow(t *testing.T) {
	e, uc := newTestServer(t)

	uc.EXPECT().ListPage(mock.Anything, 5, 2).Return([]*usecase.AccountOutput{
		{ID: uuid.New(), Username: "paged"},
	}, nil)

	rec := doJSON(e, http.MethodGet, "/accounts?skip=5&limit=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "paged")
}

func TestAccountHandler_Update_Success(t *testing.T) {
	e, uc := newTestServer(t)

	id := uuid.New()
	uc.EXPECT().
		Update(mock.Anything, id, mock.AnythingOfType("*usecase.UpdateAccountInput")).
		RunAndReturn(func(_ context.Context, _ uuid.UUID, input *usecase.UpdateAccountInput) (*usecase.AccountOutput, error) {
			require.NotNil(t, input.Email)
			assert.Equal(t, "new@example.com", *input.Email)
			assert.Nil(t, input.Username)

			return &usecase.AccountOutput{ID: id, Username: "johndoe", Email: "new@example.com"}, nil
		})

	rec := doJSON(e, http.MethodPut, "/accounts/"+id.String(), `{"email":"new@example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new@example.com")
}

func TestAccountHandler_Update_Conflict(t *testing.T) {
	e, uc := newTestServer(t)

	id := uuid.New()
	uc.EXPECT().
		Update(mock.Anything, id, mock.AnythingOfType("*usecase.UpdateAccountInput")).
		Return(nil, domainerrors.ErrEmailTaken)

	rec := doJSON(e, http.MethodPut, "/accounts/"+id.String(), `{"email":"taken@example.com"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_TAKEN")
}

func TestAccountHandler_Delete_NoContent(t *testing.T) {
	e, uc := newTestServer(t)

	id := uuid.New()
	uc.EXPECT().Delete(mock.Anything, id).Return(nil)

	rec := doJSON(e, http.MethodDelete, "/accounts/"+id.String(), "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestAccountHandler_Delete_NotFound(t *testing.T) {
	e, uc := newTestServer(t)

	id := uuid.New()
	uc.EXPECT().Delete(mock.Anything, id).Return(domainerrors.ErrAccountNotFound)

	rec := doJSON(e, http.MethodDelete, "/accounts/"+id.String(), "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	e, _ := newTestServer(t)
	e.GET("/health", HealthCheck)

	rec := doJSON(e, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
