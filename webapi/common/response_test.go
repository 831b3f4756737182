package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{account.ErrAccountNotFound, fiber.StatusNotFound},
		{fmt.Errorf("account 9: %w", account.ErrAccountNotFound), fiber.StatusNotFound},
		{account.ErrAccountExists, fiber.StatusConflict},
		{account.ErrInsufficientFunds, fiber.StatusUnprocessableEntity},
		{account.ErrPaymentExceedsBalance, fiber.StatusUnprocessableEntity},
		{account.ErrAmountMustBePositive, fiber.StatusBadRequest},
		{fiber.ErrNotFound, fiber.StatusNotFound},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorToStatusCode(tt.err))
		})
	}
}

type probe struct {
	AccID int64 `json:"acc_id" form:"acc_id" query:"acc_id" validate:"required,gt=0"`
}

func newProbeApp() *fiber.App {
	app := fiber.New()
	handler := func(c *fiber.Ctx) error {
		in, err := BindAndValidate[probe](c)
		if in == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "ok", in)
	}
	app.Get("/probe", handler)
	app.Post("/probe", handler)
	return app
}

func TestBindAndValidate(t *testing.T) {
	app := newProbeApp()

	req := httptest.NewRequest(fiber.MethodPost, "/probe", strings.NewReader("acc_id=12"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/probe?acc_id=12", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodPost, "/probe", strings.NewReader(`{"acc_id":0}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))

	var pd ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, "Validation failed", pd.Title)
	assert.Equal(t, "/probe", pd.Instance)
}

func TestProblemDetailsJSON_Args(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Too Many Requests", errors.New("rate limit exceeded"), fiber.StatusTooManyRequests)
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	var pd ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, "rate limit exceeded", pd.Detail)
	assert.Equal(t, fiber.StatusTooManyRequests, pd.Status)
}
