package webapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/finlabs/infra/eventbus"
	"github.com/amirasaad/finlabs/internal/fixtures/mocks"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/domain/account"
	accountweb "github.com/amirasaad/finlabs/webapi/account"
	"github.com/amirasaad/finlabs/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AppTestSuite struct {
	suite.Suite
	repo     *mocks.MockAccountRepository
	deposit  *fiber.App
	mortgage *fiber.App
}

func (s *AppTestSuite) SetupTest() {
	s.repo = mocks.NewMockAccountRepository(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := &config.Deps{
		Accounts: s.repo,
		EventBus: eventbus.NewWithMemory(logger),
		Logger:   logger,
		Config: &config.App{
			RateLimit: &config.RateLimit{MaxRequests: 100, Window: time.Minute},
		},
	}
	s.deposit = SetupApp(deps, accountweb.VariantDeposit)
	s.mortgage = SetupApp(deps, accountweb.VariantMortgage)
}

func (s *AppTestSuite) request(app *fiber.App, method, path, body, contentType string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func (s *AppTestSuite) account(id, balance int64) *account.Account {
	a, err := account.New().WithID(id).WithBalance(decimal.NewFromInt(balance)).Build()
	s.Require().NoError(err)
	return a
}

func decode[T any](s *AppTestSuite, resp *http.Response) T {
	var out T
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *AppTestSuite) TestStatusPages() {
	for _, path := range []string{"/", "/deposit"} {
		resp := s.request(s.deposit, fiber.MethodGet, path, "", "")
		s.Equal(fiber.StatusOK, resp.StatusCode, path)
	}
	resp := s.request(s.mortgage, fiber.MethodGet, "/mortgage", "", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *AppTestSuite) TestUnknownRouteIsProblem404() {
	resp := s.request(s.deposit, fiber.MethodGet, "/nope", "", "")
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
}

func (s *AppTestSuite) TestVariantsExposeTheirOwnRoutes() {
	resp := s.request(s.mortgage, fiber.MethodPost, "/mortgage/withdraw/1", `{"amount":"1"}`, fiber.MIMEApplicationJSON)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	resp = s.request(s.deposit, fiber.MethodPost, "/deposit/pay/1", `{"amount":"1"}`, fiber.MIMEApplicationJSON)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *AppTestSuite) TestCreateAccount() {
	s.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	resp := s.request(s.deposit, fiber.MethodPost, "/deposit/account", `{"acc_id":42,"balance":"100"}`, fiber.MIMEApplicationJSON)
	s.Equal(fiber.StatusCreated, resp.StatusCode)

	body := decode[common.Response](s, resp)
	s.Equal("Account created", body.Message)
}

func (s *AppTestSuite) TestViewAccount_NotFound() {
	s.repo.On("Get", mock.Anything, int64(9)).Return(nil, account.ErrAccountNotFound).Once()

	resp := s.request(s.deposit, fiber.MethodPost, "/deposit/viewaccount", "acc_id=9", fiber.MIMEApplicationForm)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	pd := decode[common.ProblemDetails](s, resp)
	s.Equal(accountweb.NotFoundMessage, pd.Detail)
}

func (s *AppTestSuite) TestViewAccount_Query() {
	s.repo.On("Get", mock.Anything, int64(3)).Return(s.account(3, 10), nil).Once()

	resp := s.request(s.mortgage, fiber.MethodGet, "/mortgage/viewaccount?acc_id=3", "", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *AppTestSuite) TestDeposit_Form() {
	s.repo.On("Get", mock.Anything, int64(7)).Return(s.account(7, 100), nil).Once()
	s.repo.On("Post", mock.Anything, mock.Anything).Return(s.account(7, 150), nil).Once()

	resp := s.request(s.deposit, fiber.MethodPost, "/deposit/deposit/7", "amount=50", fiber.MIMEApplicationForm)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	body := decode[common.Response](s, resp)
	s.Equal("Transaction completed. The amount of $50 has been deposited into account 7.", body.Message)
}

func (s *AppTestSuite) TestWithdraw_InsufficientFunds() {
	s.repo.On("Get", mock.Anything, int64(7)).Return(s.account(7, 10), nil).Once()

	resp := s.request(s.deposit, fiber.MethodPost, "/deposit/withdraw/7", `{"amount":"11"}`, fiber.MIMEApplicationJSON)
	s.Equal(fiber.StatusUnprocessableEntity, resp.StatusCode)

	pd := decode[common.ProblemDetails](s, resp)
	s.Equal("Account doesn't have sufficient Balance.", pd.Detail)
}

func (s *AppTestSuite) TestWithdraw_BadPathAndAmount() {
	resp := s.request(s.deposit, fiber.MethodPost, "/deposit/withdraw/abc", `{"amount":"1"}`, fiber.MIMEApplicationJSON)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = s.request(s.deposit, fiber.MethodPost, "/deposit/withdraw/1", `{"amount":"lots"}`, fiber.MIMEApplicationJSON)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AppTestSuite) TestTransfer() {
	s.repo.On("Get", mock.Anything, int64(1)).Return(s.account(1, 100), nil).Once()
	s.repo.On("Get", mock.Anything, int64(2)).Return(s.account(2, 0), nil).Once()
	s.repo.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(s.account(1, 75), s.account(2, 25), nil).Once()

	resp := s.request(s.deposit, fiber.MethodPost, "/deposit/transfer/1", `{"amount":"25","to_acc_id":2}`, fiber.MIMEApplicationJSON)
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *AppTestSuite) TestPay_ExceedsBalance() {
	s.repo.On("Get", mock.Anything, int64(4)).Return(s.account(4, 100), nil).Once()

	resp := s.request(s.mortgage, fiber.MethodPost, "/mortgage/pay/4", `{"amount":"101"}`, fiber.MIMEApplicationJSON)
	s.Equal(fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *AppTestSuite) TestStatement() {
	tx := account.NewTransaction(5, account.KindDeposit, decimal.NewFromInt(5))
	s.repo.On("Get", mock.Anything, int64(5)).Return(s.account(5, 5), nil).Once()
	s.repo.On("Statement", mock.Anything, int64(5), 2).Return([]*account.Transaction{tx}, nil).Once()

	resp := s.request(s.deposit, fiber.MethodPost, "/deposit/statement", "acc_id=5&number=2", fiber.MIMEApplicationForm)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	body := decode[common.Response](s, resp)
	s.Equal("Statement fetched", body.Message)
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func TestRateLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := SetupApp(&config.Deps{
		Accounts: mocks.NewMockAccountRepository(t),
		Logger:   logger,
		Config:   &config.App{RateLimit: &config.RateLimit{MaxRequests: 5, Window: time.Second}},
	}, accountweb.VariantDeposit)

	for i := range 6 {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		want := fiber.StatusOK
		if i == 5 {
			want = fiber.StatusTooManyRequests
		}
		if resp.StatusCode != want {
			t.Fatalf("request %d: got %d, want %d", i+1, resp.StatusCode, want)
		}
	}
}
