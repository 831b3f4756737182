// Package account provides the banking operations behind the deposit and
// mortgage apps: opening accounts, posting deposits, withdrawals, payments and
// transfers, and reading statements. Every balance change is delegated to the
// ledger, which applies it atomically and refuses to overdraw.
package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/domain/account"
	"github.com/amirasaad/finlabs/pkg/eventbus"
	"github.com/amirasaad/finlabs/pkg/repository"
	"github.com/shopspring/decimal"
)

// DefaultStatementSize is used when a statement request does not say how
// many lines it wants.
const DefaultStatementSize = 10

// Service provides business logic for account operations.
type Service struct {
	accounts repository.AccountRepository
	bus      eventbus.Bus
	logger   *slog.Logger
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		accounts: deps.Accounts,
		bus:      deps.EventBus,
		logger:   logger,
	}
}

// CreateAccount opens an account with an opening balance.
func (s *Service) CreateAccount(ctx context.Context, id int64, balance decimal.Decimal) (*account.Account, error) {
	logger := s.logger.With("acc_id", id)
	logger.Info("CreateAccount started")
	a, err := account.New().WithID(id).WithBalance(balance).Build()
	if err != nil {
		logger.Error("CreateAccount failed: domain error", "error", err)
		return nil, err
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		logger.Error("CreateAccount failed: ledger error", "error", err)
		return nil, err
	}
	logger.Info("CreateAccount successful")
	return a, nil
}

// ViewAccount returns the account or account.ErrAccountNotFound.
func (s *Service) ViewAccount(ctx context.Context, id int64) (*account.Account, error) {
	if id <= 0 {
		return nil, account.ErrInvalidAccountID
	}
	return s.accounts.Get(ctx, id)
}

func (s *Service) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	return s.accounts.List(ctx)
}

// Deposit credits amount to the account.
func (s *Service) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (*account.Account, *account.Transaction, error) {
	return s.post(ctx, "Deposit", id, account.KindDeposit, amount, (*account.Account).ValidateDeposit)
}

// Withdraw debits amount from a deposit account.
func (s *Service) Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (*account.Account, *account.Transaction, error) {
	return s.post(ctx, "Withdraw", id, account.KindWithdrawal, amount, (*account.Account).ValidateWithdraw)
}

// Pay reduces the outstanding balance of a mortgage account. Paying more
// than is owed is rejected.
func (s *Service) Pay(ctx context.Context, id int64, amount decimal.Decimal) (*account.Account, *account.Transaction, error) {
	a, tx, err := s.post(ctx, "Pay", id, account.KindPayment, amount, (*account.Account).ValidatePay)
	if errors.Is(err, account.ErrInsufficientFunds) {
		err = account.ErrPaymentExceedsBalance
	}
	return a, tx, err
}

func (s *Service) post(
	ctx context.Context,
	op string,
	id int64,
	kind account.Kind,
	amount decimal.Decimal,
	validate func(*account.Account, decimal.Decimal) error,
) (*account.Account, *account.Transaction, error) {
	logger := s.logger.With("acc_id", id, "amount", amount.String())
	logger.Info(op + " started")

	current, err := s.ViewAccount(ctx, id)
	if err != nil {
		logger.Error(op+" failed: account lookup", "error", err)
		return nil, nil, err
	}
	// Early check for a friendly error; the ledger re-checks atomically.
	if err := validate(current, amount); err != nil {
		logger.Warn(op+" failed: validation", "error", err)
		return nil, nil, err
	}

	tx := account.NewTransaction(id, kind, amount)
	after, err := s.accounts.Post(ctx, tx)
	if err != nil {
		logger.Error(op+" failed: ledger error", "error", err)
		return nil, nil, err
	}
	s.emit(ctx, tx, after.Balance)
	logger.Info(op+" successful", "transaction_id", tx.ID, "balance", after.Balance.String())
	return after, tx, nil
}

// Transfer moves amount between two accounts. Both legs are committed or
// neither is.
func (s *Service) Transfer(ctx context.Context, from, to int64, amount decimal.Decimal) (*account.Transaction, error) {
	logger := s.logger.With("acc_id", from, "to", to, "amount", amount.String())
	logger.Info("Transfer started")

	source, err := s.ViewAccount(ctx, from)
	if err != nil {
		logger.Error("Transfer failed: source lookup", "error", err)
		return nil, err
	}
	dest, err := s.ViewAccount(ctx, to)
	if err != nil {
		logger.Error("Transfer failed: destination lookup", "error", err)
		return nil, err
	}
	if err := source.ValidateTransfer(dest, amount); err != nil {
		logger.Warn("Transfer failed: validation", "error", err)
		return nil, err
	}

	out := account.NewTransaction(from, account.KindTransferOut, amount)
	in := account.NewTransaction(to, account.KindTransferIn, amount)
	fromAfter, toAfter, err := s.accounts.Transfer(ctx, out, in)
	if err != nil {
		logger.Error("Transfer failed: ledger error", "error", err)
		return nil, err
	}
	s.emit(ctx, out, fromAfter.Balance)
	s.emit(ctx, in, toAfter.Balance)
	logger.Info("Transfer successful", "transaction_id", out.ID, "balance", fromAfter.Balance.String())
	return out, nil
}

// Statement returns the last limit transactions, newest first.
func (s *Service) Statement(ctx context.Context, id int64, limit int) ([]*account.Transaction, error) {
	if _, err := s.ViewAccount(ctx, id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultStatementSize
	}
	return s.accounts.Statement(ctx, id, limit)
}

func (s *Service) emit(ctx context.Context, tx *account.Transaction, balance decimal.Decimal) {
	if s.bus == nil {
		return
	}
	event := account.TransactionPosted{
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		Kind:          tx.Kind,
		Amount:        tx.Amount,
		Balance:       balance,
		PostedAt:      tx.CreatedAt,
	}
	if err := s.bus.Emit(ctx, event); err != nil {
		s.logger.Warn("Failed to emit event", "type", event.Type(), "error", err)
	}
}
