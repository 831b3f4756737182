package account

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAmountMustBePositive is returned when a transaction amount is zero or negative.
	ErrAmountMustBePositive = errors.New("transaction amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal or transfer would take the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrPaymentExceedsBalance is returned when a payment is larger than the outstanding balance.
	ErrPaymentExceedsBalance = errors.New("payment exceeds outstanding balance")

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists is returned when creating an account whose ID is taken.
	ErrAccountExists = errors.New("account already exists")

	// ErrInvalidAccountID is returned for non-positive account identifiers.
	ErrInvalidAccountID = errors.New("account id must be a positive integer")

	// ErrNegativeBalance is returned when an account is opened with a negative balance.
	ErrNegativeBalance = errors.New("balance cannot be negative")

	// ErrCannotTransferToSameAccount is returned when a transfer is attempted from an account to itself.
	ErrCannotTransferToSameAccount = errors.New("cannot transfer to same account")
)

// Account is a single-key ledger row. For deposit accounts Balance is money
// held; for mortgage accounts it is the amount still owed. Either way it can
// never be negative.
type Account struct {
	ID        int64
	Balance   decimal.Decimal
	UpdatedAt time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id        int64
	balance   decimal.Decimal
	updatedAt time.Time
}

func New() *Builder {
	return &Builder{updatedAt: time.Now().UTC()}
}

func (b *Builder) WithID(id int64) *Builder {
	b.id = id
	return b
}

func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithUpdatedAt is used when hydrating an account from a store.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the account invariants.
func (b *Builder) Build() (*Account, error) {
	if b.id <= 0 {
		return nil, ErrInvalidAccountID
	}
	if b.balance.IsNegative() {
		return nil, ErrNegativeBalance
	}
	return &Account{ID: b.id, Balance: b.balance, UpdatedAt: b.updatedAt}, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	return nil
}

// ValidateDeposit checks the invariants for crediting the account.
func (a *Account) ValidateDeposit(amount decimal.Decimal) error {
	return validateAmount(amount)
}

// ValidateWithdraw checks the invariants for debiting the account.
// Withdrawing the whole balance is allowed.
func (a *Account) ValidateWithdraw(amount decimal.Decimal) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidatePay checks a mortgage payment against the outstanding balance.
func (a *Account) ValidatePay(amount decimal.Decimal) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if a.Balance.LessThan(amount) {
		return ErrPaymentExceedsBalance
	}
	return nil
}

// ValidateTransfer ensures that a transfer from a to dest is valid.
func (a *Account) ValidateTransfer(dest *Account, amount decimal.Decimal) error {
	if a.ID == dest.ID {
		return ErrCannotTransferToSameAccount
	}
	return a.ValidateWithdraw(amount)
}
