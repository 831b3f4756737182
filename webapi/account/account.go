package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/finlabs/pkg/domain/account"
	accountsvc "github.com/amirasaad/finlabs/pkg/service/account"
	"github.com/amirasaad/finlabs/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
)

// Variant selects which banking app the routes belong to.
type Variant string

const (
	VariantDeposit  Variant = "deposit"
	VariantMortgage Variant = "mortgage"
)

// NotFoundMessage is shown when an account lookup finds nothing.
const NotFoundMessage = "Account not found! Please,Check you input."

// Routes registers the routes of the variant under its prefix.
//
// Shared:
//   - GET           /<prefix>                  : status page
//   - POST          /<prefix>/account          : open an account
//   - GET|POST      /<prefix>/viewaccount      : account by acc_id
//   - GET|POST      /<prefix>/statement        : last number transactions
//
// Deposit only:
//   - POST /deposit/deposit/:acc_id
//   - POST /deposit/withdraw/:acc_id
//   - POST /deposit/transfer/:acc_id
//
// Mortgage only:
//   - POST /mortgage/pay/:acc_id
func Routes(app *fiber.App, svc *accountsvc.Service, variant Variant) {
	prefix := "/" + string(variant)
	app.Get(prefix, Status(variant))
	app.Post(prefix+"/account", CreateAccount(svc))
	app.Get(prefix+"/viewaccount", ViewAccount(svc))
	app.Post(prefix+"/viewaccount", ViewAccount(svc))
	app.Get(prefix+"/statement", Statement(svc))
	app.Post(prefix+"/statement", Statement(svc))

	switch variant {
	case VariantDeposit:
		app.Post(prefix+"/deposit/:acc_id", Deposit(svc))
		app.Post(prefix+"/withdraw/:acc_id", Withdraw(svc))
		app.Post(prefix+"/transfer/:acc_id", Transfer(svc))
	case VariantMortgage:
		app.Post(prefix+"/pay/:acc_id", Pay(svc))
	}
}

// Status reports which app is serving.
func Status(variant Variant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK,
			fmt.Sprintf("%s app is working", variant),
			fiber.Map{"variant": variant},
		)
	}
}

// CreateAccount opens an account with an optional opening balance.
func CreateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		balance := decimal.Zero
		if input.Balance != "" {
			if balance, err = decimal.NewFromString(input.Balance); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid balance", err, fiber.StatusBadRequest)
			}
		}
		a, err := svc.CreateAccount(c.UserContext(), input.AccID, balance)
		if err != nil {
			log.Errorf("Failed to create account %d: %v", input.AccID, err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountDto(a))
	}
}

// ViewAccount looks an account up by acc_id.
func ViewAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ViewAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.ViewAccount(c.UserContext(), input.AccID)
		if errors.Is(err, account.ErrAccountNotFound) {
			return common.ProblemDetailsJSON(c, "Account not found", err, NotFoundMessage)
		}
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToAccountDto(a))
	}
}

// Deposit credits the path account.
func Deposit(svc *accountsvc.Service) fiber.Handler {
	return posting(svc.Deposit, "Deposit failed",
		"Transaction completed. The amount of $%s has been deposited into account %d.")
}

// Withdraw debits the path account.
func Withdraw(svc *accountsvc.Service) fiber.Handler {
	return posting(svc.Withdraw, "Withdrawal failed",
		"Transaction completed. The amount of $%s has been withdrawn from account %d.")
}

// Pay pays down the path mortgage account.
func Pay(svc *accountsvc.Service) fiber.Handler {
	return posting(svc.Pay, "Payment failed",
		"Transaction completed. The amount of $%s has been credited from account %d.")
}

type postFunc func(ctx context.Context, id int64, amount decimal.Decimal) (*account.Account, *account.Transaction, error)

func posting(post postFunc, failure, success string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accID, amount, ok, err := pathAndAmount(c)
		if !ok {
			return err
		}
		a, tx, err := post(c.UserContext(), accID, amount)
		if err != nil {
			log.Warnf("%s for account %d: %v", failure, accID, err)
			return common.ProblemDetailsJSON(c, failure, err, failureDetail(err))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK,
			fmt.Sprintf(success, amount.String(), accID),
			PostingDto{Account: ToAccountDto(a), Transaction: ToTransactionDto(tx)},
		)
	}
}

// Transfer moves money from the path account to to_acc_id.
func Transfer(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := c.ParamsInt("acc_id")
		if err != nil || from <= 0 {
			return common.ProblemDetailsJSON(c, "Invalid account ID", account.ErrInvalidAccountID)
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		tx, err := svc.Transfer(c.UserContext(), int64(from), input.ToAccID, amount)
		if err != nil {
			log.Warnf("Transfer failed from %d to %d: %v", from, input.ToAccID, err)
			return common.ProblemDetailsJSON(c, "Transfer failed", err, failureDetail(err))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK,
			fmt.Sprintf("Transaction completed. The amount of $%s has been transferred from account %d to account %d.",
				amount.String(), from, input.ToAccID),
			ToTransactionDto(tx),
		)
	}
}

// Statement lists the newest transactions of an account.
func Statement(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[StatementRequest](c)
		if input == nil {
			return err
		}
		txs, err := svc.Statement(c.UserContext(), input.AccID, input.Number)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load statement", err, failureDetail(err))
		}
		if len(txs) == 0 {
			return common.SuccessResponseJSON(c, fiber.StatusOK, "No Transactions", []TransactionDto{})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Statement fetched", ToTransactionDtos(txs))
	}
}

func pathAndAmount(c *fiber.Ctx) (int64, decimal.Decimal, bool, error) {
	id, err := c.ParamsInt("acc_id")
	if err != nil || id <= 0 {
		return 0, decimal.Zero, false, common.ProblemDetailsJSON(c, "Invalid account ID", account.ErrInvalidAccountID)
	}
	input, err := common.BindAndValidate[AmountRequest](c)
	if input == nil {
		return 0, decimal.Zero, false, err
	}
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return 0, decimal.Zero, false, common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
	}
	return int64(id), amount, true, nil
}

// failureDetail turns the ledger errors into the wording the apps have
// always shown.
func failureDetail(err error) any {
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		return "Account not found or Deactivated."
	case errors.Is(err, account.ErrInsufficientFunds):
		return "Account doesn't have sufficient Balance."
	default:
		return nil
	}
}
