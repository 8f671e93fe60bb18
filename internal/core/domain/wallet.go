package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrWalletExists is returned by the store when the user already owns a wallet.
	ErrWalletExists = errors.New("wallet already exists")
	// ErrWalletNotFound is returned when no wallet matches the user id.
	ErrWalletNotFound = errors.New("wallet not found")
)

// Wallet is a user's multi-currency wallet. Only PasswordHash and UpdatedOn
// change after creation.
type Wallet struct {
	ID           uuid.UUID         `json:"id"`
	UserID       int64             `json:"user_id" validate:"min=1"`
	Balances     []CurrencyBalance `json:"balances" validate:"dive"`
	PasswordHash *string           `json:"-"` // hashed transfer PIN
	CreatedOn    time.Time         `json:"created_on"`
	UpdatedOn    time.Time         `json:"updated_on"`
}

// CurrencyBalance is one currency row of a wallet.
type CurrencyBalance struct {
	CurrencyCode   string          `json:"currency_code" validate:"len=3,alpha,uppercase"`
	CurrencySymbol string          `json:"currency_symbol" validate:"min=1,max=5"`
	Balance        decimal.Decimal `json:"balance"`
}

// IsNegative reports whether the balance is below zero.
func (b CurrencyBalance) IsNegative() bool {
	return b.Balance.IsNegative()
}

var seedCurrencies = []struct{ code, symbol string }{
	{"USD", "$"},
	{"EUR", "€"},
	{"NGN", "₦"},
	{"GBP", "£"},
	{"JPY", "¥"},
	{"AUD", "$"},
	{"CAD", "$"},
	{"CHF", "CHF"},
	{"CNY", "¥"},
	{"INR", "₹"},
}

// DefaultBalances returns the zero balances every new wallet starts with.
func DefaultBalances() []CurrencyBalance {
	out := make([]CurrencyBalance, 0, len(seedCurrencies))
	for _, c := range seedCurrencies {
		out = append(out, CurrencyBalance{
			CurrencyCode:   c.code,
			CurrencySymbol: c.symbol,
			Balance:        decimal.Zero,
		})
	}
	return out
}

// NewWallet builds an unsaved wallet for userID seeded with DefaultBalances.
func NewWallet(userID int64, now time.Time) *Wallet {
	return &Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Balances:  DefaultBalances(),
		CreatedOn: now,
		UpdatedOn: now,
	}
}
