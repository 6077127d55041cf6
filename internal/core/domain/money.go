package domain

import (
	"fmt"
	"net/http"

	"wallet-ledger/pkg/apperror"
)

// Money is an amount in minor units of a single currency. Amount is never negative.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// NewMoney validates the amount and currency code.
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, apperror.ErrInvalidAmount(amount)
	}
	if err := ValidateCurrency(currency); err != nil {
		return Money{}, err
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// ZeroMoney returns an empty balance in the given currency.
func ZeroMoney(currency string) Money {
	return Money{Currency: currency}
}

// ValidateCurrency accepts ISO-4217 style codes: three upper-case letters.
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return apperror.Validation(fmt.Sprintf("invalid currency code %q", code))
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return apperror.Validation(fmt.Sprintf("invalid currency code %q", code))
		}
	}
	return nil
}

func (m Money) IsZero() bool { return m.Amount == 0 }

func (m Money) IsPositive() bool { return m.Amount > 0 }

// GreaterOrEqual compares amounts; currencies are assumed to match.
func (m Money) GreaterOrEqual(other Money) bool {
	return m.Currency == other.Currency && m.Amount >= other.Amount
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Sub refuses to produce a negative amount.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	if other.Amount > m.Amount {
		return Money{}, apperror.ErrInsufficientBalance("", other.Amount, m.Amount)
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return apperror.New(apperror.CodeInvalidAmount, "Currency mismatch", http.StatusBadRequest).
			WithDetails(map[string]any{"expected": m.Currency, "actual": other.Currency})
	}
	return nil
}
