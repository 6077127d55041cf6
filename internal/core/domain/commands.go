package domain

import (
	"fmt"

	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
)

// Command is implemented by every wallet command.
type Command interface {
	ID() string
	Validate() error
}

type CreateWallet struct {
	CommandID     string
	WalletID      uuid.UUID
	UserID        string
	MerchantID    string
	Currency      string
	WalletType    WalletType
	KYCLevel      KYCLevel
	Metadata      map[string]string
	CorrelationID string
}

func (c CreateWallet) ID() string { return c.CommandID }

func (c CreateWallet) Validate() error {
	if err := requireCommandID(c.CommandID); err != nil {
		return err
	}
	if c.WalletID == uuid.Nil {
		return apperror.Validation("wallet_id is required")
	}
	if c.UserID == "" {
		return apperror.Validation("user_id is required")
	}
	return ValidateCurrency(c.Currency)
}

type ActivateWallet struct {
	CommandID     string
	WalletID      uuid.UUID
	ActorID       string
	Reason        string
	CorrelationID string
}

func (c ActivateWallet) ID() string { return c.CommandID }

func (c ActivateWallet) Validate() error {
	if err := requireCommandID(c.CommandID); err != nil {
		return err
	}
	return requireWallet(c.WalletID)
}

type SuspendWallet struct {
	CommandID     string
	WalletID      uuid.UUID
	ActorID       string
	Reason        string
	CorrelationID string
}

func (c SuspendWallet) ID() string { return c.CommandID }

func (c SuspendWallet) Validate() error {
	if err := requireCommandID(c.CommandID); err != nil {
		return err
	}
	if err := requireWallet(c.WalletID); err != nil {
		return err
	}
	if c.Reason == "" {
		return apperror.Validation("reason is required")
	}
	return nil
}

type CloseWallet struct {
	CommandID     string
	WalletID      uuid.UUID
	ActorID       string
	Reason        string
	CorrelationID string
}

func (c CloseWallet) ID() string { return c.CommandID }

func (c CloseWallet) Validate() error {
	if err := requireCommandID(c.CommandID); err != nil {
		return err
	}
	if err := requireWallet(c.WalletID); err != nil {
		return err
	}
	if c.Reason == "" {
		return apperror.Validation("reason is required")
	}
	return nil
}

type CreditWallet struct {
	CommandID            string
	WalletID             uuid.UUID
	ActorID              string
	Amount               int64
	Currency             string
	Source               CreditSource
	Reference            string
	Description          string
	CounterpartyWalletID string
	Metadata             map[string]string
	CorrelationID        string
}

func (c CreditWallet) ID() string { return c.CommandID }

func (c CreditWallet) Validate() error {
	if err := requireCommandID(c.CommandID); err != nil {
		return err
	}
	if err := requireWallet(c.WalletID); err != nil {
		return err
	}
	if c.Amount <= 0 {
		return apperror.ErrInvalidAmount(c.Amount)
	}
	if !c.Source.Valid() {
		return apperror.Validation(fmt.Sprintf("invalid credit source %q", c.Source))
	}
	return ValidateCurrency(c.Currency)
}

type DebitWallet struct {
	CommandID            string
	WalletID             uuid.UUID
	ActorID              string
	Amount               int64
	Currency             string
	Destination          DebitDestination
	Reference            string
	Description          string
	CounterpartyWalletID string
	Metadata             map[string]string
	CorrelationID        string
}

func (c DebitWallet) ID() string { return c.CommandID }

func (c DebitWallet) Validate() error {
	if err := requireCommandID(c.CommandID); err != nil {
		return err
	}
	if err := requireWallet(c.WalletID); err != nil {
		return err
	}
	if c.Amount <= 0 {
		return apperror.ErrInvalidAmount(c.Amount)
	}
	if !c.Destination.Valid() {
		return apperror.Validation(fmt.Sprintf("invalid debit destination %q", c.Destination))
	}
	return ValidateCurrency(c.Currency)
}

// TransferFunds moves money between two wallets as a debit followed by a credit.
type TransferFunds struct {
	CommandID           string
	SourceWalletID      uuid.UUID
	DestinationWalletID uuid.UUID
	ActorID             string
	Amount              int64
	Currency            string
	Reference           string
	Description         string
	CorrelationID       string
}

func (c TransferFunds) ID() string { return c.CommandID }

func (c TransferFunds) Validate() error {
	if err := requireCommandID(c.CommandID); err != nil {
		return err
	}
	if err := requireWallet(c.SourceWalletID); err != nil {
		return err
	}
	if err := requireWallet(c.DestinationWalletID); err != nil {
		return err
	}
	if c.SourceWalletID == c.DestinationWalletID {
		return apperror.Validation("source and destination wallets must differ")
	}
	if c.Amount <= 0 {
		return apperror.ErrInvalidAmount(c.Amount)
	}
	return ValidateCurrency(c.Currency)
}

// Transfer legs carry derived causation ids so each leg dedupes on its own.
func (c TransferFunds) DebitLegID() string    { return c.CommandID + ":debit" }
func (c TransferFunds) CreditLegID() string   { return c.CommandID + ":credit" }
func (c TransferFunds) ReversalLegID() string { return c.CommandID + ":reversal" }

func requireCommandID(id string) error {
	if id == "" {
		return apperror.Validation("command_id is required")
	}
	if len(id) > 128 {
		return apperror.Validation("command_id must be at most 128 characters")
	}
	return nil
}

func requireWallet(id uuid.UUID) error {
	if id == uuid.Nil {
		return apperror.Validation("wallet_id is required")
	}
	return nil
}
