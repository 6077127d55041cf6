package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	AggregateTypeWallet = "wallet"
	// SchemaVersion is stamped on every event emitted by this build.
	SchemaVersion = 1
)

// EventType names a wallet event on the wire.
type EventType string

const (
	EventWalletCreated   EventType = "wallet.created"
	EventWalletActivated EventType = "wallet.activated"
	EventWalletSuspended EventType = "wallet.suspended"
	EventWalletClosed    EventType = "wallet.closed"
	EventWalletCredited  EventType = "wallet.credited"
	EventWalletDebited   EventType = "wallet.debited"
)

// IsKnown reports whether this build knows how to apply the event type.
func (t EventType) IsKnown() bool {
	switch t {
	case EventWalletCreated, EventWalletActivated, EventWalletSuspended,
		EventWalletClosed, EventWalletCredited, EventWalletDebited:
		return true
	}
	return false
}

// DomainEvent is the immutable envelope persisted in the event store and
// published to the log. AggregateVersion is the version reached after the event.
type DomainEvent struct {
	EventID          uuid.UUID         `json:"eventId"`
	AggregateID      uuid.UUID         `json:"aggregateId"`
	AggregateType    string            `json:"aggregateType"`
	EventType        EventType         `json:"eventType"`
	SchemaVersion    int               `json:"schemaVersion"`
	AggregateVersion int64             `json:"aggregateVersion"`
	Timestamp        time.Time         `json:"timestamp"`
	CausationID      string            `json:"causationId,omitempty"`
	CorrelationID    string            `json:"correlationId,omitempty"`
	Data             json.RawMessage   `json:"data"`
	Metadata         map[string]string `json:"metadata,omitempty"`

	// Position is the store-assigned global sequence. Not part of the wire shape.
	Position int64 `json:"-"`
}

func newEvent(aggregateID uuid.UUID, eventType EventType, version int64, at time.Time, data any, metadata map[string]string) (DomainEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return DomainEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return DomainEvent{
		EventID:          uuid.New(),
		AggregateID:      aggregateID,
		AggregateType:    AggregateTypeWallet,
		EventType:        eventType,
		SchemaVersion:    SchemaVersion,
		AggregateVersion: version,
		Timestamp:        at,
		Data:             raw,
		Metadata:         copyMetadata(metadata),
	}, nil
}

// DecodeData unmarshals the payload into v.
func (e DomainEvent) DecodeData(v any) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.EventType, err)
	}
	return nil
}

// ParseEvent decodes a wire message and checks the envelope fields a consumer relies on.
func ParseEvent(payload []byte) (DomainEvent, error) {
	var e DomainEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return DomainEvent{}, fmt.Errorf("parse event: %w", err)
	}
	if e.EventID == uuid.Nil || e.AggregateID == uuid.Nil || e.EventType == "" {
		return DomainEvent{}, fmt.Errorf("parse event: missing envelope fields")
	}
	if e.AggregateVersion < 1 {
		return DomainEvent{}, fmt.Errorf("parse event: invalid aggregate version %d", e.AggregateVersion)
	}
	return e, nil
}

// CreditSource classifies where credited money came from.
type CreditSource string

const (
	CreditSourceDeposit    CreditSource = "deposit"
	CreditSourceRefund     CreditSource = "refund"
	CreditSourceTransferIn CreditSource = "transfer_in"
	CreditSourceCashback   CreditSource = "cashback"
	CreditSourceReversal   CreditSource = "reversal"
)

func (s CreditSource) Valid() bool {
	switch s {
	case CreditSourceDeposit, CreditSourceRefund, CreditSourceTransferIn,
		CreditSourceCashback, CreditSourceReversal:
		return true
	}
	return false
}

// DebitDestination classifies where debited money went.
type DebitDestination string

const (
	DebitDestinationPayment     DebitDestination = "payment"
	DebitDestinationWithdrawal  DebitDestination = "withdrawal"
	DebitDestinationTransferOut DebitDestination = "transfer_out"
	DebitDestinationFee         DebitDestination = "fee"
)

func (d DebitDestination) Valid() bool {
	switch d {
	case DebitDestinationPayment, DebitDestinationWithdrawal,
		DebitDestinationTransferOut, DebitDestinationFee:
		return true
	}
	return false
}

// ---- Payloads ----

type WalletCreatedData struct {
	UserID     string     `json:"userId"`
	MerchantID string     `json:"merchantId,omitempty"`
	Currency   string     `json:"currency"`
	WalletType WalletType `json:"walletType"`
	KYCLevel   KYCLevel   `json:"kycLevel"`
}

type WalletActivatedData struct {
	Reason      string `json:"reason,omitempty"`
	ActivatedBy string `json:"activatedBy,omitempty"`
}

type WalletSuspendedData struct {
	Reason      string `json:"reason"`
	SuspendedBy string `json:"suspendedBy,omitempty"`
}

type WalletClosedData struct {
	Reason       string `json:"reason"`
	ClosedBy     string `json:"closedBy,omitempty"`
	FinalBalance int64  `json:"finalBalance"`
}

type WalletCreditedData struct {
	Amount               int64        `json:"amount"`
	Currency             string       `json:"currency"`
	BalanceBefore        int64        `json:"balanceBefore"`
	BalanceAfter         int64        `json:"balanceAfter"`
	Source               CreditSource `json:"source"`
	Reference            string       `json:"reference,omitempty"`
	Description          string       `json:"description,omitempty"`
	CounterpartyWalletID string       `json:"counterpartyWalletId,omitempty"`
}

type WalletDebitedData struct {
	Amount               int64            `json:"amount"`
	Currency             string           `json:"currency"`
	BalanceBefore        int64            `json:"balanceBefore"`
	BalanceAfter         int64            `json:"balanceAfter"`
	Destination          DebitDestination `json:"destination"`
	Reference            string           `json:"reference,omitempty"`
	Description          string           `json:"description,omitempty"`
	CounterpartyWalletID string           `json:"counterpartyWalletId,omitempty"`
}

func copyMetadata(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
