package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WalletView is the relational read model row for one wallet.
type WalletView struct {
	WalletID   uuid.UUID    `json:"wallet_id"`
	UserID     string       `json:"user_id"`
	MerchantID string       `json:"merchant_id,omitempty"`
	WalletType WalletType   `json:"wallet_type"`
	Currency   string       `json:"currency"`
	Status     WalletStatus `json:"status"`
	Balance    int64        `json:"balance"`
	Version    int64        `json:"version"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Direction of a projected activity row.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
	DirectionNone   Direction = "none"
)

// WalletActivity is one projected event in the relational detail store.
type WalletActivity struct {
	EventID       uuid.UUID `json:"event_id"`
	WalletID      uuid.UUID `json:"wallet_id"`
	UserID        string    `json:"user_id"`
	EventType     EventType `json:"event_type"`
	Version       int64     `json:"version"`
	Direction     Direction `json:"direction"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	BalanceAfter  int64     `json:"balance_after"`
	Category      string    `json:"category,omitempty"`
	Reference     string    `json:"reference,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
	Period        string    `json:"period"`
}

// SubjectKind scopes period totals.
type SubjectKind string

const (
	SubjectWallet SubjectKind = "wallet"
	SubjectUser   SubjectKind = "user"
)

func (k SubjectKind) Valid() bool {
	return k == SubjectWallet || k == SubjectUser
}

// Subject identifies whose totals are aggregated. User totals sum every
// wallet the user owns and assume those wallets share a currency.
type Subject struct {
	Kind SubjectKind `json:"kind"`
	ID   string      `json:"id"`
}

// Key is the aggregate-store key for the subject in a period.
func (s Subject) Key(period string) string {
	return fmt.Sprintf("totals:%s:%s:%s", s.Kind, s.ID, period)
}

// PeriodTotals are current-period sums for one subject.
type PeriodTotals struct {
	Subject  Subject   `json:"subject"`
	Period   string    `json:"period"`
	Credited int64     `json:"credited"`
	Debited  int64     `json:"debited"`
	Count    int64     `json:"count"`
	AsOf     time.Time `json:"as_of"`
}

// Net is credited minus debited.
func (p PeriodTotals) Net() int64 {
	return p.Credited - p.Debited
}

// PeriodOf returns the UTC calendar month of t as YYYY-MM.
func PeriodOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// ParkedEvent is an event a projector gave up on.
type ParkedEvent struct {
	Projector string    `json:"projector"`
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Payload   []byte    `json:"payload"`
	Reason    string    `json:"reason"`
	Attempts  int       `json:"attempts"`
	ParkedAt  time.Time `json:"parked_at"`
}
