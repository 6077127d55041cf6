package dto

import (
	"time"

	"wallet-ledger/internal/core/domain"
)

// CreateWalletRequest is the request body for wallet creation. The owner is
// the authenticated principal.
type CreateWalletRequest struct {
	CommandID     string            `json:"command_id" binding:"required,max=128,safe_id"`
	WalletID      string            `json:"wallet_id,omitempty" binding:"omitempty,uuid"`
	MerchantID    string            `json:"merchant_id,omitempty" binding:"max=100"`
	Currency      string            `json:"currency" binding:"required,currency"`
	WalletType    string            `json:"wallet_type,omitempty" binding:"omitempty,oneof=personal business merchant"`
	KYCLevel      string            `json:"kyc_level,omitempty" binding:"omitempty,oneof=basic enhanced full"`
	Metadata      map[string]string `json:"metadata,omitempty" binding:"max=20"`
	CorrelationID string            `json:"correlation_id,omitempty" binding:"max=128"`
}

// StatusChangeRequest is the body for activate, suspend and close.
type StatusChangeRequest struct {
	CommandID     string `json:"command_id" binding:"required,max=128,safe_id"`
	Reason        string `json:"reason" binding:"max=500"`
	CorrelationID string `json:"correlation_id,omitempty" binding:"max=128"`
}

// CreditRequest is the request body for a credit.
type CreditRequest struct {
	CommandID     string            `json:"command_id" binding:"required,max=128,safe_id"`
	Amount        int64             `json:"amount" binding:"required,gt=0"`
	Currency      string            `json:"currency" binding:"required,currency"`
	Source        string            `json:"source" binding:"required,oneof=deposit refund transfer_in cashback reversal"`
	Reference     string            `json:"reference,omitempty" binding:"max=100"`
	Description   string            `json:"description,omitempty" binding:"max=500"`
	Metadata      map[string]string `json:"metadata,omitempty" binding:"max=20"`
	CorrelationID string            `json:"correlation_id,omitempty" binding:"max=128"`
}

// DebitRequest is the request body for a debit.
type DebitRequest struct {
	CommandID     string            `json:"command_id" binding:"required,max=128,safe_id"`
	Amount        int64             `json:"amount" binding:"required,gt=0"`
	Currency      string            `json:"currency" binding:"required,currency"`
	Destination   string            `json:"destination" binding:"required,oneof=payment withdrawal transfer_out fee"`
	Reference     string            `json:"reference,omitempty" binding:"max=100"`
	Description   string            `json:"description,omitempty" binding:"max=500"`
	Metadata      map[string]string `json:"metadata,omitempty" binding:"max=20"`
	CorrelationID string            `json:"correlation_id,omitempty" binding:"max=128"`
}

// TransferRequest is the request body for a wallet-to-wallet transfer.
type TransferRequest struct {
	CommandID           string `json:"command_id" binding:"required,max=120,safe_id"`
	SourceWalletID      string `json:"source_wallet_id" binding:"required,uuid"`
	DestinationWalletID string `json:"destination_wallet_id" binding:"required,uuid,nefield=SourceWalletID"`
	Amount              int64  `json:"amount" binding:"required,gt=0"`
	Currency            string `json:"currency" binding:"required,currency"`
	Reference           string `json:"reference,omitempty" binding:"max=100"`
	Description         string `json:"description,omitempty" binding:"max=500"`
	CorrelationID       string `json:"correlation_id,omitempty" binding:"max=128"`
}

// CommandResponse is returned for every accepted command.
type CommandResponse struct {
	CommandID     string   `json:"command_id"`
	WalletID      string   `json:"wallet_id"`
	Version       int64    `json:"version"`
	EventIDs      []string `json:"event_ids"`
	CorrelationID string   `json:"correlation_id,omitempty"`
	Duplicate     bool     `json:"duplicate"`
}

// TransferResponse reports both legs of a transfer.
type TransferResponse struct {
	CorrelationID string          `json:"correlation_id"`
	Debit         CommandResponse `json:"debit"`
	Credit        CommandResponse `json:"credit"`
}

// WalletResponse is the projected wallet.
type WalletResponse struct {
	WalletID   string `json:"wallet_id"`
	UserID     string `json:"user_id"`
	MerchantID string `json:"merchant_id,omitempty"`
	WalletType string `json:"wallet_type"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
	Balance    int64  `json:"balance"`
	Version    int64  `json:"version"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// ActivityResponse is one projected wallet event.
type ActivityResponse struct {
	EventID       string `json:"event_id"`
	EventType     string `json:"event_type"`
	Version       int64  `json:"version"`
	Direction     string `json:"direction"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	BalanceAfter  int64  `json:"balance_after"`
	Category      string `json:"category,omitempty"`
	Reference     string `json:"reference,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}

// ActivityListResponse wraps a page of wallet activity.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Total int64              `json:"total"`
}

// PeriodTotalsResponse is the current-period aggregate for a subject.
type PeriodTotalsResponse struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	Period   string `json:"period"`
	Credited int64  `json:"credited"`
	Debited  int64  `json:"debited"`
	Net      int64  `json:"net"`
	Count    int64  `json:"count"`
	AsOf     string `json:"as_of,omitempty"`
}

// NewCommandResponse converts a service result.
func NewCommandResponse(r *domain.CommandResult) CommandResponse {
	ids := make([]string, 0, len(r.EventIDs))
	for _, id := range r.EventIDs {
		ids = append(ids, id.String())
	}
	return CommandResponse{
		CommandID:     r.CommandID,
		WalletID:      r.AggregateID.String(),
		Version:       r.Version,
		EventIDs:      ids,
		CorrelationID: r.CorrelationID,
		Duplicate:     r.Duplicate,
	}
}

func NewWalletResponse(v *domain.WalletView) WalletResponse {
	return WalletResponse{
		WalletID:   v.WalletID.String(),
		UserID:     v.UserID,
		MerchantID: v.MerchantID,
		WalletType: string(v.WalletType),
		Currency:   v.Currency,
		Status:     string(v.Status),
		Balance:    v.Balance,
		Version:    v.Version,
		CreatedAt:  v.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  v.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func NewActivityResponse(a *domain.WalletActivity) ActivityResponse {
	return ActivityResponse{
		EventID:       a.EventID.String(),
		EventType:     string(a.EventType),
		Version:       a.Version,
		Direction:     string(a.Direction),
		Amount:        a.Amount,
		Currency:      a.Currency,
		BalanceAfter:  a.BalanceAfter,
		Category:      a.Category,
		Reference:     a.Reference,
		CorrelationID: a.CorrelationID,
		OccurredAt:    a.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
}

func NewPeriodTotalsResponse(t *domain.PeriodTotals) PeriodTotalsResponse {
	resp := PeriodTotalsResponse{
		Kind:     string(t.Subject.Kind),
		ID:       t.Subject.ID,
		Period:   t.Period,
		Credited: t.Credited,
		Debited:  t.Debited,
		Net:      t.Net(),
		Count:    t.Count,
	}
	if !t.AsOf.IsZero() {
		resp.AsOf = t.AsOf.UTC().Format(time.RFC3339Nano)
	}
	return resp
}
