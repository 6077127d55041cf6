package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
)

// WalletStatus represents the lifecycle state of a wallet.
type WalletStatus string

const (
	WalletStatusPending   WalletStatus = "pending"
	WalletStatusActive    WalletStatus = "active"
	WalletStatusSuspended WalletStatus = "suspended"
	WalletStatusClosed    WalletStatus = "closed"
)

// WalletType distinguishes personal wallets from business ones.
type WalletType string

const (
	WalletTypePersonal WalletType = "personal"
	WalletTypeBusiness WalletType = "business"
	WalletTypeMerchant WalletType = "merchant"
)

func (t WalletType) Valid() bool {
	return t == WalletTypePersonal || t == WalletTypeBusiness || t == WalletTypeMerchant
}

// KYCLevel is the verification tier of the wallet owner.
type KYCLevel string

const (
	KYCLevelBasic    KYCLevel = "basic"
	KYCLevelEnhanced KYCLevel = "enhanced"
	KYCLevelFull     KYCLevel = "full"
)

func (k KYCLevel) Valid() bool {
	return k == KYCLevelBasic || k == KYCLevelEnhanced || k == KYCLevelFull
}

// WalletState is the folded state of one wallet. It is also the snapshot payload.
type WalletState struct {
	WalletID   uuid.UUID         `json:"walletId"`
	UserID     string            `json:"userId"`
	MerchantID string            `json:"merchantId,omitempty"`
	WalletType WalletType        `json:"walletType"`
	KYCLevel   KYCLevel          `json:"kycLevel"`
	Balance    Money             `json:"balance"`
	Status     WalletStatus      `json:"status"`
	Currency   string            `json:"currency"`
	Version    int64             `json:"version"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// CreateOptions carries the optional attributes of a new wallet.
type CreateOptions struct {
	Currency   string
	WalletType WalletType
	KYCLevel   KYCLevel
	Metadata   map[string]string
}

// EntryOptions annotates a credit or debit.
type EntryOptions struct {
	Reference            string
	Description          string
	CounterpartyWalletID string
	Metadata             map[string]string
}

// Wallet is the event-sourced aggregate. Every accepted command appends one
// event to the uncommitted buffer and folds it into the state. Rejected
// commands leave both untouched.
type Wallet struct {
	state       WalletState
	uncommitted []DomainEvent
	now         func() time.Time
}

func NewWallet() *Wallet {
	return &Wallet{now: defaultClock}
}

// RestoreWallet rebuilds an aggregate from a snapshotted state.
func RestoreWallet(state WalletState) *Wallet {
	state.Metadata = copyMetadata(state.Metadata)
	return &Wallet{state: state, now: defaultClock}
}

// Timestamps are truncated to microseconds so a database round trip is lossless.
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// WithClock replaces the time source. Used by tests.
func (w *Wallet) WithClock(now func() time.Time) *Wallet {
	w.now = func() time.Time { return now().UTC().Truncate(time.Microsecond) }
	return w
}

func (w *Wallet) ID() uuid.UUID { return w.state.WalletID }

func (w *Wallet) Version() int64 { return w.state.Version }

// State returns a copy of the current state.
func (w *Wallet) State() WalletState {
	s := w.state
	s.Metadata = copyMetadata(w.state.Metadata)
	return s
}

// UncommittedEvents returns the events not yet persisted, oldest first.
func (w *Wallet) UncommittedEvents() []DomainEvent {
	out := make([]DomainEvent, len(w.uncommitted))
	copy(out, w.uncommitted)
	return out
}

// MarkCommitted clears the uncommitted buffer after a successful append.
func (w *Wallet) MarkCommitted() {
	w.uncommitted = nil
}

// StampUncommitted sets causation and correlation ids on pending events.
func (w *Wallet) StampUncommitted(causationID, correlationID string) {
	for i := range w.uncommitted {
		w.uncommitted[i].CausationID = causationID
		w.uncommitted[i].CorrelationID = correlationID
	}
}

// ---- Commands ----

func (w *Wallet) Create(walletID uuid.UUID, userID string, merchantID string, opts CreateOptions) error {
	if w.state.WalletID != uuid.Nil {
		return apperror.ErrAlreadyExists("wallet")
	}
	if walletID == uuid.Nil {
		return apperror.Validation("wallet id is required")
	}
	if userID == "" {
		return apperror.Validation("user id is required")
	}
	if err := ValidateCurrency(opts.Currency); err != nil {
		return err
	}
	if opts.WalletType == "" {
		opts.WalletType = WalletTypePersonal
	}
	if !opts.WalletType.Valid() {
		return apperror.Validation(fmt.Sprintf("invalid wallet type %q", opts.WalletType))
	}
	if opts.KYCLevel == "" {
		opts.KYCLevel = KYCLevelBasic
	}
	if !opts.KYCLevel.Valid() {
		return apperror.Validation(fmt.Sprintf("invalid kyc level %q", opts.KYCLevel))
	}

	return w.raise(walletID, EventWalletCreated, WalletCreatedData{
		UserID:     userID,
		MerchantID: merchantID,
		Currency:   opts.Currency,
		WalletType: opts.WalletType,
		KYCLevel:   opts.KYCLevel,
	}, opts.Metadata)
}

func (w *Wallet) Activate(reason string, activatedBy string) error {
	if err := w.requireIdentity(); err != nil {
		return err
	}
	if w.state.Status != WalletStatusPending {
		return apperror.ErrInvalidStateTransition(string(w.state.Status), "activate")
	}
	return w.raise(w.state.WalletID, EventWalletActivated, WalletActivatedData{
		Reason:      reason,
		ActivatedBy: activatedBy,
	}, nil)
}

func (w *Wallet) Suspend(reason string, suspendedBy string) error {
	if err := w.requireIdentity(); err != nil {
		return err
	}
	switch w.state.Status {
	case WalletStatusClosed:
		return apperror.ErrAlreadyClosed(w.state.WalletID.String())
	case WalletStatusSuspended:
		return apperror.ErrInvalidStateTransition(string(w.state.Status), "suspend")
	}
	return w.raise(w.state.WalletID, EventWalletSuspended, WalletSuspendedData{
		Reason:      reason,
		SuspendedBy: suspendedBy,
	}, nil)
}

func (w *Wallet) Close(reason string, closedBy string) error {
	if err := w.requireIdentity(); err != nil {
		return err
	}
	if w.state.Status == WalletStatusClosed {
		return apperror.ErrAlreadyClosed(w.state.WalletID.String())
	}
	if !w.state.Balance.IsZero() {
		return apperror.ErrNonZeroBalanceOnClose(w.state.WalletID.String(), w.state.Balance.Amount)
	}
	return w.raise(w.state.WalletID, EventWalletClosed, WalletClosedData{
		Reason:       reason,
		ClosedBy:     closedBy,
		FinalBalance: 0,
	}, nil)
}

func (w *Wallet) Credit(amount Money, source CreditSource, opts EntryOptions) error {
	if err := w.requireMovable(amount); err != nil {
		return err
	}
	if !source.Valid() {
		return apperror.Validation(fmt.Sprintf("invalid credit source %q", source))
	}
	after, err := w.state.Balance.Add(amount)
	if err != nil {
		return err
	}
	return w.raise(w.state.WalletID, EventWalletCredited, WalletCreditedData{
		Amount:               amount.Amount,
		Currency:             amount.Currency,
		BalanceBefore:        w.state.Balance.Amount,
		BalanceAfter:         after.Amount,
		Source:               source,
		Reference:            opts.Reference,
		Description:          opts.Description,
		CounterpartyWalletID: opts.CounterpartyWalletID,
	}, opts.Metadata)
}

func (w *Wallet) Debit(amount Money, destination DebitDestination, opts EntryOptions) error {
	if err := w.requireMovable(amount); err != nil {
		return err
	}
	if !destination.Valid() {
		return apperror.Validation(fmt.Sprintf("invalid debit destination %q", destination))
	}
	if !w.state.Balance.GreaterOrEqual(amount) {
		return apperror.ErrInsufficientBalance(w.state.WalletID.String(), amount.Amount, w.state.Balance.Amount)
	}
	after, err := w.state.Balance.Sub(amount)
	if err != nil {
		return err
	}
	return w.raise(w.state.WalletID, EventWalletDebited, WalletDebitedData{
		Amount:               amount.Amount,
		Currency:             amount.Currency,
		BalanceBefore:        w.state.Balance.Amount,
		BalanceAfter:         after.Amount,
		Destination:          destination,
		Reference:            opts.Reference,
		Description:          opts.Description,
		CounterpartyWalletID: opts.CounterpartyWalletID,
	}, opts.Metadata)
}

// CanDebit is true iff the wallet is active and holds at least amount.
func (w *Wallet) CanDebit(amount Money) bool {
	return w.state.Status == WalletStatusActive && w.state.Balance.GreaterOrEqual(amount)
}

// ---- Replay ----

// LoadFromHistory folds committed events onto the current state without
// emitting anything. Events must continue the current version without gaps.
func (w *Wallet) LoadFromHistory(events []DomainEvent) error {
	sorted := make([]DomainEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AggregateVersion < sorted[j].AggregateVersion
	})

	for _, e := range sorted {
		if e.AggregateVersion != w.state.Version+1 {
			return fmt.Errorf("replay wallet %s: expected version %d, got %d",
				e.AggregateID, w.state.Version+1, e.AggregateVersion)
		}
		if w.state.WalletID != uuid.Nil && e.AggregateID != w.state.WalletID {
			return fmt.Errorf("replay wallet %s: event %s belongs to %s",
				w.state.WalletID, e.EventID, e.AggregateID)
		}
		if err := w.apply(e); err != nil {
			return err
		}
	}
	return nil
}

// apply is the single fold step shared by command handling and replay.
func (w *Wallet) apply(e DomainEvent) error {
	switch e.EventType {
	case EventWalletCreated:
		var d WalletCreatedData
		if err := e.DecodeData(&d); err != nil {
			return err
		}
		w.state = WalletState{
			WalletID:   e.AggregateID,
			UserID:     d.UserID,
			MerchantID: d.MerchantID,
			WalletType: d.WalletType,
			KYCLevel:   d.KYCLevel,
			Balance:    ZeroMoney(d.Currency),
			Status:     WalletStatusPending,
			Currency:   d.Currency,
			CreatedAt:  e.Timestamp,
			Metadata:   copyMetadata(e.Metadata),
		}

	case EventWalletActivated:
		w.state.Status = WalletStatusActive

	case EventWalletSuspended:
		w.state.Status = WalletStatusSuspended

	case EventWalletClosed:
		w.state.Status = WalletStatusClosed
		w.state.Balance = ZeroMoney(w.state.Currency)

	case EventWalletCredited:
		var d WalletCreditedData
		if err := e.DecodeData(&d); err != nil {
			return err
		}
		w.state.Balance = Money{Amount: d.BalanceAfter, Currency: w.state.Currency}

	case EventWalletDebited:
		var d WalletDebitedData
		if err := e.DecodeData(&d); err != nil {
			return err
		}
		w.state.Balance = Money{Amount: d.BalanceAfter, Currency: w.state.Currency}

	default:
		return fmt.Errorf("apply wallet event: unknown type %q", e.EventType)
	}

	w.state.Version = e.AggregateVersion
	w.state.UpdatedAt = e.Timestamp
	return nil
}

func (w *Wallet) raise(walletID uuid.UUID, eventType EventType, data any, metadata map[string]string) error {
	if w.now == nil {
		w.now = defaultClock
	}
	e, err := newEvent(walletID, eventType, w.state.Version+1, w.now(), data, metadata)
	if err != nil {
		return apperror.InternalError(err)
	}
	if err := w.apply(e); err != nil {
		return apperror.InternalError(err)
	}
	w.uncommitted = append(w.uncommitted, e)
	return nil
}

func (w *Wallet) requireIdentity() error {
	if w.state.WalletID == uuid.Nil {
		return apperror.ErrNotFound("wallet")
	}
	return nil
}

func (w *Wallet) requireMovable(amount Money) error {
	if err := w.requireIdentity(); err != nil {
		return err
	}
	if w.state.Status != WalletStatusActive {
		return apperror.ErrWalletNotActive(w.state.WalletID.String(), string(w.state.Status))
	}
	if !amount.IsPositive() {
		return apperror.ErrInvalidAmount(amount.Amount)
	}
	if amount.Currency != w.state.Currency {
		return apperror.ErrInvalidAmount(amount.Amount).
			WithDetails(map[string]any{"amount": amount.Amount, "currency": amount.Currency, "wallet_currency": w.state.Currency})
	}
	return nil
}

// MarshalSnapshot serializes the state for the snapshot store.
func (w *Wallet) MarshalSnapshot() (Snapshot, error) {
	raw, err := json.Marshal(w.state)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal wallet snapshot: %w", err)
	}
	return Snapshot{
		AggregateID:   w.state.WalletID,
		AggregateType: AggregateTypeWallet,
		State:         raw,
		Version:       w.state.Version,
	}, nil
}

// WalletFromSnapshot decodes a snapshot and checks it is self-consistent.
func WalletFromSnapshot(s Snapshot) (*Wallet, error) {
	var state WalletState
	if err := json.Unmarshal(s.State, &state); err != nil {
		return nil, fmt.Errorf("decode wallet snapshot: %w", err)
	}
	if state.WalletID != s.AggregateID || state.Version != s.Version || state.Version < 1 {
		return nil, fmt.Errorf("wallet snapshot %s inconsistent at version %d", s.AggregateID, s.Version)
	}
	if state.Balance.Amount < 0 {
		return nil, fmt.Errorf("wallet snapshot %s has negative balance", s.AggregateID)
	}
	return RestoreWallet(state), nil
}
