package ports

import (
	"context"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// TokenService handles JWT bearer tokens. Issuance exists for operators and tests.
type TokenService interface {
	Generate(userID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID string
}

// --- Service Ports (Business Logic) ---

// WalletCommandService executes wallet commands against the event store.
type WalletCommandService interface {
	CreateWallet(ctx context.Context, cmd domain.CreateWallet) (*domain.CommandResult, error)
	ActivateWallet(ctx context.Context, cmd domain.ActivateWallet) (*domain.CommandResult, error)
	SuspendWallet(ctx context.Context, cmd domain.SuspendWallet) (*domain.CommandResult, error)
	CloseWallet(ctx context.Context, cmd domain.CloseWallet) (*domain.CommandResult, error)
	CreditWallet(ctx context.Context, cmd domain.CreditWallet) (*domain.CommandResult, error)
	DebitWallet(ctx context.Context, cmd domain.DebitWallet) (*domain.CommandResult, error)
	TransferFunds(ctx context.Context, cmd domain.TransferFunds) (*TransferResult, error)
}

// TransferResult reports both legs of a transfer saga.
type TransferResult struct {
	CorrelationID string                `json:"correlation_id"`
	Debit         *domain.CommandResult `json:"debit"`
	Credit        *domain.CommandResult `json:"credit"`
}

// WalletQueryService serves the read models. It never reads the event log.
type WalletQueryService interface {
	GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.WalletView, error)
	ListWalletEvents(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.WalletActivity, int64, error)
	GetCurrentPeriodTotal(ctx context.Context, subject domain.Subject) (*domain.PeriodTotals, error)
}

// ProjectionService materializes the read models from the event stream.
type ProjectionService interface {
	EventHandler
	Stats() ProjectionStats
	Health(ctx context.Context) ProjectionHealth
	// Rebuild replays the whole event store through the projectors.
	Rebuild(ctx context.Context) (int, error)
}

// ProjectionStats are the projector's operational counters.
type ProjectionStats struct {
	EventsProcessed int64            `json:"events_processed"`
	Duplicates      int64            `json:"duplicates"`
	Errors          int64            `json:"errors"`
	Parked          int64            `json:"parked"`
	Skipped         int64            `json:"skipped"`
	ByEventType     map[string]int64 `json:"by_event_type"`
	LastEventAt     *time.Time       `json:"last_event_at,omitempty"`
	Lag             int64            `json:"lag"`
}

// ProjectionHealth is the projector's view of its dependencies.
type ProjectionHealth struct {
	Status       string            `json:"status"` // healthy or degraded
	Dependencies map[string]string `json:"dependencies"`
	Lag          int64             `json:"lag"`
}
