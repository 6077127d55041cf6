package domain

import (
	"encoding/json"
	"testing"
	"time"

	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, code), "expected %s, got %v", code, err)
}

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		code     string
	}{
		{"valid", 100, "USD", ""},
		{"zero", 0, "EUR", ""},
		{"negative", -1, "USD", apperror.CodeInvalidAmount},
		{"lowercase currency", 1, "usd", apperror.CodeValidation},
		{"short currency", 1, "US", apperror.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(tt.amount, tt.currency)
			if tt.code == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.amount, m.Amount)
				return
			}
			assertCode(t, err, tt.code)
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a := Money{Amount: 500, Currency: "USD"}
	b := Money{Amount: 200, Currency: "USD"}

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(700), sum.Amount)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(300), diff.Amount)

	_, err = b.Sub(a)
	assertCode(t, err, apperror.CodeInsufficientBalance)

	_, err = a.Add(Money{Amount: 1, Currency: "EUR"})
	assertCode(t, err, apperror.CodeInvalidAmount)

	assert.True(t, a.GreaterOrEqual(b))
	assert.False(t, b.GreaterOrEqual(a))
	assert.False(t, a.GreaterOrEqual(Money{Amount: 1, Currency: "EUR"}))
	assert.True(t, ZeroMoney("USD").IsZero())
}

func TestCommands_Validate(t *testing.T) {
	wid := uuid.New()
	other := uuid.New()

	tests := []struct {
		name string
		cmd  Command
		code string
	}{
		{"create ok", CreateWallet{CommandID: "c1", WalletID: wid, UserID: "u1", Currency: "USD"}, ""},
		{"create missing command id", CreateWallet{WalletID: wid, UserID: "u1", Currency: "USD"}, apperror.CodeValidation},
		{"create missing wallet id", CreateWallet{CommandID: "c1", UserID: "u1", Currency: "USD"}, apperror.CodeValidation},
		{"create missing user", CreateWallet{CommandID: "c1", WalletID: wid, Currency: "USD"}, apperror.CodeValidation},
		{"activate missing wallet", ActivateWallet{CommandID: "c1"}, apperror.CodeValidation},
		{"suspend without reason", SuspendWallet{CommandID: "c1", WalletID: wid}, apperror.CodeValidation},
		{"close ok", CloseWallet{CommandID: "c1", WalletID: wid, Reason: "user request"}, ""},
		{"credit zero", CreditWallet{CommandID: "c1", WalletID: wid, Currency: "USD", Source: CreditSourceDeposit}, apperror.CodeInvalidAmount},
		{"credit bad source", CreditWallet{CommandID: "c1", WalletID: wid, Amount: 1, Currency: "USD", Source: "gift"}, apperror.CodeValidation},
		{"debit ok", DebitWallet{CommandID: "c1", WalletID: wid, Amount: 1, Currency: "USD", Destination: DebitDestinationFee}, ""},
		{"debit negative", DebitWallet{CommandID: "c1", WalletID: wid, Amount: -5, Currency: "USD", Destination: DebitDestinationFee}, apperror.CodeInvalidAmount},
		{"transfer to self", TransferFunds{CommandID: "c1", SourceWalletID: wid, DestinationWalletID: wid, Amount: 1, Currency: "USD"}, apperror.CodeValidation},
		{"transfer ok", TransferFunds{CommandID: "c1", SourceWalletID: wid, DestinationWalletID: other, Amount: 1, Currency: "USD"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assertCode(t, err, tt.code)
		})
	}
}

func TestTransferFunds_LegIDs(t *testing.T) {
	cmd := TransferFunds{CommandID: "tx-1"}
	assert.Equal(t, "tx-1:debit", cmd.DebitLegID())
	assert.Equal(t, "tx-1:credit", cmd.CreditLegID())
	assert.Equal(t, "tx-1:reversal", cmd.ReversalLegID())
}

func TestResultFromEvents(t *testing.T) {
	wid := uuid.New()
	e1 := DomainEvent{EventID: uuid.New(), AggregateID: wid, AggregateVersion: 4, CorrelationID: "corr"}
	e2 := DomainEvent{EventID: uuid.New(), AggregateID: wid, AggregateVersion: 5, CorrelationID: "corr"}

	res := ResultFromEvents("cmd-1", []DomainEvent{e1, e2})

	assert.Equal(t, "cmd-1", res.CommandID)
	assert.Equal(t, wid, res.AggregateID)
	assert.Equal(t, int64(5), res.Version)
	assert.Equal(t, []uuid.UUID{e1.EventID, e2.EventID}, res.EventIDs)
	assert.Equal(t, "corr", res.CorrelationID)
	assert.True(t, res.Duplicate)
}

func TestBuildCommandKey(t *testing.T) {
	assert.Equal(t, "cmd:abc", BuildCommandKey("abc"))
}

func TestPeriodOf_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	at := time.Date(2026, 3, 1, 2, 0, 0, 0, loc)
	assert.Equal(t, "2026-02", PeriodOf(at))
}

func TestSubject_Key(t *testing.T) {
	s := Subject{Kind: SubjectUser, ID: "u-1"}
	assert.Equal(t, "totals:user:u-1:2026-10", s.Key("2026-10"))
	assert.True(t, SubjectWallet.Valid())
	assert.False(t, SubjectKind("merchant").Valid())
}

func TestParseEvent(t *testing.T) {
	e := DomainEvent{
		EventID:          uuid.New(),
		AggregateID:      uuid.New(),
		AggregateType:    AggregateTypeWallet,
		EventType:        EventWalletActivated,
		SchemaVersion:    SchemaVersion,
		AggregateVersion: 2,
		Timestamp:        time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC),
		Data:             json.RawMessage(`{"reason":"kyc ok"}`),
	}
	raw, err := json.Marshal(e)
	require.NoError(t, err)

	parsed, err := ParseEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, e.EventID, parsed.EventID)
	assert.Equal(t, e.Timestamp, parsed.Timestamp)

	_, err = ParseEvent([]byte(`{not json`))
	assert.Error(t, err)

	_, err = ParseEvent([]byte(`{"eventType":"wallet.created"}`))
	assert.Error(t, err)
}

func TestEventType_IsKnown(t *testing.T) {
	assert.True(t, EventWalletDebited.IsKnown())
	assert.False(t, EventType("wallet.renamed").IsKnown())
}
