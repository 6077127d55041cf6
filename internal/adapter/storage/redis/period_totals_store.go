package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Each totals hash is overwritten only when the incoming movement count is at
// least the stored one. Counts only grow within a period, so a stale
// recomputation cannot replace a newer one.
const totalsBody = `
local function put(key, base, ttl)
  local current = tonumber(redis.call('HGET', key, 'count') or '-1')
  if tonumber(ARGV[base + 2]) >= current then
    redis.call('HSET', key, 'credited', ARGV[base], 'debited', ARGV[base + 1],
      'count', ARGV[base + 2], 'as_of', ARGV[base + 3])
    redis.call('EXPIRE', key, ttl)
  end
end
`

// KEYS[1] ledger key, KEYS[2..] totals keys.
// ARGV[1] ledger ttl, ARGV[2] totals ttl, then 4 fields per totals key.
var applyTotalsScript = goredis.NewScript(totalsBody + `
local fresh = redis.call('SET', KEYS[1], '1', 'NX', 'EX', ARGV[1])
for i = 2, #KEYS do
  put(KEYS[i], 3 + (i - 2) * 4, ARGV[2])
end
if fresh then
  return 1
end
return 0
`)

// KEYS[1] totals key. ARGV[1] ttl, ARGV[2..5] fields.
var setTotalsScript = goredis.NewScript(totalsBody + `
put(KEYS[1], 2, ARGV[1])
return 1
`)

// PeriodTotalsStore implements ports.PeriodTotalsStore. Totals are written
// from sums recomputed out of the relational store, never incremented.
type PeriodTotalsStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewPeriodTotalsStore creates a store whose keys expire after ttl.
func NewPeriodTotalsStore(client *goredis.Client, ttl time.Duration) *PeriodTotalsStore {
	if ttl <= 0 {
		ttl = 45 * 24 * time.Hour
	}
	return &PeriodTotalsStore{client: client, ttl: ttl}
}

// LedgerKey is the processed-event marker for projector.
func LedgerKey(projector string, eventID uuid.UUID) string {
	return fmt.Sprintf("ledger:%s:%s", projector, eventID)
}

// Apply writes totals and the ledger marker in one script call.
func (s *PeriodTotalsStore) Apply(ctx context.Context, projector string, eventID uuid.UUID, totals []domain.PeriodTotals) (bool, error) {
	ttl := strconv.FormatInt(int64(s.ttl/time.Second), 10)
	keys := []string{LedgerKey(projector, eventID)}
	args := []any{ttl, ttl}
	for _, t := range totals {
		keys = append(keys, t.Subject.Key(t.Period))
		args = append(args, totalsFields(t)...)
	}

	fresh, err := applyTotalsScript.Run(ctx, s.client, keys, args...).Int()
	if err != nil {
		return false, fmt.Errorf("redis apply totals: %w", err)
	}
	return fresh == 1, nil
}

// Set writes one subject's totals, keeping the same staleness guard.
func (s *PeriodTotalsStore) Set(ctx context.Context, t domain.PeriodTotals) error {
	ttl := strconv.FormatInt(int64(s.ttl/time.Second), 10)
	args := append([]any{ttl}, totalsFields(t)...)
	if err := setTotalsScript.Run(ctx, s.client, []string{t.Subject.Key(t.Period)}, args...).Err(); err != nil {
		return fmt.Errorf("redis set totals: %w", err)
	}
	return nil
}

// Get returns nil, nil when the subject has no totals for period.
func (s *PeriodTotalsStore) Get(ctx context.Context, subject domain.Subject, period string) (*domain.PeriodTotals, error) {
	fields, err := s.client.HGetAll(ctx, subject.Key(period)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get totals: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	t := &domain.PeriodTotals{Subject: subject, Period: period}
	if t.Credited, err = strconv.ParseInt(fields["credited"], 10, 64); err != nil {
		return nil, fmt.Errorf("redis totals credited: %w", err)
	}
	if t.Debited, err = strconv.ParseInt(fields["debited"], 10, 64); err != nil {
		return nil, fmt.Errorf("redis totals debited: %w", err)
	}
	if t.Count, err = strconv.ParseInt(fields["count"], 10, 64); err != nil {
		return nil, fmt.Errorf("redis totals count: %w", err)
	}
	if raw := fields["as_of"]; raw != "" {
		if t.AsOf, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return nil, fmt.Errorf("redis totals as_of: %w", err)
		}
	}
	return t, nil
}

func totalsFields(t domain.PeriodTotals) []any {
	asOf := ""
	if !t.AsOf.IsZero() {
		asOf = t.AsOf.UTC().Format(time.RFC3339Nano)
	}
	return []any{
		strconv.FormatInt(t.Credited, 10),
		strconv.FormatInt(t.Debited, 10),
		strconv.FormatInt(t.Count, 10),
		asOf,
	}
}
