package memory

import (
	"context"
	"fmt"
	"sort"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletViewRepo implements ports.WalletViewRepository in memory.
type WalletViewRepo struct {
	store *Store
}

func NewWalletViewRepo(s *Store) *WalletViewRepo {
	return &WalletViewRepo{store: s}
}

func processedKey(projector string, eventID uuid.UUID) string {
	return projector + ":" + eventID.String()
}

func (r *WalletViewRepo) MarkProcessed(ctx context.Context, tx pgx.Tx, projector string, eventID uuid.UUID) (bool, error) {
	s := r.store
	t, err := s.txOf(tx)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := processedKey(projector, eventID)
	if _, ok := s.processed[key]; ok {
		return false, nil
	}
	s.processed[key] = struct{}{}
	t.onRollback(func() { delete(s.processed, key) })
	return true, nil
}

// InsertWallet ignores a wallet that already has a row.
func (r *WalletViewRepo) InsertWallet(ctx context.Context, tx pgx.Tx, v *domain.WalletView) error {
	s := r.store
	t, err := s.txOf(tx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.views[v.WalletID]; ok {
		return nil
	}
	s.views[v.WalletID] = *v
	t.onRollback(func() { delete(s.views, v.WalletID) })
	return nil
}

func (r *WalletViewRepo) GetWalletForUpdate(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) (*domain.WalletView, error) {
	if _, err := r.store.txOf(tx); err != nil {
		return nil, err
	}
	return r.GetWallet(ctx, walletID)
}

// UpdateWallet applies only when v.Version is newer than the stored row.
func (r *WalletViewRepo) UpdateWallet(ctx context.Context, tx pgx.Tx, v *domain.WalletView) (bool, error) {
	s := r.store
	t, err := s.txOf(tx)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.views[v.WalletID]
	if !ok || prev.Version >= v.Version {
		return false, nil
	}
	next := prev
	next.Status = v.Status
	next.Balance = v.Balance
	next.Version = v.Version
	next.UpdatedAt = v.UpdatedAt
	s.views[v.WalletID] = next
	t.onRollback(func() { s.views[v.WalletID] = prev })
	return true, nil
}

func (r *WalletViewRepo) InsertActivity(ctx context.Context, tx pgx.Tx, a *domain.WalletActivity) error {
	s := r.store
	t, err := s.txOf(tx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.activityIDs[a.EventID]; ok {
		return nil
	}
	s.activityIDs[a.EventID] = struct{}{}
	s.activity = append(s.activity, *a)
	n := len(s.activity)
	t.onRollback(func() {
		delete(s.activityIDs, a.EventID)
		s.activity = s.activity[:n-1]
	})
	return nil
}

// GetWallet returns nil, nil when the wallet has not been projected.
func (r *WalletViewRepo) GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.WalletView, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[walletID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// ListActivity returns one page of a wallet's activity, newest first.
func (r *WalletViewRepo) ListActivity(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.WalletActivity, int64, error) {
	s := r.store
	s.mu.Lock()
	var rows []domain.WalletActivity
	for _, a := range s.activity {
		if a.WalletID == walletID {
			rows = append(rows, a)
		}
	}
	s.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i].Version > rows[j].Version })

	total := int64(len(rows))
	if offset >= len(rows) {
		return nil, total, nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, total, nil
}

// SumPeriod recomputes totals for subject from the activity rows.
func (r *WalletViewRepo) SumPeriod(ctx context.Context, subject domain.Subject, period string) (*domain.PeriodTotals, error) {
	var match func(domain.WalletActivity) bool
	switch subject.Kind {
	case domain.SubjectWallet:
		id, err := uuid.Parse(subject.ID)
		if err != nil {
			return nil, fmt.Errorf("sum period: invalid wallet id %q: %w", subject.ID, err)
		}
		match = func(a domain.WalletActivity) bool { return a.WalletID == id }
	case domain.SubjectUser:
		match = func(a domain.WalletActivity) bool { return a.UserID == subject.ID }
	default:
		return nil, fmt.Errorf("sum period: unknown subject kind %q", subject.Kind)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := &domain.PeriodTotals{Subject: subject, Period: period}
	for _, a := range s.activity {
		if a.Period != period || !match(a) {
			continue
		}
		switch a.Direction {
		case domain.DirectionCredit:
			totals.Credited += a.Amount
			totals.Count++
		case domain.DirectionDebit:
			totals.Debited += a.Amount
			totals.Count++
		}
		if a.OccurredAt.After(totals.AsOf) {
			totals.AsOf = a.OccurredAt
		}
	}
	return totals, nil
}

// DeadLetterRepo implements ports.DeadLetterRepository in memory.
type DeadLetterRepo struct {
	store *Store
}

func NewDeadLetterRepo(s *Store) *DeadLetterRepo {
	return &DeadLetterRepo{store: s}
}

func (r *DeadLetterRepo) Park(ctx context.Context, p *domain.ParkedEvent) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := p.Projector + ":" + p.EventID
	next := *p
	if prev, ok := s.parked[key]; ok {
		next.Attempts += prev.Attempts
	}
	s.parked[key] = next
	return nil
}

func (r *DeadLetterRepo) CountParked(ctx context.Context, projector string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, p := range s.parked {
		if p.Projector == projector {
			n++
		}
	}
	return n, nil
}

// Parked returns the parked entry for eventID, if any.
func (r *DeadLetterRepo) Parked(projector, eventID string) (domain.ParkedEvent, bool) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.parked[projector+":"+eventID]
	return p, ok
}
