// Package reconcileservice manages business logic layer of top-up reconciliation.
//
// A payment-gateway redirect and the webhook that writes the matching
// ledger entry progress independently, without a guaranteed join key.
// The service polls the ledger until the entry shows up in a terminal
// state or the time budget runs out.
package reconcileservice

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/reloop-app/reloop-core/internal/domain"
	"github.com/reloop-app/reloop-core/pkg/clockpkg"
)

// LedgerQueryPort provides read access to the wallet ledger needed by the
// reconciliation service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package reconcileservice
type LedgerQueryPort interface {
	ListTransactions(ctx context.Context, category domain.Category, page, pageSize int32) ([]domain.LedgerTransaction, error)
}

const (
	pollInterval      = 2 * time.Second
	maxAttempts       = 15
	propagationDelay  = 500 * time.Millisecond
	candidatePageSize = 20
	fallbackWindow    = 10 * time.Minute
)

var outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "reloop_reconcile_outcomes_total",
	Help: "Reconciliation runs by terminal outcome.",
}, []string{"outcome"})

// Service facilitates reconciliation service layer logic.
type Service struct {
	ledger LedgerQueryPort
	clock  clockpkg.Clock
}

// New returns reconciliation service struct to manage reconciliation logic.
func New(ledger LedgerQueryPort, clock clockpkg.Clock) *Service {
	return &Service{
		ledger: ledger,
		clock:  clock,
	}
}

// Reconcile resolves a payment-return event to a terminal ledger
// transaction, polling the ledger until one is found or the attempt
// budget is exhausted. A TimedOut outcome means "still processing, check
// back later", never definitive failure. Repeated calls with the same
// query are safe and converge on the same terminal result.
func (s *Service) Reconcile(ctx context.Context, query domain.ReconciliationQuery) (domain.ReconcileResult, error) {
	l := zerolog.Ctx(ctx)

	if query.FailureHint != "" {
		// The gateway already reported the payment failed. Synthesize the
		// terminal entry without touching the ledger.
		outcomesTotal.WithLabelValues(string(domain.OutcomeResolved)).Inc()

		return domain.ReconcileResult{
			Transaction: domain.LedgerTransaction{
				Amount:    query.ExpectedAmount,
				Direction: domain.DirectionIn,
				Kind:      domain.KindTopUp,
				Status:    domain.StatusFailed,
				CreatedAt: s.clock.Now(),
			},
			Outcome: domain.OutcomeResolved,
		}, nil
	}

	if !query.Matchable() {
		l.Warn().Msg("reconciliation query carries no reference token or expected amount")
		outcomesTotal.WithLabelValues(string(domain.OutcomeTimedOut)).Inc()

		return domain.ReconcileResult{Outcome: domain.OutcomeTimedOut}, nil
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		match, found := s.attempt(ctx, query)
		if found && match.Terminal() {
			l.Info().
				Str("transaction_id", match.ID).
				Str("status", string(match.Status)).
				Int("attempt", attempt).
				Msg("reconciliation resolved")
			outcomesTotal.WithLabelValues(string(domain.OutcomeResolved)).Inc()

			return domain.ReconcileResult{Transaction: match, Outcome: domain.OutcomeResolved}, nil
		}

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return domain.ReconcileResult{}, ctx.Err()
		case <-s.clock.After(pollInterval):
		}

		if err := ctx.Err(); err != nil {
			return domain.ReconcileResult{}, err
		}
	}

	l.Info().Msg("reconciliation budget exhausted, transaction still processing")
	outcomesTotal.WithLabelValues(string(domain.OutcomeTimedOut)).Inc()

	return domain.ReconcileResult{Outcome: domain.OutcomeTimedOut}, nil
}

// attempt runs one full fetch-and-match pass. When a reference token was
// supplied but nothing matched, it re-checks once after a short delay:
// ledger writes can lag the gateway redirect, and a cheap re-check avoids
// burning a full poll interval on propagation lag.
func (s *Service) attempt(ctx context.Context, query domain.ReconciliationQuery) (domain.LedgerTransaction, bool) {
	if match, ok := s.match(s.fetchCandidates(ctx), query); ok {
		return match, true
	}

	if query.ReferenceToken == "" {
		return domain.LedgerTransaction{}, false
	}

	select {
	case <-ctx.Done():
		return domain.LedgerTransaction{}, false
	case <-s.clock.After(propagationDelay):
	}

	return s.match(s.fetchCandidates(ctx), query)
}

// fetchCandidates queries both top-up relevant categories concurrently and
// merges the pages. A failed category contributes an empty partial set
// instead of aborting the whole pass.
func (s *Service) fetchCandidates(ctx context.Context) []domain.LedgerTransaction {
	l := zerolog.Ctx(ctx)

	categories := []domain.Category{domain.CategoryPersonal, domain.CategoryDepositRefund}
	results := make([][]domain.LedgerTransaction, len(categories))

	var wg sync.WaitGroup

	for i, category := range categories {
		wg.Add(1)

		go func(i int, category domain.Category) {
			defer wg.Done()

			txs, err := s.ledger.ListTransactions(ctx, category, 1, candidatePageSize)
			if err != nil {
				l.Warn().Err(err).Str("category", string(category)).Msg("candidate fetch failed")
				return
			}

			results[i] = txs
		}(i, category)
	}

	wg.Wait()

	var merged []domain.LedgerTransaction
	for _, r := range results {
		merged = append(merged, r...)
	}

	return merged
}

// match scans the candidate set. The primary match is by identity against
// the reference token; the fallback is an amount-plus-recency heuristic
// used when the redirect raced the webhook and no join key is available.
func (s *Service) match(candidates []domain.LedgerTransaction, query domain.ReconciliationQuery) (domain.LedgerTransaction, bool) {
	if query.ReferenceToken != "" {
		for _, c := range candidates {
			if c.ID == query.ReferenceToken || sameID(c.ID, query.ReferenceToken) {
				return c, true
			}
		}
	}

	if query.ExpectedAmount <= 0 {
		return domain.LedgerTransaction{}, false
	}

	now := s.clock.Now()

	for _, c := range candidates {
		if c.Kind != domain.KindTopUp && c.Kind != domain.KindDeposit {
			continue
		}

		if c.Direction != domain.DirectionIn {
			continue
		}

		// Exact amount only. A tolerance would cross-match unrelated
		// transactions.
		if c.Amount != query.ExpectedAmount {
			continue
		}

		age := now.Sub(c.CreatedAt)
		if age < 0 || age > fallbackWindow {
			continue
		}

		return c, true
	}

	return domain.LedgerTransaction{}, false
}

// sameID compares two transaction identities under string normalization.
// Upstream systems serialize the same id inconsistently: differing case,
// surrounding whitespace, numeric ids rendered with and without leading
// zeros.
func sameID(a, b string) bool {
	na := strings.ToLower(strings.TrimSpace(a))
	nb := strings.ToLower(strings.TrimSpace(b))

	if na == "" || nb == "" {
		return false
	}

	if na == nb {
		return true
	}

	da, errA := decimal.NewFromString(na)
	db, errB := decimal.NewFromString(nb)

	return errA == nil && errB == nil && da.Equal(db)
}
