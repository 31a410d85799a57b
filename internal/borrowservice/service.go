// Package borrowservice manages business logic layer of borrow authorization.
package borrowservice

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/reloop-app/reloop-core/internal/domain"
)

// AccountQueryPort provides the fresh wallet snapshot needed by the borrow
// service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package borrowservice
type AccountQueryPort interface {
	Snapshot(ctx context.Context) (domain.AccountSnapshot, error)
}

// LendingPort submits borrow requests to the lending service.
type LendingPort interface {
	SubmitBorrow(ctx context.Context, req domain.BorrowRequest) error
}

const (
	minDurationDays = 1
	maxDurationDays = 30

	// fallbackUnitPrice keeps the flow usable when a container carries no
	// pricing metadata at all. Degraded pricing beats blocking the borrow.
	fallbackUnitPrice domain.Money = 100
)

var rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "reloop_borrow_rejections_total",
	Help: "Borrow authorization rejections by reason.",
}, []string{"reason"})

// Service facilitates borrow service layer logic.
type Service struct {
	account AccountQueryPort
	lending LendingPort
}

// New returns borrow service struct to manage borrow authorization logic.
func New(account AccountQueryPort, lending LendingPort) *Service {
	return &Service{
		account: account,
		lending: lending,
	}
}

// priceExtractors list the candidate unit price fields in priority order.
// The first present and positive value wins.
var priceExtractors = []func(domain.Container) *domain.Money{
	func(c domain.Container) *domain.Money { return c.Size.BasePrice },
	func(c domain.Container) *domain.Money { return c.Size.RentalPrice },
	func(c domain.Container) *domain.Money { return c.Size.RentalPricePerDay },
	func(c domain.Container) *domain.Money { return c.Group.BasePrice },
	func(c domain.Container) *domain.Money { return c.Group.RentalPrice },
	func(c domain.Container) *domain.Money { return c.Group.RentalPricePerDay },
}

func resolveUnitPrice(c domain.Container) domain.Money {
	for _, extract := range priceExtractors {
		if p := extract(c); p != nil && *p > 0 {
			return *p
		}
	}

	return fallbackUnitPrice
}

// partnerExtractors list the places a lending partner id may live, in
// priority order. Upstream population varies by query path: the partner
// can be referenced on the container itself or nested under its group,
// as an embedded object or a bare id.
var partnerExtractors = []func(domain.Container) string{
	func(c domain.Container) string { return c.Partner.ID },
	func(c domain.Container) string { return c.PartnerID },
	func(c domain.Container) string { return c.Group.Partner.ID },
	func(c domain.Container) string { return c.Group.PartnerID },
}

func resolvePartnerID(c domain.Container) string {
	for _, extract := range partnerExtractors {
		if id := extract(c); id != "" {
			return id
		}
	}

	return ""
}

// resolveFixedDeposit reads the fixed per-unit deposit stored on the size
// or group metadata. It is never derived from the unit price.
func resolveFixedDeposit(c domain.Container) domain.Money {
	if c.Size.DepositValue != nil && *c.Size.DepositValue > 0 {
		return *c.Size.DepositValue
	}

	if c.Group.DepositValue != nil && *c.Group.DepositValue > 0 {
		return *c.Group.DepositValue
	}

	return 0
}

func rejected(reason string, err error) error {
	rejectionsTotal.WithLabelValues(reason).Inc()
	return err
}

// Authorize gates a borrow on a freshly fetched balance, a resolved
// lending partner and a valid fixed deposit, then submits it. Rejections
// come back as typed domain errors; only transport failures propagate as
// plain errors. Submission is never retried here, the caller owns any
// retry policy.
func (s *Service) Authorize(ctx context.Context, container domain.Container, days int) (domain.BorrowRequest, error) {
	l := zerolog.Ctx(ctx)

	// The snapshot from the previous screen is stale by the time the user
	// confirms. Always re-fetch before deciding.
	snapshot, err := s.account.Snapshot(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.BorrowRequest{}, err
	}

	unitPrice := resolveUnitPrice(container)
	if unitPrice <= 0 {
		return domain.BorrowRequest{}, rejected("pricing_unavailable", domain.ErrPricingUnavailable)
	}

	if days < minDurationDays || days > maxDurationDays {
		return domain.BorrowRequest{}, rejected("invalid_duration", domain.ErrInvalidDuration)
	}

	// The displayed deposit gates the balance check only; submission sends
	// the fixed per-unit deposit resolved below.
	// TODO: product to confirm whether display and submission should use
	// the same value.
	displayedDeposit := unitPrice * domain.Money(days)

	if snapshot.AvailableBalance < displayedDeposit {
		return domain.BorrowRequest{}, rejected("insufficient_balance", &domain.InsufficientBalanceError{
			Shortage: displayedDeposit - snapshot.AvailableBalance,
		})
	}

	partnerID := resolvePartnerID(container)
	if partnerID == "" {
		return domain.BorrowRequest{}, rejected("counterparty_unresolved", domain.ErrCounterpartyUnresolved)
	}

	fixedDeposit := resolveFixedDeposit(container)
	if fixedDeposit <= 0 {
		return domain.BorrowRequest{}, rejected("invalid_deposit", domain.ErrInvalidDeposit)
	}

	req := domain.BorrowRequest{
		ContainerID:   container.ID,
		PartnerID:     partnerID,
		DepositAmount: fixedDeposit,
		DurationDays:  days,
	}

	if err := s.lending.SubmitBorrow(ctx, req); err != nil {
		return domain.BorrowRequest{}, s.classifySubmitError(ctx, err, snapshot.AvailableBalance, displayedDeposit)
	}

	l.Info().
		Str("container_id", req.ContainerID).
		Str("partner_id", req.PartnerID).
		Int("duration_days", req.DurationDays).
		Msg("borrow approved")

	return req, nil
}

// classifySubmitError maps an upstream rejection into exactly one
// category. Matching is by substring over the lowercased message, in
// fixed order.
func (s *Service) classifySubmitError(ctx context.Context, err error, balance, displayedDeposit domain.Money) error {
	l := zerolog.Ctx(ctx)

	var lendingErr *domain.LendingError
	if !errors.As(err, &lendingErr) {
		// Transport failure, not a rejection. Let the caller decide.
		l.Error().Err(err).Msg("borrow submission transport failure")
		return err
	}

	msg := strings.ToLower(lendingErr.Message)

	switch {
	case strings.Contains(msg, "validation"):
		// Deliberately suppressed: visible to code and tests, never shown
		// to the end user.
		l.Info().Err(lendingErr).Msg("borrow validation rejection suppressed")
		return rejected("validation_suppressed", domain.ErrValidationSuppressed)
	case strings.Contains(msg, "insufficient") || strings.Contains(msg, "balance"):
		shortage := displayedDeposit - balance
		if shortage < 0 {
			shortage = 0
		}

		return rejected("insufficient_balance", &domain.InsufficientBalanceError{Shortage: shortage})
	case strings.Contains(msg, "limit") || strings.Contains(msg, "concurrent"):
		return rejected("borrow_limit", domain.ErrBorrowLimitReached)
	case strings.Contains(msg, "deposit"):
		return rejected("invalid_deposit", domain.ErrInvalidDeposit)
	default:
		l.Warn().Err(lendingErr).Msg("unclassified borrow rejection")
		return rejected("unknown", domain.ErrBorrowFailed)
	}
}
