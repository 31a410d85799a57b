package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDuration indicates a borrow duration outside 1-30 days.
	ErrInvalidDuration = errors.New("borrow duration must be between 1 and 30 days")
	// ErrPricingUnavailable indicates that no usable unit price could be resolved.
	ErrPricingUnavailable = errors.New("container pricing unavailable")
	// ErrCounterpartyUnresolved indicates that no lending partner id could be resolved.
	ErrCounterpartyUnresolved = errors.New("lending partner could not be resolved")
	// ErrInvalidDeposit indicates a missing or non-positive fixed deposit value.
	ErrInvalidDeposit = errors.New("container deposit value missing or invalid")
	// ErrBorrowLimitReached indicates the concurrent active borrow limit is hit.
	ErrBorrowLimitReached = errors.New("concurrent borrow limit reached")
	// ErrValidationSuppressed indicates an upstream validation rejection that
	// is deliberately not surfaced to the end user.
	ErrValidationSuppressed = errors.New("borrow rejected by upstream validation")
	// ErrBorrowFailed indicates an unclassified submission failure.
	ErrBorrowFailed = errors.New("borrow submission failed, try again later")
)

// MaxConcurrentBorrows is the lending service's limit on active borrows
// per account.
const MaxConcurrentBorrows = 3

// InsufficientBalanceError indicates that the wallet cannot cover the
// deposit. Shortage is the missing amount, so the caller can direct the
// user to a top-up of at least that much.
type InsufficientBalanceError struct {
	Shortage Money
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance, short %d", e.Shortage)
}

// LendingError is a coded rejection from the lending service.
type LendingError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *LendingError) Error() string {
	return fmt.Sprintf("lending service: %s (code %d)", e.Message, e.Code)
}

// BorrowRequest is the submission payload for one borrow attempt. It is
// constructed fresh per attempt and discarded after submission.
type BorrowRequest struct {
	ContainerID   string `json:"container_id"`
	PartnerID     string `json:"partner_id"`
	DepositAmount Money  `json:"deposit_amount"`
	DurationDays  int    `json:"duration_days"`
}
