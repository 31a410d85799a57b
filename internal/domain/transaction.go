// Package domain provides defenitions of all entities.
package domain

import "time"

// Status is the lifecycle state of a ledger transaction.
type Status string

// Transaction statuses. Completed and failed are terminal and never
// change once reached.
const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Direction marks whether a transaction adds to or subtracts from the wallet.
type Direction string

// Transaction directions.
const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Kind classifies what a ledger transaction represents.
type Kind string

// Transaction kinds.
const (
	KindTopUp         Kind = "top_up"
	KindDeposit       Kind = "deposit"
	KindRefund        Kind = "refund"
	KindDepositRefund Kind = "deposit_refund"
)

// Category selects which transaction listing a ledger query returns.
type Category string

// Ledger query categories relevant to top-up reconciliation.
const (
	CategoryPersonal      Category = "personal"
	CategoryDepositRefund Category = "deposit_refund"
)

// LedgerTransaction holds a single wallet ledger entry. The ledger service
// owns it; this service only ever reads it.
type LedgerTransaction struct {
	ID        string    `json:"id"`
	Amount    Money     `json:"amount"`
	Direction Direction `json:"direction"`
	Kind      Kind      `json:"kind"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Terminal reports whether the transaction status will not change further.
func (t LedgerTransaction) Terminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

// ReconciliationQuery describes one payment-return event to reconcile
// against the ledger. It is constructed fresh per event and discarded.
type ReconciliationQuery struct {
	ReferenceToken string `json:"reference_token"`
	ExpectedAmount Money  `json:"expected_amount"`
	FailureHint    string `json:"failure_hint"`
}

// Matchable reports whether the query carries anything to match on.
// A query with neither a reference token nor an expected amount can
// never resolve.
func (q ReconciliationQuery) Matchable() bool {
	return q.ReferenceToken != "" || q.ExpectedAmount > 0
}

// ReconcileOutcome is the terminal verdict of a reconciliation run.
type ReconcileOutcome string

// Reconciliation outcomes. TimedOut means "still processing, check back
// later", never definitive failure.
const (
	OutcomeResolved ReconcileOutcome = "resolved"
	OutcomeTimedOut ReconcileOutcome = "timed_out"
)

// ReconcileResult is what a reconciliation run reports back to the caller.
type ReconcileResult struct {
	Transaction LedgerTransaction `json:"transaction"`
	Outcome     ReconcileOutcome  `json:"outcome"`
}
