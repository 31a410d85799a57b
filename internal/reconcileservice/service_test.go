package reconcileservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/reloop-app/reloop-core/internal/domain"
	"github.com/reloop-app/reloop-core/pkg/clockpkg"
	"github.com/reloop-app/reloop-core/pkg/randompkg"
)

var testStart = time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

func topUp(id string, amount domain.Money, status domain.Status, createdAt time.Time) domain.LedgerTransaction {
	return domain.LedgerTransaction{
		ID:        id,
		Amount:    amount,
		Direction: domain.DirectionIn,
		Kind:      domain.KindTopUp,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestReconcile(t *testing.T) {
	testID := randompkg.HexID()
	testAmount := domain.Money(randompkg.Amount(1000, 100000))

	testCases := []struct {
		name          string
		query         domain.ReconciliationQuery
		buildStubs    func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake)
		checkResponse func(t *testing.T, res domain.ReconcileResult, err error)
	}{
		{
			name:  "Primary match by reference token",
			query: domain.ReconciliationQuery{ReferenceToken: testID},
			buildStubs: func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake) {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryPersonal), gomock.Any(), gomock.Any()).
					Times(1).
					Return([]domain.LedgerTransaction{
						topUp(randompkg.HexID(), testAmount+500, domain.StatusCompleted, testStart.Add(-time.Hour)),
						topUp(testID, testAmount, domain.StatusCompleted, testStart.Add(-time.Minute)),
					}, nil)
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryDepositRefund), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, nil)
			},
			checkResponse: func(t *testing.T, res domain.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.OutcomeResolved, res.Outcome)
				require.Equal(t, testID, res.Transaction.ID)
			},
		},
		{
			name:  "Primary match under id normalization",
			query: domain.ReconciliationQuery{ReferenceToken: " 0042 "},
			buildStubs: func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake) {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryPersonal), gomock.Any(), gomock.Any()).
					Times(1).
					Return([]domain.LedgerTransaction{
						topUp("42", testAmount, domain.StatusCompleted, testStart.Add(-time.Minute)),
					}, nil)
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryDepositRefund), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, nil)
			},
			checkResponse: func(t *testing.T, res domain.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.OutcomeResolved, res.Outcome)
				require.Equal(t, "42", res.Transaction.ID)
			},
		},
		{
			name:  "Fallback matches recent top-up of exact amount",
			query: domain.ReconciliationQuery{ExpectedAmount: testAmount},
			buildStubs: func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake) {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryPersonal), gomock.Any(), gomock.Any()).
					Times(1).
					Return([]domain.LedgerTransaction{
						topUp(testID, testAmount, domain.StatusCompleted, testStart.Add(-5*time.Minute)),
					}, nil)
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryDepositRefund), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, nil)
			},
			checkResponse: func(t *testing.T, res domain.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.OutcomeResolved, res.Outcome)
				require.Equal(t, testID, res.Transaction.ID)
			},
		},
		{
			name:  "Fallback ignores entries older than the recency window",
			query: domain.ReconciliationQuery{ExpectedAmount: testAmount},
			buildStubs: func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake) {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryPersonal), gomock.Any(), gomock.Any()).
					Times(15).
					Return([]domain.LedgerTransaction{
						topUp(testID, testAmount, domain.StatusCompleted, testStart.Add(-15*time.Minute)),
					}, nil)
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryDepositRefund), gomock.Any(), gomock.Any()).
					Times(15).
					Return(nil, nil)
			},
			checkResponse: func(t *testing.T, res domain.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.OutcomeTimedOut, res.Outcome)
			},
		},
		{
			name:  "Fallback never tolerates off-by-one amounts",
			query: domain.ReconciliationQuery{ExpectedAmount: testAmount},
			buildStubs: func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake) {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryPersonal), gomock.Any(), gomock.Any()).
					Times(15).
					Return([]domain.LedgerTransaction{
						topUp(randompkg.HexID(), testAmount-1, domain.StatusCompleted, testStart.Add(-time.Minute)),
						topUp(randompkg.HexID(), testAmount+1, domain.StatusCompleted, testStart.Add(-time.Minute)),
					}, nil)
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryDepositRefund), gomock.Any(), gomock.Any()).
					Times(15).
					Return(nil, nil)
			},
			checkResponse: func(t *testing.T, res domain.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.OutcomeTimedOut, res.Outcome)
			},
		},
		{
			name:  "Known failure shortcut makes no ledger calls",
			query: domain.ReconciliationQuery{FailureHint: "cancelled", ExpectedAmount: 5000},
			buildStubs: func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake) {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(t *testing.T, res domain.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.OutcomeResolved, res.Outcome)

				want := domain.LedgerTransaction{
					Amount:    5000,
					Direction: domain.DirectionIn,
					Kind:      domain.KindTopUp,
					Status:    domain.StatusFailed,
					CreatedAt: testStart,
				}
				if diff := cmp.Diff(want, res.Transaction); diff != "" {
					t.Errorf("synthesized transaction mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:  "Unmatchable query resolves to timed out without ledger calls",
			query: domain.ReconciliationQuery{},
			buildStubs: func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake) {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(t *testing.T, res domain.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.OutcomeTimedOut, res.Outcome)
			},
		},
		{
			name:  "Polling stops after exactly fifteen attempts",
			query: domain.ReconciliationQuery{ExpectedAmount: testAmount},
			buildStubs: func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake) {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryPersonal), gomock.Any(), gomock.Any()).
					Times(15).
					Return([]domain.LedgerTransaction{
						topUp(testID, testAmount, domain.StatusProcessing, testStart.Add(-time.Minute)),
					}, nil)
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryDepositRefund), gomock.Any(), gomock.Any()).
					Times(15).
					Return(nil, nil)
			},
			checkResponse: func(t *testing.T, res domain.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.OutcomeTimedOut, res.Outcome)
			},
		},
		{
			name:  "Polling resolves once the match turns terminal",
			query: domain.ReconciliationQuery{ExpectedAmount: testAmount},
			buildStubs: func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake) {
				calls := 0
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryPersonal), gomock.Any(), gomock.Any()).
					Times(3).
					DoAndReturn(func(_ context.Context, _ domain.Category, _, _ int32) ([]domain.LedgerTransaction, error) {
						calls++
						status := domain.StatusProcessing
						if calls == 3 {
							status = domain.StatusCompleted
						}
						return []domain.LedgerTransaction{
							topUp(testID, testAmount, status, clock.Now().Add(-time.Minute)),
						}, nil
					})
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryDepositRefund), gomock.Any(), gomock.Any()).
					Times(3).
					Return(nil, nil)
			},
			checkResponse: func(t *testing.T, res domain.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.OutcomeResolved, res.Outcome)
				require.Equal(t, domain.StatusCompleted, res.Transaction.Status)
			},
		},
		{
			name:  "Retry before give up re-fetches once within the first attempt",
			query: domain.ReconciliationQuery{ReferenceToken: testID},
			buildStubs: func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake) {
				gomock.InOrder(
					ledger.EXPECT().
						ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryPersonal), gomock.Any(), gomock.Any()).
						Return(nil, nil),
					ledger.EXPECT().
						ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryPersonal), gomock.Any(), gomock.Any()).
						Return([]domain.LedgerTransaction{
							topUp(testID, testAmount, domain.StatusCompleted, testStart.Add(-time.Minute)),
						}, nil),
				)
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryDepositRefund), gomock.Any(), gomock.Any()).
					Times(2).
					Return(nil, nil)
			},
			checkResponse: func(t *testing.T, res domain.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.OutcomeResolved, res.Outcome)
				require.Equal(t, testID, res.Transaction.ID)
			},
		},
		{
			name:  "One failed category still yields the other's match",
			query: domain.ReconciliationQuery{ReferenceToken: testID},
			buildStubs: func(ledger *MockLedgerQueryPort, clock *clockpkg.Fake) {
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryPersonal), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, context.DeadlineExceeded)
				ledger.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(domain.CategoryDepositRefund), gomock.Any(), gomock.Any()).
					Times(1).
					Return([]domain.LedgerTransaction{
						topUp(testID, testAmount, domain.StatusFailed, testStart.Add(-time.Minute)),
					}, nil)
			},
			checkResponse: func(t *testing.T, res domain.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.OutcomeResolved, res.Outcome)
				require.Equal(t, domain.StatusFailed, res.Transaction.Status)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ledger := NewMockLedgerQueryPort(ctrl)
			clock := clockpkg.NewFake(testStart)
			service := New(ledger, clock)

			tc.buildStubs(ledger, clock)

			res, err := service.Reconcile(context.Background(), tc.query)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testID := randompkg.HexID()
	tx := topUp(testID, 7000, domain.StatusCompleted, testStart.Add(-time.Minute))

	ledger := NewMockLedgerQueryPort(ctrl)
	ledger.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		AnyTimes().
		Return([]domain.LedgerTransaction{tx}, nil)

	service := New(ledger, clockpkg.NewFake(testStart))
	query := domain.ReconciliationQuery{ReferenceToken: testID}

	for i := 0; i < 3; i++ {
		res, err := service.Reconcile(context.Background(), query)
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeResolved, res.Outcome)
		require.Equal(t, tx, res.Transaction)
	}
}

func TestReconcileCancellation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := NewMockLedgerQueryPort(ctrl)
	ledger.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		AnyTimes().
		Return(nil, nil)

	service := New(ledger, clockpkg.NewFake(testStart))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Reconcile(ctx, domain.ReconciliationQuery{ExpectedAmount: 5000})
	require.ErrorIs(t, err, context.Canceled)
}
