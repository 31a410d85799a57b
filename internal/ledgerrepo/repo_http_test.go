package ledgerrepo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/reloop-app/reloop-core/internal/domain"
	"github.com/reloop-app/reloop-core/pkg/errorspkg"
)

func TestListTransactions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions", r.URL.Path)
		require.Equal(t, "personal", r.URL.Query().Get("category"))
		require.Equal(t, "1", r.URL.Query().Get("page"))
		require.Equal(t, "20", r.URL.Query().Get("page_size"))

		w.Header().Set("Content-Type", "application/json")
		// Mixed shapes on purpose: numeric id, quoted amount, legacy
		// kind and status aliases.
		_, _ = w.Write([]byte(`{"data":{"transactions":[
			{"_id":"abc123","amount":5000,"direction":"in","kind":"top_up","status":"completed","created_at":"2023-05-01T12:00:00Z"},
			{"_id":42,"amount":"7000.00","direction":"IN","kind":"topup","status":"success","created_at":"2023-05-01T12:01:00Z"},
			{"_id":"def456","amount":5000,"direction":"out","kind":"deposit","status":"pending","created_at":"2023-05-01T12:02:00Z"}
		]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	txs, err := client.ListTransactions(context.Background(), domain.CategoryPersonal, 1, 20)
	require.NoError(t, err)

	want := []domain.LedgerTransaction{
		{
			ID: "abc123", Amount: 5000,
			Direction: domain.DirectionIn, Kind: domain.KindTopUp,
			Status:    domain.StatusCompleted,
			CreatedAt: time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID: "42", Amount: 7000,
			Direction: domain.DirectionIn, Kind: domain.KindTopUp,
			Status:    domain.StatusCompleted,
			CreatedAt: time.Date(2023, 5, 1, 12, 1, 0, 0, time.UTC),
		},
		{
			ID: "def456", Amount: 5000,
			Direction: domain.DirectionOut, Kind: domain.KindDeposit,
			Status:    domain.StatusProcessing,
			CreatedAt: time.Date(2023, 5, 1, 12, 2, 0, 0, time.UTC),
		},
	}

	if diff := cmp.Diff(want, txs); diff != "" {
		t.Errorf("transactions mismatch (-want +got):\n%s", diff)
	}
}

func TestListTransactionsUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.ListTransactions(context.Background(), domain.CategoryDepositRefund, 1, 20)
	require.ErrorIs(t, err, errorspkg.ErrUpstreamUnavailable)
}
