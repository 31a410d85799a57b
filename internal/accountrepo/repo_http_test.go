package accountrepo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reloop-app/reloop-core/internal/domain"
	"github.com/reloop-app/reloop-core/pkg/errorspkg"
)

func TestSnapshot(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/account", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		// Balance serialized as a quoted number, as the account service
		// sometimes does.
		_, _ = w.Write([]byte(`{"available_balance":"100000"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	snapshot, err := client.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Money(100000), snapshot.AvailableBalance)
}

func TestSnapshotUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)

	_, err := client.Snapshot(context.Background())
	require.ErrorIs(t, err, errorspkg.ErrUpstreamUnavailable)
}
