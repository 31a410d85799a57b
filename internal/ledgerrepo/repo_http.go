// Package ledgerrepo provides read access to the wallet ledger query API.
package ledgerrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/reloop-app/reloop-core/internal/domain"
	"github.com/reloop-app/reloop-core/pkg/errorspkg"
)

// Client queries the ledger service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a ledger query client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// transactionPayload tolerates the ledger service's inconsistent
// serialization: ids arrive as strings or numbers, amounts as numbers or
// quoted numbers, and older records use "topup"/"success" style aliases.
type transactionPayload struct {
	ID        json.RawMessage `json:"_id"`
	Amount    domain.Money    `json:"amount"`
	Direction string          `json:"direction"`
	Kind      string          `json:"kind"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

func (p transactionPayload) toDomain() domain.LedgerTransaction {
	return domain.LedgerTransaction{
		ID:        flexString(p.ID),
		Amount:    p.Amount,
		Direction: domain.Direction(strings.ToLower(p.Direction)),
		Kind:      normalizeKind(p.Kind),
		Status:    normalizeStatus(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

func flexString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}

func normalizeKind(k string) domain.Kind {
	switch strings.ToLower(k) {
	case "topup", "top_up":
		return domain.KindTopUp
	case "deposit":
		return domain.KindDeposit
	case "refund":
		return domain.KindRefund
	case "deposit_refund", "depositrefund":
		return domain.KindDepositRefund
	default:
		return domain.Kind(strings.ToLower(k))
	}
}

func normalizeStatus(s string) domain.Status {
	switch strings.ToLower(s) {
	case "completed", "success", "succeeded":
		return domain.StatusCompleted
	case "failed", "error":
		return domain.StatusFailed
	default:
		return domain.StatusProcessing
	}
}

// ListTransactions returns one page of the given transaction category.
func (c *Client) ListTransactions(ctx context.Context, category domain.Category, page, pageSize int32) ([]domain.LedgerTransaction, error) {
	u := fmt.Sprintf("%s/transactions?category=%s&page=%d&page_size=%d",
		c.baseURL, url.QueryEscape(string(category)), page, pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ledger answered %d", errorspkg.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var body struct {
		Data struct {
			Transactions []transactionPayload `json:"transactions"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	txs := make([]domain.LedgerTransaction, 0, len(body.Data.Transactions))
	for _, p := range body.Data.Transactions {
		txs = append(txs, p.toDomain())
	}

	return txs, nil
}
