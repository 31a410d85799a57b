// Package reconciledelivery manages delivery layer of top-up reconciliation.
package reconciledelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/reloop-app/reloop-core/internal/domain"
	"github.com/reloop-app/reloop-core/pkg/errorspkg"
	"github.com/reloop-app/reloop-core/pkg/web"
)

// Service provides service layer interface needed by reconciliation delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package reconciledelivery
type Service interface {
	Reconcile(ctx context.Context, query domain.ReconciliationQuery) (domain.ReconcileResult, error)
}

// Handler facilitates reconciliation delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns reconciliation handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type createRequest struct {
	ReferenceToken string `json:"reference_token"`
	ExpectedAmount int64  `json:"expected_amount" binding:"omitempty,gt=0"`
	FailureHint    string `json:"failure_hint"`
}

// Create handles http request to reconcile a payment return against the ledger.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		errMsg := err.Error()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	res, err := h.service.Reconcile(ctx, domain.ReconciliationQuery{
		ReferenceToken: req.ReferenceToken,
		ExpectedAmount: domain.Money(req.ExpectedAmount),
		FailureHint:    req.FailureHint,
	})
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	status := http.StatusOK
	if res.Outcome == domain.OutcomeTimedOut {
		// Not a failure. The top-up may still land, the client should
		// check back later.
		status = http.StatusAccepted
	}

	gctx.JSON(status, web.Response{Data: res})
}
