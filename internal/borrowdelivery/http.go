// Package borrowdelivery manages delivery layer of borrow authorization.
package borrowdelivery

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

// Service provides service layer interface needed by borrow delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package borrowdelivery
type Service interface {
	Authorize(ctx context.Context, container domain.Container, days int) (domain.BorrowRequest, error)
}

// Handler facilitates borrow delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns borrow handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type createRequest struct {
	Container domain.Container `json:"container"`
	Days      int              `json:"days"`
}

type data struct {
	Borrow domain.BorrowRequest `json:"borrow"`
}

type shortageData struct {
	Shortage domain.Money `json:"shortage"`
}

// Create handles http request to authorize and submit a borrow.
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

	borrow, err := h.service.Authorize(ctx, req.Container, req.Days)
	if err != nil {
		writeRejection(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{Borrow: borrow}})
}

// writeRejection maps typed authorization rejections to responses.
func writeRejection(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx)

	var insufficient *domain.InsufficientBalanceError

	switch {
	case errors.Is(err, domain.ErrValidationSuppressed):
		// Preserved product behavior: upstream validation rejections are
		// not surfaced to the user.
		gctx.JSON(http.StatusOK, web.Response{})
	case errors.As(err, &insufficient):
		gctx.JSON(http.StatusPaymentRequired, web.Response{
			Data:  shortageData{Shortage: insufficient.Shortage},
			Error: insufficient.Error(),
		})
	case errors.Is(err, domain.ErrInvalidDuration):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case errors.Is(err, domain.ErrBorrowLimitReached):
		gctx.JSON(http.StatusConflict, web.Error(err))
	case errors.Is(err, domain.ErrPricingUnavailable),
		errors.Is(err, domain.ErrCounterpartyUnresolved),
		errors.Is(err, domain.ErrInvalidDeposit):
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
	case errors.Is(err, domain.ErrBorrowFailed):
		gctx.JSON(http.StatusBadGateway, web.Error(err))
	default:
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
