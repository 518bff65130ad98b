// Package paymentcreate реализует HTTP-обработчик отметки об оплате подписки.
//
// Обработчик записывает платёж на сегодняшнюю дату на сумму текущей стоимости
// подписки и переносит срок следующей оплаты на один период вперёд.
package paymentcreate

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/billing"
)

// Service описывает проведение оплаты.
type Service interface {
	MarkPaid(ctx context.Context, subscriptionID int) (*billing.Result, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отметить оплату
// @Description Создаёт платёж на текущую стоимость и сдвигает next_due на один период.
// @Tags Payments
// @Produce  json
// @Param id path int true "ID подписки"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /subscriptions/{id}/pay [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Warn("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	res, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		log.Error("failed to mark subscription as paid", sl.Err(err))
		status, resp := response.FromError(err, "could not record payment")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(res))
}
