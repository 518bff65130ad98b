// Package due реализует HTTP-обработчик списка подписок с близким сроком оплаты.
package due

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// DefaultDays задаёт горизонт по умолчанию.
const DefaultDays = 3

// Service описывает выборку подписок с близким сроком оплаты.
type Service interface {
	DueSoon(ctx context.Context, daysAhead int) ([]models.Subscription, error)
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
// @Summary Подписки к оплате
// @Description Активные подписки с next_due не позже сегодня+days, включая просроченные. days от 0 до 36500.
// @Tags Subscriptions
// @Produce  json
// @Param days query int false "Горизонт в днях" default(3)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /subscriptions/due [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.due"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	days := DefaultDays
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			log.Warn("bad days parameter", slog.String("value", v))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("days must be an integer"))
			return
		}
		days = parsed
	}

	res, err := h.service.DueSoon(r.Context(), days)
	if err != nil {
		log.Error("failed to find due subscriptions", sl.Err(err))
		status, resp := response.FromError(err, "could not find due subscriptions")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"days":          days,
		"due":           len(res) > 0,
		"subscriptions": res,
	}))
}
