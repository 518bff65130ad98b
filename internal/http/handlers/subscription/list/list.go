// Package list реализует HTTP-обработчик списка подписок.
package list

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

// Service описывает получение списка подписок.
type Service interface {
	List(ctx context.Context, activeOnly bool) ([]models.Subscription, error)
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
// @Summary Список подписок
// @Description По умолчанию только активные, по возрастанию next_due. active_only=false возвращает и архивные (после активных).
// @Tags Subscriptions
// @Produce  json
// @Param active_only query bool false "Только активные" default(true)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	activeOnly := true
	if v := r.URL.Query().Get("active_only"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			log.Warn("bad active_only parameter", slog.String("value", v))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("active_only must be a boolean"))
			return
		}
		activeOnly = parsed
	}

	res, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		status, resp := response.FromError(err, "failed to list")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	log.Debug("list subscriptions", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count":    len(res),
		"subscriptions": res,
	}))
}
