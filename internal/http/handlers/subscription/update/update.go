// Package update реализует HTTP-обработчики смены состояния подписки:
// перенос в архив и возврат из архива.
package update

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
)

// Service описывает смену состояния подписки.
type Service interface {
	Archive(ctx context.Context, id int) error
	Unarchive(ctx context.Context, id int) error
}

// Handler переводит подписку в состояние active.
type Handler struct {
	log     *slog.Logger
	service Service
	active  bool
}

// NewArchive возвращает обработчик переноса в архив.
func NewArchive(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, active: false}
}

// NewUnarchive возвращает обработчик возврата из архива.
func NewUnarchive(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, active: true}
}

// ServeHTTP godoc
// @Summary Архивировать или вернуть из архива
// @Tags Subscriptions
// @Produce  json
// @Param id path int true "ID подписки"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /subscriptions/{id}/archive [post]
// @Router /subscriptions/{id}/unarchive [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Bool("active", h.active),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Warn("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	if h.active {
		err = h.service.Unarchive(r.Context(), id)
	} else {
		err = h.service.Archive(r.Context(), id)
	}
	if err != nil {
		log.Error("failed to update subscription state", sl.Err(err))
		status, resp := response.FromError(err, "could not update subscription")
		w.WriteHeader(status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":        id,
		"is_active": h.active,
	}))
}
