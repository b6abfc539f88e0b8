package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"aps-train/internal/dateutil"
	"aps-train/internal/storage"
)

type OrderUpdater interface {
	GetByID(ctx context.Context, id string) (*storage.Order, error)
	SaveOrder(ctx context.Context, order *storage.Order) error
}

type Request struct {
	Status storage.OrderStatus `json:"status"`
	// CompletedAt используется только при переводе в completed;
	// пустое значение — сегодняшняя дата.
	CompletedAt string `json:"completed_at,omitempty"`
}

func UpdateOrderStatus(log *slog.Logger, updater OrderUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.UpdateOrderStatus"

		id := chi.URLParam(r, "id")

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if !req.Status.Valid() {
			http.Error(w, "unknown status: "+string(req.Status), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		order, err := updater.GetByID(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Ошибка получения заказа", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if err := applyTransition(order, req); err != nil {
			log.Warn("Недопустимый переход статуса",
				slog.String("op", op),
				slog.String("id", id),
				slog.String("from", string(order.Status)),
				slog.String("to", string(req.Status)),
			)
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		if err := updater.SaveOrder(ctx, order); err != nil {
			log.Error("Ошибка сохранения заказа", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Статус заказа обновлён", slog.String("id", id), slog.String("status", string(order.Status)))

		render.JSON(w, r, order)
	}
}

func applyTransition(order *storage.Order, req Request) error {
	switch req.Status {
	case storage.StatusScheduled:
		return order.MarkScheduled()
	case storage.StatusInProgress:
		return order.StartProduction()
	case storage.StatusCompleted:
		completedAt := req.CompletedAt
		if completedAt == "" {
			completedAt = dateutil.Format(time.Now())
		}
		return order.Complete(completedAt)
	case storage.StatusCancelled:
		return order.Cancel()
	case storage.StatusPending:
		return errors.New("cannot move order back to pending")
	default:
		return errors.New("unknown status: " + string(req.Status))
	}
}
