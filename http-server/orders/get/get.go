package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"aps-train/internal/storage"
)

type Orders interface {
	GetAll(ctx context.Context) ([]*storage.Order, error)
	GetByID(ctx context.Context, id string) (*storage.Order, error)
	GetByStatus(ctx context.Context, status storage.OrderStatus) ([]*storage.Order, error)
}

func GetOrders(log *slog.Logger, orders Orders) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.GetOrders"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var (
			result []*storage.Order
			err    error
		)

		if statusParam := r.URL.Query().Get("status"); statusParam != "" {
			status := storage.OrderStatus(statusParam)
			if !status.Valid() {
				http.Error(w, "unknown status: "+statusParam, http.StatusBadRequest)
				return
			}
			result, err = orders.GetByStatus(ctx, status)
		} else {
			result, err = orders.GetAll(ctx)
		}

		if err != nil {
			log.Error("Ошибка получения заказов", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if result == nil {
			result = []*storage.Order{}
		}

		render.JSON(w, r, result)
	}
}

func GetOrder(log *slog.Logger, orders Orders) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.GetOrder"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		order, err := orders.GetByID(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Ошибка получения заказа", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, order)
	}
}
