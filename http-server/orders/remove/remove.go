package remove

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

type OrderDeleter interface {
	DeleteOrder(ctx context.Context, id string) error
}

func DeleteOrder(log *slog.Logger, deleter OrderDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.DeleteOrder"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := deleter.DeleteOrder(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Ошибка удаления заказа", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Заказ удалён", slog.String("id", id))

		render.JSON(w, r, map[string]string{"status": "success", "id": id})
	}
}
