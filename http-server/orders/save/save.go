package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aps-train/internal/storage"
)

type OrderSaver interface {
	SaveOrder(ctx context.Context, order *storage.Order) error
}

type Request struct {
	ID        string `json:"id"`
	ModelType string `json:"model_type"`
	DueDate   string `json:"due_date"`
	Priority  int    `json:"priority"`
	CreatedAt string `json:"created_at,omitempty"`
}

func SaveOrder(log *slog.Logger, saver OrderSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.SaveOrder"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		order, err := storage.NewOrder(req.ID, req.ModelType, req.DueDate, req.Priority, req.CreatedAt)
		if err != nil {
			log.Warn("Невалидный заказ", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.SaveOrder(ctx, order); err != nil {
			log.Error("Ошибка сохранения заказа", slog.String("op", op), slog.String("id", order.ID), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Заказ сохранён", slog.String("id", order.ID))

		render.JSON(w, r, order)
	}
}
