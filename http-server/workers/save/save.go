package save

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aps-train/internal/dateutil"
	"aps-train/internal/storage"
)

type AvailabilitySaver interface {
	SaveWorkerAvailability(ctx context.Context, rows []storage.WorkerAvailability) error
}

type Request struct {
	Availability []storage.WorkerAvailability `json:"availability"`
}

func SaveWorkerAvailability(log *slog.Logger, saver AvailabilitySaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workers.SaveWorkerAvailability"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if len(req.Availability) == 0 {
			http.Error(w, "No availability rows provided", http.StatusBadRequest)
			return
		}

		for i, row := range req.Availability {
			if !dateutil.IsValid(row.Date) {
				http.Error(w, fmt.Sprintf("Row %d: invalid date %q", i, row.Date), http.StatusBadRequest)
				return
			}
			if row.AvailableWorkers < 0 {
				http.Error(w, fmt.Sprintf("Row %d: available_workers cannot be negative", i), http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.SaveWorkerAvailability(ctx, req.Availability); err != nil {
			log.Error("Ошибка сохранения табеля", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Табель сохранён", slog.Int("rows", len(req.Availability)))

		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"saved":  len(req.Availability),
		})
	}
}
