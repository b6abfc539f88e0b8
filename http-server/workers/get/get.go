package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"aps-train/internal/dateutil"
	"aps-train/internal/storage"
)

type Availability interface {
	GetWorkerAvailability(ctx context.Context, startDate string, days int) ([]storage.WorkerAvailability, error)
}

func GetWorkerAvailability(log *slog.Logger, availability Availability, defaultDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workers.GetWorkerAvailability"

		startDate := r.URL.Query().Get("start_date")
		if startDate == "" {
			startDate = dateutil.Format(time.Now())
		}
		if !dateutil.IsValid(startDate) {
			http.Error(w, "invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		days := defaultDays
		if daysParam := r.URL.Query().Get("days"); daysParam != "" {
			parsed, err := strconv.Atoi(daysParam)
			if err != nil || parsed <= 0 {
				http.Error(w, "invalid days parameter", http.StatusBadRequest)
				return
			}
			days = parsed
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, err := availability.GetWorkerAvailability(ctx, startDate, days)
		if err != nil {
			log.Error("Ошибка получения табеля", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if rows == nil {
			rows = []storage.WorkerAvailability{}
		}

		render.JSON(w, r, rows)
	}
}
