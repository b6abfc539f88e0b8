package execute

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aps-train/internal/service/scheduling"
)

type Planner interface {
	Execute(ctx context.Context, req scheduling.ScheduleRequest) (*scheduling.ScheduleOutput, error)
}

func ExecuteScheduling(log *slog.Logger, planner Planner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.scheduling.ExecuteScheduling"

		var req scheduling.ScheduleRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		out, err := planner.Execute(ctx, req)
		if err != nil {
			switch {
			case errors.Is(err, scheduling.ErrNoPendingOrders),
				errors.Is(err, scheduling.ErrNoActiveLines),
				errors.Is(err, scheduling.ErrNoModels):
				log.Warn("Планирование без данных", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				log.Error("Ошибка планирования", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		log.Info("План построен",
			slog.Int("orders", out.Metadata.ScheduledOrders),
			slog.Int("processes", out.Metadata.TotalProcesses),
			slog.Bool("valid", out.Validation.IsValid),
		)

		render.JSON(w, r, out)
	}
}
