package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"aps-train/internal/storage"
)

type LineStorage interface {
	GetLines(ctx context.Context) ([]*storage.ProductionLine, error)
	SaveLine(ctx context.Context, line *storage.ProductionLine) error
}

type Request struct {
	IsActive bool `json:"is_active"`
}

// SetLineActive включает и выключает линию. Выключенные линии движок
// планирования не использует.
func SetLineActive(log *slog.Logger, lines LineStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lines.SetLineActive"

		id := chi.URLParam(r, "id")

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		existing, err := lines.GetLines(ctx)
		if err != nil {
			log.Error("Ошибка получения линий", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		var line *storage.ProductionLine
		for _, l := range existing {
			if l.ID == id {
				line = l
				break
			}
		}
		if line == nil {
			http.Error(w, "line not found", http.StatusNotFound)
			return
		}

		line.IsActive = req.IsActive
		if err := lines.SaveLine(ctx, line); err != nil {
			log.Error("Ошибка сохранения линии", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Статус линии обновлён", slog.String("id", id), slog.Bool("is_active", req.IsActive))

		render.JSON(w, r, line)
	}
}
