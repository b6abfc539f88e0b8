package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aps-train/internal/storage"
)

type Lines interface {
	GetLines(ctx context.Context) ([]*storage.ProductionLine, error)
	GetLinesByOperation(ctx context.Context, operationType string) ([]*storage.ProductionLine, error)
}

func GetLines(log *slog.Logger, lines Lines) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lines.GetLines"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var (
			result []*storage.ProductionLine
			err    error
		)

		if operationType := r.URL.Query().Get("operation_type"); operationType != "" {
			result, err = lines.GetLinesByOperation(ctx, operationType)
		} else {
			result, err = lines.GetLines(ctx)
		}

		if err != nil {
			log.Error("Ошибка получения линий", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if result == nil {
			result = []*storage.ProductionLine{}
		}

		render.JSON(w, r, result)
	}
}
