package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"aps-train/internal/storage"
)

type Operations interface {
	GetOperations(ctx context.Context) ([]*storage.OperationType, error)
}

func GetOperations(log *slog.Logger, operations Operations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.operations.GetOperations"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := operations.GetOperations(ctx)
		if err != nil {
			log.Error("Ошибка получения операций", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if result == nil {
			result = []*storage.OperationType{}
		}

		render.JSON(w, r, result)
	}
}
