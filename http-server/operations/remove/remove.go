package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"aps-train/internal/service/configuration"
	"aps-train/internal/storage"
)

type OperationStorage interface {
	GetLines(ctx context.Context) ([]*storage.ProductionLine, error)
	DeleteOperation(ctx context.Context, name string) error
}

func DeleteOperation(log *slog.Logger, operations OperationStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.operations.DeleteOperation"

		name := chi.URLParam(r, "name")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		lines, err := operations.GetLines(ctx)
		if err != nil {
			log.Error("Ошибка получения линий", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if res := configuration.CanDeleteOperation(name, lines); !res.IsValid {
			log.Warn("Операция используется линиями", slog.String("op", op), slog.String("name", name))
			http.Error(w, strings.Join(res.Errors, "; "), http.StatusConflict)
			return
		}

		err = operations.DeleteOperation(ctx, name)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "operation not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error("Ошибка удаления операции", slog.String("op", op), slog.String("name", name), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Операция удалена", slog.String("name", name))

		render.JSON(w, r, map[string]string{"status": "success", "name": name})
	}
}
