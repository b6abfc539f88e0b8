package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"aps-train/internal/service/configuration"
	"aps-train/internal/storage"
)

type OperationStorage interface {
	GetOperations(ctx context.Context) ([]*storage.OperationType, error)
	SaveOperation(ctx context.Context, operation *storage.OperationType) error
}

type Request struct {
	Name                   string `json:"name"`
	Description            string `json:"description,omitempty"`
	DefaultDurationDays    int    `json:"default_duration_days"`
	DefaultWorkersRequired int    `json:"default_workers_required"`
	Color                  string `json:"color,omitempty"`
}

func SaveOperation(log *slog.Logger, operations OperationStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.operations.SaveOperation"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		operation, err := storage.NewOperationType(req.Name, req.Description, req.DefaultDurationDays, req.DefaultWorkersRequired, req.Color)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		existing, err := operations.GetOperations(ctx)
		if err != nil {
			log.Error("Ошибка получения операций", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if res := configuration.ValidateOperation(operation, existing); !res.IsValid {
			log.Warn("Операция не прошла проверку", slog.String("op", op), slog.String("name", operation.Name))
			http.Error(w, strings.Join(res.Errors, "; "), http.StatusBadRequest)
			return
		}

		if err := operations.SaveOperation(ctx, operation); err != nil {
			log.Error("Ошибка сохранения операции", slog.String("op", op), slog.String("name", operation.Name), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Операция сохранена", slog.String("name", operation.Name))

		render.JSON(w, r, operation)
	}
}
