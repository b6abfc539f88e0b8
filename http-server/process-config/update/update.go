package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"aps-train/internal/service/configuration"
	"aps-train/internal/storage"
)

type ProcessConfigStorage interface {
	GetOperations(ctx context.Context) ([]*storage.OperationType, error)
	SaveProcessConfig(ctx context.Context, modelID string, steps []storage.ProcessStep) error
}

type Request struct {
	Processes []storage.ProcessStep `json:"processes"`
}

// UpdateProcessConfig заменяет техпроцесс модели целиком.
func UpdateProcessConfig(log *slog.Logger, configs ProcessConfigStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.process-config.UpdateProcessConfig"

		modelID := chi.URLParam(r, "modelId")

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		operations, err := configs.GetOperations(ctx)
		if err != nil {
			log.Error("Ошибка получения операций", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if res := configuration.ValidateProcessConfig(req.Processes, operations); !res.IsValid {
			log.Warn("Техпроцесс не прошёл проверку", slog.String("op", op), slog.String("model_id", modelID))
			http.Error(w, strings.Join(res.Errors, "; "), http.StatusBadRequest)
			return
		}

		if err := configs.SaveProcessConfig(ctx, modelID, req.Processes); err != nil {
			log.Error("Ошибка сохранения техпроцесса", slog.String("op", op), slog.String("model_id", modelID), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Техпроцесс обновлён", slog.String("model_id", modelID), slog.Int("steps", len(req.Processes)))

		render.JSON(w, r, map[string]interface{}{
			"status":    "success",
			"model_id":  modelID,
			"processes": req.Processes,
		})
	}
}
