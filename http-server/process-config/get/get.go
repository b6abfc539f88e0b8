package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"aps-train/internal/storage"
)

type ProcessConfigs interface {
	GetProcessConfig(ctx context.Context, modelID string) ([]storage.ProcessStep, error)
	GetConfiguredModels(ctx context.Context) ([]string, error)
}

func GetProcessConfig(log *slog.Logger, configs ProcessConfigs) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.process-config.GetProcessConfig"

		modelID := chi.URLParam(r, "modelId")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		steps, err := configs.GetProcessConfig(ctx, modelID)
		if err != nil {
			log.Error("Ошибка получения техпроцесса", slog.String("op", op), slog.String("model_id", modelID), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if len(steps) == 0 {
			http.Error(w, "model has no process configuration", http.StatusNotFound)
			return
		}

		render.JSON(w, r, map[string]interface{}{
			"model_id":  modelID,
			"processes": steps,
		})
	}
}

func GetConfiguredModels(log *slog.Logger, configs ProcessConfigs) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.process-config.GetConfiguredModels"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		models, err := configs.GetConfiguredModels(ctx)
		if err != nil {
			log.Error("Ошибка получения списка моделей", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if models == nil {
			models = []string{}
		}

		render.JSON(w, r, models)
	}
}
