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

type LineStorage interface {
	GetLines(ctx context.Context) ([]*storage.ProductionLine, error)
	GetOperations(ctx context.Context) ([]*storage.OperationType, error)
	SaveLine(ctx context.Context, line *storage.ProductionLine) error
}

type Request struct {
	ID              string `json:"id"`
	OperationType   string `json:"operation_type"`
	LineNumber      int    `json:"line_number"`
	WorkersRequired int    `json:"workers_required"`
	IsActive        *bool  `json:"is_active,omitempty"`
}

func SaveLine(log *slog.Logger, lines LineStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lines.SaveLine"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		line, err := storage.NewProductionLine(req.ID, req.OperationType, req.LineNumber, req.WorkersRequired, isActive)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
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

		operations, err := lines.GetOperations(ctx)
		if err != nil {
			log.Error("Ошибка получения операций", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if res := configuration.ValidateLine(line, existing, operations); !res.IsValid {
			log.Warn("Линия не прошла проверку", slog.String("op", op), slog.String("id", line.ID))
			http.Error(w, strings.Join(res.Errors, "; "), http.StatusBadRequest)
			return
		}

		if err := lines.SaveLine(ctx, line); err != nil {
			log.Error("Ошибка сохранения линии", slog.String("op", op), slog.String("id", line.ID), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("Линия сохранена", slog.String("id", line.ID))

		render.JSON(w, r, line)
	}
}
