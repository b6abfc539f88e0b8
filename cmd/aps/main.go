package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"aps-train/internal/config"
	"aps-train/internal/service/report"
	"aps-train/internal/service/scheduling"
	"aps-train/internal/storage"
	"aps-train/internal/storage/memory"
	"aps-train/internal/storage/mysql"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Repository объединяет оба порта хранилища; его реализуют и mysql, и memory.
type Repository interface {
	storage.OrderRepository
	storage.ConfigRepository
}

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	var store Repository
	switch cfg.Storage {
	case "memory":
		store = memory.NewWithDemoData()
		log.Info("используется хранилище в памяти с демо-данными")
	default:
		mysqlStore, err := mysql.New(*cfg)
		if err != nil {
			log.Error("failed to open db", slog.String("error", err.Error()))
			os.Exit(1)
		}
		store = mysqlStore
	}

	scheduleService := scheduling.NewScheduleService(log, store, store, scheduling.Defaults{
		Workers:       cfg.Scheduling.DefaultWorkers,
		HorizonDays:   cfg.Scheduling.DefaultHorizonDays,
		MaxSearchDays: cfg.Scheduling.MaxSearchDays,
	})
	excelService := report.NewExcelService(scheduleService)

	log.Info("server started", slog.String("address", cfg.Address))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, store, scheduleService, excelService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Error("failed start server", slog.String("error", err.Error()))
	}

	log.Error("server stopped")
}

type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	// Всегда пишем в основной вывод (stdout)
	if h.coreHandler.Enabled(ctx, r.Level) {
		err = h.coreHandler.Handle(ctx, r)
		if err != nil {
			return err
		}
	}

	// Если это ошибка — пишем в файл
	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		_ = h.errorHandler.Handle(ctx, r.Clone())
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env string) *slog.Logger {
	var level slog.Level = slog.LevelDebug
	switch env {
	case envProd:
		level = slog.LevelInfo
	}

	// Основной handler — пишет всё в stdout
	var coreHandler slog.Handler
	switch env {
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	// Файловый handler — только ошибки
	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		slog.Warn("Cannot open error log file", "error", err)
		return slog.New(coreHandler)
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: errorHandler,
	})
}
