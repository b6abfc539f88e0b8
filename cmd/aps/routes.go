package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"

	generate_excel "aps-train/http-server/generate-report/generate-excel"
	getlines "aps-train/http-server/lines/get"
	savelines "aps-train/http-server/lines/save"
	uplines "aps-train/http-server/lines/update"
	getops "aps-train/http-server/operations/get"
	rmops "aps-train/http-server/operations/remove"
	saveops "aps-train/http-server/operations/save"
	getorders "aps-train/http-server/orders/get"
	rmorders "aps-train/http-server/orders/remove"
	saveorders "aps-train/http-server/orders/save"
	uporders "aps-train/http-server/orders/update"
	getconfig "aps-train/http-server/process-config/get"
	upconfig "aps-train/http-server/process-config/update"
	"aps-train/http-server/scheduling/execute"
	getworkers "aps-train/http-server/workers/get"
	saveworkers "aps-train/http-server/workers/save"
	"aps-train/internal/config"
	"aps-train/internal/middleware/auth"
	"aps-train/internal/service/report"
	"aps-train/internal/service/scheduling"
)

func routes(cfg config.Config, log *slog.Logger, store Repository, planner *scheduling.ScheduleService, excel *report.ExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	// Планирование
	router.Post("/api/scheduling/execute", execute.ExecuteScheduling(log, planner))

	// Заказы
	router.Get("/api/orders", getorders.GetOrders(log, store))
	router.Get("/api/orders/{id}", getorders.GetOrder(log, store))
	router.Post("/api/orders", saveorders.SaveOrder(log, store))
	router.Put("/api/orders/{id}/status", uporders.UpdateOrderStatus(log, store))
	router.Delete("/api/orders/{id}", rmorders.DeleteOrder(log, store))

	// Конфигурация (чтение)
	router.Get("/api/lines", getlines.GetLines(log, store))
	router.Get("/api/operations", getops.GetOperations(log, store))
	router.Get("/api/process-config", getconfig.GetConfiguredModels(log, store))
	router.Get("/api/process-config/{modelId}", getconfig.GetProcessConfig(log, store))

	// Табель работников
	router.Get("/api/workers", getworkers.GetWorkerAvailability(log, store, cfg.Scheduling.DefaultHorizonDays))
	router.Post("/api/workers", saveworkers.SaveWorkerAvailability(log, store))

	// Отчёт
	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, excel))

	// Изменение конфигурации — только под basic auth
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Post("/lines", savelines.SaveLine(log, store))
	adminRouter.Put("/lines/{id}/active", uplines.SetLineActive(log, store))
	adminRouter.Post("/operations", saveops.SaveOperation(log, store))
	adminRouter.Delete("/operations/{name}", rmops.DeleteOperation(log, store))
	adminRouter.Put("/process-config/{modelId}", upconfig.UpdateProcessConfig(log, store))

	router.Mount("/api/admin", adminRouter)

	return router
}
