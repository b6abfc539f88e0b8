package scheduling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"aps-train/internal/dateutil"
	"aps-train/internal/storage"
)

var (
	ErrNoPendingOrders = errors.New("no pending orders")
	ErrNoActiveLines   = errors.New("no active production lines")
	ErrNoModels        = errors.New("no configured train models")
)

type OrderStorage interface {
	GetPendingOrdersSorted(ctx context.Context) ([]*storage.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status storage.OrderStatus) error
}

type ConfigStorage interface {
	GetLines(ctx context.Context) ([]*storage.ProductionLine, error)
	GetConfiguredModels(ctx context.Context) ([]string, error)
	GetProcessConfig(ctx context.Context, modelID string) ([]storage.ProcessStep, error)
	GetWorkerAvailability(ctx context.Context, startDate string, days int) ([]storage.WorkerAvailability, error)
}

// Defaults приходят из конфигурации и подставляются в запросы без явных
// значений.
type Defaults struct {
	Workers       int
	HorizonDays   int
	MaxSearchDays int
}

type ScheduleService struct {
	log      *slog.Logger
	orders   OrderStorage
	config   ConfigStorage
	defaults Defaults
}

func NewScheduleService(log *slog.Logger, orders OrderStorage, config ConfigStorage, defaults Defaults) *ScheduleService {
	return &ScheduleService{
		log:      log,
		orders:   orders,
		config:   config,
		defaults: defaults,
	}
}

type ScheduleRequest struct {
	StartDate   string `json:"start_date,omitempty"`
	HorizonDays int    `json:"horizon_days,omitempty"`
	// MarkScheduled переводит запланированные заказы в статус scheduled.
	// Сам движок статусы не трогает.
	MarkScheduled bool `json:"mark_scheduled,omitempty"`
}

type ScheduleMetadata struct {
	TotalOrders     int   `json:"total_orders"`
	ScheduledOrders int   `json:"scheduled_orders"`
	TotalProcesses  int   `json:"total_processes"`
	ExecutionTimeMs int64 `json:"execution_time_ms"`
}

type ScheduleOutput struct {
	ScheduledProcesses []storage.ScheduledProcess   `json:"scheduled_processes"`
	CompletionDates    map[string]string            `json:"completion_dates"`
	ResourceUsage      []storage.DailyResourceUsage `json:"resource_usage"`
	Validation         storage.ValidationResult     `json:"validation"`
	Metadata           ScheduleMetadata             `json:"metadata"`
}

// Execute собирает вход из хранилищ, прогоняет движок и валидатор и собирает
// итоговый ответ. Заказы и конфигурация грузятся параллельно.
func (s *ScheduleService) Execute(ctx context.Context, req ScheduleRequest) (*ScheduleOutput, error) {
	const op = "service.scheduling.Execute"

	started := time.Now()

	startDate := req.StartDate
	if startDate == "" {
		startDate = dateutil.Format(time.Now())
	}
	if !dateutil.IsValid(startDate) {
		return nil, fmt.Errorf("%s: invalid start date %q", op, startDate)
	}

	horizonDays := req.HorizonDays
	if horizonDays <= 0 {
		horizonDays = s.defaults.HorizonDays
	}

	var (
		orders       []*storage.Order
		lines        []*storage.ProductionLine
		models       []*storage.TrainModel
		availability []storage.WorkerAvailability
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.GetPendingOrdersSorted(gCtx)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		lines, err = s.config.GetLines(gCtx)
		if err != nil {
			return fmt.Errorf("lines: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		models, err = s.loadModels(gCtx)
		if err != nil {
			return fmt.Errorf("models: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		availability, err = s.config.GetWorkerAvailability(gCtx, startDate, horizonDays)
		if err != nil {
			return fmt.Errorf("worker availability: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(orders) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoPendingOrders)
	}

	activeLines := make([]*storage.ProductionLine, 0, len(lines))
	for _, line := range lines {
		if line.IsActive {
			activeLines = append(activeLines, line)
		}
	}
	if len(activeLines) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoActiveLines)
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoModels)
	}

	result, err := Schedule(SchedulingInput{
		Orders:             orders,
		Lines:              activeLines,
		Models:             models,
		WorkerAvailability: availability,
		StartDate:          startDate,
		HorizonDays:        horizonDays,
		DefaultWorkers:     s.defaults.Workers,
		MaxSearchDays:      s.defaults.MaxSearchDays,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, orderID := range result.SkippedOrders {
		s.log.Warn("заказ пропущен: модель не сконфигурирована", slog.String("op", op), slog.String("order_id", orderID))
	}

	validation := ValidateSchedule(result.ScheduledProcesses, orders, result.CompletionDates, result.ResourceUsage)

	scheduledIDs := make(map[string]bool)
	for _, process := range result.ScheduledProcesses {
		scheduledIDs[process.OrderID] = true
	}

	if req.MarkScheduled {
		s.markScheduled(ctx, orders, scheduledIDs)
	}

	output := &ScheduleOutput{
		ScheduledProcesses: result.ScheduledProcesses,
		CompletionDates:    result.CompletionDates,
		ResourceUsage:      result.ResourceUsage,
		Validation:         validation,
		Metadata: ScheduleMetadata{
			TotalOrders:     len(orders),
			ScheduledOrders: len(scheduledIDs),
			TotalProcesses:  len(result.ScheduledProcesses),
			ExecutionTimeMs: time.Since(started).Milliseconds(),
		},
	}

	s.log.Info("планирование завершено",
		slog.String("op", op),
		slog.Int("orders", output.Metadata.TotalOrders),
		slog.Int("scheduled", output.Metadata.ScheduledOrders),
		slog.Int("processes", output.Metadata.TotalProcesses),
		slog.Bool("is_valid", validation.IsValid),
		slog.Int("conflicts", len(validation.Conflicts)),
	)

	return output, nil
}

// loadModels собирает модели из рецептов process_config; модели без единого
// шага не попадают в планирование.
func (s *ScheduleService) loadModels(ctx context.Context) ([]*storage.TrainModel, error) {
	modelIDs, err := s.config.GetConfiguredModels(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]*storage.TrainModel, 0, len(modelIDs))
	for _, modelID := range modelIDs {
		steps, err := s.config.GetProcessConfig(ctx, modelID)
		if err != nil {
			return nil, err
		}
		if len(steps) == 0 {
			continue
		}
		model, err := storage.NewTrainModel(modelID, "Modelo "+modelID, steps)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	return models, nil
}

// markScheduled — побочный эффект по явному запросу; ошибки отдельных заказов
// не валят весь прогон.
func (s *ScheduleService) markScheduled(ctx context.Context, orders []*storage.Order, scheduledIDs map[string]bool) {
	const op = "service.scheduling.markScheduled"

	for _, order := range orders {
		if !scheduledIDs[order.ID] || !order.CanSchedule() {
			continue
		}
		if err := s.orders.UpdateOrderStatus(ctx, order.ID, storage.StatusScheduled); err != nil {
			s.log.Error("не удалось обновить статус заказа",
				slog.String("op", op),
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}
